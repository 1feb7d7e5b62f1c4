// Package resultset provides the row collections consumed by the list
// adapters. Rows are addressed explicitly by index; there is no shared seek
// position.
package resultset

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Extras keys carrying the address-book index of a result set.
const (
	ExtraIndexTitles = "address_book_index_titles"
	ExtraIndexCounts = "address_book_index_counts"
)

// Extras is out-of-band metadata attached to a result set.
type Extras map[string]any

// IndexTitles returns the section labels, or nil when absent.
func (e Extras) IndexTitles() []string {
	titles, _ := e[ExtraIndexTitles].([]string)
	return titles
}

// IndexCounts returns the per-section row counts, or nil when absent.
func (e Extras) IndexCounts() []int {
	counts, _ := e[ExtraIndexCounts].([]int)
	return counts
}

// HasIndex reports whether both index extras are present and agree in length.
func (e Extras) HasIndex() bool {
	titles := e.IndexTitles()
	counts := e.IndexCounts()
	return titles != nil && counts != nil && len(titles) == len(counts)
}

// ResultSet is a read-only table of rows.
type ResultSet interface {
	RowCount() int
	Columns() []string
	// ColumnIndex returns the index of the named column, or -1.
	ColumnIndex(name string) int
	String(row, col int) string
	Int64(row, col int) int64
	Int(row, col int) int
	Extras() Extras
	Close() error
}

// Row is a reference to one row of a result set.
type Row struct {
	RS    ResultSet
	Index int
}

// String returns the named column of the row, or "" when the column is absent.
func (r Row) String(column string) string {
	col := r.RS.ColumnIndex(column)
	if col < 0 {
		return ""
	}
	return r.RS.String(r.Index, col)
}

// Int64 returns the named column of the row, or -1 when the column is absent.
func (r Row) Int64(column string) int64 {
	col := r.RS.ColumnIndex(column)
	if col < 0 {
		return -1
	}
	return r.RS.Int64(r.Index, col)
}

// Matrix is an in-memory ResultSet.
type Matrix struct {
	columns []string
	index   map[string]int
	rows    [][]any
	extras  Extras
	closed  atomic.Bool
}

// NewMatrix creates an empty Matrix with the given columns.
func NewMatrix(columns ...string) *Matrix {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Matrix{
		columns: columns,
		index:   index,
		extras:  Extras{},
	}
}

// AddRow appends a row. The number of values must match the column count.
func (m *Matrix) AddRow(values ...any) {
	if len(values) != len(m.columns) {
		panic(fmt.Sprintf("resultset: row has %d values, want %d", len(values), len(m.columns)))
	}
	m.rows = append(m.rows, values)
}

// SetExtra stores an out-of-band value.
func (m *Matrix) SetExtra(key string, value any) {
	m.extras[key] = value
}

// SetIndex stores the address-book index extras.
func (m *Matrix) SetIndex(titles []string, counts []int) {
	m.extras[ExtraIndexTitles] = titles
	m.extras[ExtraIndexCounts] = counts
}

func (m *Matrix) RowCount() int {
	return len(m.rows)
}

func (m *Matrix) Columns() []string {
	return m.columns
}

func (m *Matrix) ColumnIndex(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}
	return -1
}

func (m *Matrix) value(row, col int) any {
	if row < 0 || row >= len(m.rows) {
		panic(fmt.Sprintf("resultset: row %d out of range [0,%d)", row, len(m.rows)))
	}
	if col < 0 || col >= len(m.columns) {
		panic(fmt.Sprintf("resultset: column %d out of range [0,%d)", col, len(m.columns)))
	}
	return m.rows[row][col]
}

func (m *Matrix) String(row, col int) string {
	switch v := m.value(row, col).(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func (m *Matrix) Int64(row, col int) int64 {
	switch v := m.value(row, col).(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func (m *Matrix) Int(row, col int) int {
	return int(m.Int64(row, col))
}

func (m *Matrix) Extras() Extras {
	return m.extras
}

func (m *Matrix) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed reports whether Close has been called.
func (m *Matrix) Closed() bool {
	return m.closed.Load()
}
