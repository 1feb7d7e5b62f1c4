package contactlist

import (
	"github.com/pstuifzand/tui-contacts/internal/directory"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// Kind distinguishes plain partitions from directory partitions.
type Kind int

const (
	KindPlain Kind = iota
	KindDirectory
)

// Status is the load status of a directory partition.
type Status int

const (
	StatusNotLoaded Status = iota
	StatusLoading
	StatusLoaded
)

func (s Status) String() string {
	switch s {
	case StatusNotLoaded:
		return "not-loaded"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// ResultLimitDefault makes a directory partition use the adapter-wide limit.
const ResultLimitDefault = -1

// Partition is one contiguous slice of the list. Dir is non-nil for
// partitions that show the contents of a directory.
type Partition struct {
	Dir *DirectoryPartition

	showIfEmpty bool
	hasHeader   bool

	rs    resultset.ResultSet
	count int
}

// DirectoryPartition holds the directory specific state of a partition.
type DirectoryPartition struct {
	ID             int64
	DirectoryType  string
	DisplayName    string
	Label          string
	Status         Status
	Priority       bool
	PhotoSupported bool
	ResultLimit    int
	// ContentURI is set on extended directories contributed by plugins.
	ContentURI string
	// DisplayNumber shows phone numbers on rows instead of the default.
	DisplayNumber bool
}

// NewPartition creates a plain partition.
func NewPartition(showIfEmpty, hasHeader bool) *Partition {
	return &Partition{showIfEmpty: showIfEmpty, hasHeader: hasHeader}
}

// NewDirectoryPartition creates a partition for directory id.
func NewDirectoryPartition(showIfEmpty, hasHeader bool, id int64) *Partition {
	return &Partition{
		showIfEmpty: showIfEmpty,
		hasHeader:   hasHeader,
		Dir: &DirectoryPartition{
			ID:            id,
			ResultLimit:   ResultLimitDefault,
			DisplayNumber: true,
		},
	}
}

func (p *Partition) Kind() Kind {
	if p.Dir != nil {
		return KindDirectory
	}
	return KindPlain
}

// HasHeader reports whether the partition shows a header row. Change it
// through Composite.SetHasHeader.
func (p *Partition) HasHeader() bool {
	return p.hasHeader
}

// ShowIfEmpty reports whether the header is shown without data rows.
func (p *Partition) ShowIfEmpty() bool {
	return p.showIfEmpty
}

// ResultSet returns the bound result set, or nil.
func (p *Partition) ResultSet() resultset.ResultSet {
	return p.rs
}

// RowCount returns the number of data rows; an unbound partition has none.
func (p *Partition) RowCount() int {
	if p.rs == nil {
		return 0
	}
	return p.rs.RowCount()
}

// IsEmpty reports whether the partition has no data rows.
func (p *Partition) IsEmpty() bool {
	return p.RowCount() == 0
}

// DirectoryID returns the directory id, or directory.Default for plain
// partitions.
func (p *Partition) DirectoryID() int64 {
	if p.Dir == nil {
		return directory.Default
	}
	return p.Dir.ID
}

// IsLoading reports whether the directory has not finished loading.
func (d *DirectoryPartition) IsLoading() bool {
	return d.Status == StatusNotLoaded || d.Status == StatusLoading
}

// computeCount returns rows plus one header row when the header is shown.
func (p *Partition) computeCount() int {
	rows := p.RowCount()
	if p.hasHeader && (rows != 0 || p.showIfEmpty) {
		rows++
	}
	return rows
}
