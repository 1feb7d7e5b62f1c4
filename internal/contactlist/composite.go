package contactlist

import (
	"fmt"

	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// ViewTypeIgnore is reported for header rows, which are never recycled as
// item rows.
const ViewTypeIgnore = -1

// ColumnID is the row id column of every content result set.
const ColumnID = "_id"

// Composite stitches an ordered list of partitions into one list. Global
// positions are derived by a linear scan over the cached partition counts.
type Composite struct {
	partitions []*Partition
	count      int
	cacheValid bool
	observers  []func()
}

// NewComposite creates an empty Composite.
func NewComposite() *Composite {
	return &Composite{
		partitions: make([]*Partition, 0, 2),
		cacheValid: true,
	}
}

// Observe registers fn to be called on every data set change.
func (c *Composite) Observe(fn func()) {
	c.observers = append(c.observers, fn)
}

// NotifyDataSetChanged calls every observer.
func (c *Composite) NotifyDataSetChanged() {
	for _, fn := range c.observers {
		fn()
	}
}

func (c *Composite) AddPartition(p *Partition) {
	c.addPartition(p)
	c.NotifyDataSetChanged()
}

func (c *Composite) addPartition(p *Partition) {
	c.partitions = append(c.partitions, p)
	c.Invalidate()
}

// InsertPartition inserts p at index, shifting later partitions.
func (c *Composite) InsertPartition(index int, p *Partition) {
	c.insertPartition(index, p)
	c.NotifyDataSetChanged()
}

func (c *Composite) insertPartition(index int, p *Partition) {
	if index < 0 || index > len(c.partitions) {
		panic(fmt.Sprintf("contactlist: insert index %d out of range [0,%d]", index, len(c.partitions)))
	}
	c.partitions = append(c.partitions, nil)
	copy(c.partitions[index+1:], c.partitions[index:])
	c.partitions[index] = p
	c.Invalidate()
}

// RemovePartition removes partition i and closes its result set.
func (c *Composite) RemovePartition(i int) {
	c.removePartition(i)
	c.NotifyDataSetChanged()
}

func (c *Composite) removePartition(i int) {
	p := c.Partition(i)
	if p.rs != nil {
		closeResultSet(p.rs)
	}
	c.partitions = append(c.partitions[:i], c.partitions[i+1:]...)
	c.Invalidate()
}

// ClearPartitions drops every bound result set but keeps the partitions.
func (c *Composite) ClearPartitions() {
	for _, p := range c.partitions {
		if p.rs != nil {
			closeResultSet(p.rs)
		}
		p.rs = nil
	}
	c.Invalidate()
	c.NotifyDataSetChanged()
}

func (c *Composite) PartitionCount() int {
	return len(c.partitions)
}

// Partition returns partition i. It panics when i is out of range.
func (c *Composite) Partition(i int) *Partition {
	if i < 0 || i >= len(c.partitions) {
		panic(fmt.Sprintf("contactlist: partition %d out of range [0,%d)", i, len(c.partitions)))
	}
	return c.partitions[i]
}

// Partitions returns the partitions in order. The slice must not be modified.
func (c *Composite) Partitions() []*Partition {
	return c.partitions
}

// Invalidate marks the cached counts stale.
func (c *Composite) Invalidate() {
	c.cacheValid = false
}

func (c *Composite) SetHasHeader(i int, flag bool) {
	c.Partition(i).hasHeader = flag
	c.Invalidate()
}

func (c *Composite) SetShowIfEmpty(i int, flag bool) {
	c.Partition(i).showIfEmpty = flag
	c.Invalidate()
}

func (c *Composite) HasHeader(i int) bool {
	return c.Partition(i).hasHeader
}

func (c *Composite) IsPartitionEmpty(i int) bool {
	return c.Partition(i).IsEmpty()
}

// ResultSet returns the result set bound to partition i, or nil.
func (c *Composite) ResultSet(i int) resultset.ResultSet {
	return c.Partition(i).rs
}

// ChangeCursor binds rs to partition i, closing the previous result set.
func (c *Composite) ChangeCursor(i int, rs resultset.ResultSet) {
	p := c.Partition(i)
	if p.rs != nil && p.rs != rs {
		closeResultSet(p.rs)
	}
	p.rs = rs
	c.Invalidate()
	c.NotifyDataSetChanged()
}

func (c *Composite) ensureCacheValid() {
	if len(c.partitions) == 0 {
		panic("contactlist: list has no partitions")
	}
	if c.cacheValid {
		return
	}
	c.count = 0
	for _, p := range c.partitions {
		p.count = p.computeCount()
		c.count += p.count
	}
	c.cacheValid = true
}

// Count returns the number of rows, headers included.
func (c *Composite) Count() int {
	c.ensureCacheValid()
	return c.count
}

// locate maps a global position to (partition, offset). The offset is -1
// for header rows; ok is false when the position is out of range.
func (c *Composite) locate(position int) (partition, offset int, ok bool) {
	c.ensureCacheValid()
	start := 0
	for i, p := range c.partitions {
		end := start + p.count
		if position >= start && position < end {
			offset = position - start
			if p.hasHeader {
				offset--
			}
			return i, offset, true
		}
		start = end
	}
	return -1, -1, false
}

// PartitionForPosition returns the partition holding position, or -1.
func (c *Composite) PartitionForPosition(position int) int {
	i, _, _ := c.locate(position)
	return i
}

// OffsetInPartition returns the row offset of position within its
// partition; -1 for header rows and out-of-range positions.
func (c *Composite) OffsetInPartition(position int) int {
	_, offset, _ := c.locate(position)
	return offset
}

// PositionForPartition returns the first global position of partition i.
func (c *Composite) PositionForPartition(i int) int {
	c.ensureCacheValid()
	position := 0
	for j := 0; j < i && j < len(c.partitions); j++ {
		position += c.partitions[j].count
	}
	return position
}

// IsHeader reports whether position is a partition header row.
func (c *Composite) IsHeader(position int) bool {
	_, offset, ok := c.locate(position)
	return ok && offset == -1
}

// Item returns the row at position. ok is false for headers and
// out-of-range positions.
func (c *Composite) Item(position int) (resultset.Row, bool) {
	i, offset, ok := c.locate(position)
	if !ok || offset == -1 {
		return resultset.Row{}, false
	}
	p := c.partitions[i]
	if p.rs == nil || offset >= p.rs.RowCount() {
		panic(fmt.Sprintf("contactlist: no row %d in partition %d", offset, i))
	}
	return resultset.Row{RS: p.rs, Index: offset}, true
}

// ItemID returns the _id of the row at position, or -1.
func (c *Composite) ItemID(position int) int64 {
	row, ok := c.Item(position)
	if !ok {
		return -1
	}
	return row.Int64(ColumnID)
}

// ItemViewType returns the partition index for data rows and
// ViewTypeIgnore for headers.
func (c *Composite) ItemViewType(position int) int {
	i, offset, ok := c.locate(position)
	if !ok || offset == -1 {
		return ViewTypeIgnore
	}
	return i
}

// IsEnabled reports whether position can be selected. Headers cannot.
func (c *Composite) IsEnabled(position int) bool {
	_, offset, ok := c.locate(position)
	return ok && offset != -1
}

// AreAllItemsEnabled reports whether no partition shows a header.
func (c *Composite) AreAllItemsEnabled() bool {
	for _, p := range c.partitions {
		if p.hasHeader {
			return false
		}
	}
	return true
}

func closeResultSet(rs resultset.ResultSet) {
	if err := rs.Close(); err != nil {
		logger.Warn("failed to close result set: %v", err)
	}
}
