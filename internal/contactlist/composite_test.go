package contactlist

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountLocalAndEmptyRemote(t *testing.T) {
	c := NewComposite()
	local := NewPartition(true, false)
	remote := NewPartition(false, true)
	c.AddPartition(local)
	c.AddPartition(remote)
	c.ChangeCursor(0, contacts(5))
	c.ChangeCursor(1, contacts(0))

	assert.Equal(t, 5, c.Count())
	assert.Equal(t, 0, c.PartitionForPosition(4))
	assert.Equal(t, -1, c.PartitionForPosition(5))
	assert.Equal(t, -1, c.OffsetInPartition(5))
}

func TestHeaderAccounting(t *testing.T) {
	tests := []struct {
		name        string
		showIfEmpty bool
		hasHeader   bool
		rows        int
		want        int
	}{
		{"no header", false, false, 3, 3},
		{"header with rows", false, true, 3, 4},
		{"hidden empty header", false, true, 0, 0},
		{"shown empty header", true, true, 0, 1},
		{"show if empty without header", true, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposite()
			c.AddPartition(NewPartition(tt.showIfEmpty, tt.hasHeader))
			c.ChangeCursor(0, contacts(tt.rows))
			assert.Equal(t, tt.want, c.Count())
		})
	}
}

func TestUnboundPartitionCountsZero(t *testing.T) {
	c := NewComposite()
	c.AddPartition(NewPartition(false, true))
	c.AddPartition(NewPartition(true, true))
	assert.Equal(t, 1, c.Count())
	assert.True(t, c.IsPartitionEmpty(0))
	assert.True(t, c.IsHeader(0))
	assert.Equal(t, 1, c.PartitionForPosition(0))
}

func TestZeroPartitionsPanics(t *testing.T) {
	c := NewComposite()
	assert.Panics(t, func() { c.Count() })
}

func TestPartitionOutOfRangePanics(t *testing.T) {
	c := NewComposite()
	c.AddPartition(NewPartition(false, false))
	assert.Panics(t, func() { c.Partition(1) })
	assert.Panics(t, func() { c.ChangeCursor(2, contacts(1)) })
}

func TestItemAndItemID(t *testing.T) {
	c := NewComposite()
	c.AddPartition(NewPartition(false, true))
	c.AddPartition(NewPartition(false, true))
	c.ChangeCursor(0, contacts(2))
	c.ChangeCursor(1, contacts(1))

	// [H0, r0, r1, H1, r0]
	require.Equal(t, 5, c.Count())
	_, ok := c.Item(0)
	assert.False(t, ok)
	row, ok := c.Item(2)
	require.True(t, ok)
	assert.Equal(t, 1, row.Index)
	assert.Equal(t, int64(101), c.ItemID(2))
	assert.Equal(t, int64(-1), c.ItemID(3))
	assert.Equal(t, int64(100), c.ItemID(4))
	assert.Equal(t, -1, c.OffsetInPartition(3))
	assert.Equal(t, 0, c.OffsetInPartition(4))

	assert.Equal(t, ViewTypeIgnore, c.ItemViewType(3))
	assert.Equal(t, 1, c.ItemViewType(4))
	assert.False(t, c.IsEnabled(0))
	assert.True(t, c.IsEnabled(1))
	assert.False(t, c.AreAllItemsEnabled())
}

func TestPositionForPartition(t *testing.T) {
	c := NewComposite()
	c.AddPartition(NewPartition(false, true))
	c.AddPartition(NewPartition(false, false))
	c.AddPartition(NewPartition(true, true))
	c.ChangeCursor(0, contacts(3))
	c.ChangeCursor(1, contacts(2))

	assert.Equal(t, 0, c.PositionForPartition(0))
	assert.Equal(t, 4, c.PositionForPartition(1))
	assert.Equal(t, 6, c.PositionForPartition(2))
	assert.Equal(t, 7, c.Count())
}

func TestChangeCursorNotifiesAndClosesPrevious(t *testing.T) {
	c := NewComposite()
	c.AddPartition(NewPartition(false, false))
	notified := 0
	c.Observe(func() { notified++ })

	first := contacts(2)
	c.ChangeCursor(0, first)
	assert.Equal(t, 1, notified)
	assert.False(t, first.Closed())

	c.ChangeCursor(0, contacts(3))
	assert.Equal(t, 2, notified)
	assert.True(t, first.Closed())
	assert.Equal(t, 3, c.Count())
}

func TestInsertAndRemovePartition(t *testing.T) {
	c := NewComposite()
	a, b, mid := NewPartition(false, false), NewPartition(false, false), NewPartition(false, false)
	c.AddPartition(a)
	c.AddPartition(b)
	c.InsertPartition(1, mid)
	assert.Same(t, mid, c.Partition(1))
	assert.Same(t, b, c.Partition(2))

	rs := contacts(1)
	c.ChangeCursor(1, rs)
	c.RemovePartition(1)
	assert.Equal(t, 2, c.PartitionCount())
	assert.Same(t, b, c.Partition(1))
	assert.True(t, rs.Closed())
}

func TestClearPartitionsKeepsPartitions(t *testing.T) {
	c := NewComposite()
	c.AddPartition(NewPartition(false, false))
	c.ChangeCursor(0, contacts(4))
	c.ClearPartitions()
	assert.Equal(t, 1, c.PartitionCount())
	assert.Equal(t, 0, c.Count())
	assert.Nil(t, c.ResultSet(0))
}

func TestHeaderFlagsInvalidateCache(t *testing.T) {
	c := NewComposite()
	c.AddPartition(NewPartition(false, false))
	c.ChangeCursor(0, contacts(2))
	assert.Equal(t, 2, c.Count())
	c.SetHasHeader(0, true)
	assert.Equal(t, 3, c.Count())
	c.ChangeCursor(0, contacts(0))
	assert.Equal(t, 0, c.Count())
	c.SetShowIfEmpty(0, true)
	assert.Equal(t, 1, c.Count())
	assert.True(t, c.Partition(0).HasHeader())
	assert.True(t, c.Partition(0).ShowIfEmpty())
}

// layoutFor decodes a generated value into partition flags and a row count.
func layoutFor(v int) (rows int, hasHeader, showIfEmpty bool) {
	return v % 6, (v/6)%2 == 1, (v/12)%2 == 1
}

func buildComposite(layout []int) *Composite {
	c := NewComposite()
	for _, v := range layout {
		rows, hasHeader, showIfEmpty := layoutFor(v)
		c.AddPartition(NewPartition(showIfEmpty, hasHeader))
		c.ChangeCursor(c.PartitionCount()-1, contacts(rows))
	}
	return c
}

func TestPositionMappingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	layouts := gen.SliceOf(gen.IntRange(0, 23)).SuchThat(func(v []int) bool { return len(v) > 0 })

	properties.Property("count is the sum of partition counts", prop.ForAll(
		func(layout []int) bool {
			c := buildComposite(layout)
			total := 0
			for _, v := range layout {
				rows, hasHeader, showIfEmpty := layoutFor(v)
				total += rows
				if hasHeader && (rows > 0 || showIfEmpty) {
					total++
				}
			}
			return c.Count() == total
		},
		layouts,
	))

	properties.Property("every position maps to exactly one (partition, offset)", prop.ForAll(
		func(layout []int) bool {
			c := buildComposite(layout)
			seen := map[[2]int]bool{}
			for pos := 0; pos < c.Count(); pos++ {
				i := c.PartitionForPosition(pos)
				offset := c.OffsetInPartition(pos)
				if i < 0 || i >= c.PartitionCount() {
					return false
				}
				key := [2]int{i, offset}
				if seen[key] {
					return false
				}
				seen[key] = true
				start := c.PositionForPartition(i)
				if c.HasHeader(i) {
					if offset == -1 && pos != start {
						return false
					}
					if offset != -1 && pos != start+1+offset {
						return false
					}
				} else if offset == -1 || pos != start+offset {
					return false
				}
			}
			return c.PartitionForPosition(c.Count()) == -1 && c.PartitionForPosition(-1) == -1
		},
		layouts,
	))

	properties.TestingRun(t)
}
