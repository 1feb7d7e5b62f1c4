package contactlist

import (
	"fmt"

	"github.com/pstuifzand/tui-contacts/internal/directory"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// contacts builds a content result set with n rows named after their index.
func contacts(n int) *resultset.Matrix {
	m := resultset.NewMatrix(ColumnID, ColumnLookupKey, ColumnDisplayName, ColumnPhotoID, ColumnIsUserProfile)
	for i := 0; i < n; i++ {
		m.AddRow(int64(100+i), fmt.Sprintf("key-%d", i), fmt.Sprintf("Contact %d", i), int64(0), 0)
	}
	return m
}

// indexed builds a result set with index extras matching counts.
func indexed(titles []string, counts []int) *resultset.Matrix {
	total := 0
	for _, c := range counts {
		total += c
	}
	m := contacts(total)
	m.SetIndex(titles, counts)
	return m
}

func entries(ids ...int64) []directory.Entry {
	out := make([]directory.Entry, len(ids))
	for i, id := range ids {
		out[i] = directory.Entry{ID: id, Type: fmt.Sprintf("type-%d", id)}
	}
	return out
}

func directoryIDs(a *Adapter) []int64 {
	out := make([]int64, 0, a.PartitionCount())
	for _, p := range a.Partitions() {
		out = append(out, p.DirectoryID())
	}
	return out
}

type fakePhotos struct {
	refreshed int
	canceled  []string
}

func (f *fakePhotos) RefreshCache() { f.refreshed++ }

func (f *fakePhotos) CancelPendingRequests(scope string) {
	f.canceled = append(f.canceled, scope)
}

// fakeViewport lays rows out top to bottom: headers take one line, contact
// rows take rowHeight lines. scroll is the number of lines scrolled off.
type fakeViewport struct {
	tops    []int
	bottoms []int
	height  int
	scroll  int
}

func newFakeViewport(c *Composite, rowHeight, height, scroll int) *fakeViewport {
	vp := &fakeViewport{height: height, scroll: scroll}
	y := 0
	for pos := 0; pos < c.Count(); pos++ {
		h := rowHeight
		if c.IsHeader(pos) {
			h = 1
		}
		vp.tops = append(vp.tops, y)
		vp.bottoms = append(vp.bottoms, y+h)
		y += h
	}
	return vp
}

func (v *fakeViewport) Height() int { return v.height }

func (v *fakeViewport) RowAt(y int) int {
	if y < 0 || y >= v.height {
		return -1
	}
	line := y + v.scroll
	for pos := range v.tops {
		if line >= v.tops[pos] && line < v.bottoms[pos] {
			return pos
		}
	}
	return -1
}

func (v *fakeViewport) RowBottom(position int) (int, bool) {
	if position < 0 || position >= len(v.bottoms) {
		return 0, false
	}
	top := v.tops[position] - v.scroll
	bottom := v.bottoms[position] - v.scroll
	if bottom <= 0 || top >= v.height {
		return 0, false
	}
	return bottom, true
}
