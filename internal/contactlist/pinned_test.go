package contactlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubViewport struct {
	height  int
	rows    map[int]int
	bottoms map[int]int
}

func (s stubViewport) Height() int { return s.height }

func (s stubViewport) RowAt(y int) int {
	if p, ok := s.rows[y]; ok {
		return p
	}
	return -1
}

func (s stubViewport) RowBottom(position int) (int, bool) {
	b, ok := s.bottoms[position]
	return b, ok
}

func TestSetFadingAlpha(t *testing.T) {
	tests := []struct {
		name      string
		rowBottom int
		fade      bool
		wantY     int
		wantAlpha int
	}{
		{"row below header", 6, true, 0, MaxAlpha},
		{"row exactly header height", 4, true, 0, MaxAlpha},
		{"row three quarters under", 1, true, -3, MaxAlpha / 4},
		{"row half under", 2, true, -2, MaxAlpha / 2},
		{"no fade", 1, false, 0, MaxAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h PinnedHeaders
			h.Resize(1)
			h.SetHeight(0, 4)
			vp := stubViewport{height: 10, bottoms: map[int]int{3: tt.rowBottom}}
			h.SetFading(0, 3, tt.fade, vp)
			hd := h.Header(0)
			assert.True(t, hd.Visible)
			assert.Equal(t, HeaderFading, hd.State)
			assert.Equal(t, tt.wantY, hd.Y)
			assert.Equal(t, tt.wantAlpha, hd.Alpha)
		})
	}
}

func TestSetFadingIsMonotonic(t *testing.T) {
	prev := -1
	for bottom := 1; bottom <= 5; bottom++ {
		var h PinnedHeaders
		h.Resize(1)
		h.SetHeight(0, 4)
		h.SetFading(0, 0, true, stubViewport{bottoms: map[int]int{0: bottom}})
		alpha := h.Header(0).Alpha
		assert.GreaterOrEqual(t, alpha, prev)
		prev = alpha
	}
}

func TestSetFadingBelowTopPinnedHeaders(t *testing.T) {
	var h PinnedHeaders
	h.Resize(2)
	h.SetHeight(1, 2)
	h.SetPinnedAtTop(0, 0)
	h.SetFading(1, 4, true, stubViewport{bottoms: map[int]int{4: 2}})
	// top = 1, bottom = 2 - 1 = 1 < 2, portion = -1
	assert.Equal(t, 0, h.Header(1).Y)
	assert.Equal(t, MaxAlpha/2, h.Header(1).Alpha)
}

func TestSetFadingRowNotLaidOut(t *testing.T) {
	var h PinnedHeaders
	h.Resize(1)
	h.SetPinnedAtTop(0, 0)
	h.SetFading(0, 9, true, stubViewport{})
	assert.False(t, h.Header(0).Visible)
}

func TestTotalTopPinnedHeaderHeight(t *testing.T) {
	var h PinnedHeaders
	h.Resize(3)
	assert.Equal(t, 0, h.TotalTopPinnedHeaderHeight())
	h.SetPinnedAtTop(0, 0)
	h.SetPinnedAtTop(1, 1)
	h.SetHeight(1, 2)
	h.SetPinnedAtBottom(2, 8)
	assert.Equal(t, 3, h.TotalTopPinnedHeaderHeight())
	h.SetInvisible(1)
	assert.Equal(t, 1, h.TotalTopPinnedHeaderHeight())
}

func TestPositionAtWalksUpward(t *testing.T) {
	vp := stubViewport{rows: map[int]int{2: 7}}
	assert.Equal(t, 7, PositionAt(vp, 2))
	assert.Equal(t, 7, PositionAt(vp, 5))
	assert.Equal(t, 0, PositionAt(vp, 1))
}

func newPinnedAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))
	a.ChangeCursor(0, indexed([]string{"A", "B"}, []int{2, 2}))
	a.ChangeCursor(1, contacts(3))
	// [H0, A, A, B, B, H5, r, r, r]
	require.Equal(t, 9, a.Count())
	return a
}

func configure(a *Adapter, scroll int) (*PinnedHeaders, *fakeViewport) {
	var h PinnedHeaders
	h.Resize(a.PinnedHeaderCount())
	h.SetHeight(a.SectionHeaderIndex(), 2)
	vp := newFakeViewport(a.Composite, 2, 6, scroll)
	a.ConfigurePinnedHeaders(&h, vp)
	return &h, vp
}

func TestConfigurePinnedHeadersAtTop(t *testing.T) {
	a := newPinnedAdapter(t)
	require.Equal(t, 3, a.PinnedHeaderCount())

	h, _ := configure(a, 0)

	local := h.Header(0)
	assert.True(t, local.Visible)
	assert.Equal(t, HeaderTop, local.State)
	assert.Equal(t, 0, local.Y)

	remote := h.Header(1)
	assert.True(t, remote.Visible)
	assert.Equal(t, HeaderBottom, remote.State)
	assert.Equal(t, 5, remote.Y)
	assert.Equal(t, RemoteDirectoryLabel+" type-5", remote.Title)

	section := h.Header(2)
	assert.True(t, section.Visible)
	assert.Equal(t, HeaderFading, section.State)
	assert.Equal(t, "A", section.Title)
	assert.Equal(t, 1, section.Y)
	assert.Equal(t, MaxAlpha, section.Alpha)

	top, bottom := h.SelectionWindow(6)
	assert.Equal(t, 1, top)
	assert.Equal(t, 5, bottom)
	assert.Equal(t, 0, h.HeaderAt(0))
	assert.Equal(t, 2, h.HeaderAt(2))
	assert.Equal(t, 1, h.HeaderAt(5))
}

func TestConfigurePinnedHeadersFadesAtSectionEnd(t *testing.T) {
	a := newPinnedAdapter(t)

	h, _ := configure(a, 2)
	section := h.Header(2)
	assert.Equal(t, "A", section.Title)
	assert.Equal(t, 1, section.Y)
	assert.Equal(t, MaxAlpha, section.Alpha)

	h, _ = configure(a, 3)
	section = h.Header(2)
	assert.Equal(t, "A", section.Title)
	assert.Equal(t, 0, section.Y)
	assert.Equal(t, MaxAlpha/2, section.Alpha)

	h, _ = configure(a, 4)
	section = h.Header(2)
	assert.Equal(t, "B", section.Title)
	assert.Equal(t, MaxAlpha, section.Alpha)
}

func TestConfigurePinnedHeadersInRemotePartition(t *testing.T) {
	a := newPinnedAdapter(t)
	h, _ := configure(a, 10)

	assert.Equal(t, HeaderTop, h.Header(0).State)
	assert.True(t, h.Header(0).Visible)
	assert.Equal(t, HeaderTop, h.Header(1).State)
	assert.Equal(t, 1, h.Header(1).Y)
	assert.False(t, h.Header(2).Visible, "no section header outside the indexed partition")
	assert.Equal(t, 5, a.ScrollPositionForHeader(1))
}

func TestConfigurePinnedHeadersHidesEmptyPartitions(t *testing.T) {
	a := newPinnedAdapter(t)
	a.ChangeCursor(1, contacts(0))
	h, _ := configure(a, 0)
	assert.False(t, h.Header(1).Visible)
}

func TestSectionHeaderHiddenWithoutIndex(t *testing.T) {
	a := NewAdapter()
	a.ChangeCursor(0, contacts(3))
	h, _ := configure(a, 0)
	assert.False(t, h.Header(a.SectionHeaderIndex()).Visible)
}

func TestPinnedHeaderCount(t *testing.T) {
	a := NewAdapter()
	assert.Equal(t, 2, a.PinnedHeaderCount())
	a.SetPinnedPartitionHeadersEnabled(false)
	assert.Equal(t, 1, a.PinnedHeaderCount())
	assert.Equal(t, 0, a.SectionHeaderIndex())
	a.SetSectionHeaderDisplayEnabled(false)
	assert.Equal(t, 0, a.PinnedHeaderCount())
	assert.Equal(t, -1, a.SectionHeaderIndex())
}
