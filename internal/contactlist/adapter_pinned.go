package contactlist

// PinnedHeaderCount returns one header per partition when partition headers
// are pinned, plus the section header when section headers are shown.
func (a *Adapter) PinnedHeaderCount() int {
	n := 0
	if a.pinnedPartitionHeaders {
		n = len(a.partitions)
	}
	if a.indexer.enabled {
		n++
	}
	return n
}

// SectionHeaderIndex returns the pinned header index of the section header,
// or -1 when section headers are off.
func (a *Adapter) SectionHeaderIndex() int {
	if !a.indexer.enabled {
		return -1
	}
	return a.PinnedHeaderCount() - 1
}

func (a *Adapter) isPinnedPartitionHeaderVisible(i int) bool {
	return a.pinnedPartitionHeaders && a.HasHeader(i) && !a.IsPartitionEmpty(i)
}

// ConfigurePinnedHeaders recomputes the pinned header geometry for the
// current scroll position.
func (a *Adapter) ConfigurePinnedHeaders(h *PinnedHeaders, vp Viewport) {
	h.Resize(a.PinnedHeaderCount())
	a.configurePartitionHeaders(h, vp)
	a.configureSectionHeader(h, vp)
}

func (a *Adapter) configurePartitionHeaders(h *PinnedHeaders, vp Viewport) {
	if !a.pinnedPartitionHeaders {
		return
	}
	size := len(a.partitions)
	visible := make([]bool, size)
	for i := 0; i < size; i++ {
		visible[i] = a.isPinnedPartitionHeaderVisible(i)
		if !visible[i] {
			h.SetInvisible(i)
		} else {
			label, name := a.HeaderLabel(i)
			if name != "" {
				label += " " + name
			}
			h.SetTitle(i, label)
		}
	}

	// Pin headers of partitions scrolled past at the top.
	maxTopHeader := -1
	topHeaderHeight := 0
	for i := 0; i < size; i++ {
		if !visible[i] {
			continue
		}
		position := PositionAt(vp, topHeaderHeight)
		if i > a.PartitionForPosition(position) {
			break
		}
		h.SetPinnedAtTop(i, topHeaderHeight)
		topHeaderHeight += h.Header(i).Height
		maxTopHeader = i
	}

	// Pin headers of partitions still below the viewport at the bottom.
	maxBottomHeader := size
	bottomHeaderHeight := 0
	listHeight := vp.Height()
	for i := size - 1; i > maxTopHeader; i-- {
		if !visible[i] {
			continue
		}
		position := PositionAt(vp, listHeight-bottomHeaderHeight)
		if position < 0 {
			break
		}
		partition := a.PartitionForPosition(position - 1)
		if partition == -1 || i <= partition {
			break
		}
		bottomHeaderHeight += h.Header(i).Height
		h.SetPinnedAtBottom(i, listHeight-bottomHeaderHeight)
		maxBottomHeader = i
	}

	// Headers in between scroll with their rows.
	for i := maxTopHeader + 1; i < maxBottomHeader; i++ {
		if visible[i] {
			h.SetInvisible(i)
		}
	}
}

func (a *Adapter) configureSectionHeader(h *PinnedHeaders, vp Viewport) {
	index := a.SectionHeaderIndex()
	if index < 0 {
		return
	}
	if a.indexer.index == nil || a.Count() == 0 {
		h.SetInvisible(index)
		return
	}

	position := PositionAt(vp, h.TotalTopPinnedHeaderHeight())
	section := -1
	if a.PartitionForPosition(position) == a.indexer.partition {
		if offset := a.OffsetInPartition(position); offset != -1 {
			section = a.indexer.sectionForPosition(offset)
		}
	}
	if section == -1 {
		h.SetInvisible(index)
		return
	}

	h.SetTitle(index, a.indexer.index.Sections()[section])

	partitionStart := a.PositionForPartition(a.indexer.partition)
	if a.HasHeader(a.indexer.partition) {
		partitionStart++
	}
	nextSectionPosition := partitionStart + a.indexer.positionForSection(section+1)
	isLastInSection := position == nextSectionPosition-1
	h.SetFading(index, position, isLastInSection, vp)
}

// ScrollPositionForHeader returns the list position a tap on pinned header i
// scrolls to.
func (a *Adapter) ScrollPositionForHeader(i int) int {
	if i == a.SectionHeaderIndex() {
		return -1
	}
	return a.PositionForPartition(i)
}
