package contactlist

// SetIndexedPartition selects the partition the section index covers.
func (a *Adapter) SetIndexedPartition(i int) {
	a.indexer.partition = i
	a.indexer.placementOffset = -1
}

func (a *Adapter) IndexedPartition() int {
	return a.indexer.partition
}

// SetSectionHeaderDisplayEnabled toggles section headers and the pinned
// section header.
func (a *Adapter) SetSectionHeaderDisplayEnabled(flag bool) {
	a.indexer.enabled = flag
	a.indexer.placementOffset = -1
}

func (a *Adapter) IsSectionHeaderDisplayEnabled() bool {
	return a.indexer.enabled
}

// SetExtraStartingSection prepends an unlabeled one-row section to every
// index built from now on.
func (a *Adapter) SetExtraStartingSection(flag bool) {
	a.indexer.extraStartingSection = flag
}

// SetSectionIndex replaces the section index directly.
func (a *Adapter) SetSectionIndex(index *SectionIndex) {
	a.indexer.setIndex(index)
}

// SectionIndex returns the current index, or nil.
func (a *Adapter) SectionIndex() *SectionIndex {
	return a.indexer.index
}

func (a *Adapter) Sections() []string {
	return a.indexer.sections()
}

// PositionForSection returns the first offset of section within the
// indexed partition, or -1 when there is no index.
func (a *Adapter) PositionForSection(section int) int {
	return a.indexer.positionForSection(section)
}

// SectionForPosition returns the section of an offset within the indexed
// partition, or -1.
func (a *Adapter) SectionForPosition(offset int) int {
	return a.indexer.sectionForPosition(offset)
}

// ListPositionForSection returns the global position of the first row of
// section, or -1.
func (a *Adapter) ListPositionForSection(section int) int {
	offset := a.PositionForSection(section)
	if offset < 0 {
		return -1
	}
	start := a.PositionForPartition(a.indexer.partition)
	if a.HasHeader(a.indexer.partition) {
		start++
	}
	return start + offset
}

// Placement returns where the row at the global position sits in its
// section. Rows outside the indexed partition and the profile row have no
// placement.
func (a *Adapter) Placement(position int) Placement {
	i, offset, ok := a.locate(position)
	if !ok || offset == -1 || i != a.indexer.partition {
		return Placement{}
	}
	return a.indexer.placementFor(offset)
}
