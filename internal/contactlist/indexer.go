package contactlist

import "github.com/pstuifzand/tui-contacts/internal/resultset"

// Placement describes where a row sits within its section.
type Placement struct {
	FirstInSection bool
	LastInSection  bool
	// SectionHeader is the section label on the first row of a section.
	SectionHeader string
}

// Indexer holds the section index of the indexed partition and memoizes the
// placement of the last queried row.
type Indexer struct {
	index                *SectionIndex
	partition            int
	enabled              bool
	extraStartingSection bool

	placementOffset int
	placement       Placement
}

func newIndexer() Indexer {
	return Indexer{placementOffset: -1}
}

// Index returns the current section index, or nil.
func (x *Indexer) Index() *SectionIndex {
	return x.index
}

func (x *Indexer) setIndex(index *SectionIndex) {
	x.index = index
	x.placementOffset = -1
}

// rebuild recreates the index from the extras of rs. Missing extras leave
// the list without an index.
func (x *Indexer) rebuild(rs resultset.ResultSet) {
	if rs == nil || !rs.Extras().HasIndex() {
		x.setIndex(nil)
		return
	}
	titles := rs.Extras().IndexTitles()
	counts := rs.Extras().IndexCounts()
	if x.extraStartingSection {
		titles = append([]string{""}, titles...)
		counts = append([]int{1}, counts...)
	}
	x.setIndex(NewSectionIndex(titles, counts))
}

func (x *Indexer) sections() []string {
	if x.index == nil {
		return nil
	}
	return x.index.Sections()
}

func (x *Indexer) positionForSection(section int) int {
	if x.index == nil {
		return -1
	}
	return x.index.PositionForSection(section)
}

func (x *Indexer) sectionForPosition(offset int) int {
	if x.index == nil {
		return -1
	}
	return x.index.SectionForPosition(offset)
}

// placementFor computes the placement of offset in the indexed partition.
func (x *Indexer) placementFor(offset int) Placement {
	if x.placementOffset == offset && offset >= 0 {
		return x.placement
	}
	var p Placement
	if x.enabled {
		section := x.sectionForPosition(offset)
		if section != -1 {
			if x.positionForSection(section) == offset {
				p.FirstInSection = true
				p.SectionHeader = x.index.Sections()[section]
			}
			p.LastInSection = x.positionForSection(section+1)-1 == offset
		}
	}
	x.placementOffset = offset
	x.placement = p
	return p
}
