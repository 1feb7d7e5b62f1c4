package contactlist

import (
	"fmt"
	"sort"
)

// SectionIndex maps alphabetic section labels to the first row offset of
// each section within the indexed partition.
type SectionIndex struct {
	sections  []string
	positions []int
	count     int
}

// NewSectionIndex builds an index from parallel label and count slices.
func NewSectionIndex(sections []string, counts []int) *SectionIndex {
	if len(sections) != len(counts) {
		panic(fmt.Sprintf("contactlist: %d section labels but %d counts", len(sections), len(counts)))
	}
	idx := &SectionIndex{
		sections:  make([]string, len(sections)),
		positions: make([]int, len(counts)),
	}
	copy(idx.sections, sections)
	position := 0
	for i, n := range counts {
		if n < 0 {
			panic(fmt.Sprintf("contactlist: negative count %d for section %q", n, sections[i]))
		}
		idx.positions[i] = position
		position += n
	}
	idx.count = position
	return idx
}

// Sections returns the section labels.
func (s *SectionIndex) Sections() []string {
	return s.sections
}

// Count returns the number of rows covered by the index.
func (s *SectionIndex) Count() int {
	return s.count
}

// PositionForSection returns the first offset of section. The section one
// past the last maps to Count(); other out-of-range sections return -1.
func (s *SectionIndex) PositionForSection(section int) int {
	if section == len(s.sections) {
		return s.count
	}
	if section < 0 || section > len(s.sections) {
		return -1
	}
	return s.positions[section]
}

// SectionForPosition returns the section containing offset, or -1 when the
// offset is outside the index.
func (s *SectionIndex) SectionForPosition(position int) int {
	if position < 0 || position >= s.count {
		return -1
	}
	// Last section whose start is <= position; empty sections share a
	// start with their successor and are skipped.
	return sort.Search(len(s.positions), func(i int) bool {
		return s.positions[i] > position
	}) - 1
}

// SetProfileHeader gives the profile row at offset 0 its own section. A
// leading unlabeled section is relabeled; otherwise a one-row section is
// inserted and every other section shifts down by one row.
func (s *SectionIndex) SetProfileHeader(header string) {
	if len(s.sections) > 0 {
		if s.sections[0] == header {
			return
		}
		if s.sections[0] == "" && s.PositionForSection(1)-s.positions[0] == 1 {
			s.sections[0] = header
			return
		}
	}
	sections := make([]string, len(s.sections)+1)
	positions := make([]int, len(s.positions)+1)
	sections[0] = header
	for i := range s.sections {
		sections[i+1] = s.sections[i]
		positions[i+1] = s.positions[i] + 1
	}
	s.sections = sections
	s.positions = positions
	s.count++
}
