package contactlist

import (
	"github.com/pstuifzand/tui-contacts/internal/photo"
)

// EntryKind tells header rows from contact rows.
type EntryKind int

const (
	EntryHeader EntryKind = iota
	EntryContact
)

// Entry is the render-ready form of one list row.
type Entry struct {
	Kind      EntryKind
	Partition int

	// Header rows
	Label         string
	DirectoryName string
	ResultCount   int
	Loading       bool

	// Contact rows
	ID          int64
	DisplayName string
	Detail      string
	Starred     bool
	Profile     bool
	Placement   Placement
	// Photo is nil when photos are off for the row's partition.
	Photo *photo.Request
	// Highlight is the normalized query to highlight in search mode.
	Highlight string
}

// View is the read side a list renderer needs.
type View interface {
	Count() int
	EntryAt(position int) Entry
	PinnedHeaderCount() int
	SectionHeaderIndex() int
	ConfigurePinnedHeaders(h *PinnedHeaders, vp Viewport)
	ScrollPositionForHeader(i int) int
	IsEnabled(position int) bool
}

var (
	_ View = (*Adapter)(nil)
	_ View = (*PhoneAdapter)(nil)
)

// EntryAt returns the row at position. It panics for positions outside
// [0, Count()).
func (a *Adapter) EntryAt(position int) Entry {
	i, offset, ok := a.locate(position)
	if !ok {
		panic("contactlist: position out of range")
	}
	p := a.partitions[i]
	if offset == -1 {
		label, name := a.HeaderLabel(i)
		e := Entry{
			Kind:          EntryHeader,
			Partition:     i,
			Label:         label,
			DirectoryName: name,
			ResultCount:   a.resultCount(p.rs),
		}
		if p.Dir != nil {
			e.Loading = p.Dir.IsLoading()
		}
		return e
	}

	row, _ := a.Item(position)
	e := Entry{
		Kind:        EntryContact,
		Partition:   i,
		ID:          row.Int64(ColumnID),
		DisplayName: a.ContactDisplayName(position),
		Starred:     row.Int64(ColumnStarred) == 1,
		Profile:     a.IsUserProfile(position),
	}
	if !e.Profile {
		e.Placement = a.Placement(position)
	}
	if a.searchMode {
		e.Highlight = a.upperQuery
	}
	if a.displayPhotos && a.IsPhotoSupported(i) {
		photoID := row.Int64(ColumnPhotoID)
		if photoID < 0 {
			photoID = 0
		}
		e.Photo = &photo.Request{
			PhotoID:     photoID,
			PhotoURI:    row.String(ColumnPhotoURI),
			DisplayName: e.DisplayName,
			LookupKey:   row.String(ColumnLookupKey),
		}
	}
	return e
}

// EntryAt adds the phone number to contact rows.
func (a *PhoneAdapter) EntryAt(position int) Entry {
	e := a.Adapter.EntryAt(position)
	if e.Kind != EntryContact {
		return e
	}
	number, label := a.PhoneNumber(position)
	if label != "" {
		e.Detail = label + " " + number
	} else {
		e.Detail = number
	}
	return e
}
