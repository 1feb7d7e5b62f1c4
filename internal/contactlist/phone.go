package contactlist

import (
	"math"

	"github.com/pstuifzand/tui-contacts/internal/directory"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// ExtendedDirectory is a directory contributed by a plugin rather than the
// registry. It is addressed by its content URI.
type ExtendedDirectory struct {
	Label       string
	DisplayName string
	ContentURI  string
	ResultLimit int
}

// PhoneAdapter lists one row per phone number and injects extended
// directories between the local and the remote directories.
type PhoneAdapter struct {
	*Adapter

	extended        []*Partition
	firstExtendedID int64
}

// NewPhoneAdapter creates a phone number adapter.
func NewPhoneAdapter() *PhoneAdapter {
	a := &PhoneAdapter{
		Adapter:         NewAdapter(),
		firstExtendedID: math.MaxInt64,
	}
	a.resultCount = CountDistinctContacts
	return a
}

// CountDistinctContacts counts runs of equal contact ids, so a contact
// with several numbers counts once.
func CountDistinctContacts(rs resultset.ResultSet) int {
	if rs == nil {
		return 0
	}
	col := rs.ColumnIndex(ColumnContactID)
	if col == -1 {
		return rs.RowCount()
	}
	n := 0
	current := int64(-1)
	for row := 0; row < rs.RowCount(); row++ {
		id := rs.Int64(row, col)
		if id != current {
			current = id
			n++
		}
	}
	return n
}

// SetExtendedDirectories sets the plugin directories to inject on the next
// ChangeDirectories.
func (a *PhoneAdapter) SetExtendedDirectories(dirs []ExtendedDirectory) {
	a.extended = a.extended[:0]
	for _, d := range dirs {
		p := NewDirectoryPartition(false, true, 0)
		p.Dir.Label = d.Label
		p.Dir.DisplayName = d.DisplayName
		p.Dir.ContentURI = d.ContentURI
		if d.ResultLimit > 0 {
			p.Dir.ResultLimit = d.ResultLimit
		}
		a.extended = append(a.extended, p)
	}
}

// IsExtendedDirectory reports whether id was assigned to an extended
// directory.
func (a *PhoneAdapter) IsExtendedDirectory(id int64) bool {
	return id >= a.firstExtendedID
}

func (a *PhoneAdapter) isInstalledExtended(p *Partition) bool {
	for _, e := range a.extended {
		if e == p {
			return true
		}
	}
	return false
}

// ChangeDirectories reconciles the registry directories and then injects
// the extended directories with ids above every existing id, right after
// the last local partition.
func (a *PhoneAdapter) ChangeDirectories(entries []directory.Entry) error {
	if err := a.Adapter.changeDirectories(entries, a.isInstalledExtended); err != nil {
		return err
	}
	if a.DirectorySearchMode() == directory.SearchModeNone || len(a.extended) == 0 {
		return nil
	}

	maxID := directory.LocalInvisible
	installed := 0
	for _, p := range a.partitions {
		if a.isInstalledExtended(p) {
			installed++
			continue
		}
		if id := p.DirectoryID(); id > maxID {
			maxID = id
		}
	}
	first := maxID + 1
	if installed == len(a.extended) && first == a.firstExtendedID {
		return nil
	}

	for i := len(a.partitions) - 1; i >= 0; i-- {
		if a.isInstalledExtended(a.partitions[i]) {
			// Extended partitions are reused; keep their result sets.
			a.partitions = append(a.partitions[:i], a.partitions[i+1:]...)
		}
	}
	insertIndex := 0
	for i, p := range a.partitions {
		if !directory.IsRemote(p.DirectoryID()) {
			insertIndex = i + 1
		}
	}

	a.firstExtendedID = first
	for i, p := range a.extended {
		p.Dir.ID = first + int64(i)
		a.insertPartition(insertIndex+i, p)
	}
	a.Invalidate()
	a.NotifyDataSetChanged()
	return nil
}

// LoadRequest asks for phone rows; extended directories are addressed by
// their content URI.
func (a *PhoneAdapter) LoadRequest(directoryID int64) LoadRequest {
	req := a.Adapter.LoadRequest(directoryID)
	req.PhoneNumbers = true
	if a.IsExtendedDirectory(directoryID) {
		d := a.DirectoryByID(directoryID)
		if d == nil || d.ContentURI == "" {
			panic("contactlist: extended directory without content URI")
		}
		req.ContentURI = d.ContentURI
		req.Limit = a.DirectoryResultLimitFor(d)
		req.Filter = nil
		req.IncludeIndex = false
	}
	return req
}

// PhoneNumber returns the number and its label for the row at position.
func (a *PhoneAdapter) PhoneNumber(position int) (number, label string) {
	row, ok := a.Item(position)
	if !ok {
		return "", ""
	}
	return row.String(ColumnNumber), row.String(ColumnNumberLabel)
}
