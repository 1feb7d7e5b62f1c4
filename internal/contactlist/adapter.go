// Package contactlist implements the contact list model: a composite of
// directory partitions with a section index over the local directory and
// pinned header geometry for the renderer.
package contactlist

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

const (
	DefaultDirectoryResultLimit = 20
	RemoteDirectoryLabel        = "Directory"
	ProfileHeaderLabel          = "ME"
	DefaultPhotoScope           = "contacts"
)

// PhotoLoader is the part of the photo manager the adapter drives.
type PhotoLoader interface {
	RefreshCache()
	CancelPendingRequests(scope string)
}

// Adapter is the contact entry list model. It owns the partitions, the
// section index and the pinned header rules, and is only touched from the
// UI goroutine.
type Adapter struct {
	*Composite

	indexer Indexer

	queryString          string
	upperQuery           string
	searchMode           bool
	directorySearchMode  directory.SearchMode
	directoryResultLimit int
	displayOrder         DisplayOrder
	sortOrder            SortOrder
	filter               *Filter

	includeProfile bool
	profileExists  bool

	displayPhotos bool
	photos        PhotoLoader
	photoScope    string

	emptyListEnabled       bool
	pinnedPartitionHeaders bool
	defaultHeaderLabel     string
	profileHeaderLabel     string

	// resultCount counts the results of a partition for its header.
	resultCount func(rs resultset.ResultSet) int
}

// NewAdapter creates an adapter holding only the default directory
// partition.
func NewAdapter() *Adapter {
	a := &Adapter{
		Composite:              NewComposite(),
		indexer:                newIndexer(),
		directoryResultLimit:   DefaultDirectoryResultLimit,
		emptyListEnabled:       true,
		pinnedPartitionHeaders: true,
		defaultHeaderLabel:     directory.DefaultLabel,
		profileHeaderLabel:     ProfileHeaderLabel,
		photoScope:             DefaultPhotoScope,
		resultCount: func(rs resultset.ResultSet) int {
			if rs == nil {
				return 0
			}
			return rs.RowCount()
		},
	}
	a.indexer.enabled = true
	a.addPartition(a.newDefaultPartition())
	return a
}

func (a *Adapter) newDefaultPartition() *Partition {
	p := NewDirectoryPartition(true, true, directory.Default)
	p.Dir.DirectoryType = directory.DefaultLabel
	p.Dir.Label = a.defaultHeaderLabel
	p.Dir.Priority = true
	p.Dir.PhotoSupported = true
	return p
}

// SetDefaultHeaderLabel sets the header label of local directories.
func (a *Adapter) SetDefaultHeaderLabel(label string) {
	a.defaultHeaderLabel = label
	for _, p := range a.partitions {
		if p.Dir != nil && !directory.IsRemote(p.Dir.ID) {
			p.Dir.Label = label
		}
	}
}

func (a *Adapter) SetProfileHeaderLabel(label string) {
	a.profileHeaderLabel = label
}

// PartitionByDirectoryID returns the index of the partition for id, or -1.
func (a *Adapter) PartitionByDirectoryID(id int64) int {
	for i, p := range a.partitions {
		if p.Dir != nil && p.Dir.ID == id {
			return i
		}
	}
	return -1
}

func (a *Adapter) hasDirectory(id int64, skip func(*Partition) bool) bool {
	for _, p := range a.partitions {
		if p.Dir == nil || p.Dir.ID != id {
			continue
		}
		if skip != nil && skip(p) {
			continue
		}
		return true
	}
	return false
}

// DirectoryByID returns the directory partition for id, or nil.
func (a *Adapter) DirectoryByID(id int64) *DirectoryPartition {
	if i := a.PartitionByDirectoryID(id); i != -1 {
		return a.partitions[i].Dir
	}
	return nil
}

// ChangeDirectories reconciles the directory partitions with an
// enumeration: unseen ids get a new partition, partitions whose id is
// missing are removed. Observers are notified once.
func (a *Adapter) ChangeDirectories(entries []directory.Entry) error {
	return a.changeDirectories(entries, nil)
}

// changeDirectories is ChangeDirectories with keep exempting partitions
// from removal.
func (a *Adapter) changeDirectories(entries []directory.Entry, keep func(*Partition) bool) error {
	if len(entries) == 0 {
		logger.Error("directory enumeration returned no directories; keeping %d partitions", len(a.partitions))
		return cerrors.ErrEmptyDirectoryList
	}

	ids := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		ids[e.ID] = struct{}{}
		if a.hasDirectory(e.ID, keep) {
			continue
		}
		p := NewDirectoryPartition(false, true, e.ID)
		if directory.IsRemote(e.ID) {
			p.Dir.Label = RemoteDirectoryLabel
		} else {
			p.Dir.Label = a.defaultHeaderLabel
		}
		p.Dir.DirectoryType = e.Type
		p.Dir.DisplayName = e.DisplayName
		p.Dir.PhotoSupported = e.PhotoSupport.SupportsThumbnails()
		a.addPartition(p)
		logger.Debug("added partition for directory %d (%s)", e.ID, e.Type)
	}

	for i := len(a.partitions) - 1; i >= 0; i-- {
		p := a.partitions[i]
		if p.Dir == nil {
			continue
		}
		if _, ok := ids[p.Dir.ID]; ok {
			continue
		}
		if keep != nil && keep(p) {
			continue
		}
		logger.Debug("removing partition for directory %d", p.Dir.ID)
		a.removePartition(i)
	}

	a.Invalidate()
	a.NotifyDataSetChanged()
	return nil
}

// RemoveDirectoriesAfterDefault removes every partition after the default
// directory partition.
func (a *Adapter) RemoveDirectoriesAfterDefault() {
	changed := false
	for i := len(a.partitions) - 1; i >= 0; i-- {
		p := a.partitions[i]
		if p.Dir != nil && p.Dir.ID == directory.Default {
			break
		}
		a.removePartition(i)
		changed = true
	}
	if changed {
		a.NotifyDataSetChanged()
	}
}

// ChangeCursor binds rs to partition i. Results for partitions that no
// longer exist are closed and dropped.
func (a *Adapter) ChangeCursor(i int, rs resultset.ResultSet) {
	if i >= len(a.partitions) {
		if rs != nil {
			closeResultSet(rs)
		}
		return
	}

	p := a.partitions[i]
	if p.Dir != nil {
		p.Dir.Status = StatusLoaded
	}

	if a.displayPhotos && a.photos != nil && a.IsPhotoSupported(i) {
		a.photos.RefreshCache()
	}

	a.Composite.ChangeCursor(i, rs)

	if a.indexer.enabled && i == a.indexer.partition {
		a.indexer.rebuild(rs)
	}

	if i == a.indexer.partition {
		exists := false
		if rs != nil && rs.RowCount() > 0 {
			col := rs.ColumnIndex(ColumnIsUserProfile)
			exists = col != -1 && rs.Int(0, col) == 1
		}
		a.SetProfileExists(exists)
	}

	if a.photos != nil {
		a.photos.CancelPendingRequests(a.photoScope)
	}
}

// OnDataReload marks every directory partition not loaded.
func (a *Adapter) OnDataReload() {
	notify := false
	for _, p := range a.partitions {
		if p.Dir == nil {
			continue
		}
		if !p.Dir.IsLoading() {
			notify = true
		}
		p.Dir.Status = StatusNotLoaded
	}
	if notify {
		a.NotifyDataSetChanged()
	}
}

// ClearPartitions drops every result set and marks directories not loaded.
func (a *Adapter) ClearPartitions() {
	for _, p := range a.partitions {
		if p.Dir != nil {
			p.Dir.Status = StatusNotLoaded
		}
	}
	a.Composite.ClearPartitions()
}

// IsLoading reports whether any directory partition is still loading.
func (a *Adapter) IsLoading() bool {
	for _, p := range a.partitions {
		if p.Dir != nil && p.Dir.IsLoading() {
			return true
		}
	}
	return false
}

func (a *Adapter) AreAllPartitionsEmpty() bool {
	for _, p := range a.partitions {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// ConfigureDefaultPartition changes the visibility rules of the default
// directory partition.
func (a *Adapter) ConfigureDefaultPartition(showIfEmpty, hasHeader bool) {
	i := a.PartitionByDirectoryID(directory.Default)
	if i == -1 {
		return
	}
	a.SetShowIfEmpty(i, showIfEmpty)
	a.SetHasHeader(i, hasHeader)
}

// IsEmpty reports whether the empty-list view should be shown.
func (a *Adapter) IsEmpty() bool {
	if !a.emptyListEnabled {
		return false
	}
	if a.searchMode {
		return a.queryString == ""
	}
	return a.Count() == 0
}

func (a *Adapter) SetEmptyListEnabled(flag bool) {
	a.emptyListEnabled = flag
}

func (a *Adapter) IsSearchMode() bool {
	return a.searchMode
}

func (a *Adapter) SetSearchMode(flag bool) {
	a.searchMode = flag
}

func (a *Adapter) QueryString() string {
	return a.queryString
}

// SetQueryString stores the query and its normalized upper-case form.
func (a *Adapter) SetQueryString(query string) {
	a.queryString = query
	if query == "" {
		a.upperQuery = ""
		return
	}
	a.upperQuery = CleanSearchQuery(strings.ToUpper(query))
}

// UpperCaseQueryString returns the normalized query used for highlighting.
func (a *Adapter) UpperCaseQueryString() string {
	return a.upperQuery
}

// CleanSearchQuery trims everything but letters and digits from both ends.
func CleanSearchQuery(query string) string {
	return strings.TrimFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (a *Adapter) DirectorySearchMode() directory.SearchMode {
	return a.directorySearchMode
}

func (a *Adapter) SetDirectorySearchMode(mode directory.SearchMode) {
	a.directorySearchMode = mode
}

func (a *Adapter) DirectoryResultLimit() int {
	return a.directoryResultLimit
}

func (a *Adapter) SetDirectoryResultLimit(limit int) {
	a.directoryResultLimit = limit
}

// DirectoryResultLimitFor returns the row limit of a directory partition.
func (a *Adapter) DirectoryResultLimitFor(d *DirectoryPartition) int {
	if d == nil || d.ResultLimit == ResultLimitDefault {
		return a.directoryResultLimit
	}
	return d.ResultLimit
}

func (a *Adapter) DisplayOrder() DisplayOrder {
	return a.displayOrder
}

func (a *Adapter) SetDisplayOrder(order DisplayOrder) {
	a.displayOrder = order
}

func (a *Adapter) SortOrder() SortOrder {
	return a.sortOrder
}

func (a *Adapter) SetSortOrder(order SortOrder) {
	a.sortOrder = order
}

func (a *Adapter) Filter() *Filter {
	return a.filter
}

func (a *Adapter) SetFilter(f *Filter) {
	a.filter = f
}

func (a *Adapter) ShouldIncludeProfile() bool {
	return a.includeProfile
}

func (a *Adapter) SetIncludeProfile(flag bool) {
	a.includeProfile = flag
}

// SetProfileExists records whether the first row is the user's profile and
// gives it its own section.
func (a *Adapter) SetProfileExists(exists bool) {
	a.profileExists = exists
	if exists && a.indexer.index != nil {
		a.indexer.index.SetProfileHeader(a.profileHeaderLabel)
		a.indexer.placementOffset = -1
	}
}

func (a *Adapter) HasProfile() bool {
	return a.profileExists
}

func (a *Adapter) DisplayPhotos() bool {
	return a.displayPhotos
}

func (a *Adapter) SetDisplayPhotos(flag bool) {
	a.displayPhotos = flag
}

// SetPhotoLoader sets the photo manager and the scope its requests are
// registered under.
func (a *Adapter) SetPhotoLoader(photos PhotoLoader, scope string) {
	a.photos = photos
	if scope != "" {
		a.photoScope = scope
	}
}

func (a *Adapter) PhotoScope() string {
	return a.photoScope
}

// IsPhotoSupported reports whether partition i can show photos.
func (a *Adapter) IsPhotoSupported(i int) bool {
	p := a.Partition(i)
	if p.Dir != nil {
		return p.Dir.PhotoSupported
	}
	return true
}

// IsUserProfile reports whether the row at position is the user's profile.
// Only the first row of the indexed partition can be.
func (a *Adapter) IsUserProfile(position int) bool {
	i, offset, ok := a.locate(position)
	if !ok || offset != 0 || i != a.indexer.partition {
		return false
	}
	row, _ := a.Item(position)
	return row.Int64(ColumnIsUserProfile) == 1
}

// ContactDisplayName returns the display name of the row at position.
func (a *Adapter) ContactDisplayName(position int) string {
	row, ok := a.Item(position)
	if !ok {
		return ""
	}
	if a.displayOrder == DisplayOrderAlternative {
		if name := row.String(ColumnDisplayNameAlt); name != "" {
			return name
		}
	}
	return row.String(ColumnDisplayName)
}

// ContactURI returns the lookup URI of the row at position, or "" when the
// row cannot be addressed.
func (a *Adapter) ContactURI(position int) string {
	i, offset, ok := a.locate(position)
	if !ok || offset == -1 {
		return ""
	}
	row := resultset.Row{RS: a.partitions[i].rs, Index: offset}
	dirID := a.partitions[i].DirectoryID()
	lookupKey := row.String(ColumnLookupKey)
	if lookupKey == "" && directory.IsRemote(dirID) {
		return ""
	}
	uri := fmt.Sprintf("contacts://lookup/%s/%d", lookupKey, row.Int64(ColumnID))
	if dirID != directory.Default {
		uri += fmt.Sprintf("?directory=%d", dirID)
	}
	return uri
}

// HeaderLabel returns the label and the directory name shown in the header
// of partition i. Local directories have no name.
func (a *Adapter) HeaderLabel(i int) (label, name string) {
	p := a.Partition(i)
	if p.Dir == nil {
		return "", ""
	}
	if !directory.IsRemote(p.Dir.ID) {
		return p.Dir.Label, ""
	}
	name = p.Dir.DisplayName
	if name == "" {
		name = p.Dir.DirectoryType
	}
	return p.Dir.Label, name
}

// ResultCount returns the number of results partition i holds.
func (a *Adapter) ResultCount(i int) int {
	return a.resultCount(a.Partition(i).rs)
}

// SetPinnedPartitionHeadersEnabled toggles pinning of directory headers.
func (a *Adapter) SetPinnedPartitionHeadersEnabled(flag bool) {
	a.pinnedPartitionHeaders = flag
}

func (a *Adapter) PinnedPartitionHeadersEnabled() bool {
	return a.pinnedPartitionHeaders
}

// LoadRequest describes the query that fills the partition of directoryID.
func (a *Adapter) LoadRequest(directoryID int64) LoadRequest {
	req := LoadRequest{
		DirectoryID:    directoryID,
		SearchMode:     a.searchMode,
		DisplayOrder:   a.displayOrder,
		SortOrder:      a.sortOrder,
		IncludeProfile: a.includeProfile && !a.searchMode,
	}
	if a.searchMode {
		req.Query = strings.TrimSpace(a.queryString)
	}
	if directory.IsRemote(directoryID) {
		req.Limit = a.DirectoryResultLimitFor(a.DirectoryByID(directoryID))
	}
	if directoryID == directory.Default {
		req.Filter = a.filter
		req.IncludeIndex = !a.searchMode && a.indexer.enabled
	}
	return req
}
