package contactlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

func TestNewAdapterHasDefaultPartition(t *testing.T) {
	a := NewAdapter()
	require.Equal(t, 1, a.PartitionCount())
	p := a.Partition(0)
	assert.Equal(t, KindDirectory, p.Kind())
	assert.Equal(t, directory.Default, p.Dir.ID)
	assert.True(t, p.Dir.Priority)
	assert.True(t, p.Dir.PhotoSupported)
	assert.True(t, p.ShowIfEmpty())
	assert.True(t, p.HasHeader())
	assert.Equal(t, StatusNotLoaded, p.Dir.Status)
	assert.Equal(t, KindPlain, NewPartition(false, false).Kind())
}

func TestChangeDirectoriesRemovesMissing(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 1, 5)))
	assert.Equal(t, []int64{0, 1, 5}, directoryIDs(a))

	local := contacts(2)
	invisible := contacts(1)
	a.ChangeCursor(0, local)
	a.ChangeCursor(1, invisible)
	p0, p1 := a.Partition(0), a.Partition(1)

	require.NoError(t, a.ChangeDirectories(entries(0, 1)))
	assert.Equal(t, []int64{0, 1}, directoryIDs(a))
	assert.Same(t, p0, a.Partition(0))
	assert.Same(t, p1, a.Partition(1))
	assert.Same(t, local, a.ResultSet(0))
	assert.Same(t, invisible, a.ResultSet(1))
	assert.False(t, local.Closed())
	assert.Equal(t, StatusLoaded, p0.Dir.Status)
}

func TestChangeDirectoriesNotifiesOnce(t *testing.T) {
	a := NewAdapter()
	notified := 0
	a.Observe(func() { notified++ })
	require.NoError(t, a.ChangeDirectories(entries(0, 5, 6, 7)))
	assert.Equal(t, 1, notified)
}

func TestChangeDirectoriesIsIdempotent(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 1, 5, 9)))
	first := append([]*Partition(nil), a.Partitions()...)
	require.NoError(t, a.ChangeDirectories(entries(0, 1, 5, 9)))
	require.Equal(t, len(first), a.PartitionCount())
	for i, p := range first {
		assert.Same(t, p, a.Partition(i))
	}
}

func TestChangeDirectoriesEmptyIsRejected(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))
	notified := 0
	a.Observe(func() { notified++ })

	err := a.ChangeDirectories(nil)
	assert.True(t, errors.Is(err, cerrors.ErrEmptyDirectoryList))
	assert.Equal(t, []int64{0, 5}, directoryIDs(a))
	assert.Equal(t, 0, notified)
}

func TestChangeDirectoriesLabelsAndPhotos(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories([]directory.Entry{
		{ID: 0, Type: "Contacts"},
		{ID: 1, Type: "Hidden"},
		{ID: 5, Type: "Corporate", DisplayName: "ACME", PhotoSupport: directory.PhotoSupportThumbnailOnly},
		{ID: 6, Type: "LDAP", PhotoSupport: directory.PhotoSupportFullSizeOnly},
	}))

	assert.Equal(t, directory.DefaultLabel, a.Partition(1).Dir.Label)
	assert.False(t, a.Partition(1).ShowIfEmpty())
	assert.True(t, a.Partition(1).HasHeader())
	assert.Equal(t, RemoteDirectoryLabel, a.Partition(2).Dir.Label)
	assert.True(t, a.Partition(2).Dir.PhotoSupported)
	assert.False(t, a.Partition(3).Dir.PhotoSupported)

	label, name := a.HeaderLabel(2)
	assert.Equal(t, RemoteDirectoryLabel, label)
	assert.Equal(t, "ACME", name)
	_, name = a.HeaderLabel(3)
	assert.Equal(t, "LDAP", name, "falls back to the directory type")
	_, name = a.HeaderLabel(0)
	assert.Equal(t, "", name)
}

func TestChangeCursorIgnoresUnknownPartition(t *testing.T) {
	a := NewAdapter()
	rs := contacts(3)
	a.ChangeCursor(4, rs)
	assert.True(t, rs.Closed())
	assert.Equal(t, 1, a.PartitionCount())
}

func TestChangeCursorDrivesPhotosAndStatus(t *testing.T) {
	a := NewAdapter()
	photos := &fakePhotos{}
	a.SetPhotoLoader(photos, "browse")
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))

	a.ChangeCursor(1, contacts(1))
	assert.Equal(t, StatusLoaded, a.Partition(1).Dir.Status)
	assert.Equal(t, 0, photos.refreshed, "photos are off")
	assert.Equal(t, []string{"browse"}, photos.canceled)

	a.SetDisplayPhotos(true)
	a.ChangeCursor(1, contacts(1))
	assert.Equal(t, 0, photos.refreshed, "remote directory without photo support")
	a.ChangeCursor(0, contacts(1))
	assert.Equal(t, 1, photos.refreshed)
}

func TestChangeCursorDetectsProfile(t *testing.T) {
	a := NewAdapter()
	a.SetIncludeProfile(true)

	rs := resultset.NewMatrix(ColumnID, ColumnDisplayName, ColumnIsUserProfile)
	rs.AddRow(int64(1), "Me Myself", 1)
	rs.AddRow(int64(2), "Ada", 0)
	rs.AddRow(int64(3), "Bob", 0)
	rs.SetIndex([]string{"A", "B"}, []int{1, 1})
	a.ChangeCursor(0, rs)

	assert.True(t, a.HasProfile())
	assert.True(t, a.IsUserProfile(1))
	assert.False(t, a.IsUserProfile(2))
	assert.Equal(t, []string{ProfileHeaderLabel, "A", "B"}, a.Sections())
	assert.Equal(t, 1, a.PositionForSection(1))

	e := a.EntryAt(1)
	assert.True(t, e.Profile)
	assert.Equal(t, Placement{}, e.Placement)

	a.ChangeCursor(0, indexed([]string{"A"}, []int{2}))
	assert.False(t, a.HasProfile())
	assert.Equal(t, []string{"A"}, a.Sections())
}

func TestEmptyResultClearsProfile(t *testing.T) {
	a := NewAdapter()
	a.SetIncludeProfile(true)

	rs := resultset.NewMatrix(ColumnID, ColumnDisplayName, ColumnIsUserProfile)
	rs.AddRow(int64(1), "Me Myself", 1)
	a.ChangeCursor(0, rs)
	require.True(t, a.HasProfile())

	a.ChangeCursor(0, resultset.NewMatrix(ColumnID, ColumnDisplayName, ColumnIsUserProfile))
	assert.False(t, a.HasProfile())
	assert.False(t, a.IsUserProfile(1))
}

func TestOnDataReload(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))
	a.ChangeCursor(0, contacts(1))
	notified := 0
	a.Observe(func() { notified++ })

	a.OnDataReload()
	assert.Equal(t, 1, notified)
	assert.Equal(t, StatusNotLoaded, a.Partition(0).Dir.Status)
	assert.Equal(t, StatusNotLoaded, a.Partition(1).Dir.Status)
	assert.True(t, a.IsLoading())

	a.OnDataReload()
	assert.Equal(t, 1, notified, "no notification when everything was already loading")
}

func TestIsLoading(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))
	a.ChangeCursor(0, contacts(1))
	assert.True(t, a.IsLoading())
	a.Partition(1).Dir.Status = StatusLoading
	assert.True(t, a.IsLoading())
	a.ChangeCursor(1, contacts(0))
	assert.False(t, a.IsLoading())
}

func TestClearPartitionsResetsStatus(t *testing.T) {
	a := NewAdapter()
	a.ChangeCursor(0, contacts(2))
	a.ClearPartitions()
	assert.Equal(t, StatusNotLoaded, a.Partition(0).Dir.Status)
	assert.True(t, a.AreAllPartitionsEmpty())
}

func TestRemoveDirectoriesAfterDefault(t *testing.T) {
	a := NewAdapter()
	a.InsertPartition(0, NewPartition(false, true))
	require.NoError(t, a.ChangeDirectories(entries(0, 5, 6)))
	a.RemoveDirectoriesAfterDefault()
	assert.Equal(t, 2, a.PartitionCount())
	assert.Equal(t, KindPlain, a.Partition(0).Kind())
	assert.Equal(t, directory.Default, a.Partition(1).Dir.ID)
}

func TestConfigureDefaultPartition(t *testing.T) {
	a := NewAdapter()
	a.ConfigureDefaultPartition(false, false)
	assert.False(t, a.Partition(0).ShowIfEmpty())
	assert.False(t, a.Partition(0).HasHeader())
	assert.Equal(t, 0, a.Count())
}

func TestIsEmpty(t *testing.T) {
	a := NewAdapter()
	a.ConfigureDefaultPartition(false, false)
	assert.True(t, a.IsEmpty())

	a.SetSearchMode(true)
	assert.True(t, a.IsEmpty())
	a.SetQueryString("ad")
	assert.False(t, a.IsEmpty())

	a.SetEmptyListEnabled(false)
	a.SetQueryString("")
	assert.False(t, a.IsEmpty())
}

func TestSetQueryStringNormalizes(t *testing.T) {
	a := NewAdapter()
	a.SetQueryString("  (ada l.)  ")
	assert.Equal(t, "  (ada l.)  ", a.QueryString())
	assert.Equal(t, "ADA L", a.UpperCaseQueryString())
	a.SetQueryString("")
	assert.Equal(t, "", a.UpperCaseQueryString())
}

func TestDirectoryResultLimit(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))
	d := a.DirectoryByID(5)
	assert.Equal(t, DefaultDirectoryResultLimit, a.DirectoryResultLimitFor(d))
	d.ResultLimit = 3
	assert.Equal(t, 3, a.DirectoryResultLimitFor(d))
	assert.Nil(t, a.DirectoryByID(42))
}

func TestLoadRequest(t *testing.T) {
	a := NewAdapter()
	a.SetFilter(NewFilter(FilterStarred))
	a.SetIncludeProfile(true)
	a.SetSortOrder(SortOrderAlternative)
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))

	req := a.LoadRequest(directory.Default)
	assert.Equal(t, LoadRequest{
		DirectoryID:    directory.Default,
		SortOrder:      SortOrderAlternative,
		Filter:         a.Filter(),
		IncludeProfile: true,
		IncludeIndex:   true,
	}, req)

	a.SetSearchMode(true)
	a.SetQueryString(" ada ")
	req = a.LoadRequest(5)
	assert.Equal(t, "ada", req.Query)
	assert.Equal(t, DefaultDirectoryResultLimit, req.Limit)
	assert.Nil(t, req.Filter)
	assert.False(t, req.IncludeProfile)
	assert.False(t, req.IncludeIndex)
}

func TestContactURI(t *testing.T) {
	a := NewAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 5)))
	a.ChangeCursor(0, contacts(1))
	remote := resultset.NewMatrix(ColumnID, ColumnLookupKey, ColumnDisplayName)
	remote.AddRow(int64(9), "", "No Key")
	remote.AddRow(int64(10), "rk", "Key")
	a.ChangeCursor(1, remote)

	// [H0, c0, H5, r0, r1]
	assert.Equal(t, "contacts://lookup/key-0/100", a.ContactURI(1))
	assert.Equal(t, "", a.ContactURI(2))
	assert.Equal(t, "", a.ContactURI(3))
	assert.Equal(t, "contacts://lookup/rk/10?directory=5", a.ContactURI(4))
}

func TestEntryAt(t *testing.T) {
	a := NewAdapter()
	a.SetDisplayPhotos(true)
	a.ChangeCursor(0, indexed([]string{"C"}, []int{2}))

	h := a.EntryAt(0)
	assert.Equal(t, EntryHeader, h.Kind)
	assert.Equal(t, directory.DefaultLabel, h.Label)
	assert.Equal(t, 2, h.ResultCount)
	assert.False(t, h.Loading)

	e := a.EntryAt(1)
	assert.Equal(t, EntryContact, e.Kind)
	assert.Equal(t, int64(100), e.ID)
	assert.Equal(t, "Contact 0", e.DisplayName)
	assert.Equal(t, "C", e.Placement.SectionHeader)
	require.NotNil(t, e.Photo)
	assert.Equal(t, "key-0", e.Photo.LookupKey)

	assert.Panics(t, func() { a.EntryAt(3) })
}

func TestContactDisplayNameAlternative(t *testing.T) {
	a := NewAdapter()
	rs := resultset.NewMatrix(ColumnID, ColumnDisplayName, ColumnDisplayNameAlt)
	rs.AddRow(int64(1), "Ada Lovelace", "Lovelace, Ada")
	a.ChangeCursor(0, rs)
	assert.Equal(t, "Ada Lovelace", a.ContactDisplayName(1))
	a.SetDisplayOrder(DisplayOrderAlternative)
	assert.Equal(t, "Lovelace, Ada", a.ContactDisplayName(1))
}
