package contactlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-contacts/internal/directory"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

func newPhoneAdapter() *PhoneAdapter {
	a := NewPhoneAdapter()
	a.SetDirectorySearchMode(directory.SearchModeDefault)
	a.SetExtendedDirectories([]ExtendedDirectory{
		{Label: "Nearby places", ContentURI: "memory://places"},
		{Label: "Caller ID", ContentURI: "memory://callerid", ResultLimit: 5},
	})
	return a
}

func TestExtendedDirectoryInjection(t *testing.T) {
	a := newPhoneAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 1, 7)))

	assert.Equal(t, []int64{0, 1, 8, 9, 7}, directoryIDs(a.Adapter))
	assert.Equal(t, "memory://places", a.Partition(2).Dir.ContentURI)
	assert.Equal(t, "memory://callerid", a.Partition(3).Dir.ContentURI)
	assert.True(t, a.IsExtendedDirectory(8))
	assert.True(t, a.IsExtendedDirectory(9))
	assert.False(t, a.IsExtendedDirectory(7))
}

func TestExtendedDirectoriesAreNotReadded(t *testing.T) {
	a := newPhoneAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 1, 7)))
	rs := contacts(1)
	a.ChangeCursor(2, rs)

	require.NoError(t, a.ChangeDirectories(entries(0, 1, 7)))
	assert.Equal(t, []int64{0, 1, 8, 9, 7}, directoryIDs(a.Adapter))
	assert.Same(t, rs, a.ResultSet(2))
}

func TestExtendedDirectoriesMoveAboveNewIDs(t *testing.T) {
	a := newPhoneAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0, 1, 7)))
	places := a.Partition(2)

	require.NoError(t, a.ChangeDirectories(entries(0, 1, 7, 12)))
	assert.Equal(t, []int64{0, 1, 13, 14, 7, 12}, directoryIDs(a.Adapter))
	assert.Same(t, places, a.Partition(2))
	assert.False(t, a.IsExtendedDirectory(12))
}

func TestExtendedDirectoriesAfterLocalOnly(t *testing.T) {
	a := newPhoneAdapter()
	require.NoError(t, a.ChangeDirectories(entries(0)))
	assert.Equal(t, []int64{0, 2, 3}, directoryIDs(a.Adapter))
}

func TestNoExtendedDirectoriesWithoutSearch(t *testing.T) {
	a := newPhoneAdapter()
	a.SetDirectorySearchMode(directory.SearchModeNone)
	require.NoError(t, a.ChangeDirectories(entries(0, 1)))
	assert.Equal(t, []int64{0, 1}, directoryIDs(a.Adapter))
	assert.False(t, a.IsExtendedDirectory(2))
}

func TestPhoneLoadRequest(t *testing.T) {
	a := newPhoneAdapter()
	a.SetFilter(NewFilter(FilterWithPhoneNumbersOnly))
	require.NoError(t, a.ChangeDirectories(entries(0, 1, 7)))

	req := a.LoadRequest(directory.Default)
	assert.True(t, req.PhoneNumbers)
	assert.Equal(t, "", req.ContentURI)
	assert.NotNil(t, req.Filter)

	req = a.LoadRequest(9)
	assert.True(t, req.PhoneNumbers)
	assert.Equal(t, "memory://callerid", req.ContentURI)
	assert.Equal(t, 5, req.Limit)
	assert.Nil(t, req.Filter)

	req = a.LoadRequest(8)
	assert.Equal(t, DefaultDirectoryResultLimit, req.Limit)
}

func phoneRows(contactIDs ...int64) *resultset.Matrix {
	m := resultset.NewMatrix(ColumnID, ColumnContactID, ColumnDisplayName, ColumnNumber, ColumnNumberLabel)
	for i, id := range contactIDs {
		m.AddRow(int64(i+1), id, "Name", "+3120555000", "Mobile")
	}
	return m
}

func TestCountDistinctContacts(t *testing.T) {
	assert.Equal(t, 0, CountDistinctContacts(nil))
	assert.Equal(t, 3, CountDistinctContacts(phoneRows(1, 1, 2, 3, 3)))
	assert.Equal(t, 2, CountDistinctContacts(contacts(2)))

	a := NewPhoneAdapter()
	a.ChangeCursor(0, phoneRows(4, 4, 5))
	assert.Equal(t, 2, a.ResultCount(0))
	assert.Equal(t, 2, a.EntryAt(0).ResultCount)
}

func TestPhoneEntryDetail(t *testing.T) {
	a := NewPhoneAdapter()
	a.ChangeCursor(0, phoneRows(4))
	e := a.EntryAt(1)
	assert.Equal(t, "Mobile +3120555000", e.Detail)
	number, label := a.PhoneNumber(1)
	assert.Equal(t, "+3120555000", number)
	assert.Equal(t, "Mobile", label)
}
