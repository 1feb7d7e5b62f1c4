package provider

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/model"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func insert(t *testing.T, s *Store, c *model.Contact) int64 {
	t.Helper()
	id, err := s.InsertContact(context.Background(), c)
	require.NoError(t, err)
	return id
}

// populate stores a small address book: four visible contacts, one
// hidden contact and a profile.
func populate(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	bob := model.NewContact("Bob", "Zeta")
	bob.Starred = true
	bob.AddPhone("+31 6 1111 2222", "mobile")
	bob.AddPhone("+31 20 333 4444", "work")
	bob.AddPhone(strings.Repeat("9", 1200), "garbage")
	insert(t, s, bob)

	alice := model.NewContact("alice", "Young")
	alice.AddPhone("+31 6 5555 6666", "mobile")
	insert(t, s, alice)

	insert(t, s, model.NewContact("Carol", "Xu"))
	insert(t, s, model.NewContact("1-800", "Flowers"))

	hidden := model.NewContact("Dan", "Hidden")
	hidden.Visible = false
	insert(t, s, hidden)

	_, err := s.SetProfile(ctx, model.NewContact("Me", "Myself"))
	require.NoError(t, err)
}

func names(rs resultset.ResultSet) []string {
	col := rs.ColumnIndex(contactlist.ColumnDisplayName)
	out := make([]string, rs.RowCount())
	for i := range out {
		out[i] = rs.String(i, col)
	}
	return out
}

func TestOpenCreatesLocalDirectories(t *testing.T) {
	s := openStore(t)
	records, err := s.Directories(context.Background(), directory.Predicate{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, directory.Default, records[0].ID)
	assert.Equal(t, directory.DefaultLabel, records[0].TypeLabel)
	assert.Equal(t, directory.LocalInvisible, records[1].ID)

	pred, err := directory.PredicateFor(directory.SearchModeDefault, false)
	require.NoError(t, err)
	records, err = s.Directories(context.Background(), pred)
	require.NoError(t, err)
	assert.Len(t, records, 1, "local invisible directory is excluded")
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")
	s, err := Open(path)
	require.NoError(t, err)
	insert(t, s, model.NewContact("Ada", "Lovelace"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.ContactCount(context.Background(), directory.Default)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDirectoryChangesNotifyObservers(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	id, err := s.AddDirectory(ctx, &model.Directory{
		PackageName: "org.example.ldap",
		TypeLabel:   "Corporate",
		DisplayName: "example.org",
		Contacts:    []*model.Contact{model.NewContact("Grace", "Hopper")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, 1, calls)

	contacts, err := s.DirectoryContacts(ctx, id)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Grace Hopper", contacts[0].DisplayName)

	require.NoError(t, s.RemoveDirectory(ctx, id))
	assert.Equal(t, 2, calls)
	contacts, err = s.DirectoryContacts(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	unsubscribe()
	_, err = s.AddDirectory(ctx, &model.Directory{PackageName: "org.example.other"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemoveDirectoryRejectsLocalAndUnknown(t *testing.T) {
	s := openStore(t)
	assert.Error(t, s.RemoveDirectory(context.Background(), directory.Default))

	err := s.RemoveDirectory(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, cerrors.CategoryDirectory, cerrors.GetCategory(err))
}

func TestQueryDefaultDirectoryWithIndexAndProfile(t *testing.T) {
	s := openStore(t)
	populate(t, s)

	rs, err := s.Query(context.Background(), contactlist.LoadRequest{
		DirectoryID:    directory.Default,
		IncludeProfile: true,
		IncludeIndex:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Me Myself", "1-800 Flowers", "alice Young", "Bob Zeta", "Carol Xu"}, names(rs))
	assert.Equal(t, 1, rs.Int(0, rs.ColumnIndex(contactlist.ColumnIsUserProfile)))
	assert.Equal(t, 0, rs.Int(1, rs.ColumnIndex(contactlist.ColumnIsUserProfile)))

	extras := rs.Extras()
	require.True(t, extras.HasIndex())
	assert.Equal(t, []string{"#", "A", "B", "C"}, extras.IndexTitles())
	assert.Equal(t, []int{1, 1, 1, 1}, extras.IndexCounts())
}

func TestQueryAlternativeSortOrder(t *testing.T) {
	s := openStore(t)
	populate(t, s)

	rs, err := s.Query(context.Background(), contactlist.LoadRequest{
		DirectoryID:  directory.Default,
		SortOrder:    contactlist.SortOrderAlternative,
		IncludeIndex: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1-800 Flowers", "Carol Xu", "alice Young", "Bob Zeta"}, names(rs))
	assert.Equal(t, []string{"F", "X", "Y", "Z"}, rs.Extras().IndexTitles())
}

func TestQueryLocalInvisibleDirectory(t *testing.T) {
	s := openStore(t)
	populate(t, s)

	rs, err := s.Query(context.Background(), contactlist.LoadRequest{DirectoryID: directory.LocalInvisible})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dan Hidden"}, names(rs))
	assert.False(t, rs.Extras().HasIndex())
}

func TestQuerySearch(t *testing.T) {
	s := openStore(t)
	populate(t, s)
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"car", []string{"Carol Xu"}},
		{"xu", []string{"Carol Xu"}},
		{"you", []string{"alice Young"}},
		{"o", []string{}},
		{"100%", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rs, err := s.Query(ctx, contactlist.LoadRequest{DirectoryID: directory.Default, SearchMode: true, Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(rs))
		})
	}
}

func TestQueryFilters(t *testing.T) {
	s := openStore(t)
	populate(t, s)
	ctx := context.Background()

	rs, err := s.Query(ctx, contactlist.LoadRequest{DirectoryID: directory.Default, Filter: contactlist.NewFilter(contactlist.FilterStarred)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob Zeta"}, names(rs))

	rs, err = s.Query(ctx, contactlist.LoadRequest{DirectoryID: directory.Default, Filter: contactlist.NewFilter(contactlist.FilterWithPhoneNumbersOnly)})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice Young", "Bob Zeta"}, names(rs))

	rs, err = s.Query(ctx, contactlist.LoadRequest{DirectoryID: directory.Default, Filter: contactlist.NewAccountFilter("local", "phone", "")})
	require.NoError(t, err)
	assert.Empty(t, names(rs))

	rs, err = s.Query(ctx, contactlist.LoadRequest{DirectoryID: directory.Default, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, rs.RowCount())
}

func TestQueryPhones(t *testing.T) {
	s := openStore(t)
	populate(t, s)

	rs, err := s.Query(context.Background(), contactlist.LoadRequest{DirectoryID: directory.Default, PhoneNumbers: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice Young", "Bob Zeta", "Bob Zeta"}, names(rs), "overlong numbers are skipped")
	assert.Equal(t, 2, contactlist.CountDistinctContacts(rs))

	number := rs.ColumnIndex(contactlist.ColumnNumber)
	assert.Equal(t, "+31 6 1111 2222", rs.String(1, number))

	rs, err = s.Query(context.Background(), contactlist.LoadRequest{
		DirectoryID: directory.Default, PhoneNumbers: true, SearchMode: true, Query: "5555",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice Young"}, names(rs))
}

func TestQueryRejectsRemoteDirectory(t *testing.T) {
	s := openStore(t)
	_, err := s.Query(context.Background(), contactlist.LoadRequest{DirectoryID: 5})
	require.Error(t, err)
	assert.Equal(t, cerrors.CodeUnknownDirectory, cerrors.GetCode(err))
}

func TestIndexTitle(t *testing.T) {
	assert.Equal(t, "A", IndexTitle("alice"))
	assert.Equal(t, "É", IndexTitle("émile"))
	assert.Equal(t, "#", IndexTitle("1-800"))
	assert.Equal(t, "#", IndexTitle(""))
	assert.Equal(t, "Z", IndexTitle("  zed"))
}

func TestFilteredSourceServesExtendedDirectory(t *testing.T) {
	s := openStore(t)
	populate(t, s)
	r := NewRouter(s)
	r.RegisterContentURI("content://favorites", FilteredSource(s, contactlist.NewFilter(contactlist.FilterStarred)))

	rs, err := r.Query(context.Background(), contactlist.LoadRequest{
		DirectoryID: 1 << 40, ContentURI: "content://favorites", PhoneNumbers: true, IncludeProfile: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob Zeta", "Bob Zeta"}, names(rs))
}
