package provider

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// Phone numbers longer than this are treated as garbage and skipped.
const maxPhoneNumberLength = 1000

var (
	contactColumns = []string{
		contactlist.ColumnID, contactlist.ColumnLookupKey, contactlist.ColumnDisplayName,
		contactlist.ColumnDisplayNameAlt, contactlist.ColumnPhotoID, contactlist.ColumnPhotoURI,
		contactlist.ColumnStarred, contactlist.ColumnIsUserProfile,
	}
	phoneColumns = []string{
		contactlist.ColumnID, contactlist.ColumnContactID, contactlist.ColumnLookupKey,
		contactlist.ColumnDisplayName, contactlist.ColumnDisplayNameAlt, contactlist.ColumnPhotoID,
		contactlist.ColumnPhotoURI, contactlist.ColumnStarred, contactlist.ColumnIsUserProfile,
		contactlist.ColumnNumber, contactlist.ColumnNumberLabel,
	}
)

// Query answers a content query for one of the local directories.
func (s *Store) Query(ctx context.Context, req contactlist.LoadRequest) (resultset.ResultSet, error) {
	if directory.IsRemote(req.DirectoryID) {
		return nil, cerrors.New(cerrors.CategoryDirectory, cerrors.CodeUnknownDirectory,
			fmt.Sprintf("directory %d is not stored locally", req.DirectoryID))
	}
	var (
		m   *resultset.Matrix
		err error
	)
	if req.PhoneNumbers {
		m, err = s.queryPhones(ctx, req)
	} else {
		m, err = s.queryContacts(ctx, req)
	}
	if err != nil {
		return nil, cerrors.NewLoadError(fmt.Sprintf("query directory %d", req.DirectoryID), err)
	}
	return m, nil
}

type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func baseWhere(req contactlist.LoadRequest) *where {
	w := &where{}
	w.add("c.directory_id = 0")
	w.add("c.is_profile = 0")
	if req.DirectoryID == directory.LocalInvisible {
		w.add("c.visible = 0")
	} else {
		w.add("c.visible = 1")
	}
	if req.Filter != nil {
		addFilter(w, req.Filter)
	}
	return w
}

func addFilter(w *where, f *contactlist.Filter) {
	switch f.Type {
	case contactlist.FilterAccount:
		w.add("c.account_type = ? AND c.account_name = ? AND c.data_set = ?", f.AccountType, f.AccountName, f.DataSet)
	case contactlist.FilterStarred:
		w.add("c.starred = 1")
	case contactlist.FilterWithPhoneNumbersOnly:
		w.add("EXISTS (SELECT 1 FROM phones p2 WHERE p2.contact_id = c.id)")
	case contactlist.FilterSingleContact:
		w.add("c.id = ?", f.ContactID)
	}
}

func addNameMatch(w *where, query string, phones bool) {
	q := escapeLike(strings.TrimSpace(query))
	if q == "" {
		return
	}
	clause := `(c.display_name LIKE ? ESCAPE '\' OR c.display_name LIKE ? ESCAPE '\' OR c.display_name_alt LIKE ? ESCAPE '\'`
	args := []any{q + "%", "% " + q + "%", q + "%"}
	if phones {
		clause += ` OR p.number LIKE ? ESCAPE '\'`
		args = append(args, "%"+q+"%")
	}
	w.add(clause+")", args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func orderBy(order contactlist.SortOrder) string {
	if order == contactlist.SortOrderAlternative {
		return " ORDER BY c.sort_key_alt COLLATE NOCASE, c.id"
	}
	return " ORDER BY c.sort_key COLLATE NOCASE, c.id"
}

func limit(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", n)
}

const contactSelect = `SELECT c.id, c.lookup_key, c.display_name, c.display_name_alt, c.photo_id, c.photo_uri, c.starred, c.is_profile
	FROM contacts c`

func (s *Store) queryContacts(ctx context.Context, req contactlist.LoadRequest) (*resultset.Matrix, error) {
	m := resultset.NewMatrix(contactColumns...)

	if req.IncludeProfile {
		rows, err := s.db.QueryContext(ctx, contactSelect+" WHERE c.is_profile = 1 LIMIT 1")
		if err != nil {
			return nil, err
		}
		if err := scanContacts(rows, m); err != nil {
			return nil, err
		}
	}
	profileRows := m.RowCount()

	w := baseWhere(req)
	if req.SearchMode {
		addNameMatch(w, req.Query, false)
	}
	rows, err := s.db.QueryContext(ctx, contactSelect+w.String()+orderBy(req.SortOrder)+limit(req.Limit), w.args...)
	if err != nil {
		return nil, err
	}
	if err := scanContacts(rows, m); err != nil {
		return nil, err
	}

	if req.IncludeIndex {
		col := m.ColumnIndex(contactlist.ColumnDisplayName)
		if req.SortOrder == contactlist.SortOrderAlternative {
			col = m.ColumnIndex(contactlist.ColumnDisplayNameAlt)
		}
		titles, counts := buildIndex(m, profileRows, col)
		m.SetIndex(titles, counts)
	}
	return m, nil
}

func scanContacts(rows *sql.Rows, m *resultset.Matrix) error {
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			id, photoID        int64
			lookup, name, alt  string
			photoURI           string
			starred, isProfile int
		)
		if err := rows.Scan(&id, &lookup, &name, &alt, &photoID, &photoURI, &starred, &isProfile); err != nil {
			return err
		}
		m.AddRow(id, lookup, name, alt, photoID, photoURI, starred, isProfile)
	}
	return rows.Err()
}

func (s *Store) queryPhones(ctx context.Context, req contactlist.LoadRequest) (*resultset.Matrix, error) {
	m := resultset.NewMatrix(phoneColumns...)
	w := baseWhere(req)
	w.add("length(p.number) < ?", maxPhoneNumberLength)
	if req.SearchMode {
		addNameMatch(w, req.Query, true)
	}
	query := `SELECT DISTINCT p.id, c.id, c.lookup_key, c.display_name, c.display_name_alt, c.photo_id, c.photo_uri, c.starred, p.number, p.label
		FROM phones p JOIN contacts c ON c.id = p.contact_id` +
		w.String() + orderBy(req.SortOrder) + ", p.id" + limit(req.Limit)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			id, contactID, photoID int64
			lookup, name, alt, uri string
			starred                int
			number, label          string
		)
		if err := rows.Scan(&id, &contactID, &lookup, &name, &alt, &photoID, &uri, &starred, &number, &label); err != nil {
			return nil, err
		}
		m.AddRow(id, contactID, lookup, name, alt, photoID, uri, starred, 0, number, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if req.IncludeIndex {
		titles, counts := buildIndex(m, 0, m.ColumnIndex(contactlist.ColumnDisplayName))
		m.SetIndex(titles, counts)
	}
	return m, nil
}

// buildIndex groups consecutive rows from skip on by the title of their
// name column.
func buildIndex(rs resultset.ResultSet, skip, col int) ([]string, []int) {
	titles := []string{}
	counts := []int{}
	for row := skip; row < rs.RowCount(); row++ {
		title := IndexTitle(rs.String(row, col))
		if n := len(titles); n > 0 && titles[n-1] == title {
			counts[n-1]++
			continue
		}
		titles = append(titles, title)
		counts = append(counts, 1)
	}
	return titles, counts
}

// IndexTitle returns the section label of a name: its upper-cased first
// letter, or "#" when it does not start with a letter.
func IndexTitle(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "#"
	}
	return string(unicode.ToUpper(r))
}

func sortKey(name string) string {
	return strings.TrimSpace(name)
}
