// Package provider stores contacts and directories in SQLite and serves
// the content queries of the contact list.
package provider

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	// sqlite driver registration
	_ "modernc.org/sqlite"

	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Store is the SQLite contact store. It is the directory registry of the
// application and answers queries for the local directories.
type Store struct {
	db   *sql.DB
	path string

	mu           sync.Mutex
	observers    map[int]func()
	nextObserver int
}

// Open opens (and creates, when needed) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, cerrors.NewStorageError(cerrors.CodeOpenFailed, "create data dir", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, cerrors.NewStorageError(cerrors.CodeOpenFailed, "open database", err)
	}
	// One connection: SQLite has a single writer and the pragma below is
	// per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, cerrors.NewStorageError(cerrors.CodeOpenFailed, "enable foreign keys", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, cerrors.NewStorageError(cerrors.CodeMigration, "apply schema", err)
	}
	logger.Debug("opened contact store %s", path)
	return &Store{
		db:        db,
		path:      path,
		observers: make(map[int]func()),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

// Directories returns the registered directories matching p, ordered by id.
func (s *Store) Directories(ctx context.Context, p directory.Predicate) ([]directory.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, package_name, type_label, display_name, photo_support, shortcut_support
		FROM directories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query directories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []directory.Record
	for rows.Next() {
		var r directory.Record
		var photo, shortcut int
		if err := rows.Scan(&r.ID, &r.PackageName, &r.TypeLabel, &r.DisplayName, &photo, &shortcut); err != nil {
			return nil, fmt.Errorf("scan directory: %w", err)
		}
		r.PhotoSupport = directory.PhotoSupport(photo)
		r.ShortcutSupport = directory.ShortcutSupport(shortcut)
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out, rows.Err()
}

// Subscribe registers fn to be called after the directory set changed.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notifyDirectoriesChanged() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// AddDirectory registers a remote directory together with its contacts
// and returns its id.
func (s *Store) AddDirectory(ctx context.Context, d *model.Directory) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO directories (id, package_name, type_label, display_name, photo_support, shortcut_support)
		VALUES ((SELECT MAX(id) + 1 FROM directories), ?, ?, ?, ?, ?)`,
		d.PackageName, d.TypeLabel, d.DisplayName, d.PhotoSupport, d.ShortcutSupport)
	if err != nil {
		return 0, cerrors.NewStorageError(cerrors.CodeWriteFailed, "insert directory", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, c := range d.Contacts {
		if _, err := insertContactTx(ctx, tx, id, c, false); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, cerrors.NewStorageError(cerrors.CodeWriteFailed, "commit directory", err)
	}
	logger.Info("registered directory %d (%s, %d contacts)", id, d.DisplayName, len(d.Contacts))
	s.notifyDirectoriesChanged()
	return id, nil
}

// RemoveDirectory unregisters a remote directory and drops its contacts.
func (s *Store) RemoveDirectory(ctx context.Context, id int64) error {
	if !directory.IsRemote(id) {
		return fmt.Errorf("directory %d is local and cannot be removed", id)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contacts WHERE directory_id = ?", id); err != nil {
		return cerrors.NewStorageError(cerrors.CodeWriteFailed, "delete directory contacts", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM directories WHERE id = ?", id)
	if err != nil {
		return cerrors.NewStorageError(cerrors.CodeWriteFailed, "delete directory", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return cerrors.New(cerrors.CategoryDirectory, cerrors.CodeUnknownDirectory, fmt.Sprintf("no directory %d", id))
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifyDirectoriesChanged()
	return nil
}

// InsertContact adds a contact to the local address book.
func (s *Store) InsertContact(ctx context.Context, c *model.Contact) (int64, error) {
	return s.insertContact(ctx, c, false)
}

// SetProfile replaces the user's own profile contact.
func (s *Store) SetProfile(ctx context.Context, c *model.Contact) (int64, error) {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE is_profile = 1"); err != nil {
		return 0, cerrors.NewStorageError(cerrors.CodeWriteFailed, "delete profile", err)
	}
	return s.insertContact(ctx, c, true)
}

func (s *Store) insertContact(ctx context.Context, c *model.Contact, profile bool) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()
	id, err := insertContactTx(ctx, tx, directory.Default, c, profile)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, cerrors.NewStorageError(cerrors.CodeWriteFailed, "commit contact", err)
	}
	return id, nil
}

func insertContactTx(ctx context.Context, tx *sql.Tx, directoryID int64, c *model.Contact, profile bool) (int64, error) {
	alt := c.AlternativeName()
	var photoID int64
	if c.PhotoURI != "" {
		photoID = -1
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO contacts
		(directory_id, lookup_key, display_name, display_name_alt, sort_key, sort_key_alt,
		 starred, visible, is_profile, account_type, account_name, data_set, photo_id, photo_uri)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		directoryID, c.LookupKey, c.DisplayName, alt, sortKey(c.DisplayName), sortKey(alt),
		boolInt(c.Starred), boolInt(c.Visible), boolInt(profile),
		c.AccountType, c.AccountName, c.DataSet, photoID, c.PhotoURI)
	if err != nil {
		return 0, cerrors.NewStorageError(cerrors.CodeWriteFailed, fmt.Sprintf("insert contact %q", c.DisplayName), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if photoID == -1 {
		if _, err := tx.ExecContext(ctx, "UPDATE contacts SET photo_id = id WHERE id = ?", id); err != nil {
			return 0, err
		}
	}
	for _, p := range c.Phones {
		if _, err := tx.ExecContext(ctx, "INSERT INTO phones (contact_id, number, label) VALUES (?, ?, ?)",
			id, p.Number, p.Label); err != nil {
			return 0, cerrors.NewStorageError(cerrors.CodeWriteFailed, "insert phone", err)
		}
	}
	return id, nil
}

// DirectoryContacts returns the contacts stored for a remote directory.
func (s *Store) DirectoryContacts(ctx context.Context, id int64) ([]*model.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT c.id, c.lookup_key, c.display_name, c.display_name_alt, c.starred, c.photo_uri,
			COALESCE(p.number, ''), COALESCE(p.label, '')
		FROM contacts c LEFT JOIN phones p ON p.contact_id = c.id
		WHERE c.directory_id = ?
		ORDER BY c.sort_key COLLATE NOCASE, c.id, p.id`, id)
	if err != nil {
		return nil, fmt.Errorf("query directory %d: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Contact
	lastID := int64(-1)
	for rows.Next() {
		var contactID int64
		var starred int
		var number, label string
		c := &model.Contact{Visible: true}
		if err := rows.Scan(&contactID, &c.LookupKey, &c.DisplayName, &c.DisplayNameAlt, &starred, &c.PhotoURI, &number, &label); err != nil {
			return nil, err
		}
		if contactID != lastID {
			c.Starred = starred == 1
			out = append(out, c)
			lastID = contactID
		}
		if number != "" {
			cur := out[len(out)-1]
			cur.AddPhone(number, label)
		}
	}
	return out, rows.Err()
}

// ContactCount returns the number of contacts stored for a directory.
func (s *Store) ContactCount(ctx context.Context, directoryID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts WHERE directory_id = ? AND is_profile = 0", directoryID).Scan(&n)
	return n, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
