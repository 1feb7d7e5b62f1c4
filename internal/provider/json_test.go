package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
)

func TestGenerateSaveLoadImport(t *testing.T) {
	book := GenerateAddressBook(GenerateOptions{Contacts: 50, Directories: 2, DirectoryContacts: 10, Profile: true, Seed: 7})
	require.NotNil(t, book.Profile)
	assert.Len(t, book.Contacts, 52)
	assert.Len(t, book.Directories, 2)

	path := filepath.Join(t.TempDir(), "book", "contacts.json")
	require.NoError(t, SaveAddressBook(path, book))

	loaded, err := LoadAddressBook(path)
	require.NoError(t, err)
	assert.Equal(t, book, loaded)

	s := openStore(t)
	ctx := context.Background()
	stats, err := Import(ctx, s, loaded)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Contacts: 52, Directories: 2, Profile: true}, stats)

	n, err := s.ContactCount(ctx, directory.Default)
	require.NoError(t, err)
	assert.Equal(t, 52, n)

	records, err := s.Directories(ctx, directory.Predicate{})
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestGenerateIsReproducible(t *testing.T) {
	a := GenerateAddressBook(GenerateOptions{Contacts: 10, Seed: 3})
	b := GenerateAddressBook(GenerateOptions{Contacts: 10, Seed: 3})
	for i := range a.Contacts {
		assert.Equal(t, a.Contacts[i].DisplayName, b.Contacts[i].DisplayName)
	}
}

func TestLoadAddressBookValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"contacts":[{"lookup_key":"k1"}]}`), 0o644))

	_, err := LoadAddressBook(path)
	require.Error(t, err)
	assert.Equal(t, cerrors.CodeImportFailed, cerrors.GetCode(err))
}

func TestLoadAddressBookMissingFile(t *testing.T) {
	_, err := LoadAddressBook(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
