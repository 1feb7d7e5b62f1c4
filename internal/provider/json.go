package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/model"
)

// LoadAddressBook reads and validates an address book from a JSON file
func LoadAddressBook(path string) (*model.AddressBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var book model.AddressBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := validator.New().Struct(&book); err != nil {
		return nil, cerrors.Wrap(cerrors.CategoryStorage, cerrors.CodeImportFailed, "invalid address book", err)
	}
	return &book, nil
}

// SaveAddressBook writes an address book to a JSON file
func SaveAddressBook(path string, book *model.AddressBook) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ImportStats counts what Import wrote
type ImportStats struct {
	Contacts    int
	Directories int
	Profile     bool
}

// Import writes an address book into the store
func Import(ctx context.Context, s *Store, book *model.AddressBook) (ImportStats, error) {
	var stats ImportStats
	if book.Profile != nil {
		if _, err := s.SetProfile(ctx, book.Profile); err != nil {
			return stats, err
		}
		stats.Profile = true
	}
	for _, c := range book.Contacts {
		if _, err := s.InsertContact(ctx, c); err != nil {
			return stats, cerrors.Wrap(cerrors.CategoryStorage, cerrors.CodeImportFailed, "import contact", err)
		}
		stats.Contacts++
	}
	for _, d := range book.Directories {
		if _, err := s.AddDirectory(ctx, d); err != nil {
			return stats, cerrors.Wrap(cerrors.CategoryStorage, cerrors.CodeImportFailed, "import directory", err)
		}
		stats.Directories++
	}
	logger.Info("imported %d contacts and %d directories", stats.Contacts, stats.Directories)
	return stats, nil
}
