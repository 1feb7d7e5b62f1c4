// Package history keeps the command lines typed into the list and
// persists them between sessions.
package history

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-contacts/internal/logger"
)

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager storing its files in dir
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Manager{historyDir: dir}, nil
}

// Load loads history entries from a TOML file. A missing or corrupted
// file yields no entries.
func (m *Manager) Load(filename string) ([]string, error) {
	filePath := filepath.Join(m.historyDir, filename)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		logger.Warn("ignoring corrupted history %s: %v", filePath, err)
		return []string{}, nil
	}
	return histFile.Entries, nil
}

// Save saves history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.historyDir, filename), data, 0644)
}
