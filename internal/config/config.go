package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/directory"
	cerrors "github.com/pstuifzand/tui-contacts/internal/errors"
)

const appName = "tui-contacts"

// Config holds application configuration
type Config struct {
	Theme    string            `toml:"theme" validate:"required"`
	Log      LogConfig         `toml:"log"`
	Database DatabaseConfig    `toml:"database"`
	List     ListConfig        `toml:"list"`
	Settings map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `toml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	File  string `toml:"file"`
}

// DatabaseConfig locates the contact store
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ListConfig holds the contact list preferences
type ListConfig struct {
	DisplayOrder          string  `toml:"display_order" validate:"oneof=primary alternative"`
	SortOrder             string  `toml:"sort_order" validate:"oneof=primary alternative"`
	DirectorySearchMode   string  `toml:"directory_search_mode" validate:"oneof=none default contact_shortcut data_shortcut"`
	DirectoryResultLimit  int     `toml:"directory_result_limit" validate:"gt=0"`
	DirectorySearchDelay  int     `toml:"directory_search_delay_ms" validate:"gte=0"`
	RemoteQueriesPerSec   float64 `toml:"remote_queries_per_second" validate:"gt=0"`
	Workers               int     `toml:"workers" validate:"gte=1,lte=64"`
	IncludeProfile        bool    `toml:"include_profile"`
	SectionHeaders        bool    `toml:"section_headers"`
	DisplayPhotos         bool    `toml:"display_photos"`
	LocalInvisible        bool    `toml:"local_invisible_directory"`
	PinnedPartitionHeader bool    `toml:"pinned_partition_headers"`
	PhoneNumbers          bool    `toml:"phone_numbers"`
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. Keys missing from the
// file keep their defaults.
func LoadFromFile(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, cerrors.NewConfigError("failed to parse config file", err)
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme: "tokyo-night",
		Log: LogConfig{
			Level: "INFO",
			File:  "contacts.log",
		},
		List: ListConfig{
			DisplayOrder:          "primary",
			SortOrder:             "primary",
			DirectorySearchMode:   "default",
			DirectoryResultLimit:  contactlist.DefaultDirectoryResultLimit,
			DirectorySearchDelay:  300,
			RemoteQueriesPerSec:   5,
			Workers:               4,
			IncludeProfile:        true,
			SectionHeaders:        true,
			DisplayPhotos:         true,
			PinnedPartitionHeader: true,
		},
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, ".config", appName)
	return configDir, nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// GetDataDir returns the directory holding the database and the history
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// DatabasePath returns the configured database path, defaulting to the
// user's data directory
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "contacts.db"), nil
}

// DirectorySearchMode returns the parsed directory search mode
func (c *Config) DirectorySearchMode() directory.SearchMode {
	mode, err := directory.ParseSearchMode(c.List.DirectorySearchMode)
	if err != nil {
		return directory.SearchModeDefault
	}
	return mode
}

func (c *Config) DisplayOrder() contactlist.DisplayOrder {
	if c.List.DisplayOrder == "alternative" {
		return contactlist.DisplayOrderAlternative
	}
	return contactlist.DisplayOrderPrimary
}

func (c *Config) SortOrder() contactlist.SortOrder {
	if c.List.SortOrder == "alternative" {
		return contactlist.SortOrderAlternative
	}
	return contactlist.SortOrderPrimary
}

func (c *Config) DirectorySearchDelay() time.Duration {
	return time.Duration(c.List.DirectorySearchDelay) * time.Millisecond
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// Save persists the configuration to the TOML file
// Note: session settings are not persisted
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return c.SaveToFile(configPath)
}

// SaveToFile writes the configuration to filePath
func (c *Config) SaveToFile(filePath string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
