package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-contacts/internal/logger"
)

// ThemeConfig represents the raw TOML theme configuration. Colors are
// keyed by the names returned from colorFields.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// colorFields maps TOML keys to the colors they override
func colorFields(c *Colors) map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"list_background":        &c.ListBackground,
		"list_text":              &c.ListText,
		"list_selected":          &c.ListSelected,
		"list_detail":            &c.ListDetail,
		"list_highlight":         &c.ListHighlight,
		"list_starred":           &c.ListStarred,
		"list_profile":           &c.ListProfile,
		"list_loading":           &c.ListLoading,
		"partition_header":       &c.PartitionHeader,
		"partition_header_count": &c.PartitionHeaderCount,
		"section_header":         &c.SectionHeader,
		"pinned_background":      &c.PinnedBackground,
		"search_label":           &c.SearchLabel,
		"search_text":            &c.SearchText,
		"search_cursor":          &c.SearchCursor,
		"search_result_count":    &c.SearchResultCount,
		"help_background":        &c.HelpBackground,
		"help_border":            &c.HelpBorder,
		"help_title":             &c.HelpTitle,
		"help_content":           &c.HelpContent,
		"status_mode":            &c.StatusMode,
		"status_message":         &c.StatusMessage,
		"status_error":           &c.StatusError,
		"header_title":           &c.HeaderTitle,
	}
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tui-contacts", "themes"),
			filepath.Join(home, ".local", "share", "tui-contacts", "themes"))
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	theme := TokyoNight()
	fields := colorFields(&theme.Colors)

	for key, value := range config.Colors {
		field, ok := fields[key]
		if !ok {
			logger.Warn("theme %s: unknown color %q", config.Name, key)
			continue
		}
		if value != "" {
			*field = ParseColorString(value)
		}
	}

	if config.Name != "" {
		theme.Name = config.Name
	}

	return theme
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "tokyo-night", "":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		logger.Warn("loading theme %s: %v", themeName, err)
		return TokyoNight()
	}

	return theme
}
