package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Contact list colors
	ListBackground tcell.Color
	ListText       tcell.Color
	ListSelected   tcell.Color
	ListDetail     tcell.Color
	ListHighlight  tcell.Color
	ListStarred    tcell.Color
	ListProfile    tcell.Color
	ListLoading    tcell.Color

	// Directory and section headers
	PartitionHeader      tcell.Color
	PartitionHeaderCount tcell.Color
	SectionHeader        tcell.Color
	PinnedBackground     tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchCursor      tcell.Color
	SearchResultCount tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	d := tcell.ColorDefault
	return &Theme{
		Name: "default",
		Colors: Colors{
			ListBackground:       d,
			ListText:             d,
			ListSelected:         d,
			ListDetail:           d,
			ListHighlight:        d,
			ListStarred:          d,
			ListProfile:          d,
			ListLoading:          d,
			PartitionHeader:      d,
			PartitionHeaderCount: d,
			SectionHeader:        d,
			PinnedBackground:     d,
			SearchLabel:          d,
			SearchText:           d,
			SearchCursor:         d,
			SearchResultCount:    d,
			HelpBackground:       d,
			HelpBorder:           d,
			HelpTitle:            d,
			HelpContent:          d,
			StatusMode:           d,
			StatusMessage:        d,
			StatusError:          d,
			HeaderTitle:          d,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			ListBackground:       HexToColor("#1a1b26"), // Dark background
			ListText:             HexToColor("#c0caf5"), // Light gray-blue
			ListSelected:         HexToColor("#7aa2f7"), // Blue
			ListDetail:           HexToColor("#565f89"), // Comment gray
			ListHighlight:        HexToColor("#e0af68"), // Yellow
			ListStarred:          HexToColor("#e0af68"), // Yellow
			ListProfile:          HexToColor("#bb9af7"), // Magenta
			ListLoading:          HexToColor("#565f89"), // Comment gray
			PartitionHeader:      HexToColor("#7dcfff"), // Cyan
			PartitionHeaderCount: HexToColor("#9ece6a"), // Green
			SectionHeader:        HexToColor("#bb9af7"), // Magenta
			PinnedBackground:     HexToColor("#24283b"), // Slightly lighter background
			SearchLabel:          HexToColor("#bb9af7"), // Magenta
			SearchText:           HexToColor("#c0caf5"), // Light gray-blue
			SearchCursor:         HexToColor("#7aa2f7"), // Blue
			SearchResultCount:    HexToColor("#9ece6a"), // Green
			HelpBackground:       HexToColor("#1a1b26"), // Dark background
			HelpBorder:           HexToColor("#7dcfff"), // Cyan
			HelpTitle:            HexToColor("#bb9af7"), // Magenta
			HelpContent:          HexToColor("#c0caf5"), // Light gray-blue
			StatusMode:           HexToColor("#bb9af7"), // Magenta
			StatusMessage:        HexToColor("#9ece6a"), // Green
			StatusError:          HexToColor("#f7768e"), // Red
			HeaderTitle:          HexToColor("#bb9af7"), // Magenta
		},
	}
}
