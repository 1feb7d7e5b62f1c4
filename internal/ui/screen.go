package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-contacts/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreenWithTheme creates and initializes a terminal screen
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFromTcell(tcellScreen, t)
}

// NewScreenFromTcell wraps an existing tcell screen, initializing it
func NewScreenFromTcell(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}
	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the column
// after the last drawn rune. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, r, style)
		x += w
	}
	return x
}

// DrawStringLimited draws a string, truncating it to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine fills columns [x, width) of line y
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent queues an event for PollEvent
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync resizes to the terminal and redraws everything
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// Theme-aware style methods

// ListStyle returns the style for contact rows
func (s *Screen) ListStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListText, s.Theme.Colors.ListBackground)
}

// ListSelectedStyle returns the style for the selected row
func (s *Screen) ListSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListBackground, s.Theme.Colors.ListSelected).Bold(true)
}

// ListDetailStyle returns the style for the secondary text of a row
func (s *Screen) ListDetailStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListDetail, s.Theme.Colors.ListBackground)
}

// ListHighlightStyle returns the style for query matches in names
func (s *Screen) ListHighlightStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListHighlight, s.Theme.Colors.ListBackground).Bold(true)
}

func (s *Screen) ListStarredStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListStarred, s.Theme.Colors.ListBackground)
}

func (s *Screen) ListProfileStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListProfile, s.Theme.Colors.ListBackground).Italic(true)
}

func (s *Screen) ListLoadingStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListLoading, s.Theme.Colors.ListBackground).Dim(true)
}

// PartitionHeaderStyle returns the style for a directory header
func (s *Screen) PartitionHeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PartitionHeader, s.Theme.Colors.ListBackground).Bold(true)
}

func (s *Screen) PartitionHeaderCountStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PartitionHeaderCount, s.Theme.Colors.ListBackground)
}

// SectionHeaderStyle returns the style for the section letter column
func (s *Screen) SectionHeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SectionHeader, s.Theme.Colors.ListBackground).Bold(true)
}

// PinnedStyle returns the style of a pinned header with fg faded into the
// pinned background by alpha.
func (s *Screen) PinnedStyle(fg tcell.Color, alpha int) tcell.Style {
	bg := s.Theme.Colors.PinnedBackground
	return theme.ColorPairToStyle(theme.Fade(fg, bg, alpha), bg).Bold(true)
}

// SearchLabelStyle returns the style for search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchLabel)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText)
}

// SearchCursorStyle returns the style for search cursor
func (s *Screen) SearchCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchCursor).Reverse(true)
}

// SearchResultCountStyle returns the style for search result count
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchResultCount)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Reverse(true).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusError).Bold(true)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}

// TileStyle returns the style of a photo tile of the given colour
func (s *Screen) TileStyle(c tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(c).Bold(true)
}
