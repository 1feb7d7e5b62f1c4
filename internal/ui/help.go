package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() rune
	GetDescription() string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the help text, one entry per line
func (h *HelpScreen) Lines() []string {
	result := []string{"Keybindings:", ""}
	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %c  - %s", kb.GetKey(), kb.GetDescription()))
	}
	return append(result,
		"",
		"Special Keys:",
		"  Arrow Keys  - Move selection",
		"  PgUp/PgDn   - Move selection a page",
		"  Enter       - Leave the search box",
		"  Escape      - Clear the search",
		"  Ctrl+W      - Delete word in search",
		"  Mouse click - Jump to a pinned directory",
	)
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	for y := 0; y < screen.GetHeight(); y++ {
		screen.FillLine(0, y, contentStyle)
	}

	startY := 1
	startX := 2
	boxWidth := screen.GetWidth() - 4
	height := screen.GetHeight() - 2
	if boxWidth < 10 || height < 5 {
		return
	}

	drawRule := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for i := 1; i < boxWidth-1; i++ {
			screen.SetCell(startX+i, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}

	drawRule(startY, '┌', '┐')
	screen.SetCell(startX, startY+1, '│', borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, " Keybindings (? to close) ", boxWidth-4, titleStyle)
	screen.SetCell(startX+boxWidth-1, startY+1, '│', borderStyle)
	drawRule(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.Lines() {
		if y >= startY+height-1 {
			break
		}
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
		y++
	}
	drawRule(y, '└', '┘')
}
