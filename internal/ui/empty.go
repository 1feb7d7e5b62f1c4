package ui

// EmptyNotice is drawn over the list area when the list has nothing to
// show and no directory is still loading.
type EmptyNotice struct {
	searching bool
	query     string
}

// NewEmptyNotice creates a hidden-by-default notice
func NewEmptyNotice() *EmptyNotice {
	return &EmptyNotice{}
}

// SetSearch switches between the empty address book and the no-match text
func (n *EmptyNotice) SetSearch(searching bool, query string) {
	n.searching = searching
	n.query = query
}

// GetContent returns the lines of the notice
func (n *EmptyNotice) GetContent() []string {
	if n.searching {
		return []string{
			"No contacts match " + `"` + n.query + `"`,
			"",
			"Escape clears the search",
		}
	}
	return []string{
		"~~ tui-contacts ~~",
		"",
		"The address book is empty.",
		"",
		"tui-contacts seed            - generate sample contacts",
		"tui-contacts seed --from F   - import an address book",
		"",
		"Press q to quit",
	}
}

// Render centers the notice in the list area
func (n *EmptyNotice) Render(screen *Screen, startY, height int) {
	textStyle := screen.HeaderStyle()
	dimStyle := screen.StatusMessageStyle()
	width := screen.GetWidth()

	content := n.GetContent()
	maxWidth := 0
	for _, line := range content {
		maxWidth = max(maxWidth, StringWidth(line))
	}
	y := startY + max((height-len(content))/2, 0)
	x := max((width-maxWidth)/2, 0)

	for i, line := range content {
		if y+i >= startY+height {
			break
		}
		style := textStyle
		if i > 0 {
			style = dimStyle
		}
		screen.DrawStringLimited(x, y+i, line, width-x, style)
	}
}
