package ui

import (
	"github.com/gdamore/tcell/v2"
)

// SearchBox edits the list query. Every edit reports the new query through
// the change callback so the list can reload incrementally.
type SearchBox struct {
	query     []rune
	cursorPos int
	active    bool
	status    string
	onChange  func(query string)
}

// NewSearchBox creates a search box that calls onChange after every edit
func NewSearchBox(onChange func(query string)) *SearchBox {
	return &SearchBox{onChange: onChange}
}

// Start activates the box, keeping the current query
func (s *SearchBox) Start() {
	s.active = true
	s.cursorPos = len(s.query)
}

// Stop deactivates the box, keeping the current query
func (s *SearchBox) Stop() {
	s.active = false
}

// IsActive returns whether the box has keyboard focus
func (s *SearchBox) IsActive() bool {
	return s.active
}

// Query returns the current query
func (s *SearchBox) Query() string {
	return string(s.query)
}

// SetQuery replaces the query and reports the change
func (s *SearchBox) SetQuery(q string) {
	s.query = []rune(q)
	s.cursorPos = len(s.query)
	s.changed()
}

// SetStatus sets the text shown at the right of the box
func (s *SearchBox) SetStatus(status string) {
	s.status = status
}

func (s *SearchBox) changed() {
	if s.onChange != nil {
		s.onChange(string(s.query))
	}
}

// HandleKey handles key presses while the box is active. It returns false
// when the key was not consumed.
func (s *SearchBox) HandleKey(ev *tcell.EventKey) bool {
	if !s.active {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		s.Stop()
		if len(s.query) > 0 {
			s.SetQuery("")
		}
	case tcell.KeyEnter:
		s.Stop()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.cursorPos > 0 {
			s.query = append(s.query[:s.cursorPos-1], s.query[s.cursorPos:]...)
			s.cursorPos--
			s.changed()
		}
	case tcell.KeyDelete:
		if s.cursorPos < len(s.query) {
			s.query = append(s.query[:s.cursorPos], s.query[s.cursorPos+1:]...)
			s.changed()
		}
	case tcell.KeyCtrlW:
		start := WordBoundaryIndex(s.query, s.cursorPos, false)
		if start < s.cursorPos {
			s.query = append(s.query[:start], s.query[s.cursorPos:]...)
			s.cursorPos = start
			s.changed()
		}
	case tcell.KeyCtrlU:
		if len(s.query) > 0 {
			s.SetQuery("")
		}
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			s.cursorPos = WordBoundaryIndex(s.query, s.cursorPos, false)
		} else if s.cursorPos > 0 {
			s.cursorPos--
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			s.cursorPos = WordBoundaryIndex(s.query, s.cursorPos, true)
		} else if s.cursorPos < len(s.query) {
			s.cursorPos++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		s.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		s.cursorPos = len(s.query)
	case tcell.KeyRune:
		ch := ev.Rune()
		s.query = append(s.query[:s.cursorPos], append([]rune{ch}, s.query[s.cursorPos:]...)...)
		s.cursorPos++
		s.changed()
	default:
		return false
	}
	return true
}

// Render renders the search bar on line y
func (s *SearchBox) Render(screen *Screen, y int) {
	labelStyle := screen.SearchLabelStyle()
	textStyle := screen.SearchTextStyle()
	cursorStyle := screen.SearchCursorStyle()
	statusStyle := screen.SearchResultCountStyle()
	width := screen.GetWidth()

	screen.FillLine(0, y, textStyle)
	x := screen.DrawString(0, y, "Search: ", labelStyle)

	statusText := ""
	if s.status != "" {
		statusText = " (" + s.status + ")"
	}
	maxWidth := width - x - StringWidth(statusText) - 1
	if maxWidth <= 0 {
		return
	}

	// Scroll so the cursor stays in view.
	start := 0
	for StringWidth(string(s.query[start:s.cursorPos])) >= maxWidth {
		start++
	}
	col := x
	for i := start; i < len(s.query); i++ {
		r := s.query[i]
		if col+RuneWidth(r) > x+maxWidth {
			break
		}
		style := textStyle
		if s.active && i == s.cursorPos {
			style = cursorStyle
		}
		screen.SetCell(col, y, r, style)
		col += RuneWidth(r)
	}
	if s.active && s.cursorPos == len(s.query) {
		screen.SetCell(col, y, ' ', cursorStyle)
	}

	if statusText != "" {
		screen.DrawString(width-StringWidth(statusText), y, statusText, statusStyle)
	}
}
