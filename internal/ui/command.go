package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-contacts/internal/history"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active    bool
	input     []rune
	cursorPos int
	history   *history.History
}

// NewCommandMode creates a new CommandMode
func NewCommandMode() *CommandMode {
	return &CommandMode{}
}

// SetHistory sets the history Up and Down walk through. Finished commands
// are added to it.
func (c *CommandMode) SetHistory(h *history.History) {
	c.history = h
}

// History returns the command history, or nil
func (c *CommandMode) History() *history.History {
	return c.history
}

func (c *CommandMode) setInput(s string) {
	c.input = []rune(s)
	c.cursorPos = len(c.input)
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input = c.input[:0]
	c.cursorPos = 0
	if c.history != nil {
		c.history.Reset()
	}
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press in command mode. done is set when the
// command line closed; command is empty when it was cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		c.Stop()
		command = strings.TrimSpace(string(c.input))
		if c.history != nil {
			c.history.Add(command)
		}
		return command, true
	case tcell.KeyUp:
		if c.history != nil {
			if entry, ok := c.history.Prev(); ok {
				c.setInput(entry)
			}
		}
	case tcell.KeyDown:
		if c.history != nil {
			if entry, ok := c.history.Next(); ok {
				c.setInput(entry)
			}
		}
	case tcell.KeyCtrlW:
		start := WordBoundaryIndex(c.input, c.cursorPos, false)
		c.input = append(c.input[:start], c.input[c.cursorPos:]...)
		c.cursorPos = start
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursorPos > 0 {
			c.input = append(c.input[:c.cursorPos-1], c.input[c.cursorPos:]...)
			c.cursorPos--
		} else if len(c.input) == 0 {
			// Backspace on an empty line leaves command mode
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursorPos < len(c.input) {
			c.input = append(c.input[:c.cursorPos], c.input[c.cursorPos+1:]...)
		}
	case tcell.KeyLeft:
		if c.cursorPos > 0 {
			c.cursorPos--
		}
	case tcell.KeyRight:
		if c.cursorPos < len(c.input) {
			c.cursorPos++
		}
	case tcell.KeyHome:
		c.cursorPos = 0
	case tcell.KeyEnd:
		c.cursorPos = len(c.input)
	case tcell.KeyCtrlU:
		c.input = append(c.input[:0], c.input[c.cursorPos:]...)
		c.cursorPos = 0
	case tcell.KeyRune:
		c.input = append(c.input[:c.cursorPos], append([]rune{ev.Rune()}, c.input[c.cursorPos:]...)...)
		c.cursorPos++
	}
	return "", false
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(string(c.input))
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}
	textStyle := screen.SearchTextStyle()
	cursorStyle := screen.SearchCursorStyle()

	screen.FillLine(0, y, textStyle)
	x := screen.DrawString(0, y, ":", screen.SearchLabelStyle())
	for i, r := range c.input {
		style := textStyle
		if i == c.cursorPos {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if c.cursorPos == len(c.input) {
		screen.SetCell(x, y, ' ', cursorStyle)
	}
}
