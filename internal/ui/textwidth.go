package ui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Widths are display widths (screen columns), not byte lengths.

// RuneWidth returns the display width of a single rune. Control and
// combining characters are 0 columns, wide characters (emoji, CJK) 2.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth truncates a string to fit within maxWidth columns without
// splitting runes
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// TruncateToWidthWithEllipsis truncates a string with "..." if it exceeds maxWidth
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	if StringWidth(s) <= maxWidth {
		return s
	}
	return TruncateToWidth(s, maxWidth-3) + "..."
}

// PadStringToWidth pads a string with spaces to a display width. Wider
// strings are returned unchanged.
func PadStringToWidth(s string, width int) string {
	current := StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// WordBoundaryIndex returns the rune index of the next or previous word
// boundary from pos. Next skips the current word and the spaces after it;
// previous moves to the start of the word before pos.
func WordBoundaryIndex(runes []rune, pos int, next bool) int {
	if len(runes) == 0 {
		return 0
	}
	pos = max(0, min(pos, len(runes)))

	if next {
		for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
			pos++
		}
		for pos < len(runes) && unicode.IsSpace(runes[pos]) {
			pos++
		}
		return pos
	}
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// MatchSpans returns the rune ranges of text to highlight for query: the
// prefix of every word that starts with query, compared case-insensitively.
// Each span is [start, end) in runes.
func MatchSpans(text, query string) [][2]int {
	q := []rune(strings.ToUpper(query))
	if len(q) == 0 {
		return nil
	}
	t := []rune(strings.ToUpper(text))
	var spans [][2]int
	for i := 0; i+len(q) <= len(t); i++ {
		if i > 0 && isWordRune(t[i-1]) {
			continue
		}
		if string(t[i:i+len(q)]) == string(q) {
			spans = append(spans, [2]int{i, i + len(q)})
			i += len(q) - 1
		}
	}
	return spans
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
