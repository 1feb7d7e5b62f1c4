package ui

import (
	"testing"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected int
	}{
		{"ASCII letter", 'A', 1},
		{"ASCII digit", '5', 1},
		{"Emoji", '😀', 2},
		{"Chinese character", '中', 2},
		{"Combining acute", '\u0301', 0},
		{"Tab", '\t', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuneWidth(tt.r)
			if got != tt.expected {
				t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"ASCII fits", "Hello", 10, "Hello"},
		{"ASCII truncated", "Hello", 3, "Hel"},
		{"Emoji not split", "Hi😀", 3, "Hi"},
		{"Chinese truncated", "中国", 2, "中"},
		{"Mixed truncated before CJK", "Hello中国", 6, "Hello"},
		{"MaxWidth 0", "Hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.input, tt.maxWidth)
			if got != tt.expected {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		expected string
	}{
		{"Hello", 10, "Hello"},
		{"Alexander Hamilton", 10, "Alexand..."},
		{"Hello", 3, "Hel"},
	}

	for _, tt := range tests {
		got := TruncateToWidthWithEllipsis(tt.input, tt.maxWidth)
		if got != tt.expected {
			t.Errorf("TruncateToWidthWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
		}
		if StringWidth(got) > tt.maxWidth {
			t.Errorf("result %q wider than %d", got, tt.maxWidth)
		}
	}
}

func TestPadStringToWidth(t *testing.T) {
	if got := PadStringToWidth("中", 4); got != "中  " {
		t.Errorf("PadStringToWidth = %q", got)
	}
	if got := PadStringToWidth("Hello", 3); got != "Hello" {
		t.Errorf("PadStringToWidth = %q", got)
	}
}

func TestWordBoundaryIndex(t *testing.T) {
	text := []rune("anna  de vries")
	tests := []struct {
		name     string
		pos      int
		next     bool
		expected int
	}{
		{"next from start", 0, true, 6},
		{"next from middle of word", 2, true, 6},
		{"next at end", 14, true, 14},
		{"prev from end", 14, false, 9},
		{"prev across spaces", 6, false, 0},
		{"prev at start", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WordBoundaryIndex(text, tt.pos, tt.next)
			if got != tt.expected {
				t.Errorf("WordBoundaryIndex(%d, %v) = %d, want %d", tt.pos, tt.next, got, tt.expected)
			}
		})
	}
}

func TestMatchSpans(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		query    string
		expected [][2]int
	}{
		{"prefix", "Anna Berg", "an", [][2]int{{0, 2}}},
		{"word prefix", "Berg, Anna", "AN", [][2]int{{6, 8}}},
		{"inside word is not highlighted", "Joanna", "an", nil},
		{"every word", "Ann Annabel", "ann", [][2]int{{0, 3}, {4, 7}}},
		{"empty query", "Anna", "", nil},
		{"wide runes", "中国 中", "中", [][2]int{{0, 1}, {3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchSpans(tt.text, tt.query)
			if len(got) != len(tt.expected) {
				t.Fatalf("MatchSpans(%q, %q) = %v, want %v", tt.text, tt.query, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("MatchSpans(%q, %q) = %v, want %v", tt.text, tt.query, got, tt.expected)
				}
			}
		})
	}
}
