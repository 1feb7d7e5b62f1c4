package history

// History is a bounded list of entries, oldest first, with a cursor for
// walking back through them.
type History struct {
	entries []string
	max     int
	pos     int
}

// New creates a history holding at most max entries
func New(entries []string, max int) *History {
	h := &History{max: max}
	for _, e := range entries {
		h.Add(e)
	}
	return h
}

// Add appends entry unless it is empty or repeats the newest entry, and
// resets the cursor.
func (h *History) Add(entry string) {
	if entry != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != entry) {
		h.entries = append(h.entries, entry)
		if h.max > 0 && len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.Reset()
}

// Reset moves the cursor past the newest entry
func (h *History) Reset() {
	h.pos = len(h.entries)
}

// Prev steps back to an older entry
func (h *History) Prev() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next steps forward. Stepping past the newest entry returns "" and true
// so the caller can restore an empty line.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return "", true
	}
	return h.entries[h.pos], true
}

// Entries returns the entries, oldest first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
