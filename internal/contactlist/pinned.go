package contactlist

// HeaderState is where a pinned header is drawn.
type HeaderState int

const (
	HeaderTop HeaderState = iota
	HeaderBottom
	HeaderFading
)

// MaxAlpha is the alpha of a fully opaque header.
const MaxAlpha = 255

// PinnedHeader is the geometry of one pinned header. Units are the list's
// own (terminal lines in the TUI).
type PinnedHeader struct {
	Visible bool
	Y       int
	Height  int
	Alpha   int
	State   HeaderState
	Title   string
}

// Viewport is the view of the list's current layout the geometry needs.
type Viewport interface {
	Height() int
	// RowAt returns the position of the row covering line y, or -1 when no
	// row covers it.
	RowAt(y int) int
	// RowBottom returns the line just below the row at position; ok is
	// false when the row is not laid out.
	RowBottom(position int) (bottom int, ok bool)
}

// PinnedHeaders holds the pinned header geometry of a list. It is
// recomputed on every scroll.
type PinnedHeaders struct {
	headers []PinnedHeader
}

// Resize sets the number of headers, keeping existing geometry.
func (h *PinnedHeaders) Resize(n int) {
	if n <= len(h.headers) {
		h.headers = h.headers[:n]
		return
	}
	for len(h.headers) < n {
		h.headers = append(h.headers, PinnedHeader{Height: 1, Alpha: MaxAlpha})
	}
}

func (h *PinnedHeaders) Len() int {
	return len(h.headers)
}

// Header returns a copy of header i.
func (h *PinnedHeaders) Header(i int) PinnedHeader {
	return h.headers[i]
}

// Headers returns the headers in index order.
func (h *PinnedHeaders) Headers() []PinnedHeader {
	return h.headers
}

// SetHeight sets the measured height of header i.
func (h *PinnedHeaders) SetHeight(i, height int) {
	h.headers[i].Height = height
}

func (h *PinnedHeaders) SetTitle(i int, title string) {
	h.headers[i].Title = title
}

func (h *PinnedHeaders) SetPinnedAtTop(i, y int) {
	hd := &h.headers[i]
	hd.Visible = true
	hd.Y = y
	hd.State = HeaderTop
	hd.Alpha = MaxAlpha
}

func (h *PinnedHeaders) SetPinnedAtBottom(i, y int) {
	hd := &h.headers[i]
	hd.Visible = true
	hd.Y = y
	hd.State = HeaderBottom
	hd.Alpha = MaxAlpha
}

func (h *PinnedHeaders) SetInvisible(i int) {
	h.headers[i].Visible = false
}

// SetFading places header i below the top-pinned headers. With fade set and
// the row at position about to scroll under the header, the header is pushed
// up and faded in proportion to the part of the row still below it.
func (h *PinnedHeaders) SetFading(i, position int, fade bool, vp Viewport) {
	rowBottom, ok := vp.RowBottom(position)
	if !ok {
		h.headers[i].Visible = false
		return
	}
	top := h.TotalTopPinnedHeaderHeight()
	hd := &h.headers[i]
	hd.Visible = true
	hd.State = HeaderFading
	hd.Alpha = MaxAlpha
	hd.Y = top
	if fade && hd.Height > 0 {
		bottom := rowBottom - top
		if bottom < hd.Height {
			portion := bottom - hd.Height
			hd.Alpha = MaxAlpha * (hd.Height + portion) / hd.Height
			hd.Y = top + portion
		}
	}
}

// TotalTopPinnedHeaderHeight returns the line below the last visible
// top-pinned header, or 0.
func (h *PinnedHeaders) TotalTopPinnedHeaderHeight() int {
	for i := len(h.headers) - 1; i >= 0; i-- {
		hd := h.headers[i]
		if hd.Visible && hd.State == HeaderTop {
			return hd.Y + hd.Height
		}
	}
	return 0
}

// PositionAt returns the row at line y, walking upward over lines that no
// row covers. It returns 0 when nothing is found.
func PositionAt(vp Viewport, y int) int {
	for {
		if position := vp.RowAt(y); position != -1 {
			return position
		}
		y--
		if y <= 0 {
			return 0
		}
	}
}

// SelectionWindow returns the band of lines between the top-pinned and the
// bottom-pinned headers in which a selected row is fully visible.
func (h *PinnedHeaders) SelectionWindow(viewHeight int) (top, bottom int) {
	bottom = viewHeight
	for _, hd := range h.headers {
		if !hd.Visible {
			continue
		}
		if hd.State == HeaderTop {
			top = hd.Y + hd.Height
		} else if hd.State == HeaderBottom {
			bottom = hd.Y
			break
		}
	}
	return top, bottom
}

// HeaderAt returns the index of the visible header covering line y, or -1.
// Later headers are drawn over earlier ones and win.
func (h *PinnedHeaders) HeaderAt(y int) int {
	for i := len(h.headers) - 1; i >= 0; i-- {
		hd := h.headers[i]
		if hd.Visible && y >= hd.Y && y < hd.Y+hd.Height {
			return i
		}
	}
	return -1
}
