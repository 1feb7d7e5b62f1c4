package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
	"github.com/pstuifzand/tui-contacts/internal/photo"
	"github.com/pstuifzand/tui-contacts/internal/theme"
)

// PhotoSource hands out contact tiles, loading missing ones in the
// background.
type PhotoSource interface {
	LoadThumbnail(scope string, r photo.Request, done func(photo.Tile)) (photo.Tile, bool)
}

const (
	sectionColumnWidth = 3
	tileWidth          = 3
)

// ListView renders a contact list one line per row with pinned directory
// and section headers drawn over the rows. It is the list's Viewport.
type ListView struct {
	view     contactlist.View
	photos   PhotoSource
	scope    string
	top      int
	selected int
	height   int
	follow   bool
	headers  contactlist.PinnedHeaders

	// OnPhotoLoaded is called on the UI goroutine when a tile arrives.
	OnPhotoLoaded func()
}

var _ contactlist.Viewport = (*ListView)(nil)

// NewListView creates a view over v. Nothing is selected until the list
// has rows.
func NewListView(v contactlist.View) *ListView {
	return &ListView{view: v, selected: -1, follow: true}
}

// SetPhotoSource sets where contact tiles come from. Without a source tiles
// are rendered synchronously.
func (lv *ListView) SetPhotoSource(p PhotoSource, scope string) {
	lv.photos = p
	lv.scope = scope
}

// Height returns the number of lines of the list area.
func (lv *ListView) Height() int {
	return lv.height
}

// RowAt returns the position drawn on line y, or -1.
func (lv *ListView) RowAt(y int) int {
	if y < 0 || y >= lv.height {
		return -1
	}
	position := lv.top + y
	if position >= lv.view.Count() {
		return -1
	}
	return position
}

// RowBottom returns the line below the row at position while it is on
// screen.
func (lv *ListView) RowBottom(position int) (int, bool) {
	if position < lv.top || position >= lv.top+lv.height || position >= lv.view.Count() {
		return 0, false
	}
	return position - lv.top + 1, true
}

// Top returns the first position on screen.
func (lv *ListView) Top() int {
	return lv.top
}

// Selected returns the selected position, or -1.
func (lv *ListView) Selected() int {
	return lv.selected
}

// SelectedEntry returns the selected row.
func (lv *ListView) SelectedEntry() (contactlist.Entry, bool) {
	if lv.selected < 0 || lv.selected >= lv.view.Count() {
		return contactlist.Entry{}, false
	}
	return lv.view.EntryAt(lv.selected), true
}

// PinnedHeaders returns the header geometry of the last layout.
func (lv *ListView) PinnedHeaders() *contactlist.PinnedHeaders {
	return &lv.headers
}

// nextEnabled returns the first enabled position from position in
// direction step, or -1.
func (lv *ListView) nextEnabled(position, step int) int {
	count := lv.view.Count()
	for ; position >= 0 && position < count; position += step {
		if lv.view.IsEnabled(position) {
			return position
		}
	}
	return -1
}

func (lv *ListView) selectPosition(position int) {
	if position == -1 {
		return
	}
	lv.selected = position
	lv.follow = true
}

// SelectNext moves selection to the next contact row
func (lv *ListView) SelectNext() {
	lv.selectPosition(lv.nextEnabled(lv.selected+1, 1))
}

// SelectPrev moves selection to the previous contact row
func (lv *ListView) SelectPrev() {
	if lv.selected <= 0 {
		return
	}
	lv.selectPosition(lv.nextEnabled(lv.selected-1, -1))
}

func (lv *ListView) SelectFirst() {
	lv.selectPosition(lv.nextEnabled(0, 1))
}

func (lv *ListView) SelectLast() {
	lv.selectPosition(lv.nextEnabled(lv.view.Count()-1, -1))
}

// PageDown moves selection a page down
func (lv *ListView) PageDown() {
	target := min(lv.selected+max(lv.height-1, 1), lv.view.Count()-1)
	if p := lv.nextEnabled(target, 1); p != -1 {
		lv.selectPosition(p)
		return
	}
	lv.SelectLast()
}

// PageUp moves selection a page up
func (lv *ListView) PageUp() {
	target := max(lv.selected-max(lv.height-1, 1), 0)
	if p := lv.nextEnabled(target, -1); p != -1 {
		lv.selectPosition(p)
		return
	}
	lv.SelectFirst()
}

// SelectPosition selects the first contact row at or after position.
func (lv *ListView) SelectPosition(position int) {
	if position < 0 {
		return
	}
	lv.selectPosition(lv.nextEnabled(position, 1))
}

// ScrollBy scrolls the list without moving the selection.
func (lv *ListView) ScrollBy(lines int) {
	lv.top += lines
	lv.follow = false
	lv.clampTop()
}

// ClickHeader handles a click on line y of the list area. A click on a
// pinned directory header scrolls to that directory.
func (lv *ListView) ClickHeader(y int) bool {
	i := lv.headers.HeaderAt(y)
	if i == -1 {
		return false
	}
	position := lv.view.ScrollPositionForHeader(i)
	if position < 0 {
		return false
	}
	lv.top = position
	lv.follow = false
	lv.clampTop()
	if p := lv.nextEnabled(position, 1); p != -1 {
		lv.selected = p
	}
	return true
}

func (lv *ListView) clampTop() {
	maxTop := max(lv.view.Count()-lv.height, 0)
	lv.top = max(0, min(lv.top, maxTop))
}

// Layout sizes the view to height lines, keeps the selection on a contact
// row and recomputes the pinned headers. When the selection moved it is
// scrolled into the band between the pinned headers.
func (lv *ListView) Layout(height int) {
	lv.height = max(height, 0)
	count := lv.view.Count()

	if lv.selected >= count {
		lv.selected = count - 1
	}
	if lv.selected < 0 || !lv.view.IsEnabled(lv.selected) {
		p := lv.nextEnabled(max(lv.selected, 0), 1)
		if p == -1 {
			p = lv.nextEnabled(max(lv.selected, 0), -1)
		}
		lv.selected = p
	}
	lv.clampTop()
	lv.view.ConfigurePinnedHeaders(&lv.headers, lv)

	if !lv.follow || lv.selected < 0 {
		return
	}
	top, bottom := lv.headers.SelectionWindow(lv.height)
	row := lv.selected - lv.top
	switch {
	case row < top:
		lv.top = lv.selected - top
	case row >= bottom:
		lv.top = lv.selected - bottom + 1
	default:
		return
	}
	lv.clampTop()
	lv.view.ConfigurePinnedHeaders(&lv.headers, lv)
}

// Render lays the view out for height lines and draws it from line startY.
func (lv *ListView) Render(screen *Screen, startY, height int) {
	lv.Layout(height)
	width := screen.GetWidth()
	background := screen.ListStyle()

	for y := 0; y < lv.height; y++ {
		screen.FillLine(0, startY+y, background)
		position := lv.RowAt(y)
		if position == -1 {
			continue
		}
		e := lv.view.EntryAt(position)
		if e.Kind == contactlist.EntryHeader {
			lv.drawHeader(screen, startY+y, width, e)
		} else {
			lv.drawContact(screen, startY+y, width, e, position == lv.selected)
		}
	}
	lv.drawPinnedHeaders(screen, startY, width)
}

// HeaderText returns the text of a directory header row.
func HeaderText(e contactlist.Entry) string {
	text := e.Label
	if e.DirectoryName != "" {
		text += " " + e.DirectoryName
	}
	return text
}

func headerCountText(e contactlist.Entry) string {
	switch {
	case e.Loading:
		return "searching..."
	case e.ResultCount == 1:
		return "1 contact"
	default:
		return fmt.Sprintf("%d contacts", e.ResultCount)
	}
}

func (lv *ListView) drawHeader(screen *Screen, y, width int, e contactlist.Entry) {
	x := screen.DrawStringLimited(0, y, HeaderText(e), width, screen.PartitionHeaderStyle())
	count := headerCountText(e)
	if x+2+StringWidth(count) <= width {
		screen.DrawString(width-StringWidth(count), y, count, screen.PartitionHeaderCountStyle())
	}
}

func (lv *ListView) drawContact(screen *Screen, y, width int, e contactlist.Entry, selected bool) {
	style := screen.ListStyle()
	highlight := screen.ListHighlightStyle()
	detail := screen.ListDetailStyle()
	if e.Profile {
		style = screen.ListProfileStyle()
	}
	if selected {
		style = screen.ListSelectedStyle()
		highlight = style.Underline(true)
		detail = style
		screen.FillLine(0, y, style)
	}

	if e.Placement.SectionHeader != "" {
		screen.DrawString(0, y, TruncateToWidth(e.Placement.SectionHeader, sectionColumnWidth-1), screen.SectionHeaderStyle())
	}
	x := sectionColumnWidth

	if e.Photo != nil {
		tile := lv.tile(*e.Photo)
		tileStyle := screen.TileStyle(theme.FromColorful(tile.Color))
		letter := tile.Initial()
		if letter == "" {
			letter = "·"
		}
		screen.SetCell(x, y, ' ', tileStyle)
		screen.DrawString(x+1, y, letter, tileStyle)
		x += tileWidth
	}

	if e.Starred {
		screen.SetCell(x, y, '★', screen.ListStarredStyle())
		x += 2
	}

	nameWidth := width - x
	name := TruncateToWidthWithEllipsis(e.DisplayName, nameWidth)
	x = drawHighlighted(screen, x, y, name, e.Highlight, style, highlight)

	if e.Detail != "" && x+2 < width {
		screen.DrawStringLimited(x+2, y, e.Detail, width-x-2, detail)
	}
}

func (lv *ListView) tile(r photo.Request) photo.Tile {
	if lv.photos == nil {
		return photo.TileFor(r)
	}
	tile, ok := lv.photos.LoadThumbnail(lv.scope, r, func(photo.Tile) {
		if lv.OnPhotoLoaded != nil {
			lv.OnPhotoLoaded()
		}
	})
	if !ok {
		return photo.DefaultTile
	}
	return tile
}

// drawHighlighted draws text with the word prefixes matching query in the
// highlight style and returns the column after the text.
func drawHighlighted(screen *Screen, x, y int, text, query string, style, highlight tcell.Style) int {
	spans := MatchSpans(text, query)
	i := 0
	for _, r := range []rune(text) {
		s := style
		for _, span := range spans {
			if i >= span[0] && i < span[1] {
				s = highlight
				break
			}
		}
		if w := RuneWidth(r); w > 0 {
			screen.SetCell(x, y, r, s)
			x += w
		}
		i++
	}
	return x
}

func (lv *ListView) drawPinnedHeaders(screen *Screen, startY, width int) {
	sectionIndex := lv.view.SectionHeaderIndex()
	colors := screen.Theme.Colors
	for i, hd := range lv.headers.Headers() {
		if !hd.Visible || hd.Y < 0 || hd.Y >= lv.height {
			continue
		}
		y := startY + hd.Y
		if i == sectionIndex {
			style := screen.PinnedStyle(colors.SectionHeader, hd.Alpha)
			screen.DrawString(0, y, PadStringToWidth(TruncateToWidth(hd.Title, sectionColumnWidth-1), sectionColumnWidth-1), style)
			continue
		}
		style := screen.PinnedStyle(colors.PartitionHeader, hd.Alpha)
		screen.FillLine(0, y, style)
		screen.DrawStringLimited(0, y, hd.Title, width, style)
	}
}
