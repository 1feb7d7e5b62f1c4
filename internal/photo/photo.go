// Package photo produces contact thumbnails. In the terminal a thumbnail is
// a letter tile: the first letter of the contact's name on a colour chosen
// from the contact's identity.
package photo

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spaolacci/murmur3"

	"github.com/pstuifzand/tui-contacts/internal/logger"
)

// Request identifies the photo of one contact row.
type Request struct {
	PhotoID     int64
	PhotoURI    string
	DisplayName string
	LookupKey   string
}

// Key returns the cache key of the request: the photo id when set, then
// the photo URI, then the contact identity.
func (r Request) Key() string {
	switch {
	case r.PhotoID != 0:
		return "id:" + strconv.FormatInt(r.PhotoID, 10)
	case r.PhotoURI != "":
		return "uri:" + r.PhotoURI
	default:
		return "default:" + r.identifier()
	}
}

func (r Request) identifier() string {
	if r.LookupKey != "" {
		return r.LookupKey
	}
	return r.DisplayName
}

// Tile is a rendered thumbnail.
type Tile struct {
	// Letter is 0 for the default avatar.
	Letter rune
	Color  colorful.Color
}

// DefaultTile is shown for contacts without a usable name.
var DefaultTile = Tile{Color: palette[0]}

var palette = mustPalette(
	"#db4437", "#e91e63", "#9c27b0", "#673ab7", "#3f51b5", "#4285f4",
	"#039be5", "#0097a7", "#009688", "#0f9d58", "#689f38", "#ef6c00",
	"#ff5722", "#757575",
)

func mustPalette(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// TileFor builds the letter tile of a request.
func TileFor(r Request) Tile {
	id := r.identifier()
	if id == "" {
		return DefaultTile
	}
	t := Tile{Color: palette[murmur3.Sum32([]byte(id))%uint32(len(palette))]}
	for _, ch := range r.DisplayName {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			t.Letter = unicode.ToUpper(ch)
			break
		}
	}
	if t.Letter == 0 {
		return Tile{Color: t.Color}
	}
	return t
}

type entry struct {
	tile  Tile
	fresh bool
}

// Manager loads tiles asynchronously and caches them by request key.
// Requests are grouped in scopes so a list can cancel what it no longer
// shows.
type Manager struct {
	mu      sync.Mutex
	cache   map[string]*entry
	pending map[string]map[string]context.CancelFunc
	post    func(func())
	sem     chan struct{}
	render  func(context.Context, Request) (Tile, error)
}

// NewManager creates a manager that runs at most workers renders at a time
// and hands results to the UI goroutine through post.
func NewManager(workers int, post func(func())) *Manager {
	if workers <= 0 {
		workers = 2
	}
	return &Manager{
		cache:   make(map[string]*entry),
		pending: make(map[string]map[string]context.CancelFunc),
		post:    post,
		sem:     make(chan struct{}, workers),
		render: func(_ context.Context, r Request) (Tile, error) {
			return TileFor(r), nil
		},
	}
}

// Cached returns the cached tile for r.
func (m *Manager) Cached(r Request) (Tile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.cache[r.Key()]
	if !ok {
		return Tile{}, false
	}
	return e.tile, true
}

// LoadThumbnail returns the cached tile when there is one. Missing or stale
// tiles are rendered in the background and done is called on the UI
// goroutine when the tile is ready.
func (m *Manager) LoadThumbnail(scope string, r Request, done func(Tile)) (Tile, bool) {
	key := r.Key()

	m.mu.Lock()
	e, cached := m.cache[key]
	if cached && e.fresh {
		m.mu.Unlock()
		return e.tile, true
	}
	if _, loading := m.pending[scope][key]; loading {
		m.mu.Unlock()
		if cached {
			return e.tile, true
		}
		return Tile{}, false
	}
	ctx, cancel := context.WithCancel(context.Background())
	if m.pending[scope] == nil {
		m.pending[scope] = make(map[string]context.CancelFunc)
	}
	m.pending[scope][key] = cancel
	m.mu.Unlock()

	go m.load(ctx, cancel, scope, key, r, done)

	if cached {
		return e.tile, true
	}
	return Tile{}, false
}

func (m *Manager) load(ctx context.Context, cancel context.CancelFunc, scope, key string, r Request, done func(Tile)) {
	defer cancel()
	select {
	case m.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}
	tile, err := m.render(ctx, r)
	<-m.sem

	m.mu.Lock()
	if ctx.Err() != nil {
		m.mu.Unlock()
		return
	}
	delete(m.pending[scope], key)
	if err != nil {
		m.mu.Unlock()
		logger.Warn("photo %s: %v", key, err)
		return
	}
	m.cache[key] = &entry{tile: tile, fresh: true}
	m.mu.Unlock()

	if done != nil && m.post != nil {
		m.post(func() { done(tile) })
	}
}

// CancelPendingRequests cancels every in-flight request of scope.
func (m *Manager) CancelPendingRequests(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cancel := range m.pending[scope] {
		cancel()
	}
	delete(m.pending, scope)
}

// RefreshCache marks every cached tile stale. Stale tiles are still
// returned but reloaded on their next request.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.cache {
		e.fresh = false
	}
}

// Pending returns the number of in-flight requests of scope.
func (m *Manager) Pending(scope string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending[scope])
}

// Initial returns the letter a tile shows, upper-cased, or "" for the
// default avatar.
func (t Tile) Initial() string {
	if t.Letter == 0 {
		return ""
	}
	return strings.ToUpper(string(t.Letter))
}
