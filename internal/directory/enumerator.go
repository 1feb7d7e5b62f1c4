package directory

import (
	"context"
	"sync"

	"github.com/pstuifzand/tui-contacts/internal/logger"
)

const (
	DefaultLabel        = "Contacts"
	LocalInvisibleLabel = "Local invisible contacts"
)

// Enumerator loads the directory list for a search mode. Once started it
// reloads whenever the registry reports a change, delivering each result
// through the poster on the UI goroutine.
type Enumerator struct {
	registry       Registry
	mode           SearchMode
	localInvisible bool
	defaultLabel   string
	invisibleLabel string

	mu          sync.Mutex
	post        func(func())
	onLoaded    func([]Entry, error)
	cancel      context.CancelFunc
	unsubscribe func()
	generation  uint64
	started     bool
}

// NewEnumerator creates an enumerator over registry.
func NewEnumerator(registry Registry, mode SearchMode) *Enumerator {
	return &Enumerator{
		registry:       registry,
		mode:           mode,
		defaultLabel:   DefaultLabel,
		invisibleLabel: LocalInvisibleLabel,
	}
}

func (e *Enumerator) Mode() SearchMode {
	return e.mode
}

// SetMode changes the search mode. A running enumerator reloads.
func (e *Enumerator) SetMode(mode SearchMode) {
	e.mu.Lock()
	changed := e.mode != mode
	e.mode = mode
	started := e.started
	e.mu.Unlock()
	if changed && started {
		e.ForceLoad()
	}
}

func (e *Enumerator) SetLocalInvisibleDirectoryEnabled(flag bool) {
	e.mu.Lock()
	e.localInvisible = flag
	e.mu.Unlock()
}

// SetLabels overrides the labels of the synthesized default directories.
func (e *Enumerator) SetLabels(defaultLabel, invisibleLabel string) {
	e.defaultLabel = defaultLabel
	e.invisibleLabel = invisibleLabel
}

// DefaultDirectories returns the synthesized list used in mode None.
func (e *Enumerator) DefaultDirectories() []Entry {
	return []Entry{
		{ID: Default, Type: e.defaultLabel},
		{ID: LocalInvisible, Type: e.invisibleLabel},
	}
}

// Enumerate runs one enumeration synchronously.
func (e *Enumerator) Enumerate(ctx context.Context) ([]Entry, error) {
	e.mu.Lock()
	mode := e.mode
	localInvisible := e.localInvisible
	e.mu.Unlock()

	if mode == SearchModeNone {
		return e.DefaultDirectories(), nil
	}

	pred, err := PredicateFor(mode, localInvisible)
	if err != nil {
		return nil, err
	}
	records, err := e.registry.Directories(ctx, pred)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		typ := r.TypeLabel
		if typ == "" && r.PackageName != "" {
			logger.Warn("directory %d: no type label for package %s", r.ID, r.PackageName)
		}
		entries = append(entries, Entry{
			ID:           r.ID,
			Type:         typ,
			DisplayName:  r.DisplayName,
			PhotoSupport: r.PhotoSupport,
		})
	}
	return entries, nil
}

// Start subscribes to registry changes and begins the first load. Results
// are handed to onLoaded through post.
func (e *Enumerator) Start(post func(func()), onLoaded func([]Entry, error)) {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.post = post
	e.onLoaded = onLoaded
	e.mu.Unlock()

	unsubscribe := e.registry.Subscribe(e.ForceLoad)

	e.mu.Lock()
	e.unsubscribe = unsubscribe
	e.mu.Unlock()

	e.ForceLoad()
}

// ForceLoad cancels any in-flight enumeration and starts a new one.
func (e *Enumerator) ForceLoad() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.generation++
	gen := e.generation
	post := e.post
	e.mu.Unlock()

	go func() {
		entries, err := e.Enumerate(ctx)
		if ctx.Err() != nil {
			return
		}
		post(func() { e.deliver(gen, entries, err) })
	}()
}

func (e *Enumerator) deliver(gen uint64, entries []Entry, err error) {
	e.mu.Lock()
	current := e.started && gen == e.generation
	onLoaded := e.onLoaded
	e.mu.Unlock()
	if !current {
		logger.Debug("dropping stale directory list (generation %d)", gen)
		return
	}
	onLoaded(entries, err)
}

// Stop cancels any in-flight enumeration and drops the registry
// subscription. Results still queued are discarded.
func (e *Enumerator) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return
	}
	e.started = false
	e.generation++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// Started reports whether the enumerator is active.
func (e *Enumerator) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}
