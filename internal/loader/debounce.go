package loader

import (
	"sync"
	"time"
)

type pending struct {
	timer *time.Timer
	slot  int
	id    uint64
}

// Debouncer delays work keyed by an owner. Scheduling again for the same
// owner stops the earlier timer; a fired timer posts its work to the UI
// goroutine, where it runs only if it was not superseded in the meantime.
type Debouncer struct {
	delay time.Duration
	post  func(func())

	mu      sync.Mutex
	pending map[any]*pending
	nextID  uint64
}

// NewDebouncer creates a debouncer posting fired work through post.
func NewDebouncer(delay time.Duration, post func(func())) *Debouncer {
	return &Debouncer{
		delay:   delay,
		post:    post,
		pending: make(map[any]*pending),
	}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule runs fn after the delay unless owner is scheduled again or
// canceled first.
func (d *Debouncer) Schedule(slot int, owner any, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[owner]; ok {
		p.timer.Stop()
	}
	d.nextID++
	id := d.nextID
	p := &pending{slot: slot, id: id}
	p.timer = time.AfterFunc(d.delay, func() {
		d.post(func() {
			if d.take(owner, id) {
				fn()
			}
		})
	})
	d.pending[owner] = p
}

func (d *Debouncer) take(owner any, id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[owner]
	if !ok || p.id != id {
		return false
	}
	delete(d.pending, owner)
	return true
}

// Cancel stops the pending work of owner.
func (d *Debouncer) Cancel(owner any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[owner]; ok {
		p.timer.Stop()
		delete(d.pending, owner)
	}
}

// CancelAll stops all pending work.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for owner, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, owner)
	}
}

// Pending reports whether owner has work scheduled for slot.
func (d *Debouncer) Pending(slot int, owner any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[owner]
	return ok && p.slot == slot
}
