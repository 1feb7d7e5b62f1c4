// Package loader runs partition content loads off the UI goroutine. Each
// list slot has at most one load in flight; starting a new load for a slot
// supersedes the previous one by bumping the slot's generation.
package loader

import (
	"context"
	"sync"

	"github.com/pstuifzand/tui-contacts/internal/logger"
	"github.com/pstuifzand/tui-contacts/internal/resultset"
)

// Job produces the result set of one load.
type Job func(ctx context.Context) (resultset.ResultSet, error)

// Result is the message a finished load posts to the UI goroutine.
type Result struct {
	Slot       int
	Generation uint64
	// Tag identifies what was loaded (the directory id) so the receiver
	// can tell whether the slot still shows the same thing.
	Tag       int64
	ResultSet resultset.ResultSet
	Err       error
}

type task struct {
	ctx  context.Context
	slot int
	gen  uint64
	tag  int64
	job  Job
}

type slotState struct {
	generation uint64
	cancel     context.CancelFunc
	running    bool
}

// Pool is a fixed set of workers executing load jobs.
type Pool struct {
	deliver func(Result)
	tasks   chan task

	mu     sync.Mutex
	slots  map[int]*slotState
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool starts workers goroutines. deliver is called from a worker for
// every finished load that was not canceled; it should post the result to
// the UI goroutine.
func NewPool(workers int, deliver func(Result)) *Pool {
	if workers <= 0 {
		workers = 4
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		deliver: deliver,
		tasks:   make(chan task, 64),
		slots:   make(map[int]*slotState),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.tasks:
			p.run(t)
		}
	}
}

func (p *Pool) run(t task) {
	if t.ctx.Err() != nil {
		return
	}
	rs, err := t.job(t.ctx)
	if t.ctx.Err() != nil {
		if rs != nil {
			_ = rs.Close()
		}
		logger.Debug("load for slot %d (generation %d) canceled", t.slot, t.gen)
		return
	}

	p.mu.Lock()
	if s, ok := p.slots[t.slot]; ok && s.generation == t.gen {
		s.running = false
	}
	p.mu.Unlock()

	p.deliver(Result{
		Slot:       t.slot,
		Generation: t.gen,
		Tag:        t.tag,
		ResultSet:  rs,
		Err:        err,
	})
}

// Start queues job for slot, canceling the slot's previous load. It
// returns the generation of the new load.
func (p *Pool) Start(slot int, tag int64, job Job) uint64 {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0
	}
	s, ok := p.slots[slot]
	if !ok {
		s = &slotState{}
		p.slots[slot] = s
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(p.ctx)
	s.generation++
	s.cancel = cancel
	s.running = true
	gen := s.generation
	p.mu.Unlock()

	select {
	case p.tasks <- task{ctx: ctx, slot: slot, gen: gen, tag: tag, job: job}:
	default:
		// The queue is full; hand the task over without blocking the UI.
		go func() {
			select {
			case p.tasks <- task{ctx: ctx, slot: slot, gen: gen, tag: tag, job: job}:
			case <-ctx.Done():
			}
		}()
	}
	return gen
}

// IsCurrent reports whether gen is the latest generation started for slot.
func (p *Pool) IsCurrent(slot int, gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[slot]
	return ok && s.generation == gen
}

// Running reports whether slot has a load in flight.
func (p *Pool) Running(slot int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[slot]
	return ok && s.running
}

// Cancel cancels the load of slot. Later deliveries for it are stale.
func (p *Pool) Cancel(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.slots[slot]; ok {
		if s.cancel != nil {
			s.cancel()
		}
		s.generation++
		s.running = false
	}
}

// CancelAll cancels every load.
func (p *Pool) CancelAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.slots {
		if s.cancel != nil {
			s.cancel()
		}
		s.generation++
		s.running = false
	}
}

// Close cancels all loads and stops the workers.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	p.wg.Wait()
}
