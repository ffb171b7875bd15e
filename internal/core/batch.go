package core

import (
	"fmt"
	"sort"
)

// HostScheduler is the injected "microtask" mechanism: anything that
// can run a callback before the next tick. The default behavior
// (see SyncHostScheduler) is to run fn immediately, which is the correct,
// synchronous choice for a host with no event loop.
type HostScheduler interface {
	Schedule(fn func())
}

// SyncHostScheduler runs the flush immediately and synchronously. It is
// the default: nothing in this library suspends, so "the next
// microtask" and "right now" coincide unless a host injects a queueing
// HostScheduler of its own for test determinism or to coalesce flushes
// across an event loop tick.
type SyncHostScheduler struct{}

func (SyncHostScheduler) Schedule(fn func()) { fn() }

// Scheduler owns the batched set of consumers marked dirty since the
// last flush plus the re-entrant batch-depth counter for nested
// batches.
type Scheduler struct {
	host HostScheduler

	dirty       []Consumer
	inSet       map[Consumer]struct{}
	lastAddedID int64
	needsSort   bool
	flushQueued bool
	flushing    bool

	batchDepth int

	settledFns []func()
	onFault    func(FaultKind, any, Consumer)
}

// FaultKind distinguishes which error kind a swallowed panic is.
type FaultKind int

const (
	FaultEffect FaultKind = iota
	FaultDisposal
)

func NewScheduler() *Scheduler {
	return &Scheduler{
		host:  SyncHostScheduler{},
		inSet: make(map[Consumer]struct{}),
	}
}

// SetHost swaps the microtask mechanism, exposed at the root package as
// SetScheduler for test determinism.
func (s *Scheduler) SetHost(h HostScheduler) {
	if h == nil {
		h = SyncHostScheduler{}
	}
	s.host = h
}

// OnFault installs the callback invoked whenever an effect or disposal
// panics, after the fault is logged; the scheduler always
// logs-and-swallows regardless of whether a callback is installed.
func (s *Scheduler) OnFault(fn func(FaultKind, any, Consumer)) {
	s.onFault = fn
}

func (s *Scheduler) IsBatching() bool { return s.batchDepth > 0 }

// Batch runs fn with the re-entrancy depth counter incremented; a flush
// is only triggered once the outermost batch completes.
func (s *Scheduler) Batch(fn func()) {
	s.batchDepth++
	defer func() {
		s.batchDepth--
		if s.batchDepth == 0 {
			s.Flush()
		}
	}()
	fn()
}

// mark inserts consumer into the dirty set via a three-step algorithm:
// O(1) dedup, id-based lastAddedID tracking to avoid sorting when
// insertion already preserves order, and lazily scheduling a flush.
func (s *Scheduler) mark(c Consumer) {
	if _, ok := s.inSet[c]; ok {
		return
	}

	s.inSet[c] = struct{}{}
	s.dirty = append(s.dirty, c)

	if c.ID() > s.lastAddedID {
		s.lastAddedID = c.ID()
	} else {
		s.needsSort = true
	}

	if !s.flushQueued && !s.IsBatching() && !s.flushing {
		s.flushQueued = true
		s.host.Schedule(s.Flush)
	}
}

// Untrack is not scheduler state, kept here only as documentation: see
// Tracker.RunUntracked for the current-consumer-clearing half of
// untracked(fn).

// Flush idempotently drains the batched queue in ascending id
// (creation-order). Re-entrant: effects or live computeds that mark
// new consumers mid-drain are appended to the same queue, and the loop
// keeps going until the queue is empty.
func (s *Scheduler) Flush() {
	if s.flushing {
		return
	}
	s.flushing = true
	s.flushQueued = false
	defer func() { s.flushing = false }()

	for len(s.dirty) > 0 {
		if s.needsSort {
			sort.Slice(s.dirty, func(i, j int) bool { return s.dirty[i].ID() < s.dirty[j].ID() })
			s.needsSort = false
		}

		batch := s.dirty
		s.dirty = nil
		for _, c := range batch {
			delete(s.inSet, c)
		}
		s.lastAddedID = 0
		if len(batch) > 0 {
			s.lastAddedID = batch[len(batch)-1].ID()
		}

		for _, c := range batch {
			s.run(c)
		}
	}

	settled := s.settledFns
	s.settledFns = nil
	for _, fn := range settled {
		fn()
	}
}

// run executes a single dirty consumer if it is still live and still
// dirty (a dispose or an earlier entry in the same batch may have
// already cleaned it).
func (s *Scheduler) run(c Consumer) {
	if !c.IsLive() || c.Dirty() != Dirty {
		return
	}

	switch node := c.(type) {
	case *Effect:
		s.runEffect(node)
	case *Computed:
		node.revalidate()
	}
}

func (s *Scheduler) runEffect(e *Effect) {
	defer func() {
		if r := recover(); r != nil {
			s.reportFault(FaultEffect, r, e)
		}
	}()
	e.run()
}

func (s *Scheduler) reportFault(kind FaultKind, r any, c Consumer) {
	logFault(kind, r)
	if s.onFault != nil {
		s.onFault(kind, r, c)
	}
}

// OnSettled registers fn to run once the current (or next) flush fully
// drains, including chain-triggered effects.
func (s *Scheduler) OnSettled(fn func()) {
	s.settledFns = append(s.settledFns, fn)
}

func (k FaultKind) String() string {
	switch k {
	case FaultEffect:
		return "effect"
	case FaultDisposal:
		return "disposal"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}
