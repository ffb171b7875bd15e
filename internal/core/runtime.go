package core

import (
	"sync"

	"github.com/petermattis/goid"
)

// Runtime wires together the four pieces every node needs a handle to:
// the id allocator, the global clock, the scheduler, and the tracker.
// One Runtime per goroutine via GetRuntime -- each goroutine gets its
// own independent reactive graph, which keeps the Tracker's single
// current-consumer field correct without needing a lock held across an
// entire evaluation.
type Runtime struct {
	clock Clock
	ids   IDAllocator

	scheduler *Scheduler
	tracker   *Tracker
}

func NewRuntime() *Runtime {
	return &Runtime{
		scheduler: NewScheduler(),
		tracker:   NewTracker(),
	}
}

func (r *Runtime) Scheduler() *Scheduler { return r.scheduler }
func (r *Runtime) Tracker() *Tracker     { return r.tracker }

// Batch defers flushing until fn returns.
func (r *Runtime) Batch(fn func()) { r.scheduler.Batch(fn) }

// Flush drains the scheduler's dirty queue synchronously, a manual
// escape hatch alongside the default SyncHostScheduler.
func (r *Runtime) Flush() { r.scheduler.Flush() }

var runtimes sync.Map // int64 (goid) -> *Runtime

// GetRuntime returns the calling goroutine's Runtime, creating one on
// first use.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}
