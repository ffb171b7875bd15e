package core

// Effect is the eager consumer: always live, it owns a user callback
// and an optional cleanup returned by that callback. It runs once at
// creation (scheduled onto the flush queue) and again whenever any
// observed source's value changes.
type Effect struct {
	consumerPart
	id int64

	rt *Runtime

	fn      func() func()
	cleanup func()

	disposed bool
	scope    *Scope
}

func (e *Effect) ID() int64    { return e.id }
func (e *Effect) IsLive() bool { return !e.disposed }

// NewEffect creates and schedules an effect. It registers with the
// ambient active scope, if any, so that scope's disposal tears this
// effect down too.
func (r *Runtime) NewEffect(fn func() func()) *Effect {
	e := &Effect{id: r.ids.Next(), rt: r, fn: fn}
	e.dirty = Dirty

	if scope, ok := r.tracker.CurrentScope(); ok {
		e.scope = scope
		scope.addEffect(e)
	}

	r.scheduler.mark(e)
	return e
}

// run executes one evaluation: prior cleanup first, then the callback
// under a fresh tracking context, storing whatever cleanup it returns.
func (e *Effect) run() {
	if e.disposed {
		return
	}

	e.runCleanup()
	e.clearDeps()
	e.dirty = Clean

	prev := e.rt.tracker.PushConsumer(e)
	defer e.rt.tracker.PopConsumer(prev)

	e.cleanup = e.fn()
}

// runCleanup invokes the stored cleanup, if any, swallowing and logging
// any panic as a DisposalFault so it never blocks the next run or a
// sibling cleanup.
func (e *Effect) runCleanup() {
	if e.cleanup == nil {
		return
	}
	cleanup := e.cleanup
	e.cleanup = nil

	defer func() {
		if r := recover(); r != nil {
			e.rt.scheduler.reportFault(FaultDisposal, r, e)
		}
	}()
	cleanup()
}

// Dispose runs the final cleanup, unlinks from every source, and
// removes this effect from its scope. Safe to call more than once.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	e.runCleanup()
	e.clearDeps()

	if e.scope != nil {
		e.scope.removeEffect(e)
		e.scope = nil
	}
}
