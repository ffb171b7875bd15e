package reactor

import "github.com/nilgrad/reactor/internal/core"

// Scope is a disposer tree node: it owns child scopes, effects, and
// cleanup callbacks created while it was ambient, and tears all of them
// down together on Dispose.
type Scope struct {
	raw *core.Scope
}

// NewScope creates a scope attached to parent, or to the current
// ActiveScope if parent is nil, or detached if neither exists. If init
// is non-nil, it runs immediately with the new scope set ambient, the
// same as calling Extend right after construction.
func NewScope(init func(*Scope), parent *Scope) *Scope {
	var rawParent *core.Scope
	if parent != nil {
		rawParent = parent.raw
	} else if active, ok := core.GetRuntime().Tracker().CurrentScope(); ok {
		rawParent = active
	}

	sc := &Scope{raw: core.GetRuntime().NewScope(rawParent)}
	if init != nil {
		sc.Extend(init)
	}
	return sc
}

// Extend sets this scope ambient, invokes fn (registering whatever
// effects, child scopes, and cleanups it creates under this scope), and
// returns the scope itself to allow chaining. Fails with
// DisposedScopeError if this scope is already disposed.
func (s *Scope) Extend(fn func(*Scope)) *Scope {
	if s.raw.Disposed() {
		panic(&core.DisposedScopeError{Scope: s.raw})
	}
	s.raw.Run(func() { fn(s) })
	return s
}

// Dispose tears the scope down in a fixed order: child scopes, then
// effects, then this scope's own cleanups; then unlinks from its
// parent. Fails with DisposedScopeError if already disposed.
func (s *Scope) Dispose() {
	if s.raw.Disposed() {
		panic(&core.DisposedScopeError{Scope: s.raw})
	}
	s.raw.Dispose()
}

// Disposed reports whether Dispose has already run.
func (s *Scope) Disposed() bool { return s.raw.Disposed() }

// OnCleanup registers fn to run when this scope is disposed, in
// registration order.
func (s *Scope) OnCleanup(fn func()) { s.raw.OnCleanup(fn) }

// OnError installs a panic handler consulted by Extend (and by
// NewScope's init): a panic raised inside that fn is passed to the
// handlers instead of propagating. Panics from later effect runs are
// logged by the scheduler and do not reach them.
func (s *Scope) OnError(fn func(any)) { s.raw.OnError(fn) }

// DebugID returns a stable identifier for this scope, for use with
// DumpGraph and logging.
func (s *Scope) DebugID() string { return s.raw.DebugID() }

// ActiveScope returns the ambient scope for the calling goroutine, if
// any.
func ActiveScope() (*Scope, bool) {
	sc, ok := core.GetRuntime().Tracker().CurrentScope()
	if !ok {
		return nil, false
	}
	return &Scope{raw: sc}, true
}

// SetActiveScope imperatively replaces the ambient scope, independent
// of any Extend/Run nesting currently in effect. Passing nil clears it.
func SetActiveScope(s *Scope) {
	if s == nil {
		core.GetRuntime().Tracker().SetScope(nil)
		return
	}
	core.GetRuntime().Tracker().SetScope(s.raw)
}

// OnCleanup registers fn with the current ActiveScope, if any; a no-op
// if there is none.
func OnCleanup(fn func()) {
	if sc, ok := ActiveScope(); ok {
		sc.OnCleanup(fn)
	}
}
