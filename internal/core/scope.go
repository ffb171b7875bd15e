package core

import (
	"iter"

	"github.com/google/uuid"
)

// Scope is the disposer-tree node: a tree of lifetimes whose disposal
// cascades to every child scope, effect, and cleanup registered under
// it. Effects and computeds created within a scope get their own
// slots rather than going through plain cleanup closures, since
// Effect/Computed disposal is cheap and total (just clear links).
type Scope struct {
	rt *Runtime

	debugID uuid.UUID

	parent      *Scope
	prevSibling *Scope
	nextSibling *Scope
	childHead   *Scope
	childTail   *Scope

	effects   []*Effect
	computeds []*Computed

	cleanups []func()
	catchers []func(any)

	disposed bool
}

// NewScope creates a scope. A nil parent creates a root.
func (r *Runtime) NewScope(parent *Scope) *Scope {
	sc := &Scope{rt: r, debugID: uuid.New()}
	if parent != nil {
		parent.addChild(sc)
	}
	return sc
}

// DebugID returns a stable identifier for graph introspection (DumpGraph)
// and logging. Never used for ordering or equality: node ids stay
// monotonic ints for that.
func (sc *Scope) DebugID() string { return sc.debugID.String() }

func (sc *Scope) Disposed() bool { return sc.disposed }

// addChild appends child to the tail of parent's sibling list, so
// Dispose later walks children in insertion order.
func (parent *Scope) addChild(child *Scope) {
	child.parent = parent
	child.prevSibling = parent.childTail
	child.nextSibling = nil

	if parent.childTail != nil {
		parent.childTail.nextSibling = child
	} else {
		parent.childHead = child
	}
	parent.childTail = child
}

// children yields this scope's children in insertion order. It
// captures each node's next sibling before yielding, so a yielded
// child disposing itself (and unlinking, which clears its own
// nextSibling) mid-iteration doesn't truncate the walk.
func (sc *Scope) children() iter.Seq[*Scope] {
	return func(yield func(*Scope) bool) {
		c := sc.childHead
		for c != nil {
			next := c.nextSibling
			if !yield(c) {
				return
			}
			c = next
		}
	}
}

func (sc *Scope) addEffect(e *Effect)     { sc.effects = append(sc.effects, e) }
func (sc *Scope) addComputed(c *Computed) { sc.computeds = append(sc.computeds, c) }

// removeEffect drops e from this scope's slot, a no-op if e isn't
// present (already removed, or the scope's own Dispose already cleared
// the slice). Called when an effect disposes itself independently of
// its scope.
func (sc *Scope) removeEffect(e *Effect) {
	for i, x := range sc.effects {
		if x == e {
			sc.effects = append(sc.effects[:i], sc.effects[i+1:]...)
			return
		}
	}
}

func (sc *Scope) unlink() {
	if sc.parent == nil {
		return
	}
	parent := sc.parent

	if sc.prevSibling != nil {
		sc.prevSibling.nextSibling = sc.nextSibling
	} else {
		parent.childHead = sc.nextSibling
	}
	if sc.nextSibling != nil {
		sc.nextSibling.prevSibling = sc.prevSibling
	} else {
		parent.childTail = sc.prevSibling
	}
	sc.prevSibling, sc.nextSibling, sc.parent = nil, nil, nil
}

// Dispose tears this scope down in a fixed order: child scopes first
// (recursively), then effects, then computeds, then this scope's own
// cleanups, then it unlinks from its parent and is marked disposed.
// Safe to call more than once.
func (sc *Scope) Dispose() {
	if sc.disposed {
		return
	}

	for child := range sc.children() {
		child.Dispose()
	}
	sc.childHead, sc.childTail = nil, nil

	effects := sc.effects
	sc.effects = nil
	for _, e := range effects {
		e.Dispose()
	}

	for _, c := range sc.computeds {
		c.Dispose()
	}
	sc.computeds = nil

	for _, fn := range sc.cleanups {
		sc.runCleanup(fn)
	}
	sc.cleanups = nil

	sc.unlink()
	sc.disposed = true
}

func (sc *Scope) runCleanup(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			sc.rt.scheduler.reportFault(FaultDisposal, r, nil)
		}
	}()
	fn()
}

// OnCleanup registers fn to run when this scope is disposed. A no-op
// on an already-disposed scope.
func (sc *Scope) OnCleanup(fn func()) {
	if sc.disposed {
		return
	}
	sc.cleanups = append(sc.cleanups, fn)
}

// OnError installs a panic handler consulted by Run: a panic raised
// synchronously inside Run's fn is passed to this scope's handlers.
// Panics from effect runs are recovered and logged by the scheduler and
// do not reach these handlers, and a parent scope's handlers are not
// consulted.
func (sc *Scope) OnError(fn func(any)) {
	sc.catchers = append(sc.catchers, fn)
}

// Run executes fn with this scope installed as the ambient active scope,
// recovering into this scope's registered catchers if any, or
// re-panicking if none are installed.
func (sc *Scope) Run(fn func()) {
	prev := sc.rt.tracker.PushScope(sc)
	defer sc.rt.tracker.PopScope(prev)

	defer func() {
		if r := recover(); r != nil {
			if len(sc.catchers) == 0 {
				panic(r)
			}
			for _, catch := range sc.catchers {
				catch(r)
			}
		}
	}()

	fn()
}

// Extend creates a child scope, runs fn with it active, and returns it
// so the caller can Dispose it independently of the parent.
func (sc *Scope) Extend(fn func(*Scope)) *Scope {
	child := sc.rt.NewScope(sc)
	child.Run(func() { fn(child) })
	return child
}
