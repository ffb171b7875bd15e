package core

import (
	"sync"

	"github.com/petermattis/goid"
)

// Tracker holds the ambient "current consumer" / "current scope"
// bindings Read() and the constructors consult: every node belongs to
// the dependency graph of whichever consumer is currently evaluating.
// A mutex-guarded pair of current pointers plus an executingGID check,
// with a PushConsumer/PopConsumer save-restore pair so
// Computed.recompute and Effect.run can interleave tracking with their
// own panic recovery.
type Tracker struct {
	mu sync.RWMutex

	tracking bool

	executingGID int64
	consumer     Consumer
	scope        *Scope
}

func NewTracker() *Tracker {
	return &Tracker{tracking: true}
}

// CurrentConsumer returns the consumer currently evaluating, if tracking
// is enabled and the caller is running on the same goroutine that pushed
// it -- a cross-goroutine guard against stray tracking.
func (t *Tracker) CurrentConsumer() (Consumer, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.tracking || t.consumer == nil {
		return nil, false
	}
	if goid.Get() != t.executingGID {
		return nil, false
	}
	return t.consumer, true
}

// CurrentScope returns the ambient active scope, used by NewEffect and
// NewComputed to auto-register with whatever scope is open, and by the
// root package's NewScope to resolve the parent when none is given
// explicitly.
func (t *Tracker) CurrentScope() (*Scope, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.scope == nil {
		return nil, false
	}
	return t.scope, true
}

// PushConsumer installs c as the current consumer and returns whatever
// was current before, to be restored via PopConsumer once c's evaluation
// completes (including on panic, via the caller's defer).
func (t *Tracker) PushConsumer(c Consumer) Consumer {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.consumer
	t.consumer = c
	t.executingGID = goid.Get()
	return prev
}

func (t *Tracker) PopConsumer(prev Consumer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consumer = prev
	if prev != nil {
		t.executingGID = goid.Get()
	}
}

// PushScope/PopScope save-restore the ambient active scope around
// Scope.Extend and initial root-scope creation.
func (t *Tracker) PushScope(sc *Scope) *Scope {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.scope
	t.scope = sc
	return prev
}

func (t *Tracker) PopScope(prev *Scope) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scope = prev
}

// SetScope imperatively replaces the ambient active scope, distinct
// from the save-restore pair Run/Extend use.
func (t *Tracker) SetScope(sc *Scope) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scope = sc
}

// RunUntracked disables dependency tracking for the duration of fn.
func (t *Tracker) RunUntracked(fn func()) {
	t.mu.Lock()
	prev := t.tracking
	t.tracking = false
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.tracking = prev
		t.mu.Unlock()
	}()

	fn()
}
