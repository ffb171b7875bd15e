package reactor

import "github.com/nilgrad/reactor/internal/core"

// NewEffect creates an eager reactive side effect: it runs once
// immediately (scheduled onto the flush queue under the default
// synchronous host, so that happens inline) and again whenever any
// source it read last time changes value. fn may return a cleanup,
// called before every re-run and on Dispose; a nil return means none.
//
// NewEffect registers with whatever Scope is ambient at creation time
// (ActiveScope), so disposing that scope disposes this effect too.
func NewEffect(fn func() func()) *Effect {
	raw := core.GetRuntime().NewEffect(fn)
	return &Effect{raw: raw}
}

// Effect is the handle returned by NewEffect; its only operation is
// Dispose.
type Effect struct {
	raw *core.Effect
}

// Dispose runs the final cleanup and unlinks the effect from every
// source and its scope. Safe to call more than once.
func (e *Effect) Dispose() {
	e.raw.Dispose()
}
