package core

// Signal is the degenerate source: one mutable cell.
// Read() is a tracked read that links the current consumer (if any);
// Write() is a write that advances the global clock and marks
// subscribers only when the new value actually differs.
type Signal struct {
	sourcePart
	id int64

	rt *Runtime

	value  any
	equals func(a, b any) bool
}

func (s *Signal) ID() int64 { return s.id }

func (r *Runtime) NewSignal(initial any) *Signal {
	return &Signal{
		id:     r.ids.Next(),
		rt:     r,
		value:  initial,
		equals: SameValue,
	}
}

// SetEquals installs a custom equality function that decides whether a
// write is a no-op, replacing the identity-equality default. A nil fn
// keeps the current one.
func (s *Signal) SetEquals(fn func(a, b any) bool) {
	if fn != nil {
		s.equals = fn
	}
}

// Read establishes a dependency link to the currently evaluating
// consumer (if tracking is enabled) and returns the current value.
func (s *Signal) Read() any {
	if consumer, ok := s.rt.tracker.CurrentConsumer(); ok {
		link(consumer, s)
	}
	return s.value
}

// Peek reads the value without establishing any dependency link.
func (s *Signal) Peek() any {
	return s.value
}

// Write applies a same-value-aware identity-equal check: a write
// that doesn't change the value is a complete no-op, advancing neither
// the clock nor this signal's own version.
func (s *Signal) Write(v any) {
	if s.equals(s.value, v) {
		return
	}

	s.value = v
	s.version++
	s.rt.clock.Advance()

	markConsumers(s, s.rt.scheduler, nil)
}
