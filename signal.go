package reactor

import "github.com/nilgrad/reactor/internal/core"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Signal is a single mutable reactive cell: Read establishes a
// dependency link, Write applies a same-value check before
// propagating.
type Signal[T any] struct {
	raw *core.Signal
}

// NewSignal creates a signal holding initial, owned by the runtime of
// the calling goroutine.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{raw: core.GetRuntime().NewSignal(initial)}
}

// Read returns the current value, tracking the dependency if called
// from within an evaluating computed or effect.
func (s *Signal[T]) Read() T {
	return as[T](s.raw.Read())
}

// Peek returns the current value without establishing a dependency
// link -- equivalent to Untracked(s.Read) but without the closure.
func (s *Signal[T]) Peek() T {
	return as[T](s.raw.Peek())
}

// Write applies v. A value that is same-value equal to the
// current one is a complete no-op: no version advance, no marking.
func (s *Signal[T]) Write(v T) {
	s.raw.Write(v)
}

// SetEquals overrides the default same-value comparison used to
// decide whether a write is a no-op.
func (s *Signal[T]) SetEquals(fn func(a, b T) bool) {
	s.raw.SetEquals(func(a, b any) bool { return fn(as[T](a), as[T](b)) })
}
