package reactor

import (
	"sort"
	"sync"

	"github.com/nilgrad/reactor/internal/core"
)

// Slice is a reactive dynamic array, restricted to the explicit mutator
// API below since Go has no index/property trapping: each element has
// its own backing source, written by Set, plus one structural source
// that every other mutator advances, so Len, Read and At re-run when
// elements are added, removed or moved by push/pop/splice/shift/
// unshift/sort/reverse.
type Slice[T any] struct {
	mu         sync.Mutex
	items      []*core.Signal
	structural *core.Signal
}

// NewSlice creates a Slice seeded with initial's elements.
func NewSlice[T any](initial ...T) *Slice[T] {
	s := &Slice[T]{structural: core.GetRuntime().NewSignal(0)}
	for _, v := range initial {
		s.items = append(s.items, core.GetRuntime().NewSignal(any(v)))
	}
	return s
}

func (s *Slice[T]) touchStructural() {
	s.structural.Write(s.structural.Peek().(int) + 1)
}

// Len returns the element count, tracking the structural source.
func (s *Slice[T]) Len() int {
	s.structural.Read()
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// At reads index i, tracking the source of the element now at i plus
// the structural source, so a mutator that moves a different element
// into index i re-runs the consumer too.
func (s *Slice[T]) At(i int) T {
	s.structural.Read()
	s.mu.Lock()
	sig := s.items[i]
	s.mu.Unlock()
	return as[T](sig.Read())
}

// Set writes index i. A same-value write is a no-op.
func (s *Slice[T]) Set(i int, v T) {
	s.mu.Lock()
	sig := s.items[i]
	s.mu.Unlock()
	sig.Write(v)
}

// Read returns a snapshot slice, tracking the structural source plus
// every element's own source.
func (s *Slice[T]) Read() []T {
	s.structural.Read()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	for i, sig := range s.items {
		out[i] = as[T](sig.Read())
	}
	return out
}

// Push appends values, advancing the structural source once.
func (s *Slice[T]) Push(values ...T) {
	s.mu.Lock()
	for _, v := range values {
		s.items = append(s.items, core.GetRuntime().NewSignal(any(v)))
	}
	s.mu.Unlock()
	s.touchStructural()
}

// Pop removes and returns the last element; ok is false on an empty
// slice.
func (s *Slice[T]) Pop() (value T, ok bool) {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return value, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	s.mu.Unlock()

	s.touchStructural()
	return as[T](last.Peek()), true
}

// Shift removes and returns the first element; ok is false on an empty
// slice.
func (s *Slice[T]) Shift() (value T, ok bool) {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return value, false
	}
	first := s.items[0]
	s.items = s.items[1:]
	s.mu.Unlock()

	s.touchStructural()
	return as[T](first.Peek()), true
}

// Unshift prepends values, advancing the structural source once.
func (s *Slice[T]) Unshift(values ...T) {
	sigs := make([]*core.Signal, len(values))
	for i, v := range values {
		sigs[i] = core.GetRuntime().NewSignal(any(v))
	}

	s.mu.Lock()
	s.items = append(sigs, s.items...)
	s.mu.Unlock()

	s.touchStructural()
}

// Splice removes count elements starting at start and inserts replace
// in their place, returning the removed elements.
func (s *Slice[T]) Splice(start, count int, replace ...T) []T {
	s.mu.Lock()
	if start < 0 {
		start = 0
	}
	if start > len(s.items) {
		start = len(s.items)
	}
	end := start + count
	if end > len(s.items) {
		end = len(s.items)
	}

	removed := make([]T, end-start)
	for i := start; i < end; i++ {
		removed[i-start] = as[T](s.items[i].Peek())
	}

	inserted := make([]*core.Signal, len(replace))
	for i, v := range replace {
		inserted[i] = core.GetRuntime().NewSignal(any(v))
	}

	tail := append([]*core.Signal{}, s.items[end:]...)
	s.items = append(s.items[:start:start], append(inserted, tail...)...)
	s.mu.Unlock()

	s.touchStructural()
	return removed
}

// Sort sorts in place using less, advancing the structural source.
func (s *Slice[T]) Sort(less func(a, b T) bool) {
	s.mu.Lock()
	sort.Slice(s.items, func(i, j int) bool {
		return less(as[T](s.items[i].Peek()), as[T](s.items[j].Peek()))
	})
	s.mu.Unlock()
	s.touchStructural()
}

// Reverse reverses in place, advancing the structural source.
func (s *Slice[T]) Reverse() {
	s.mu.Lock()
	for i, j := 0, len(s.items)-1; i < j; i, j = i+1, j-1 {
		s.items[i], s.items[j] = s.items[j], s.items[i]
	}
	s.mu.Unlock()
	s.touchStructural()
}

func (s *Slice[T]) unwrapRaw() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	for i, sig := range s.items {
		out[i] = as[T](sig.Peek())
	}
	return out
}
