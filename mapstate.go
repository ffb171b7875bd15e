package reactor

import (
	"sync"

	"github.com/nilgrad/reactor/internal/core"
)

// MapState is a reactive key/value map: each key has its own backing
// source, plus a structural source advanced by Set (on a new key) and
// Delete, so Keys/Len/Has react to membership changes and not only to
// value changes.
type MapState[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]*core.Signal
	structural *core.Signal
}

// NewMapState creates an empty reactive map.
func NewMapState[K comparable, V any]() *MapState[K, V] {
	return &MapState[K, V]{
		entries:    make(map[K]*core.Signal),
		structural: core.GetRuntime().NewSignal(0),
	}
}

func (m *MapState[K, V]) touchStructural() {
	m.structural.Write(m.structural.Peek().(int) + 1)
}

// Get reads key k, tracking only that key's source if present, or the
// structural source if absent (so a later Set of that key correctly
// re-runs this consumer).
func (m *MapState[K, V]) Get(k K) (value V, ok bool) {
	m.mu.Lock()
	sig, exists := m.entries[k]
	m.mu.Unlock()

	if !exists {
		m.structural.Read()
		return value, false
	}
	return as[V](sig.Read()), true
}

// Set writes key k, creating it if absent (advancing the structural
// source) or applying a same-value write to the existing source.
func (m *MapState[K, V]) Set(k K, v V) {
	m.mu.Lock()
	sig, exists := m.entries[k]
	if !exists {
		sig = core.GetRuntime().NewSignal(any(v))
		m.entries[k] = sig
	}
	m.mu.Unlock()

	if !exists {
		m.touchStructural()
		return
	}
	sig.Write(v)
}

// Delete removes key k, advancing the structural source if it was
// present.
func (m *MapState[K, V]) Delete(k K) {
	m.mu.Lock()
	_, exists := m.entries[k]
	delete(m.entries, k)
	m.mu.Unlock()

	if exists {
		m.touchStructural()
	}
}

// Has reports whether k is present, tracked via the structural source.
func (m *MapState[K, V]) Has(k K) bool {
	m.structural.Read()
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[k]
	return ok
}

// Len returns the entry count, tracked via the structural source.
func (m *MapState[K, V]) Len() int {
	m.structural.Read()
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Keys returns a snapshot of the current keys, tracked via the
// structural source only, not each value.
func (m *MapState[K, V]) Keys() []K {
	m.structural.Read()
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]K, 0, len(m.entries))
	for k := range m.entries {
		out = append(out, k)
	}
	return out
}

func (m *MapState[K, V]) unwrapRaw() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[K]V, len(m.entries))
	for k, sig := range m.entries {
		out[k] = as[V](sig.Peek())
	}
	return out
}
