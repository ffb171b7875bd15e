package reactor

import (
	"reflect"
	"sync"

	"github.com/nilgrad/reactor/internal/core"
)

// stateNode is the non-generic proxy engine behind State[T]: a
// property-deps map from field name to its backing source, plus one
// reserved structural source for whole-value reads. Go has no runtime
// proxy mechanism for intercepting arbitrary property access, so this
// tracks each exported struct field as its own source, created lazily
// on first touch, and requires explicit Field/SetField calls in place
// of transparent member syntax.
//
// Nested reactivity is compositional rather than automatic: a field
// typed as *State[Inner], *Slice[T], or *MapState[K,V] is tracked by
// this node like any other value (identity-equal pointer comparison),
// and the nested handle carries its own independent sources. There is
// no mechanism to intercept an arbitrary struct field and wrap it on
// the fly, so the nesting is declared in the type instead of discovered
// at runtime.
type stateNode struct {
	mu         sync.Mutex
	value      reflect.Value // settable struct value
	props      map[string]*core.Signal
	structural *core.Signal
}

func newStateNode(v reflect.Value) *stateNode {
	return &stateNode{
		value:      v,
		props:      make(map[string]*core.Signal),
		structural: core.GetRuntime().NewSignal(0),
	}
}

func (n *stateNode) source(name string) *core.Signal {
	n.mu.Lock()
	defer n.mu.Unlock()
	if s, ok := n.props[name]; ok {
		return s
	}
	field := n.value.FieldByName(name)
	s := core.GetRuntime().NewSignal(field.Interface())
	n.props[name] = s
	return s
}

func (n *stateNode) getField(name string) any {
	return n.source(name).Read()
}

// setField applies reflect.Value.Set unconditionally and then routes
// through the property source's own Write, which performs the
// same-value no-op check and marking.
func (n *stateNode) setField(name string, value any) {
	n.mu.Lock()
	n.value.FieldByName(name).Set(reflect.ValueOf(value))
	n.mu.Unlock()

	n.source(name).Write(value)
}

func (n *stateNode) snapshot() reflect.Value {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

func (n *stateNode) touchStructural() {
	n.structural.Read()
}

func fieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() {
			names = append(names, f.Name)
		}
	}
	return names
}

// State wraps a struct value T as a set of independently tracked
// reactive fields, restricted to exported struct fields.
type State[T any] struct {
	node *stateNode
}

// NewState creates a State seeded from initial. T must be a struct
// type.
func NewState[T any](initial T) *State[T] {
	holder := reflect.New(reflect.TypeOf(initial)).Elem()
	holder.Set(reflect.ValueOf(initial))
	return &State[T]{node: newStateNode(holder)}
}

// Get returns a snapshot of the current struct value. It tracks the
// structural source plus every field's own source, so a consumer that
// reads the whole value re-runs on any field change, not only the ones
// it names explicitly.
func (s *State[T]) Get() T {
	s.node.touchStructural()
	for _, name := range fieldNames(s.node.snapshot().Type()) {
		s.node.source(name).Read()
	}
	return s.node.snapshot().Interface().(T)
}

func (s *State[T]) unwrapRaw() any {
	return s.node.snapshot().Interface()
}

// Field reads a single named field of s, establishing a dependency
// link only on that field's source.
func Field[F any, S any](s *State[S], name string) F {
	return as[F](s.node.getField(name))
}

// SetField writes a single named field of s. A write that does not
// change the value by same-value is a no-op: no version advance,
// no marking.
func SetField[F any, S any](s *State[S], name string, value F) {
	s.node.setField(name, value)
}
