package reactor

import "github.com/nilgrad/reactor/internal/core"

// Computed is a lazily validated, memoized derivation: both a consumer
// of whatever it reads and a source for whatever reads it.
// It is cold until some live consumer links to it, at which point
// upstream writes push dirtiness to it instead of relying purely on
// polling at read time.
type Computed[T any] struct {
	raw *core.Computed
}

// NewComputed creates a computed deriving its value from compute. The
// default equality is same-value; override with SetEquals.
func NewComputed[T any](compute func() T) *Computed[T] {
	raw := core.GetRuntime().NewComputed(func() any { return compute() })
	return &Computed[T]{raw: raw}
}

// Read validates and, if necessary, recomputes the value, then returns
// it. If the last evaluation panicked, the same value is re-panicked
// here until the computed is next successfully or unsuccessfully
// re-evaluated.
func (c *Computed[T]) Read() T {
	return as[T](c.raw.Read())
}

// SetEquals installs the equality used for the lazy bail-out in step 5:
// when the freshly computed value equals the previous one, consumers
// are not notified even though lastGlobalVersion advances.
func (c *Computed[T]) SetEquals(fn func(a, b T) bool) {
	c.raw.SetEquals(func(a, b any) bool { return fn(as[T](a), as[T](b)) })
}
