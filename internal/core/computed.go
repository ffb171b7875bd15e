package core

// Computed is both a consumer and a source: a lazily-validated,
// memoized derivation. It is cold until some live consumer links to
// it, at which point upstream writes push dirtiness into it instead of
// relying purely on the pull-and-poll path.
type Computed struct {
	sourcePart
	consumerPart
	id int64

	rt *Runtime

	compute func() any
	equals  func(a, b any) bool

	value      any
	hasValue   bool
	panicValue any
	hasPanic   bool

	liveConsumers int
	evaluating    bool
}

func (c *Computed) ID() int64    { return c.id }
func (c *Computed) IsLive() bool { return c.liveConsumers > 0 }

func (r *Runtime) NewComputed(compute func() any) *Computed {
	c := &Computed{
		id:      r.ids.Next(),
		rt:      r,
		compute: compute,
		equals:  SameValue,
	}
	c.dirty = Dirty // first read must always evaluate

	if scope, ok := r.tracker.CurrentScope(); ok {
		scope.addComputed(c)
	}

	return c
}

// SetEquals installs the user-supplied equality function.
func (c *Computed) SetEquals(fn func(a, b any) bool) {
	if fn != nil {
		c.equals = fn
	}
}

// Read validates and recomputes as needed. It panics with the cached
// thrown value if the last evaluation faulted, re-thrown on every read
// until the next successful or faulting re-evaluation, and panics with
// a CircularDependency fault if called re-entrantly from within its own
// evaluation.
func (c *Computed) Read() any {
	if c.evaluating {
		panic(&CircularDependencyError{Computed: c})
	}

	if consumer, ok := c.rt.tracker.CurrentConsumer(); ok {
		link(consumer, c)
	}

	c.revalidate()

	if c.hasPanic {
		panic(c.panicValue)
	}
	return c.value
}

// revalidate is the pull half of the hybrid algorithm: a cheap
// up-to-date check, then a cold short-circuit poll, then recompute.
func (c *Computed) revalidate() {
	c.dirty = Clean

	if c.hasValue || c.hasPanic {
		if c.lastGlobalVersion == c.rt.clock.Now() {
			return
		}
		if !c.anySourceAdvanced() {
			c.lastGlobalVersion = c.rt.clock.Now()
			return
		}
	}

	c.recompute()
}

// anySourceAdvanced polls every previously-observed source's version
// against what was recorded at link time. Only called once this
// computed has a cached value or error, so an empty dep list here means
// it read zero sources last time and can never go stale on its own.
func (c *Computed) anySourceAdvanced() bool {
	for l := range Deps(c) {
		if l.source.Version() != l.observedVersion {
			return true
		}
	}
	return false
}

// recompute clears the link set, runs compute under a fresh tracking
// context, diff-free because clearing first and relinking during the
// call produces the same end state as clear-and-diff, then applies the
// equals bail-out.
func (c *Computed) recompute() {
	c.evaluating = true
	c.clearDeps()

	prev := c.rt.tracker.PushConsumer(c)
	newValue, newPanic, faulted := c.safeCompute()
	c.rt.tracker.PopConsumer(prev)

	c.evaluating = false
	c.lastGlobalVersion = c.rt.clock.Now()

	if faulted {
		c.hasPanic = true
		c.panicValue = newPanic
		c.hasValue = false
		c.version++
		markConsumers(c, c.rt.scheduler, prev)
		return
	}

	changed := c.hasPanic || !c.hasValue || !c.equals(c.value, newValue)
	c.value = newValue
	c.hasPanic = false
	c.panicValue = nil
	c.hasValue = true

	if changed {
		c.version++
		markConsumers(c, c.rt.scheduler, prev)
	}
}

func (c *Computed) safeCompute() (value any, panicValue any, faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			faulted = true
			panicValue = r
		}
	}()
	value = c.compute()
	return
}

// adjustLiveness applies a delta to liveConsumers and, on a cold<->live
// transition, attaches or detaches this computed's own dependency links
// from their sources -- which cascades transitively for computed
// sources.
func (c *Computed) adjustLiveness(delta int) {
	was := c.liveConsumers > 0
	c.liveConsumers += delta
	if c.liveConsumers < 0 {
		c.liveConsumers = 0
	}
	now := c.liveConsumers > 0
	if was == now {
		return
	}

	for l := range Deps(c) {
		if now {
			attachLink(l)
		} else {
			detachLink(l)
		}
	}
}

// Dispose releases this computed's dependency links. Called when the
// owning scope, if it was created inside one, is disposed.
func (c *Computed) Dispose() {
	c.clearDeps()
}
