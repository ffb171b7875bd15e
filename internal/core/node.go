package core

// sourcePart is the embeddable state every Source shares: a version
// counter and the doubly linked list of subscriber links.
type sourcePart struct {
	version int64
	subs    *Link
}

func (s *sourcePart) Version() int64   { return s.version }
func (s *sourcePart) subsHead() *Link  { return s.subs }
func (s *sourcePart) addSub(l *Link)   { appendSub(&s.subs, l) }
func (s *sourcePart) removeSub(l *Link) {
	removeSub(&s.subs, l)
}

// consumerPart is the embeddable state every Consumer shares: the
// dependency list observed during its last evaluation and the
// propagation bookkeeping (dirty state, last-seen global version).
type consumerPart struct {
	deps              *Link
	dirty             DirtyState
	lastGlobalVersion int64
}

func (c *consumerPart) depsHead() *Link             { return c.deps }
func (c *consumerPart) addDep(l *Link)               { appendDep(&c.deps, l) }
func (c *consumerPart) Dirty() DirtyState            { return c.dirty }
func (c *consumerPart) SetDirty(d DirtyState)        { c.dirty = d }
func (c *consumerPart) LastGlobalVersion() int64     { return c.lastGlobalVersion }
func (c *consumerPart) SetLastGlobalVersion(v int64) { c.lastGlobalVersion = v }

// clearDeps removes every dependency link, unlinking the consumer from
// each source's subscriber list. Sources with zero subscribers left
// that are themselves cold computeds become collectible.
func (c *consumerPart) clearDeps() {
	for l := c.deps; l != nil; {
		next := l.nextDep
		detachLink(l)
		l = next
	}
	c.deps = nil
}

// markConsumers walks a source's subscribers and marks each dirty, the
// push half of the hybrid propagation algorithm. It does not recurse
// into a marked computed's own subscribers: that computed is now
// scheduled, and if its eventual recompute actually changes its value,
// recompute calls markConsumers again on itself to push further. A
// computed that bails out via its equals function never makes that
// call, so its downstream consumers correctly never get marked at all.
//
// skip, if non-nil, is the consumer whose own synchronous Read() pulled
// this recompute: it is about to receive the fresh value as the return
// of that call and needs no re-mark. Only Computed.recompute's
// pull-triggered mark passes a skip; Signal.Write always marks every
// subscriber, since a write changes a value a consumer already
// finished reading earlier in its own evaluation.
func markConsumers(source Source, sched *Scheduler, skip Consumer) {
	for l := range Subs(source) {
		consumer := l.consumer
		if consumer == skip || consumer.Dirty() == Dirty {
			continue
		}
		consumer.SetDirty(Dirty)
		sched.mark(consumer)
	}
}
