package core

// DirtyState is a consumer's position in the propagation machine.
type DirtyState int

const (
	Clean DirtyState = iota
	MaybeDirty
	Dirty
)

// Source is the abstract source-node contract: publish a version that
// advances on value-changing writes, and accept/remove consumer links.
type Source interface {
	ID() int64
	Version() int64
	addSub(l *Link)
	removeSub(l *Link)
	subsHead() *Link
}

// Consumer is the abstract consumer-node contract: remember the sources
// observed during the last evaluation, in observation order, and carry
// the dirty/version bookkeeping the scheduler needs.
type Consumer interface {
	ID() int64
	addDep(l *Link)
	clearDeps()
	depsHead() *Link
	Dirty() DirtyState
	SetDirty(DirtyState)
	LastGlobalVersion() int64
	SetLastGlobalVersion(int64)
	// IsLive reports whether this consumer currently participates in the
	// push path (an effect, or a computed with at least one live
	// downstream consumer).
	IsLive() bool
}

// Link is the directed edge (source, consumer): it carries the
// source's version as last observed by the consumer. It is doubly
// linked into both the consumer's dependency list (observation order)
// and the source's subscriber list.
type Link struct {
	source   Source
	consumer Consumer

	observedVersion int64

	// attached reports whether this link currently occupies a slot in
	// source's subscriber list. A consumer always remembers every link
	// it reads, for the cold short-circuit poll, but a link is only
	// attached on the source side while the consumer is live: only
	// effects and live computeds appear in a source's consumer set.
	attached bool

	prevDep, nextDep *Link
	prevSub, nextSub *Link
}

// link creates a bidirectional dependency edge between consumer and
// source, recording the source's current version as observed. If the
// consumer's most recently observed dependency is already this source,
// the common case of re-reading the same source twice in one
// evaluation, it reuses that link and only refreshes its observed
// version.
func link(consumer Consumer, source Source) *Link {
	if tail := lastDep(consumer); tail != nil && tail.source == source {
		tail.observedVersion = source.Version()
		return tail
	}

	l := &Link{source: source, consumer: consumer, observedVersion: source.Version()}
	consumer.addDep(l)
	if consumer.IsLive() {
		attachLink(l)
	}
	return l
}

// attachLink occupies l's slot in its source's subscriber list. If the
// source is itself a computed, this may promote it from cold to live,
// which cascades into attaching the computed's own dependency links.
func attachLink(l *Link) {
	if l.attached {
		return
	}
	l.source.addSub(l)
	l.attached = true
	if c, ok := l.source.(*Computed); ok {
		c.adjustLiveness(1)
	}
}

// detachLink is attachLink's inverse, used when a consumer stops
// observing a source (recompute dropped it, or the consumer disposed).
func detachLink(l *Link) {
	if !l.attached {
		return
	}
	l.source.removeSub(l)
	l.attached = false
	if c, ok := l.source.(*Computed); ok {
		c.adjustLiveness(-1)
	}
}

func lastDep(consumer Consumer) *Link {
	head := consumer.depsHead()
	if head == nil {
		return nil
	}
	return head.prevDep
}

// appendDep appends l to the tail of head's circular-prev list, an O(1)
// splice-on-append.
func appendDep(head **Link, l *Link) {
	if *head == nil {
		*head = l
		l.prevDep = l
		l.nextDep = nil
		return
	}

	tail := (*head).prevDep
	tail.nextDep = l
	l.prevDep = tail
	l.nextDep = nil
	(*head).prevDep = l
}

func appendSub(head **Link, l *Link) {
	if *head == nil {
		*head = l
		l.prevSub = l
		l.nextSub = nil
		return
	}

	tail := (*head).prevSub
	tail.nextSub = l
	l.prevSub = tail
	l.nextSub = nil
	(*head).prevSub = l
}

// removeSub unlinks l from head's subscriber list.
func removeSub(head **Link, l *Link) {
	if l.prevSub == l {
		*head = nil
		l.prevSub, l.nextSub = nil, nil
		return
	}

	if l == *head {
		*head = l.nextSub
	} else {
		l.prevSub.nextSub = l.nextSub
	}

	if l.nextSub != nil {
		l.nextSub.prevSub = l.prevSub
	} else {
		(*head).prevSub = l.prevSub
	}

	l.prevSub, l.nextSub = nil, nil
}

// Deps iterates a consumer's dependency links in observation order.
func Deps(consumer Consumer) func(yield func(*Link) bool) {
	return func(yield func(*Link) bool) {
		for l := consumer.depsHead(); l != nil; l = l.nextDep {
			if !yield(l) {
				return
			}
		}
	}
}

// Subs iterates a source's subscriber links.
func Subs(source Source) func(yield func(*Link) bool) {
	return func(yield func(*Link) bool) {
		for l := source.subsHead(); l != nil; l = l.nextSub {
			if !yield(l) {
				return
			}
		}
	}
}
