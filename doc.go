// Package reactor is a fine-grained reactive runtime: signals, lazy
// memoized computeds, eager effects, and a scope-based disposer tree,
// propagated through a push/pull hybrid scheduler that flushes in
// creation order and stays glitch-free across diamond dependencies.
//
// A typical program creates a few signals, derives computeds from them,
// and attaches effects for side effects:
//
//	count := reactor.NewSignal(0)
//	doubled := reactor.NewComputed(func() int { return count.Read() * 2 })
//	reactor.NewEffect(func() func() {
//		fmt.Println("doubled:", doubled.Read())
//		return nil
//	})
//	count.Write(21) // prints "doubled: 42"
//
// Every node belongs to whatever Scope is ambient at creation time;
// disposing a scope tears down every effect and child scope registered
// under it.
package reactor
