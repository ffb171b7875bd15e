package reactor

import "github.com/nilgrad/reactor/internal/core"

// Untracked runs fn with the current consumer cleared: reads of any
// signal, computed, or state property inside fn do not establish a
// dependency link.
func Untracked[T any](fn func() T) T {
	var result T
	core.GetRuntime().Tracker().RunUntracked(func() { result = fn() })
	return result
}
