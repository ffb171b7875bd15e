package reactor

import "github.com/nilgrad/reactor/internal/core"

// DumpGraph renders the live scope/effect/computed tree rooted at s as
// an ASCII tree (via github.com/m1gwings/treedrawer), a supplemented
// introspection feature for debugging and tests that want to assert on
// graph shape without reaching into internals.
func DumpGraph(s *Scope) string {
	return core.DumpGraph(s.raw)
}
