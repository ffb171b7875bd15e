package core

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"
)

// DumpGraph renders the live scope/effect/computed tree rooted at sc as
// an ASCII tree, a supplemented introspection feature for debugging and
// tests that want to assert on structure without reaching into
// unexported fields.
func DumpGraph(sc *Scope) string {
	return dumpScope(sc).String()
}

func dumpScope(sc *Scope) *tree.Tree {
	root := tree.NewTree(tree.NodeString(fmt.Sprintf("scope %s", sc.DebugID())))

	for _, e := range sc.effects {
		label := fmt.Sprintf("effect #%d", e.id)
		if e.disposed {
			label += " (disposed)"
		}
		root.AddChild(tree.NewTree(tree.NodeString(label)))
	}

	for _, c := range sc.computeds {
		label := fmt.Sprintf("computed #%d deps=%d", c.id, depCount(c))
		if c.IsLive() {
			label += " (live)"
		} else {
			label += " (cold)"
		}
		root.AddChild(tree.NewTree(tree.NodeString(label)))
	}

	for child := range sc.children() {
		root.AddChild(dumpScope(child))
	}

	return root
}

func depCount(c *Computed) int {
	n := 0
	for range Deps(c) {
		n++
	}
	return n
}
