package ast

// PAEdge is a single out-edge of a PatternAutomaton: it can be walked by
// consuming any leaf labeled Label.
type PAEdge struct {
	Label  string
	Target int
}

// PatternGraph is the minimal view of a pattern_automaton.PatternAutomaton
// the ast package needs in order to run the product recognizer. It lets
// this package avoid importing the pattern package (which itself builds
// on ast), keeping the dependency one-directional.
type PatternGraph interface {
	IsFinal(state int) bool
	OutEdges(state int) []PAEdge
}

type paState struct {
	node NodeID
	pa   int
}

// RecognizesPA runs the product recognizer: a BFS over (ast node, PA
// state) pairs, accepting when some visited state is PA-final and the
// root is epsilon-reachable from its ast node.
func (a *Ast) RecognizesPA(pa PatternGraph, start int) bool {
	seen := map[paState]bool{}
	seed := paState{a.root, start}
	seen[seed] = true
	queue := []paState{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		reach := a.reachFrom(cur.node)
		if pa.IsFinal(cur.pa) && a.reachesRoot(reach) {
			return true
		}
		for _, edge := range pa.OutEdges(cur.pa) {
			for _, leaf := range a.reachableLeaves(reach) {
				if a.labels[leaf] == edge.Label {
					ns := paState{leaf, edge.Target}
					if !seen[ns] {
						seen[ns] = true
						queue = append(queue, ns)
					}
				}
			}
		}
	}
	return false
}

// RecognizesPAPrefix reports whether the product recognizer can reach the
// exact state (targetLeaf, targetPaNode) starting from (root, 0).
func (a *Ast) RecognizesPAPrefix(pa PatternGraph, targetPaNode int, targetLeaf NodeID) bool {
	seen := map[paState]bool{}
	seed := paState{a.root, 0}
	seen[seed] = true
	if seed == (paState{targetLeaf, targetPaNode}) {
		return true
	}
	queue := []paState{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		reach := a.reachFrom(cur.node)
		for _, edge := range pa.OutEdges(cur.pa) {
			for _, leaf := range a.reachableLeaves(reach) {
				if a.labels[leaf] == edge.Label {
					ns := paState{leaf, edge.Target}
					if ns == (paState{targetLeaf, targetPaNode}) {
						return true
					}
					if !seen[ns] {
						seen[ns] = true
						queue = append(queue, ns)
					}
				}
			}
		}
	}
	return false
}
