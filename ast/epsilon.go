package ast

// Arc is a pair of node ids interpreted as a single-step transition: either
// downward (parent(v) == u) or upward (parent(u) == v). Every arc the
// engine ever considers is one of these two kinds.
type Arc struct {
	U, V NodeID
}

// EpsilonSuccessors computes, given the current arc (u,v), which arcs can
// be reached without consuming a symbol. (Root, Root) is the bootstrap arc
// used when the current position is the root itself, before any symbol of
// an example has been consumed.
func (a *Ast) EpsilonSuccessors(u, v NodeID) []Arc {
	if u == a.root && v == a.root {
		if fc, ok := a.FirstChild(a.root); ok {
			return []Arc{{a.root, fc}}
		}
		return nil
	}
	if v == a.root || IsLeaf(a.labels[v]) {
		return nil
	}
	lbl := a.labels[v]
	if a.IsDownwardArc(u, v) {
		switch lbl {
		case OpPlus:
			if fc, ok := a.FirstChild(v); ok {
				return []Arc{{v, fc}}
			}
			return nil
		case OpStar, OpQuestion:
			res := []Arc{{v, u}}
			if fc, ok := a.FirstChild(v); ok {
				res = append(res, Arc{v, fc})
			}
			return res
		case OpConcat:
			if fc, ok := a.FirstChild(v); ok {
				return []Arc{{v, fc}}
			}
			return nil
		case OpAlternation:
			res := make([]Arc, 0, len(a.children[v]))
			for _, c := range a.children[v] {
				res = append(res, Arc{v, c})
			}
			return res
		}
		return nil
	}
	if a.IsUpwardArc(u, v) {
		switch lbl {
		case OpPlus, OpStar:
			return []Arc{{v, u}, {v, a.parentOrRoot(v)}}
		case OpQuestion:
			return []Arc{{v, a.parentOrRoot(v)}}
		case OpConcat:
			if a.IsLastChild(u) {
				return []Arc{{v, a.parentOrRoot(v)}}
			}
			idx, _ := indexOf(a.children[v], u)
			return []Arc{{v, a.children[v][idx+1]}}
		case OpAlternation:
			return []Arc{{v, a.parentOrRoot(v)}}
		}
	}
	return nil
}

func (a *Ast) parentOrRoot(v NodeID) NodeID {
	if p, ok := a.Parent(v); ok {
		return p
	}
	return a.root
}

// EpsilonReachables returns the transitive closure of EpsilonSuccessors
// starting from (u,v), including the seed arc itself. Iteration is a
// deterministic breadth-first worklist so that two calls over equivalent
// trees always enumerate arcs in the same order.
func (a *Ast) EpsilonReachables(u, v NodeID) []Arc {
	seed := Arc{u, v}
	seen := map[Arc]bool{seed: true}
	order := []Arc{seed}
	queue := []Arc{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range a.EpsilonSuccessors(cur.U, cur.V) {
			if !seen[next] {
				seen[next] = true
				order = append(order, next)
				queue = append(queue, next)
			}
		}
	}
	return order
}

// reachFrom computes the epsilon-reachables from the perspective of being
// positioned at node u (a leaf, or the root at the very start of a
// search): ReachFrom(root) uses the bootstrap arc; otherwise it is
// EpsilonReachables(u, parent(u)).
func (a *Ast) reachFrom(u NodeID) []Arc {
	if u == a.root {
		return a.EpsilonReachables(a.root, a.root)
	}
	return a.EpsilonReachables(u, a.parentOrRoot(u))
}

// ReachFrom is the exported form of reachFrom, used by the search driver
// to enumerate epsilon-reachable arcs from the active leaf.
func (a *Ast) ReachFrom(u NodeID) []Arc {
	return a.reachFrom(u)
}

// reachableLeaves filters an arc set down to the leaves it reaches.
func (a *Ast) reachableLeaves(reach []Arc) []NodeID {
	var out []NodeID
	seen := map[NodeID]bool{}
	for _, arc := range reach {
		if arc.V != a.root && IsLeaf(a.labels[arc.V]) && !seen[arc.V] {
			seen[arc.V] = true
			out = append(out, arc.V)
		}
	}
	return out
}

// reachesRoot reports whether reach contains an arc back to the root,
// i.e. whether the position the arcs were computed from is an accepting
// position. The (Root, Root) bootstrap arc does not count.
func (a *Ast) reachesRoot(reach []Arc) bool {
	for _, arc := range reach {
		if arc.V == a.root && arc.U != a.root {
			return true
		}
	}
	return false
}

// WalkOneChar advances every position in cur by one occurrence of symbol,
// returning the resulting set of leaf positions.
func (a *Ast) WalkOneChar(cur []NodeID, symbol string) []NodeID {
	seen := map[NodeID]bool{}
	var next []NodeID
	for _, u := range cur {
		for _, leaf := range a.reachableLeaves(a.reachFrom(u)) {
			if a.labels[leaf] == symbol && !seen[leaf] {
				seen[leaf] = true
				next = append(next, leaf)
			}
		}
	}
	return next
}

// RecognizesWord reports whether walking w symbol-by-symbol from the root
// ends in an accepting position.
func (a *Ast) RecognizesWord(w string) bool {
	cur := []NodeID{a.root}
	for i := 0; i < len(w); i++ {
		cur = a.WalkOneChar(cur, string(w[i]))
		if len(cur) == 0 {
			return false
		}
	}
	for _, u := range cur {
		if a.reachesRoot(a.reachFrom(u)) {
			return true
		}
	}
	return false
}

// RecognizesPrefix reports whether walking w from the root can land
// exactly on targetLeaf (not necessarily an accepting position).
func (a *Ast) RecognizesPrefix(w string, targetLeaf NodeID) bool {
	cur := []NodeID{a.root}
	if len(w) == 0 {
		return targetLeaf == a.root
	}
	for i := 0; i < len(w); i++ {
		cur = a.WalkOneChar(cur, string(w[i]))
		if len(cur) == 0 {
			return false
		}
	}
	for _, u := range cur {
		if u == targetLeaf {
			return true
		}
	}
	return false
}
