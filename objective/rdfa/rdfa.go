// Package rdfa is a compact, from-scratch DFA compiler for candidate
// regex ASTs. It builds a Thompson-construction NFA directly from a
// RegexpAst (no surface-syntax parsing involved — the alphabet is
// whatever leaf labels the tree already carries, single characters or
// named patterns alike) and determinizes it via subset construction, in
// the arena-of-states idiom coregex uses for its own NFA (nfa.StateID /
// nfa.State / nfa.StateKind): see DESIGN.md for why coregex's much
// larger regexp/syntax-based compiler was not adapted wholesale.
package rdfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nokia/fast/ast"
	"github.com/nokia/fast/internal/sparse"
)

// StateID indexes a DFA state.
type StateID uint32

// DFA is a deterministic finite automaton over an arbitrary string
// alphabet (leaf labels may be single characters or named pattern
// tokens). State 0 is always the initial state.
type DFA struct {
	Final []bool
	Trans []map[string]StateID
}

// IsFinal reports whether state is an accepting state.
func (d *DFA) IsFinal(state StateID) bool { return d.Final[state] }

// Delta returns the state reached by consuming symbol from state, if any.
func (d *DFA) Delta(state StateID, symbol string) (StateID, bool) {
	next, ok := d.Trans[state][symbol]
	return next, ok
}

// NumStates returns the number of states in the DFA.
func (d *DFA) NumStates() int { return len(d.Final) }

// Accepts reports whether the DFA accepts the given sequence of symbols.
func (d *DFA) Accepts(symbols []string) bool {
	cur := StateID(0)
	for _, s := range symbols {
		next, ok := d.Delta(cur, s)
		if !ok {
			return false
		}
		cur = next
	}
	return d.IsFinal(cur)
}

// --- Thompson construction ---

type nfaKind int

const (
	nfaSymbol nfaKind = iota
	nfaSplit
	nfaMatch
)

type nfaState struct {
	id     int
	kind   nfaKind
	symbol string
	next   *nfaState
	left   *nfaState
	right  *nfaState
}

type nfaBuilder struct {
	states []*nfaState
}

func (b *nfaBuilder) alloc(kind nfaKind) *nfaState {
	s := &nfaState{id: len(b.states), kind: kind}
	b.states = append(b.states, s)
	return s
}

// frag is a partially built NFA fragment: start is its entry state, outs
// is the list of dangling out-pointers still to be patched to whatever
// comes next.
type frag struct {
	start *nfaState
	outs  []**nfaState
}

func patch(outs []**nfaState, target *nfaState) {
	for _, p := range outs {
		*p = target
	}
}

func (b *nfaBuilder) compile(a *ast.Ast, id ast.NodeID) frag {
	label := a.Label(id)
	switch {
	case ast.IsLeaf(label):
		s := b.alloc(nfaSymbol)
		s.symbol = label
		return frag{s, []**nfaState{&s.next}}
	case label == ast.OpPlus:
		child, _ := a.FirstChild(id)
		inner := b.compile(a, child)
		split := b.alloc(nfaSplit)
		patch(inner.outs, split)
		split.left = inner.start
		return frag{inner.start, []**nfaState{&split.right}}
	case label == ast.OpStar:
		child, _ := a.FirstChild(id)
		inner := b.compile(a, child)
		split := b.alloc(nfaSplit)
		split.left = inner.start
		patch(inner.outs, split)
		return frag{split, []**nfaState{&split.right}}
	case label == ast.OpQuestion:
		child, _ := a.FirstChild(id)
		inner := b.compile(a, child)
		split := b.alloc(nfaSplit)
		split.left = inner.start
		outs := append(append([]**nfaState{}, inner.outs...), &split.right)
		return frag{split, outs}
	case label == ast.OpConcat:
		children := a.Children(id)
		cur := b.compile(a, children[0])
		for _, c := range children[1:] {
			next := b.compile(a, c)
			patch(cur.outs, next.start)
			cur = frag{cur.start, next.outs}
		}
		return cur
	case label == ast.OpAlternation:
		children := a.Children(id)
		cur := b.compile(a, children[0])
		for _, c := range children[1:] {
			next := b.compile(a, c)
			split := b.alloc(nfaSplit)
			split.left = cur.start
			split.right = next.start
			cur = frag{split, append(append([]**nfaState{}, cur.outs...), next.outs...)}
		}
		return cur
	}
	// Unreachable for a simplified tree built only from the operators above.
	s := b.alloc(nfaMatch)
	return frag{s, nil}
}

// Compile builds the DFA recognizing exactly the language of a (a whole
// RegexpAst, root included). An empty tree (only the root sentinel)
// compiles to the DFA accepting only the empty sequence.
func Compile(a *ast.Ast) *DFA {
	b := &nfaBuilder{}
	match := b.alloc(nfaMatch)
	root, ok := a.FirstChild(a.Root())
	var start *nfaState
	if !ok {
		start = match
	} else {
		f := b.compile(a, root)
		patch(f.outs, match)
		start = f.start
	}
	return determinize(b.states, start, match)
}

// --- subset construction ---

// epsilonClosure expands seeds through Split states only. Membership is
// tracked with a sparse.SparseSet rather than a map: NFA state ids are a
// dense 0..n-1 range known up front (the builder's arena size), exactly
// the case this set is optimized for — the same structure coregex itself
// uses to dedupe visited NFA states during simulation.
func epsilonClosure(universe uint32, seeds []*nfaState) []*nfaState {
	seen := sparse.NewSparseSet(universe)
	var out []*nfaState
	var stack []*nfaState
	for _, s := range seeds {
		if !seen.Contains(uint32(s.id)) {
			seen.Insert(uint32(s.id))
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, s)
		if s.kind == nfaSplit {
			for _, n := range []*nfaState{s.left, s.right} {
				if n != nil && !seen.Contains(uint32(n.id)) {
					seen.Insert(uint32(n.id))
					stack = append(stack, n)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func closureKey(set []*nfaState) string {
	ids := make([]string, len(set))
	for i, s := range set {
		ids[i] = strconv.Itoa(s.id)
	}
	return strings.Join(ids, ",")
}

func determinize(arena []*nfaState, start, match *nfaState) *DFA {
	universe := uint32(len(arena))
	startSet := epsilonClosure(universe, []*nfaState{start})
	order := []string{closureKey(startSet)}
	sets := map[string][]*nfaState{order[0]: startSet}

	d := &DFA{}
	d.Final = append(d.Final, containsMatch(startSet, match))
	d.Trans = append(d.Trans, map[string]StateID{})
	index := map[string]StateID{order[0]: 0}

	for i := 0; i < len(order); i++ {
		cur := sets[order[i]]
		bySymbol := map[string][]*nfaState{}
		for _, s := range cur {
			if s.kind == nfaSymbol {
				bySymbol[s.symbol] = append(bySymbol[s.symbol], s.next)
			}
		}
		symbols := make([]string, 0, len(bySymbol))
		for sym := range bySymbol {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			nextSet := epsilonClosure(universe, bySymbol[sym])
			key := closureKey(nextSet)
			idx, ok := index[key]
			if !ok {
				idx = StateID(len(order))
				index[key] = idx
				order = append(order, key)
				sets[key] = nextSet
				d.Final = append(d.Final, containsMatch(nextSet, match))
				d.Trans = append(d.Trans, map[string]StateID{})
			}
			d.Trans[i][sym] = idx
		}
	}
	return d
}

func containsMatch(set []*nfaState, match *nfaState) bool {
	for _, s := range set {
		if s == match {
			return true
		}
	}
	return false
}
