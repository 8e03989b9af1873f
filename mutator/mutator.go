// Package mutator implements the seven AST mutators that produce children
// of a search node: Bot, Activate, Disjunction, DownDot, UpDot,
// BouncePlus and BounceQuestion, built around a small capability
// interface in the spirit of coregex's Prefilter/Mutator-style
// single-method interfaces.
package mutator

import "github.com/nokia/fast/ast"

// Candidate is one (new tree, new active leaf) pair produced by a mutator.
type Candidate struct {
	Ast  *ast.Ast
	Leaf ast.NodeID
}

// MutateContext carries everything a mutator needs to decide whether its
// precondition holds and, if so, build its candidates.
type MutateContext struct {
	// Ast is the tree being extended. Mutators that perform a structural
	// change must call Ast.Copy() before mutating.
	Ast *ast.Ast
	// Symbol is the next alphabet symbol (sigma) being consumed.
	Symbol string
	// U, V are the endpoints of the epsilon-reachable arc under
	// consideration.
	U, V ast.NodeID
	// Prefix is the portion of the current example already consumed,
	// not including Symbol.
	Prefix string
	// PreviousExamples holds every example fully consumed by earlier
	// progression layers (examples[0:i]).
	PreviousExamples []string
	// EpsilonReach is epsilon_reachables(active_leaf, parent(active_leaf))
	// for the search item being expanded.
	EpsilonReach []ast.Arc
	// CurrentExample is the full text of the example currently being
	// walked (examples[i]).
	CurrentExample string
}

// Mutator produces candidate children of a search node for a given arc and
// symbol. A Mutator whose precondition does not hold returns nil: this is
// the ordinary "does not apply" signal, never surfaced as an error.
type Mutator interface {
	Name() string
	Mutate(ctx MutateContext) []Candidate
}

func hasArc(reach []ast.Arc, want ast.Arc) bool {
	for _, a := range reach {
		if a == want {
			return true
		}
	}
	return false
}

// BotMutator fires only against the empty tree (only the root present),
// planting the very first leaf.
type BotMutator struct{}

func (BotMutator) Name() string { return "Bot" }

func (BotMutator) Mutate(ctx MutateContext) []Candidate {
	if !ctx.Ast.IsEmpty() {
		return nil
	}
	a := ctx.Ast.Copy()
	leaf := a.AddNode(ctx.Symbol)
	a.AppendChild(a.Root(), leaf)
	return []Candidate{{a, leaf}}
}

// ActivateMutator fires when v is already a leaf labeled sigma: the
// symbol has already been accounted for structurally, so the mutation is
// simply to make v the new active leaf. No copy is made since nothing is
// changed structurally.
type ActivateMutator struct{}

func (ActivateMutator) Name() string { return "Activate" }

func (ActivateMutator) Mutate(ctx MutateContext) []Candidate {
	if ctx.V == ast.InvalidNode {
		return nil
	}
	lbl := ctx.Ast.Label(ctx.V)
	if !ast.IsLeaf(lbl) || lbl != ctx.Symbol {
		return nil
	}
	return []Candidate{{ctx.Ast, ctx.V}}
}

// DisjunctionMutator fires on a downward arc, inserting an alternation
// between the existing subtree at v and a freshly created sigma leaf.
type DisjunctionMutator struct{}

func (DisjunctionMutator) Name() string { return "Disjunction" }

func (DisjunctionMutator) Mutate(ctx MutateContext) []Candidate {
	if !ctx.Ast.IsDownwardArc(ctx.U, ctx.V) {
		return nil
	}
	a := ctx.Ast.Copy()
	idx, ok := a.GetArcIndex(ctx.U, ctx.V)
	if !ok {
		return nil
	}
	leaf := a.AddNode(ctx.Symbol)
	or := a.AddNode(ast.OpAlternation)
	a.SetChildren(or, []ast.NodeID{ctx.V, leaf})
	a.SetIthChild(ctx.U, idx, or)
	return []Candidate{{a, leaf}}
}

// DownDotMutator fires on a downward arc, inserting a concatenation whose
// left child is an optional sigma leaf and whose right child is the
// existing subtree at v.
type DownDotMutator struct{}

func (DownDotMutator) Name() string { return "DownDot" }

func (DownDotMutator) Mutate(ctx MutateContext) []Candidate {
	if !ctx.Ast.IsDownwardArc(ctx.U, ctx.V) {
		return nil
	}
	a := ctx.Ast.Copy()
	idx, ok := a.GetArcIndex(ctx.U, ctx.V)
	if !ok {
		return nil
	}
	leaf := a.AddNode(ctx.Symbol)
	q := a.AddNode(ast.OpQuestion)
	a.AppendChild(q, leaf)
	dot := a.AddNode(ast.OpConcat)
	a.SetChildren(dot, []ast.NodeID{q, ctx.V})
	a.SetIthChild(ctx.U, idx, dot)
	return []Candidate{{a, leaf}}
}

// UpDotMode controls how UpDotMutator treats the leaf it inserts when the
// tree already recognizes the walked prefix without it.
type UpDotMode int

const (
	// UpDotConservative always wraps the new leaf under a "?" node. This
	// is the behavior frozen from the live code path of the original
	// source and is the default.
	UpDotConservative UpDotMode = iota
	// UpDotAggressive skips the "?" wrap when the resulting tree already
	// recognizes the walked prefix (ending on the new leaf) and every
	// previously consumed example.
	UpDotAggressive
)

// UpDotMutator fires on an upward arc, inserting a concatenation whose
// left child is the already-built subtree at u and whose right child is a
// freshly created sigma leaf.
type UpDotMutator struct {
	Mode UpDotMode
}

func (UpDotMutator) Name() string { return "UpDot" }

func (m UpDotMutator) Mutate(ctx MutateContext) []Candidate {
	if !ctx.Ast.IsUpwardArc(ctx.U, ctx.V) {
		return nil
	}
	a := ctx.Ast.Copy()
	idx, ok := a.GetArcIndex(ctx.U, ctx.V)
	if !ok {
		return nil
	}
	leaf := a.AddNode(ctx.Symbol)
	dot := a.AddNode(ast.OpConcat)
	a.SetChildren(dot, []ast.NodeID{ctx.U, leaf})
	a.SetIthChild(ctx.V, idx, dot)

	wrap := true
	if m.Mode == UpDotAggressive && m.prefixAndPriorAllHold(a, ctx, leaf) {
		wrap = false
	}
	if wrap {
		q := a.AddNode(ast.OpQuestion)
		a.SetIthChild(dot, 1, q)
		a.AppendChild(q, leaf)
	}
	return []Candidate{{a, leaf}}
}

// prefixAndPriorAllHold implements the commented-out aggressive reading:
// skip the "?" wrap when the tree, as built, already recognizes the
// prefix walked so far (ending exactly on the new leaf) and every
// previously consumed example. target_pa_node would be len(prefix)-1 for
// PatternAutomaton input; for plain strings the equivalent check is
// RecognizesPrefix.
func (m UpDotMutator) prefixAndPriorAllHold(a *ast.Ast, ctx MutateContext, leaf ast.NodeID) bool {
	prefix := ctx.Prefix + ctx.Symbol
	if !a.RecognizesPrefix(prefix, leaf) {
		return false
	}
	for _, e := range ctx.PreviousExamples {
		if !a.RecognizesWord(e) {
			return false
		}
	}
	return true
}
