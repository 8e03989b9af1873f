package mutator

import "github.com/nokia/fast/ast"

// bounceBase is one candidate tree produced by a bounce mutator before its
// newly introduced arcs are fed back into the non-bouncing mutators.
// seedU/seedV is the arc EpsilonReachables should be recomputed from to
// discover what just became reachable.
type bounceBase struct {
	ast          *ast.Ast
	seedU, seedV ast.NodeID
}

func (b bounceBase) newArcs(original []ast.Arc) []ast.Arc {
	all := b.ast.EpsilonReachables(b.seedU, b.seedV)
	var fresh []ast.Arc
	for _, arc := range all {
		if !hasArc(original, arc) {
			fresh = append(fresh, arc)
		}
	}
	return fresh
}

func bounceOut(bases []bounceBase, ctx MutateContext, nonBouncing []Mutator) []Candidate {
	var out []Candidate
	for _, b := range bases {
		for _, arc := range b.newArcs(ctx.EpsilonReach) {
			sub := ctx
			sub.Ast = b.ast
			sub.U, sub.V = arc.U, arc.V
			for _, nm := range nonBouncing {
				out = append(out, nm.Mutate(sub)...)
			}
		}
	}
	return out
}

// BouncePlusMutator fires on an upward arc (u,v) whose reverse (v,u) is
// not already epsilon-reachable (i.e. there is no existing loop back to
// u). It synthesizes one or more trees that insert a "+" node, then lets
// every non-bouncing mutator fire on whatever arcs those insertions newly
// expose. BouncePlusMutator itself never contributes a trivial candidate.
type BouncePlusMutator struct {
	NonBouncing []Mutator
}

func (BouncePlusMutator) Name() string { return "BouncePlus" }

func (m BouncePlusMutator) Mutate(ctx MutateContext) []Candidate {
	if !ctx.Ast.IsUpwardArc(ctx.U, ctx.V) {
		return nil
	}
	if hasArc(ctx.EpsilonReach, ast.Arc{U: ctx.V, V: ctx.U}) {
		return nil
	}
	var bases []bounceBase
	if b, ok := m.simple(ctx); ok {
		bases = append(bases, b)
	}
	switch ctx.Ast.Label(ctx.V) {
	case ast.OpConcat:
		bases = append(bases, m.concatSpans(ctx)...)
	case ast.OpAlternation:
		bases = append(bases, m.altSubsets(ctx)...)
	}
	return bounceOut(bases, ctx, m.NonBouncing)
}

// simple wraps u directly: +(u), at u's former position under v.
func (m BouncePlusMutator) simple(ctx MutateContext) (bounceBase, bool) {
	a := ctx.Ast.Copy()
	idx, ok := a.GetArcIndex(ctx.U, ctx.V)
	if !ok {
		return bounceBase{}, false
	}
	plus := a.AddNode(ast.OpPlus)
	a.AppendChild(plus, ctx.U)
	a.SetIthChild(ctx.V, idx, plus)
	return bounceBase{a, ctx.U, plus}, true
}

// concatSpans handles v labeled ".": for each prefix span [j..indexOfU],
// wrap that contiguous run of v's children under +(.(...)).
func (m BouncePlusMutator) concatSpans(ctx MutateContext) []bounceBase {
	idxU, ok := ctx.Ast.GetArcIndex(ctx.U, ctx.V)
	if !ok {
		return nil
	}
	var out []bounceBase
	for j := 0; j < idxU; j++ {
		a := ctx.Ast.Copy()
		kids := a.Children(ctx.V)
		span := append([]ast.NodeID(nil), kids[j:idxU+1]...)
		before := append([]ast.NodeID(nil), kids[:j]...)
		after := append([]ast.NodeID(nil), kids[idxU+1:]...)

		concat := a.AddNode(ast.OpConcat)
		a.SetChildren(concat, span)
		plus := a.AddNode(ast.OpPlus)
		a.AppendChild(plus, concat)

		rest := append(before, plus)
		rest = append(rest, after...)
		a.SetChildren(ctx.V, rest)
		out = append(out, bounceBase{a, concat, plus})
	}
	return out
}

// altSubsets handles v labeled "|": for every proper non-empty subset of
// v's other children, move that subset together with u under +(|(...)).
func (m BouncePlusMutator) altSubsets(ctx MutateContext) []bounceBase {
	var others []ast.NodeID
	for _, c := range ctx.Ast.Children(ctx.V) {
		if c != ctx.U {
			others = append(others, c)
		}
	}
	n := len(others)
	if n == 0 {
		return nil
	}
	full := (1 << uint(n)) - 1
	var out []bounceBase
	for mask := 1; mask < full; mask++ {
		a := ctx.Ast.Copy()
		var subset, notIn []ast.NodeID
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				subset = append(subset, others[i])
			} else {
				notIn = append(notIn, others[i])
			}
		}
		or := a.AddNode(ast.OpAlternation)
		a.SetChildren(or, append([]ast.NodeID{ctx.U}, subset...))
		plus := a.AddNode(ast.OpPlus)
		a.AppendChild(plus, or)

		newVChildren := append(append([]ast.NodeID(nil), notIn...), plus)
		a.SetChildren(ctx.V, newVChildren)
		out = append(out, bounceBase{a, or, plus})
	}
	return out
}

// BounceQuestionMutator is the downward-arc mirror of BouncePlusMutator,
// inserting "?" instead of "+": the host u keeps its identity and one of
// its children (v, or v together with neighbors) is wrapped optionally.
type BounceQuestionMutator struct {
	NonBouncing []Mutator
}

func (BounceQuestionMutator) Name() string { return "BounceQuestion" }

func (m BounceQuestionMutator) Mutate(ctx MutateContext) []Candidate {
	if !ctx.Ast.IsDownwardArc(ctx.U, ctx.V) {
		return nil
	}
	var bases []bounceBase
	if b, ok := m.simple(ctx); ok {
		bases = append(bases, b)
	}
	switch ctx.Ast.Label(ctx.U) {
	case ast.OpConcat:
		bases = append(bases, m.concatSpans(ctx)...)
	case ast.OpAlternation:
		bases = append(bases, m.altSubsets(ctx)...)
	}
	return bounceOut(bases, ctx, m.NonBouncing)
}

func (m BounceQuestionMutator) simple(ctx MutateContext) (bounceBase, bool) {
	a := ctx.Ast.Copy()
	idx, ok := a.GetArcIndex(ctx.U, ctx.V)
	if !ok {
		return bounceBase{}, false
	}
	q := a.AddNode(ast.OpQuestion)
	a.AppendChild(q, ctx.V)
	a.SetIthChild(ctx.U, idx, q)
	return bounceBase{a, ctx.U, q}, true
}

// concatSpans handles u labeled ".": for each span [indexOfV..j] running
// rightward from v, wrap that run under ?(.(...)).
func (m BounceQuestionMutator) concatSpans(ctx MutateContext) []bounceBase {
	idxV, ok := ctx.Ast.GetArcIndex(ctx.U, ctx.V)
	if !ok {
		return nil
	}
	var out []bounceBase
	kidsLen := len(ctx.Ast.Children(ctx.U))
	for j := idxV + 1; j < kidsLen; j++ {
		a := ctx.Ast.Copy()
		kids := a.Children(ctx.U)
		span := append([]ast.NodeID(nil), kids[idxV:j+1]...)
		before := append([]ast.NodeID(nil), kids[:idxV]...)
		after := append([]ast.NodeID(nil), kids[j+1:]...)

		concat := a.AddNode(ast.OpConcat)
		a.SetChildren(concat, span)
		q := a.AddNode(ast.OpQuestion)
		a.AppendChild(q, concat)

		rest := append(before, q)
		rest = append(rest, after...)
		a.SetChildren(ctx.U, rest)
		out = append(out, bounceBase{a, ctx.U, q})
	}
	return out
}

// altSubsets handles u labeled "|": for every proper non-empty subset of
// u's other children, wrap that subset together with v under ?(|(...)).
func (m BounceQuestionMutator) altSubsets(ctx MutateContext) []bounceBase {
	var others []ast.NodeID
	for _, c := range ctx.Ast.Children(ctx.U) {
		if c != ctx.V {
			others = append(others, c)
		}
	}
	n := len(others)
	if n == 0 {
		return nil
	}
	full := (1 << uint(n)) - 1
	var out []bounceBase
	for mask := 1; mask < full; mask++ {
		a := ctx.Ast.Copy()
		var subset, notIn []ast.NodeID
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				subset = append(subset, others[i])
			} else {
				notIn = append(notIn, others[i])
			}
		}
		or := a.AddNode(ast.OpAlternation)
		a.SetChildren(or, append([]ast.NodeID{ctx.V}, subset...))
		q := a.AddNode(ast.OpQuestion)
		a.AppendChild(q, or)

		newUChildren := append(append([]ast.NodeID(nil), notIn...), q)
		a.SetChildren(ctx.U, newUChildren)
		out = append(out, bounceBase{a, ctx.U, q})
	}
	return out
}
