package mutator

import (
	"testing"

	"github.com/nokia/fast/ast"
)

func TestBotMutator(t *testing.T) {
	a := ast.New()
	ctx := MutateContext{Ast: a, Symbol: "a"}
	cands := BotMutator{}.Mutate(ctx)
	if len(cands) != 1 {
		t.Fatalf("Bot on empty ast: got %d candidates, want 1", len(cands))
	}
	if cands[0].Ast.Label(cands[0].Leaf) != "a" {
		t.Fatalf("Bot leaf label = %q, want %q", cands[0].Ast.Label(cands[0].Leaf), "a")
	}

	nonEmpty := cands[0].Ast
	if got := (BotMutator{}.Mutate(MutateContext{Ast: nonEmpty, Symbol: "a"})); got != nil {
		t.Fatalf("Bot on non-empty ast should return nil, got %v", got)
	}
}

func TestActivateMutator(t *testing.T) {
	a := ast.New()
	leaf := a.AddNode("a")
	a.AppendChild(a.Root(), leaf)

	cands := ActivateMutator{}.Mutate(MutateContext{Ast: a, Symbol: "a", V: leaf})
	if len(cands) != 1 || cands[0].Leaf != leaf || cands[0].Ast != a {
		t.Fatalf("Activate should reuse the existing ast and leaf unchanged, got %+v", cands)
	}

	if got := (ActivateMutator{}.Mutate(MutateContext{Ast: a, Symbol: "b", V: leaf})); got != nil {
		t.Fatalf("Activate with mismatched symbol should return nil, got %v", got)
	}
}

func TestDisjunctionMutator(t *testing.T) {
	a := ast.New()
	leaf := a.AddNode("a")
	a.AppendChild(a.Root(), leaf)

	ctx := MutateContext{Ast: a, Symbol: "b", U: a.Root(), V: leaf}
	cands := DisjunctionMutator{}.Mutate(ctx)
	if len(cands) != 1 {
		t.Fatalf("Disjunction: got %d candidates, want 1", len(cands))
	}
	c := cands[0]
	if c.Ast.Label(c.Leaf) != "b" {
		t.Fatalf("new leaf label = %q, want %q", c.Ast.Label(c.Leaf), "b")
	}
	c.Ast.Simplify()
	if got := c.Ast.ToInfixString(); got != "a|b" {
		t.Fatalf("ToInfixString() = %q, want %q", got, "a|b")
	}
}

func TestDownDotMutator(t *testing.T) {
	a := ast.New()
	leaf := a.AddNode("a")
	a.AppendChild(a.Root(), leaf)

	ctx := MutateContext{Ast: a, Symbol: "b", U: a.Root(), V: leaf}
	cands := DownDotMutator{}.Mutate(ctx)
	if len(cands) != 1 {
		t.Fatalf("DownDot: got %d candidates, want 1", len(cands))
	}
	c := cands[0]
	c.Ast.Simplify()
	if got := c.Ast.ToInfixString(); got != "b?a" {
		t.Fatalf("ToInfixString() = %q, want %q", got, "b?a")
	}
}

func TestUpDotMutatorConservativeAlwaysWraps(t *testing.T) {
	a := ast.New()
	leaf := a.AddNode("a")
	a.AppendChild(a.Root(), leaf)

	ctx := MutateContext{Ast: a, Symbol: "b", U: leaf, V: a.Root()}
	cands := UpDotMutator{Mode: UpDotConservative}.Mutate(ctx)
	if len(cands) != 1 {
		t.Fatalf("UpDot: got %d candidates, want 1", len(cands))
	}
	c := cands[0]
	c.Ast.Simplify()
	if got := c.Ast.ToInfixString(); got != "ab?" {
		t.Fatalf("ToInfixString() = %q, want %q (conservative always wraps)", got, "ab?")
	}
}

func TestBouncePlusSimpleIntroducesLoop(t *testing.T) {
	// ast: root -> . -> (a, b), active leaf b, upward arc (b, concat).
	a := ast.New()
	concat := a.AddNode(ast.OpConcat)
	la := a.AddNode("a")
	lb := a.AddNode("b")
	a.SetChildren(concat, []ast.NodeID{la, lb})
	a.AppendChild(a.Root(), concat)

	reach := a.ReachFrom(lb)
	ctx := MutateContext{
		Ast:          a,
		Symbol:       "a",
		U:            lb,
		V:            concat,
		EpsilonReach: reach,
	}
	bp := BouncePlusMutator{NonBouncing: NonBouncing()}
	cands := bp.Mutate(ctx)
	if len(cands) == 0 {
		t.Fatal("BouncePlus on (ab) upward arc should produce at least one candidate")
	}
}
