package randgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nokia/fast/ast"
	"github.com/nokia/fast/objective/rdfa"
)

func TestRandomAstHasRequestedLeafCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{1, 2, 5, 12} {
		a := RandomAst(rng, size, nil)
		leaves := countLeaves(a, a.Root())
		require.Equalf(t, size, leaves, "RandomAst(size=%d)", size)
	}
}

func TestRandomAstZeroSizeIsEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := RandomAst(rng, 0, nil)
	require.True(t, a.IsEmpty(), "RandomAst(size=0) should be the empty tree")
}

func TestRandomAstIsDeterministicForAFixedSeed(t *testing.T) {
	a := RandomAst(rand.New(rand.NewSource(42)), 8, nil)
	b := RandomAst(rand.New(rand.NewSource(42)), 8, nil)
	a.Simplify()
	b.Simplify()
	require.Equal(t, a.Fingerprint(), b.Fingerprint(), "same seed must produce the same AST")
}

func TestRandomWordFromDFAProducesAcceptedWords(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := RandomAst(rng, 6, []string{"a", "b"})
	a.Simplify()
	d := rdfa.Compile(a)

	word, ok := RandomWordFromDFA(rng, d, 0.5, 1000)
	if !ok {
		// Every attempt can end at a state with no out-edges before the
		// stop draw succeeds; that is a legitimate "reject every attempt"
		// outcome, not a test failure.
		t.Skip("random tree's DFA accepted no word within the sampling budget")
	}
	symbols := make([]string, len(word))
	for i := 0; i < len(word); i++ {
		symbols[i] = string(word[i])
	}
	require.True(t, d.Accepts(symbols), "RandomWordFromDFA produced a word the DFA rejects: %q", word)
}

func TestRunTagReturnsNonEmptyUUID(t *testing.T) {
	tag, err := RunTag()
	require.NoError(t, err)
	require.NotEmpty(t, tag)
}

func countLeaves(a *ast.Ast, id ast.NodeID) int {
	kids := a.Children(id)
	if len(kids) == 0 {
		if id == a.Root() {
			return 0
		}
		return 1
	}
	total := 0
	for _, c := range kids {
		total += countLeaves(a, c)
	}
	return total
}
