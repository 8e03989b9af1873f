// Package randgen supplies the randomized example/AST generators used by
// benchmarks and fuzz-style tests. Every function here takes an explicit
// *rand.Rand seeded by the caller; nothing in this package calls
// time.Now(), so a given seed always reproduces the same sequence.
package randgen

import (
	"math/rand"

	"github.com/hashicorp/go-uuid"

	"github.com/nokia/fast/ast"
	"github.com/nokia/fast/objective/rdfa"
)

var defaultAlphabet = func() []string {
	out := make([]string, 26)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}()

// RandomAst builds a random AST with exactly size leaf nodes over
// alphabet (default a-z if empty), via a recursive size-split
// construction. The result is deliberately not simplified:
// callers that want a canonical tree call Simplify themselves.
func RandomAst(rng *rand.Rand, size int, alphabet []string) *ast.Ast {
	if len(alphabet) == 0 {
		alphabet = defaultAlphabet
	}
	a := ast.New()
	if size < 1 {
		return a
	}
	root := randomAstRec(a, rng, size, alphabet)
	a.AppendChild(a.Root(), root)
	return a
}

var unaryOps = []string{ast.OpPlus, ast.OpStar, ast.OpQuestion}
var naryOps = []string{ast.OpConcat, ast.OpAlternation}

func randomAstRec(a *ast.Ast, rng *rand.Rand, size int, alphabet []string) ast.NodeID {
	switch {
	case size == 1:
		leaf := a.AddNode(alphabet[rng.Intn(len(alphabet))])
		if rng.Intn(2) == 0 {
			return leaf
		}
		op := a.AddNode(unaryOps[rng.Intn(len(unaryOps))])
		a.AppendChild(op, leaf)
		return op
	default:
		if rng.Intn(2) == 0 {
			op := a.AddNode(naryOps[rng.Intn(len(naryOps))])
			leftSize := 1 + rng.Intn(size-1)
			rightSize := size - leftSize
			left := randomAstRec(a, rng, leftSize, alphabet)
			right := randomAstRec(a, rng, rightSize, alphabet)
			a.SetChildren(op, []ast.NodeID{left, right})
			return op
		}
		op := a.AddNode(unaryOps[rng.Intn(len(unaryOps))])
		child := randomAstRec(a, rng, size, alphabet)
		a.AppendChild(op, child)
		return op
	}
}

// RandomWordFromDFA performs a uniform random walk over d, stopping with
// probability stopProb at every accepting state reached. It rejects and
// retries up to maxSampling times if the walk reaches a state with no
// out-edges without having stopped there (accepting or not), returning
// ("", false) if every attempt is rejected.
func RandomWordFromDFA(rng *rand.Rand, d *rdfa.DFA, stopProb float64, maxSampling int) (string, bool) {
	for attempt := 0; attempt < maxSampling; attempt++ {
		if w, ok := walkOnce(rng, d, stopProb); ok {
			return w, true
		}
	}
	return "", false
}

func walkOnce(rng *rand.Rand, d *rdfa.DFA, stopProb float64) (string, bool) {
	state := rdfa.StateID(0)
	word := ""
	for {
		if d.IsFinal(state) && rng.Float64() < stopProb {
			return word, true
		}
		symbols := make([]string, 0, len(d.Trans[state]))
		for sym := range d.Trans[state] {
			symbols = append(symbols, sym)
		}
		if len(symbols) == 0 {
			return "", false
		}
		sym := symbols[rng.Intn(len(symbols))]
		next, _ := d.Delta(state, sym)
		state = next
		word += sym
	}
}

// RunTag returns a fresh UUID identifying one batch of generated fixtures.
// It is useful only for correlating failures across fuzz runs; it never
// participates in any inference decision.
func RunTag() (string, error) {
	return uuid.GenerateUUID()
}
