package objective

import (
	"math"

	"github.com/nokia/fast/ast"
	"github.com/nokia/fast/objective/rdfa"
)

// Func scores a candidate AST; lower is better.
type Func func(a *ast.Ast) float64

// Tuple is a lexicographically comparable (size, density) pair, used only
// for benchmarking against the scalar objective variants.
type Tuple struct {
	Size    int
	Density float64
}

// Less implements the lexicographic order: size first, density breaks
// ties.
func (t Tuple) Less(o Tuple) bool {
	if t.Size != o.Size {
		return t.Size < o.Size
	}
	return t.Density < o.Density
}

// TupleFunc returns the (size, density) pair for a candidate AST.
type TupleFunc func(a *ast.Ast) Tuple

const epsilon = 1e-6

// ShortnessFactor is the default additive weight alpha = 1/(2*maxLen),
// chosen so size and density are comparable in magnitude.
func ShortnessFactor(examples []string) float64 {
	maxLen := maxExampleLen(examples)
	if maxLen == 0 {
		return 0.5
	}
	return 1.0 / (2.0 * float64(maxLen))
}

func maxExampleLen(examples []string) int {
	max := 0
	for _, e := range examples {
		if len(e) > max {
			max = len(e)
		}
	}
	return max
}

func uniformLenProba(maxLen int) map[int]float64 {
	m := make(map[int]float64, maxLen)
	for l := 1; l <= maxLen; l++ {
		m[l] = 1.0 / float64(maxLen)
	}
	return m
}

func empiricalLenProba(examples []string) map[int]float64 {
	counts := map[int]int{}
	for _, e := range examples {
		counts[len(e)]++
	}
	m := make(map[int]float64, len(counts))
	for l, c := range counts {
		m[l] = float64(c) / float64(len(examples))
	}
	return m
}

func charProbaFor(alphabet []string) float64 {
	if len(alphabet) == 0 {
		return 1.0
	}
	return 1.0 / float64(len(alphabet))
}

// NewAdditive builds the default objective: alpha*size + (1-alpha)*density,
// alpha defaulting to ShortnessFactor(examples) when sizeFactor<0.
func NewAdditive(examples, alphabet []string, sizeFactor, densityFactor float64) Func {
	if sizeFactor < 0 {
		sizeFactor = ShortnessFactor(examples)
		densityFactor = 1 - sizeFactor
	}
	lenProba := uniformLenProba(maxExampleLen(examples))
	charProba := charProbaFor(alphabet)
	return func(a *ast.Ast) float64 {
		size := float64(a.NumNodes())
		density := astDensity(rdfa.Compile(a), lenProba, charProba)
		return sizeFactor*size + densityFactor*density
	}
}

// NewNormalizedAdditive divides size by the total example size before
// combining, and uses the empirical length-frequency distribution rather
// than a uniform one.
func NewNormalizedAdditive(examples, alphabet []string, sizeFactor, densityFactor float64) Func {
	total := len(examples) + 1
	for _, e := range examples {
		total += len(e)
	}
	lenProba := empiricalLenProba(examples)
	charProba := charProbaFor(alphabet)
	return func(a *ast.Ast) float64 {
		size := float64(a.NumNodes())
		density := astDensity(rdfa.Compile(a), lenProba, charProba)
		return sizeFactor*(size/float64(total)) + densityFactor*density
	}
}

// NewMultiplicative builds max(epsilon, size^sizeExponent) *
// density^densityExponent, for benchmarking alternative trade-offs.
func NewMultiplicative(examples, alphabet []string, sizeExponent, densityExponent float64) Func {
	lenProba := empiricalLenProba(examples)
	charProba := charProbaFor(alphabet)
	return func(a *ast.Ast) float64 {
		size := math.Pow(float64(a.NumNodes()), sizeExponent)
		density := astDensity(rdfa.Compile(a), lenProba, charProba)
		return math.Max(epsilon, size) * math.Pow(density, densityExponent)
	}
}

// NewTuple builds the lexicographic (size, density) benchmarking
// objective.
func NewTuple(examples, alphabet []string) TupleFunc {
	lenProba := empiricalLenProba(examples)
	charProba := charProbaFor(alphabet)
	return func(a *ast.Ast) Tuple {
		density := astDensity(rdfa.Compile(a), lenProba, charProba)
		return Tuple{Size: a.NumNodes(), Density: density}
	}
}
