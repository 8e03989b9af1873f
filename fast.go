// Package fast infers a compact, low-density regular expression from a set
// of positive string or PatternAutomaton examples.
//
// It performs a Cyclic Best-First Search (search.CBFS) over an n-ary
// RegexpAst (ast.Ast), extending one candidate tree at a time with a
// catalog of structural mutators (mutator.Catalog) and scoring each
// candidate with an objective function trading expression size against
// language density (objective.NewAdditive). The search never parses a
// regex surface syntax; every candidate is built structurally from the
// examples themselves.
//
// Basic usage:
//
//	solutions, err := fast.Infer([]string{"abc", "abcabc", "abcabcabc"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(solutions[0].Regexp) // "(abc)+"
package fast

import (
	"context"

	"github.com/nokia/fast/mutator"
	"github.com/nokia/fast/objective"
	"github.com/nokia/fast/search"
	"github.com/nokia/fast/visitor"
)

// Solution is one accepted inference result: its objective value and the
// infix regular expression of the AST that achieved it.
type Solution struct {
	Objective float64
	Regexp    string
}

// Config configures a single Infer call. The zero Config is not usable
// directly; start from DefaultConfig.
type Config struct {
	// Alphabet lists every symbol (single characters or named pattern
	// labels) the objective function's density approximation should treat
	// as available. When empty, it is inferred from the example
	// characters actually seen.
	Alphabet []string
	// SizeFactor/DensityFactor weight the additive objective
	// (SizeFactor*size + DensityFactor*density). SizeFactor<0 selects the
	// default shortness factor 1/(2*maxLen).
	SizeFactor, DensityFactor float64
	// UpDotMode controls the UpDotMutator "?"-wrap gate (mutator.UpDotMode).
	UpDotMode mutator.UpDotMode
	// StopCondition decides when to stop searching; defaults to stopping
	// after the first solution.
	StopCondition search.StopCondition
	// Visitor observes every lifecycle event of the search; defaults to
	// visitor.NoOp{}.
	Visitor visitor.Visitor
	// MaxPops hard-caps the number of CBFS pops performed, 0 meaning
	// unbounded. This is a safety valve distinct from StopCondition.
	MaxPops int
	// Quota is the CBFS per-layer pop quota before rotating to the next
	// progression (default 1).
	Quota int
	// FingerprintCacheSize bounds the objective-value memo (0 means a
	// large default).
	FingerprintCacheSize int
}

// DefaultConfig returns the conservative default configuration: the
// additive objective with its default shortness factor, conservative
// UpDot mode, first-solution stop condition, no-op visitor.
func DefaultConfig() Config {
	return Config{
		SizeFactor:    -1,
		DensityFactor: -1,
		UpDotMode:     mutator.UpDotConservative,
		Quota:         1,
	}
}

func inferAlphabet(examples []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range examples {
		for i := 0; i < len(e); i++ {
			c := string(e[i])
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func (c Config) toSearchConfig(examples []string) search.Config {
	alphabet := c.Alphabet
	if len(alphabet) == 0 {
		alphabet = inferAlphabet(examples)
	}
	v := c.Visitor
	if v == nil {
		v = visitor.NoOp{}
	}
	stop := c.StopCondition
	if stop == nil {
		stop = search.FirstSolution
	}
	return search.Config{
		Objective:            objective.NewAdditive(examples, alphabet, c.SizeFactor, c.DensityFactor),
		StopCondition:        stop,
		Mutators:             mutator.Catalog(c.UpDotMode),
		Visitor:              v,
		MaxPops:              c.MaxPops,
		Quota:                c.Quota,
		FingerprintCacheSize: c.FingerprintCacheSize,
	}
}

// Infer searches for regular expressions recognizing every one of the
// given positive string examples, returning every solution found before the
// configured stop condition fired, ordered by when the driver popped
// them (not necessarily by objective value — callers that want the best
// solution found should scan for the minimum Objective).
func Infer(examples []string) ([]Solution, error) {
	return InferWithConfig(examples, DefaultConfig())
}

// InferWithConfig is Infer with explicit configuration.
func InferWithConfig(examples []string, cfg Config) ([]Solution, error) {
	return InferContext(context.Background(), examples, cfg)
}

// InferContext is InferWithConfig with a cancellable context, the one
// operation in this package that accepts one: CBFS search is otherwise
// unbounded, unlike coregex's own O(n)-bounded Match/Find.
func InferContext(ctx context.Context, examples []string, cfg Config) ([]Solution, error) {
	driver := search.NewDriver(cfg.toSearchConfig(examples))
	results := driver.Run(ctx, search.Strings(examples))
	out := make([]Solution, len(results))
	for i, r := range results {
		out[i] = Solution{Objective: r.Objective, Regexp: r.Ast.ToInfixString()}
	}
	return out, nil
}

// MustInfer is Infer but panics instead of returning an error.
func MustInfer(examples []string) []Solution {
	solutions, err := Infer(examples)
	if err != nil {
		panic("fast: Infer: " + err.Error())
	}
	return solutions
}
