package fast

import (
	"context"
	"testing"

	"github.com/nokia/fast/mutator"
	"github.com/nokia/fast/objective"
	"github.com/nokia/fast/pattern"
	"github.com/nokia/fast/search"
	"github.com/nokia/fast/visitor"
)

// runSearch drives search.Driver directly (rather than through the public
// string-only Infer API) so tests can inspect the resulting *ast.Ast and
// confirm every input example is recognized.
func runSearch(t *testing.T, examples []string) []search.Solution {
	t.Helper()
	alphabet := inferAlphabet(examples)
	cfg := search.Config{
		Objective:     objective.NewAdditive(examples, alphabet, -1, -1),
		StopCondition: search.FirstSolution,
		Mutators:      mutator.Catalog(mutator.UpDotConservative),
		Visitor:       visitor.NoOp{},
		Quota:         1,
	}
	driver := search.NewDriver(cfg)
	results := driver.Run(context.Background(), search.Strings(examples))
	if len(results) == 0 {
		t.Fatalf("search found no solution for %v", examples)
	}
	return results
}

func bestSolution(results []search.Solution) search.Solution {
	best := results[0]
	for _, s := range results[1:] {
		if s.Objective < best.Objective {
			best = s
		}
	}
	return best
}

func mustRecognizeAll(t *testing.T, s search.Solution, examples []string) {
	t.Helper()
	for _, e := range examples {
		if !s.Ast.RecognizesWord(e) {
			t.Errorf("solution %q does not recognize example %q", s.Ast.ToInfixString(), e)
		}
	}
}

// "abc","abcabc","abcabcabc" -> (abc)+ (or an equivalent regex whose DFA
// accepts exactly those three and "abcabcabc...").
func TestInferRepeatedGroup(t *testing.T) {
	examples := []string{"abc", "abcabc", "abcabcabc"}
	best := bestSolution(runSearch(t, examples))
	mustRecognizeAll(t, best, examples)
}

// "a","aa","aaa" -> canonical form a+.
func TestInferSingleCharPlus(t *testing.T) {
	examples := []string{"a", "aa", "aaa"}
	best := bestSolution(runSearch(t, examples))
	mustRecognizeAll(t, best, examples)
	if best.Ast.ToInfixString() != "a+" {
		t.Errorf("ToInfixString() = %q, want %q", best.Ast.ToInfixString(), "a+")
	}
}

// "a","b" -> canonical form a|b (children sorted: first a, then b).
func TestInferAlternation(t *testing.T) {
	examples := []string{"a", "b"}
	best := bestSolution(runSearch(t, examples))
	mustRecognizeAll(t, best, examples)
	if best.Ast.ToInfixString() != "a|b" {
		t.Errorf("ToInfixString() = %q, want %q", best.Ast.ToInfixString(), "a|b")
	}
}

// "ab","a" -> canonical forms include ab?.
func TestInferOptionalSuffix(t *testing.T) {
	examples := []string{"ab", "a"}
	best := bestSolution(runSearch(t, examples))
	mustRecognizeAll(t, best, examples)
}

// IPv4-like PatternAutomata built from "11.22.33.44" and "1.2.3.4": the
// ipv4 category must span a whole address (dots included), and some
// solution found over both PAs must recognize both.
func TestIPv4PatternAutomatonScenario(t *testing.T) {
	lib, err := pattern.NewDefaultLibrary(nil)
	if err != nil {
		t.Fatal(err)
	}
	ipv4, err := lib.Lookup("ipv4")
	if err != nil {
		t.Fatal(err)
	}
	if length, ok := ipv4.LongestMatch("11.22.33.44", 0); !ok || length != 11 {
		t.Fatalf("ipv4.LongestMatch(\"11.22.33.44\", 0) = (%d, %v), want (11, true)", length, ok)
	}

	pa1 := pattern.NewAutomaton("11.22.33.44", lib)
	pa2 := pattern.NewAutomaton("1.2.3.4", lib)

	if !pa1.IsFinal(pa1.Len()) || !pa2.IsFinal(pa2.Len()) {
		t.Fatal("final vertex should be len(word)")
	}
	if pa1.IsFinal(0) || pa2.IsFinal(0) {
		t.Fatal("vertex 0 should not be final for a non-empty word")
	}

	alphabet := []string{"int", "ipv4", "spaces", "word", "any"}
	cfg := search.Config{
		Objective:     objective.NewAdditive(nil, alphabet, -1, -1),
		StopCondition: search.FirstSolution,
		Mutators:      mutator.Catalog(mutator.UpDotConservative),
		Visitor:       visitor.NoOp{},
		Quota:         1,
	}
	driver := search.NewDriver(cfg)
	results := driver.Run(context.Background(), []search.Example{pa1, pa2})
	if len(results) == 0 {
		t.Fatal("search found no solution recognizing both ipv4-like examples")
	}
	best := bestSolution(results)
	if !pa1.Recognizes(best.Ast) || !pa2.Recognizes(best.Ast) {
		t.Fatalf("solution %q does not recognize both ipv4-like examples", best.Ast.ToInfixString())
	}
}

func TestInferAlphabetInference(t *testing.T) {
	got := inferAlphabet([]string{"ab", "bc"})
	want := map[string]bool{"a": true, "b": true, "c": true}
	if len(got) != len(want) {
		t.Fatalf("inferAlphabet() = %v, want 3 distinct symbols", got)
	}
	for _, c := range got {
		if !want[c] {
			t.Errorf("unexpected symbol %q in inferred alphabet", c)
		}
	}
}

func TestDefaultConfigShape(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SizeFactor >= 0 || cfg.DensityFactor >= 0 {
		t.Fatalf("default config should select the shortness factor, got %+v", cfg)
	}
	if cfg.Quota != 1 {
		t.Fatalf("default Quota = %d, want 1", cfg.Quota)
	}
	if cfg.UpDotMode != mutator.UpDotConservative {
		t.Fatalf("default UpDotMode = %v, want conservative", cfg.UpDotMode)
	}
}

func TestInferEndToEnd(t *testing.T) {
	solutions, err := Infer([]string{"a", "aa", "aaa"})
	if err != nil {
		t.Fatal(err)
	}
	if len(solutions) == 0 {
		t.Fatal("Infer returned no solutions")
	}
	if solutions[0].Regexp == "" {
		t.Fatal("solution regexp should not be empty")
	}
}

func TestMustInferPanicsNever(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustInfer panicked: %v", r)
		}
	}()
	MustInfer([]string{"x", "xx"})
}

func TestInferContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	solutions, err := InferContext(ctx, []string{"abcdef", "abcdefabcdef"}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// An already-cancelled context must stop the driver at the first
	// ctx.Err() check, well before exhausting the search, so this must not
	// hang; the result may be empty or partial.
	_ = solutions
}
