package search

import (
	"context"
	"fmt"
	"time"

	"github.com/nokia/fast/ast"
	"github.com/nokia/fast/mutator"
	"github.com/nokia/fast/objective"
	"github.com/nokia/fast/visitor"
)

// Solution is one accepted AST the search produced, with the objective
// value it was found at.
type Solution struct {
	Objective float64
	Ast       *ast.Ast
}

// StopCondition decides whether the driver should stop after a given pop,
// given the solutions accumulated so far and the elapsed wall-clock time.
type StopCondition func(results []Solution, elapsedSeconds float64) bool

// FirstSolution stops as soon as one solution has been found, the
// Config.StopCondition default.
func FirstSolution(results []Solution, _ float64) bool { return len(results) >= 1 }

// Timeout stops once elapsedSeconds exceeds max, regardless of solutions
// found; compose with FirstSolution via a small wrapper when both matter.
func Timeout(max float64) StopCondition {
	return func(_ []Solution, elapsed float64) bool { return elapsed >= max }
}

// Config configures a single search run.
type Config struct {
	Objective            objective.Func
	StopCondition        StopCondition
	Mutators             []mutator.Mutator
	Visitor              visitor.Visitor
	MaxPops              int // 0 means unbounded
	Quota                int // CBFS per-layer pop quota, default 1
	FingerprintCacheSize int // objective memo size, 0 means default
}

// DefaultConfig builds the conservative default configuration: the
// additive objective with its default shortness factor, the full
// 7-mutator catalog in conservative UpDot mode, a first-solution stop
// condition and a no-op visitor.
func DefaultConfig(examples, alphabet []string) Config {
	return Config{
		Objective:     objective.NewAdditive(examples, alphabet, -1, -1),
		StopCondition: FirstSolution,
		Mutators:      mutator.Catalog(mutator.UpDotConservative),
		Visitor:       visitor.NoOp{},
		Quota:         1,
	}
}

// Driver runs the CBFS cyclic best-first search to completion or to its
// stop condition.
type Driver struct {
	cfg  Config
	memo *objective.Memo
}

// NewDriver builds a Driver, filling in defaults for zero-valued fields.
func NewDriver(cfg Config) *Driver {
	if cfg.StopCondition == nil {
		cfg.StopCondition = FirstSolution
	}
	if cfg.Visitor == nil {
		cfg.Visitor = visitor.NoOp{}
	}
	if cfg.Quota <= 0 {
		cfg.Quota = 1
	}
	return &Driver{cfg: cfg, memo: objective.NewMemo(cfg.Objective, cfg.FingerprintCacheSize)}
}

func allRecognize(examples []Example, upto int, a *ast.Ast) bool {
	for j := 0; j < upto; j++ {
		if !examples[j].Recognizes(a) {
			return false
		}
	}
	return true
}

// Run executes the main pop-advance-mutate-push cycle over examples,
// returning every solution found before the stop condition fired or the
// queues drained. ctx is an additional cancellation channel layered over
// the stop condition; a nil ctx is treated as context.Background().
func (d *Driver) Run(ctx context.Context, examples []Example) []Solution {
	if ctx == nil {
		ctx = context.Background()
	}
	prefixLen := make([]int, len(examples)+1)
	for i, e := range examples {
		prefixLen[i+1] = prefixLen[i] + e.Len()
	}
	totalChars := prefixLen[len(examples)]
	depthOf := func(i, k int) int { return prefixLen[i] + k }

	cbfs := NewCBFS(totalChars+1, d.cfg.Quota)
	seen := make([]map[string]bool, totalChars+1)
	for i := range seen {
		seen[i] = map[string]bool{}
	}

	var seq int64
	root := ast.New()
	rootItem := &Item{Objective: d.memo.Value(root), Seq: seq, Ast: root, ActiveLeaf: root.Root(), I: 0, K: 0}
	seq++
	cbfs.Push(rootItem, depthOf(0, 0))
	seen[depthOf(0, 0)][root.Fingerprint()] = true

	d.cfg.Visitor.OnInit(len(examples))

	start := time.Now()
	var results []Solution

	pops := 0
	for !cbfs.IsEmpty() {
		if d.cfg.MaxPops > 0 && pops >= d.cfg.MaxPops {
			break
		}
		item, err := cbfs.Pop()
		if err != nil {
			break
		}
		pops++
		d.cfg.Visitor.OnPop(depthOf(item.I, item.K), item.Objective, item.Ast)

		if d.cfg.StopCondition(results, time.Since(start).Seconds()) {
			break
		}
		if ctx.Err() != nil {
			break
		}

		i, k := item.I, item.K
		a := item.Ast
		leaf := item.ActiveLeaf

		if k == examples[i].Len() {
			if !allRecognize(examples, i+1, a) {
				continue
			}
			d.cfg.Visitor.OnEndExample(i)
			i++
			k = 0
			leaf = a.Root()
		}

		if i == len(examples) || allRecognize(examples, len(examples), a) {
			results = append(results, Solution{Objective: item.Objective, Ast: a})
			d.cfg.Visitor.OnFinalSolution(item.Objective, a)
			continue
		}

		reach := a.ReachFrom(leaf)
		prefixText, _ := examples[i].Text()
		if prefixText != "" {
			prefixText = prefixText[:k]
		}
		curText, _ := examples[i].Text()
		var prevTexts []string
		for j := 0; j < i; j++ {
			if t, ok := examples[j].Text(); ok {
				prevTexts = append(prevTexts, t)
			}
		}

		for _, ns := range examples[i].NextSymbols(k) {
			newDepth := depthOf(i, ns.NextK)
			for _, arc := range reach {
				for _, m := range d.cfg.Mutators {
					mctx := mutator.MutateContext{
						Ast:              a,
						Symbol:           ns.Symbol,
						U:                arc.U,
						V:                arc.V,
						Prefix:           prefixText,
						PreviousExamples: prevTexts,
						EpsilonReach:     reach,
						CurrentExample:   curText,
					}
					for _, c := range m.Mutate(mctx) {
						c.Ast.Simplify()
						key := fmt.Sprintf("%s\x00%d", c.Ast.Fingerprint(), c.Leaf)
						if seen[newDepth][key] {
							continue
						}
						seen[newDepth][key] = true
						val := d.memo.Value(c.Ast)
						newItem := &Item{Objective: val, Seq: seq, Ast: c.Ast, ActiveLeaf: c.Leaf, I: i, K: ns.NextK}
						seq++
						cbfs.Push(newItem, newDepth)
						d.cfg.Visitor.OnPush(m.Name(), newDepth, val, c.Ast)
					}
				}
			}
		}
	}
	return results
}
