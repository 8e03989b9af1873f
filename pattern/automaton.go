package pattern

import (
	"github.com/nokia/fast/ast"
	"github.com/nokia/fast/search"
)

// Automaton is a PatternAutomaton: a DAG over the positions of a single
// example string whose arcs are labeled by named pattern categories
// matched against substrings, with single-character "any" arcs filling
// the gaps no registered category covers. State 0 is the single initial
// vertex; len(word) is the single final vertex.
type Automaton struct {
	word  string
	edges [][]ast.PAEdge
}

// IsFinal implements ast.PatternGraph.
func (p *Automaton) IsFinal(state int) bool { return state == len(p.word) }

// OutEdges implements ast.PatternGraph.
func (p *Automaton) OutEdges(state int) []ast.PAEdge {
	if state < 0 || state >= len(p.edges) {
		return nil
	}
	return p.edges[state]
}

// Len, NextSymbols, Recognizes, RecognizesPrefix and Text give Automaton
// the exact method set of search.Example, so it satisfies that interface
// without this package importing anything beyond ast and search.
func (p *Automaton) Len() int { return len(p.word) }

func (p *Automaton) NextSymbols(k int) []search.NextSymbol {
	edges := p.OutEdges(k)
	out := make([]search.NextSymbol, len(edges))
	for i, e := range edges {
		out[i] = search.NextSymbol{Symbol: e.Label, NextK: e.Target}
	}
	return out
}

func (p *Automaton) Recognizes(a *ast.Ast) bool {
	return a.RecognizesPA(p, 0)
}

func (p *Automaton) RecognizesPrefix(a *ast.Ast, k int, leaf ast.NodeID) bool {
	return a.RecognizesPAPrefix(p, k, leaf)
}

// Text reports that an Automaton has no plain-string form: the aggressive
// UpDot gate (mutator.UpDotAggressive) that inspects previously-seen text
// simply does not apply to pattern-automaton examples.
func (p *Automaton) Text() (string, bool) { return "", false }

// NewAutomaton builds the PatternAutomaton for word using lib: at every
// position, every registered category is tried and only the single
// longest match across all categories is kept as an out-edge (ties
// broken by Library.Names order) rather than one out-edge per matching
// category; positions no category matches at all get a single-character
// "any" fallback arc.
func NewAutomaton(word string, lib *Library) *Automaton {
	edges := make([][]ast.PAEdge, len(word))
	for i := 0; i < len(word); i++ {
		bestLen := 0
		bestName := ""
		for _, name := range lib.names {
			if l, ok := lib.matchers[name].LongestMatch(word, i); ok && l > bestLen {
				bestLen = l
				bestName = name
			}
		}
		if bestLen > 0 {
			edges[i] = []ast.PAEdge{{Label: bestName, Target: i + bestLen}}
		} else {
			edges[i] = []ast.PAEdge{{Label: "any", Target: i + 1}}
		}
	}
	return &Automaton{word: word, edges: edges}
}
