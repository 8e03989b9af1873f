// Package visitor implements the search driver's instrumentation hooks. A
// Visitor is notified of every lifecycle event of a search run; the
// driver never branches on what a Visitor does, so NoOp, Verbose, Metrics
// and Aggregate are interchangeable.
package visitor

import (
	"fmt"
	"io"

	"github.com/nokia/fast/ast"
)

// Visitor receives every lifecycle event of a search run: init, pop,
// push, end-of-example, and final solution.
type Visitor interface {
	OnInit(numExamples int)
	OnPop(depth int, objective float64, a *ast.Ast)
	OnPush(mutatorName string, depth int, objective float64, a *ast.Ast)
	OnEndExample(index int)
	OnFinalSolution(objective float64, a *ast.Ast)
}

// NoOp discards every event; the default Visitor.
type NoOp struct{}

func (NoOp) OnInit(int)                           {}
func (NoOp) OnPop(int, float64, *ast.Ast)         {}
func (NoOp) OnPush(string, int, float64, *ast.Ast) {}
func (NoOp) OnEndExample(int)                     {}
func (NoOp) OnFinalSolution(float64, *ast.Ast)    {}

// Verbose writes one line per event to W, using plain fmt.Fprintf
// logging rather than a structured logging library.
type Verbose struct {
	W io.Writer
}

func (v Verbose) OnInit(numExamples int) {
	fmt.Fprintf(v.W, "init: %d examples\n", numExamples)
}

func (v Verbose) OnPop(depth int, objective float64, a *ast.Ast) {
	fmt.Fprintf(v.W, "pop depth=%d obj=%.4f ast=%s\n", depth, objective, a.ToInfixString())
}

func (v Verbose) OnPush(mutatorName string, depth int, objective float64, a *ast.Ast) {
	fmt.Fprintf(v.W, "push[%s] depth=%d obj=%.4f ast=%s\n", mutatorName, depth, objective, a.ToInfixString())
}

func (v Verbose) OnEndExample(index int) {
	fmt.Fprintf(v.W, "end example %d\n", index)
}

func (v Verbose) OnFinalSolution(objective float64, a *ast.Ast) {
	fmt.Fprintf(v.W, "solution obj=%.4f ast=%s\n", objective, a.ToInfixString())
}

// Metrics counts events without printing anything, for benchmarks that
// need pop/push counts but not a transcript.
type Metrics struct {
	Pops      int
	Pushes    map[string]int
	Solutions int
}

// NewMetrics returns an initialized Metrics visitor.
func NewMetrics() *Metrics {
	return &Metrics{Pushes: map[string]int{}}
}

func (m *Metrics) OnInit(int) {}

func (m *Metrics) OnPop(int, float64, *ast.Ast) { m.Pops++ }

func (m *Metrics) OnPush(mutatorName string, _ int, _ float64, _ *ast.Ast) {
	m.Pushes[mutatorName]++
}

func (m *Metrics) OnEndExample(int) {}

func (m *Metrics) OnFinalSolution(float64, *ast.Ast) { m.Solutions++ }

// Aggregate fans every event out to each of its member Visitors, in
// order.
type Aggregate []Visitor

func (a Aggregate) OnInit(numExamples int) {
	for _, v := range a {
		v.OnInit(numExamples)
	}
}

func (a Aggregate) OnPop(depth int, objective float64, ast *ast.Ast) {
	for _, v := range a {
		v.OnPop(depth, objective, ast)
	}
}

func (a Aggregate) OnPush(mutatorName string, depth int, objective float64, t *ast.Ast) {
	for _, v := range a {
		v.OnPush(mutatorName, depth, objective, t)
	}
}

func (a Aggregate) OnEndExample(index int) {
	for _, v := range a {
		v.OnEndExample(index)
	}
}

func (a Aggregate) OnFinalSolution(objective float64, t *ast.Ast) {
	for _, v := range a {
		v.OnFinalSolution(objective, t)
	}
}
