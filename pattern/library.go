// Package pattern builds the structural and literal matchers that turn raw
// strings into PatternAutomata. It plays the same role for structural
// categories (int, ipv4, spaces, word) that coregex's
// prefilter.DigitPrefilter plays for digit-run detection, and the same
// role coregex's meta.Engine.ahoCorasick plays for literal alternations.
package pattern

import (
	"github.com/coregx/ahocorasick"

	"github.com/nokia/fast/ast"
	"github.com/nokia/fast/objective/rdfa"
)

// Matcher reports the longest match of its category starting exactly at
// pos in s, if any.
type Matcher interface {
	LongestMatch(s string, pos int) (length int, ok bool)
}

// dfaMatcher drives a compiled rdfa.DFA byte by byte from pos, tracking the
// last position at which the DFA was in an accepting state. This mirrors
// how prefilter.DigitPrefilter scans for digit runs, but generalized to
// whatever structural category the backing AST encodes instead of a single
// hand-written byte scan.
type dfaMatcher struct {
	dfa *rdfa.DFA
}

func (m dfaMatcher) LongestMatch(s string, pos int) (int, bool) {
	state := rdfa.StateID(0)
	best := -1
	if m.dfa.IsFinal(state) {
		best = 0
	}
	for i := pos; i < len(s); i++ {
		sym := string(s[i])
		if sym == "." {
			sym = literalDot
		}
		next, ok := m.dfa.Delta(state, sym)
		if !ok {
			break
		}
		state = next
		if m.dfa.IsFinal(state) {
			best = i - pos + 1
		}
	}
	if best <= 0 {
		return 0, false
	}
	return best, true
}

// keywordMatcher wraps a coregx/ahocorasick automaton, a literal
// multi-pattern engine, repurposed here for keyword-category recognition:
// the one sub-problem in this package that is a literal multi-string
// search rather than a structural one.
type keywordMatcher struct {
	automaton *ahocorasick.Automaton
}

func (m keywordMatcher) LongestMatch(s string, pos int) (int, bool) {
	match := m.automaton.Find([]byte(s[pos:]), 0)
	if match == nil || match.Start != 0 {
		return 0, false
	}
	return match.End, true
}

// Library is a name -> Matcher table, plus the fixed, deterministic
// enumeration order multi_grep's longest-match tie-break relies on.
type Library struct {
	names    []string
	matchers map[string]Matcher
}

func newLibrary() *Library {
	return &Library{matchers: map[string]Matcher{}}
}

func (l *Library) add(name string, m Matcher) {
	l.names = append(l.names, name)
	l.matchers[name] = m
}

// Names returns the registered pattern names in the order they were added
// (int, ipv4, spaces, word, then keyword if configured).
func (l *Library) Names() []string { return l.names }

// Lookup returns the matcher registered under name, or a *LookupError
// wrapping ErrNoPattern.
func (l *Library) Lookup(name string) (Matcher, error) {
	m, ok := l.matchers[name]
	if !ok {
		return nil, &LookupError{Name: name}
	}
	return m, nil
}

// NewDefaultLibrary builds the library's four structural categories (int,
// ipv4, spaces, word) and, when keywords is non-empty, a keyword category
// built from an Aho-Corasick automaton over those literal tokens.
func NewDefaultLibrary(keywords []string) (*Library, error) {
	lib := newLibrary()
	lib.add("int", dfaMatcher{dfa: rdfa.Compile(buildDigitsPlus())})
	lib.add("ipv4", dfaMatcher{dfa: rdfa.Compile(buildIPv4())})
	lib.add("spaces", dfaMatcher{dfa: rdfa.Compile(buildSpacesPlus())})
	lib.add("word", dfaMatcher{dfa: rdfa.Compile(buildWordPlus())})
	if len(keywords) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, kw := range keywords {
			builder.AddPattern([]byte(kw))
		}
		auto, err := builder.Build()
		if err != nil {
			return nil, err
		}
		lib.add("keyword", keywordMatcher{automaton: auto})
	}
	return lib, nil
}

func plusOfAlternatives(chars []string) *ast.Ast {
	a := ast.New()
	var body ast.NodeID
	if len(chars) == 1 {
		body = a.AddNode(chars[0])
	} else {
		body = a.AddNode(ast.OpAlternation)
		children := make([]ast.NodeID, len(chars))
		for i, c := range chars {
			children[i] = a.AddNode(c)
		}
		a.SetChildren(body, children)
	}
	plus := a.AddNode(ast.OpPlus)
	a.AppendChild(plus, body)
	a.AppendChild(a.Root(), plus)
	a.Simplify()
	return a
}

func buildDigitsPlus() *ast.Ast {
	digits := make([]string, 10)
	for d := 0; d < 10; d++ {
		digits[d] = string(rune('0' + d))
	}
	return plusOfAlternatives(digits)
}

func buildSpacesPlus() *ast.Ast {
	return plusOfAlternatives([]string{" ", "\t"})
}

func buildWordPlus() *ast.Ast {
	chars := make([]string, 0, 10+26+26+1)
	for d := 0; d < 10; d++ {
		chars = append(chars, string(rune('0'+d)))
	}
	for c := 'a'; c <= 'z'; c++ {
		chars = append(chars, string(c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		chars = append(chars, string(c))
	}
	chars = append(chars, "_")
	return plusOfAlternatives(chars)
}

// literalDot is the ast leaf label standing in for a literal "."
// character in buildIPv4's separators. It cannot be "." itself: that
// string is ast.OpConcat, so a leaf labeled "." is indistinguishable
// from a nested concat node and gets spliced away by flattenNAry during
// Simplify. dfaMatcher translates an actual '.' byte to this symbol
// before walking the compiled DFA.
const literalDot = `\.`

// buildIPv4 builds four digit-runs separated by literal dots, directly as
// an AST rather than round-tripping through a string syntax (see
// objective/rdfa's package doc for why this codebase compiles ASTs
// directly).
func buildIPv4() *ast.Ast {
	a := ast.New()
	concat := a.AddNode(ast.OpConcat)
	var parts []ast.NodeID
	for i := 0; i < 4; i++ {
		if i > 0 {
			parts = append(parts, a.AddNode(literalDot))
		}
		alt := a.AddNode(ast.OpAlternation)
		digits := make([]ast.NodeID, 10)
		for d := 0; d < 10; d++ {
			digits[d] = a.AddNode(string(rune('0' + d)))
		}
		a.SetChildren(alt, digits)
		plus := a.AddNode(ast.OpPlus)
		a.AppendChild(plus, alt)
		parts = append(parts, plus)
	}
	a.SetChildren(concat, parts)
	a.AppendChild(a.Root(), concat)
	a.Simplify()
	return a
}
