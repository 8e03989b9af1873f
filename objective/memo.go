package objective

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nokia/fast/ast"
)

// Memo memoizes objective values by an AST's canonical fingerprint
// (without the active leaf: two search items can share an AST while
// differing only in active leaf, and must share a cost). Unlike the
// per-progression-layer dedup set, which must stay exact, this cache is
// a bounded LRU — recomputing an evicted entry is just a cache miss,
// never a correctness issue, so capping its memory is safe.
type Memo struct {
	fn    Func
	cache *lru.Cache[string, float64]
}

// NewMemo wraps fn with an LRU cache of the given size. size<=0 selects a
// large default capacity of 1<<20 entries.
func NewMemo(fn Func, size int) *Memo {
	if size <= 0 {
		size = 1 << 20
	}
	c, err := lru.New[string, float64](size)
	if err != nil {
		// Only returned by golang-lru for size<=0, which we've just
		// guarded against.
		panic(err)
	}
	return &Memo{fn: fn, cache: c}
}

// Value returns fn(a), computing and caching it on the first call for a
// given fingerprint.
func (m *Memo) Value(a *ast.Ast) float64 {
	key := a.Fingerprint()
	if v, ok := m.cache.Get(key); ok {
		return v
	}
	v := m.fn(a)
	m.cache.Add(key, v)
	return v
}
