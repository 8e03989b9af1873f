// Package search implements the Cyclic Best-First Search scheduler and
// driver: the family of progression-indexed min-heaps (CBFS) and the main
// cycle that pops, checks, mutates and pushes candidate ASTs.
package search

import (
	"container/heap"
	"errors"

	"github.com/nokia/fast/ast"
)

// ErrEmpty is returned by CBFS.Pop when every queue is drained. Popping
// from an empty CBFS is misuse, not search exhaustion: the driver itself
// checks IsEmpty before calling Pop.
var ErrEmpty = errors.New("search: pop from empty cbfs")

// Item is one entry in a CBFS queue: an AST paired with the progression
// it was reached at and a monotonic sequence number that breaks objective
// ties deterministically.
type Item struct {
	Objective  float64
	Seq        int64
	Ast        *ast.Ast
	ActiveLeaf ast.NodeID
	I, K       int
}

type itemHeap []*Item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].Objective != h[j].Objective {
		return h[i].Objective < h[j].Objective
	}
	return h[i].Seq < h[j].Seq
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)   { *h = append(*h, x.(*Item)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// CBFS is an ordered family of D min-heaps indexed by progression, with a
// rotating pop discipline: after popping quota items from the active
// queue (or finding it empty), advance to the next non-empty queue. This
// prevents shallow, cheap layers from starving progress near a solution.
type CBFS struct {
	queues    []*itemHeap
	popIdx    int
	numPopped int
	quota     int
	numItems  int
}

// NewCBFS creates a CBFS with numQueues progression layers and the given
// per-layer pop quota (1 if quota <= 0).
func NewCBFS(numQueues, quota int) *CBFS {
	if quota <= 0 {
		quota = 1
	}
	qs := make([]*itemHeap, numQueues)
	for i := range qs {
		h := &itemHeap{}
		heap.Init(h)
		qs[i] = h
	}
	return &CBFS{queues: qs, quota: quota}
}

// Push inserts item into the heap at progression d.
func (c *CBFS) Push(item *Item, d int) {
	heap.Push(c.queues[d], item)
	c.numItems++
}

// IsEmpty reports whether every queue is drained.
func (c *CBFS) IsEmpty() bool { return c.numItems <= 0 }

func (c *CBFS) advance() {
	c.popIdx = (c.popIdx + 1) % len(c.queues)
	c.numPopped = 0
}

// Pop returns the minimum item from the active queue, rotating to the
// next non-empty queue first if the quota was reached or the active queue
// is empty.
func (c *CBFS) Pop() (*Item, error) {
	if c.numItems == 0 {
		return nil, ErrEmpty
	}
	if c.numPopped == c.quota {
		c.advance()
	}
	for c.queues[c.popIdx].Len() == 0 {
		c.advance()
	}
	it := heap.Pop(c.queues[c.popIdx]).(*Item)
	c.numPopped++
	c.numItems--
	return it, nil
}
