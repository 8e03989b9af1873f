package search

import "testing"

func TestCBFSPushPopOrderWithinLayer(t *testing.T) {
	c := NewCBFS(2, 10)
	c.Push(&Item{Objective: 3, Seq: 0}, 0)
	c.Push(&Item{Objective: 1, Seq: 1}, 0)
	c.Push(&Item{Objective: 2, Seq: 2}, 0)

	first, err := c.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if first.Objective != 1 {
		t.Fatalf("first pop objective = %v, want 1 (min-heap order)", first.Objective)
	}
}

func TestCBFSRotatesAcrossLayersByQuota(t *testing.T) {
	c := NewCBFS(2, 1)
	c.Push(&Item{Objective: 0, Seq: 0}, 0)
	c.Push(&Item{Objective: 0, Seq: 1}, 0)
	c.Push(&Item{Objective: 0, Seq: 2}, 1)

	// quota=1: first pop comes from layer 0 (the active layer), the
	// second pop must rotate to layer 1 even though layer 0 still has an
	// item waiting, since quota items have already been popped from it.
	first, err := c.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if first.Seq != 0 {
		t.Fatalf("first popped seq = %d, want 0", first.Seq)
	}
	second, err := c.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if second.Seq != 2 {
		t.Fatalf("second popped seq = %d, want 2 (rotated to layer 1)", second.Seq)
	}
}

func TestCBFSSkipsEmptyLayers(t *testing.T) {
	c := NewCBFS(3, 1)
	c.Push(&Item{Objective: 0, Seq: 0}, 0)
	c.Push(&Item{Objective: 0, Seq: 1}, 2)

	if _, err := c.Pop(); err != nil {
		t.Fatal(err)
	}
	// After exhausting layer 0's quota, the rotation must skip the empty
	// layer 1 and land on layer 2.
	second, err := c.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if second.Seq != 1 {
		t.Fatalf("second popped seq = %d, want 1 (layer 1 skipped)", second.Seq)
	}
}

func TestCBFSPopFromEmptyReturnsErrEmpty(t *testing.T) {
	c := NewCBFS(1, 1)
	if !c.IsEmpty() {
		t.Fatal("fresh CBFS should be empty")
	}
	if _, err := c.Pop(); err != ErrEmpty {
		t.Fatalf("Pop() on empty CBFS: err = %v, want ErrEmpty", err)
	}
}

func TestCBFSVisitsEveryNonEmptyLayerWithinDCycles(t *testing.T) {
	// After D consecutive pops, CBFS has visited at least every
	// non-empty layer once.
	const d = 5
	c := NewCBFS(d, 1)
	for i := 0; i < d; i++ {
		c.Push(&Item{Objective: 0, Seq: int64(i)}, i)
	}
	seenLayers := map[int64]bool{}
	for i := 0; i < d; i++ {
		it, err := c.Pop()
		if err != nil {
			t.Fatal(err)
		}
		seenLayers[it.Seq] = true
	}
	if len(seenLayers) != d {
		t.Fatalf("visited %d distinct layers in %d pops, want %d", len(seenLayers), d, d)
	}
}
