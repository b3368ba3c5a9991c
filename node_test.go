package sgt

import "testing"

func TestDeriveLayoutFitsPage(t *testing.T) {
	lo := deriveLayout(DefaultPageSize, true)
	if lo.rank < 1 {
		t.Fatalf("expected a positive rank, got %d", lo.rank)
	}
	total := lo.pyrIdxOff + lo.pyrIdxTotal
	if total > DefaultPageSize {
		t.Fatalf("layout overflows page: %d > %d", total, DefaultPageSize)
	}
	// One more rank would not fit (rank is the largest that does).
	next := lo.rank + 1
	pyr := 0
	for _, n := range pyramidLevelSizes(next) {
		pyr += n
	}
	if need := 2 + (next+1)*8 + next*2 + 16*2 + pyr*3; need <= DefaultPageSize {
		t.Fatalf("rank %d would also fit (%d bytes); rank %d is not the largest", next, need, lo.rank)
	}
}

func TestNodeInsertRemoveGapRoundTrip(t *testing.T) {
	lo := deriveLayout(DefaultPageSize, false)
	buf := make([]byte, lo.pageSize)
	n := newNode(buf, 0, &lo)
	n.setSize(1)
	n.reps()[0] = 100

	n.insertGap(0, 1) // new rep goes to the right of index 0
	n.diffs()[0] = 5
	n.reps()[1] = 200

	if n.size() != 2 {
		t.Fatalf("expected size 2, got %d", n.size())
	}
	if n.reps()[0] != 100 || n.reps()[1] != 200 {
		t.Fatalf("unexpected reps after insert: %v", n.reps()[:2])
	}

	n.insertGap(0, 0) // new rep goes to the left of index 0
	n.diffs()[0] = 3
	n.reps()[0] = 50

	if got := n.reps()[:3]; got[0] != 50 || got[1] != 100 || got[2] != 200 {
		t.Fatalf("unexpected reps after second insert: %v", got)
	}
	if got := n.diffs()[:2]; got[0] != 3 || got[1] != 5 {
		t.Fatalf("unexpected diffs after second insert: %v", got)
	}

	n.removeGap(0, 0) // remove the leftmost rep (50) and its diff
	if got := n.reps()[:2]; got[0] != 100 || got[1] != 200 {
		t.Fatalf("unexpected reps after remove: %v", got)
	}
	if n.size() != 2 {
		t.Fatalf("expected size 2 after remove, got %d", n.size())
	}
}

func TestPyramidLevelSizesShrinkToOne(t *testing.T) {
	levels := pyramidLevelSizes(384)
	if len(levels) == 0 {
		t.Fatal("expected at least one level")
	}
	if levels[len(levels)-1] != 1 {
		t.Fatalf("expected the top level to have one entry, got %d", levels[len(levels)-1])
	}
}
