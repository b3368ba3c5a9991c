package sgt

import (
	"math/rand"
	"testing"
)

func TestMinAtFindsMinimum(t *testing.T) {
	lo := deriveLayout(DefaultPageSize, false)
	buf := make([]byte, lo.pageSize)
	n := newNode(buf, 0, &lo)

	diffs := n.diffs()
	r := rand.New(rand.NewSource(42))
	for i := range diffs[:40] {
		diffs[i] = Diff(r.Intn(60000))
	}
	n.setSize(41)
	pyramidBuild(n, 40, 0)

	want := 0
	for i := 1; i < 40; i++ {
		if diffs[i] < diffs[want] {
			want = i
		}
	}
	got := minAt(n, 0, 40)
	if got != want || diffs[got] != diffs[want] {
		t.Fatalf("minAt mismatch: got idx %d (%d), want idx %d (%d)", got, diffs[got], want, diffs[want])
	}
}

func TestEightWideMin(t *testing.T) {
	group := []Diff{9, 3, 7, 1, 8, 2, 6, 4}
	min, idx := eightWideMin(group)
	if min != 1 || idx != 3 {
		t.Fatalf("expected min 1 at idx 3, got min %d idx %d", min, idx)
	}
}
