package heap

import (
	"testing"

	"github.com/sigtree/sgt/arena"
)

func TestAllocateFreeReuse(t *testing.T) {
	a := New(256, 2)
	off1, err := a.AllocatePage()
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	off2, err := a.AllocatePage()
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if off1 == off2 {
		t.Fatal("expected distinct offsets")
	}

	if err := a.FreePage(off1); err != nil {
		t.Fatalf("free: %v", err)
	}
	off3, err := a.AllocatePage()
	if err != nil {
		t.Fatalf("allocate after free: %v", err)
	}
	if off3 != off1 {
		t.Fatalf("expected freed page to be reused, got %d want %d", off3, off1)
	}
}

func TestAllocateExhaustsThenGrows(t *testing.T) {
	a := New(128, 1)
	if _, err := a.AllocatePage(); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if _, err := a.AllocatePage(); err != arena.ErrArenaFull {
		t.Fatalf("expected ErrArenaFull, got %v", err)
	}
	if err := a.Grow(2); err != nil {
		t.Fatalf("grow: %v", err)
	}
	if _, err := a.AllocatePage(); err != nil {
		t.Fatalf("allocate after grow: %v", err)
	}
}

func TestFreePageRejectsBadOffset(t *testing.T) {
	a := New(128, 1)
	if err := a.FreePage(999); err != arena.ErrBadOffset {
		t.Fatalf("expected ErrBadOffset, got %v", err)
	}
}
