package mmap

import (
	"testing"

	"github.com/sigtree/sgt/arena"
)

func TestAnonArenaAllocateGrow(t *testing.T) {
	a, err := New(256, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

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

func TestAnonArenaBaseSurvivesGrow(t *testing.T) {
	a, err := New(256, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	off, err := a.AllocatePage()
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	a.Base()[off] = 0x42
	if err := a.Grow(4); err != nil {
		t.Fatalf("grow: %v", err)
	}
	if a.Base()[off] != 0x42 {
		t.Fatal("expected data to survive growth (Remap must preserve content)")
	}
}
