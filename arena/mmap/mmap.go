// Package mmap provides an mmap-backed arena.Arena, built on the
// platform primitives adapted from gdbx's own mmap/ package (see
// arena/mmap/platform). Growth reuses platform.Map.Grow, which remaps
// the region and may move it; callers must re-derive any cached
// pointer from Base() after a call that can grow the arena.
package mmap

import (
	"github.com/sigtree/sgt/arena"
	"github.com/sigtree/sgt/arena/mmap/platform"
)

// Arena is an mmap-backed arena.Arena, anonymous (no backing file).
type Arena struct {
	m        *platform.Map
	pageSize int
	next     int64
	free     []int64
}

// New creates an anonymous mmap Arena with room for initialPages pages.
func New(pageSize, initialPages int) (*Arena, error) {
	if pageSize <= 0 {
		pageSize = 4096
	}
	if initialPages < 1 {
		initialPages = 1
	}
	m, err := platform.NewAnon(pageSize*initialPages, true)
	if err != nil {
		return nil, err
	}
	return &Arena{m: m, pageSize: pageSize}, nil
}

func (a *Arena) Base() []byte { return a.m.Data() }

func (a *Arena) PageSize() int { return a.pageSize }

func (a *Arena) AllocatePage() (int64, error) {
	if n := len(a.free); n > 0 {
		off := a.free[n-1]
		a.free = a.free[:n-1]
		clear(a.m.Data()[off : off+int64(a.pageSize)])
		return off, nil
	}
	if a.next+int64(a.pageSize) > a.m.Size() {
		return 0, arena.ErrArenaFull
	}
	off := a.next
	a.next += int64(a.pageSize)
	return off, nil
}

func (a *Arena) FreePage(offset int64) error {
	if offset < 0 || offset+int64(a.pageSize) > a.m.Size() || offset%int64(a.pageSize) != 0 {
		return arena.ErrBadOffset
	}
	a.free = append(a.free, offset)
	return nil
}

func (a *Arena) Grow(minPages int) error {
	need := a.next + int64(minPages)*int64(a.pageSize)
	return a.m.Grow(need, int64(a.pageSize))
}

func (a *Arena) Close() error {
	return a.m.Close()
}
