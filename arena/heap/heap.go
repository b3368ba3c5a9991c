// Package heap provides a heap-backed arena.Arena: a single growable
// []byte slab with a free-page list, for in-process trees that don't
// need a file or mapping. Free-list reuse is inspired by the recycled
// allocator in flier/goutil's pkg/arena, adapted here to an
// offset-addressed, Grow-capable contract instead of a pointer-based
// Alloc/Release API.
package heap

import (
	"github.com/sigtree/sgt/arena"
)

// Arena is a heap-backed arena.Arena implementation.
type Arena struct {
	pageSize int
	buf      []byte
	next     int64 // offset of the next never-allocated page
	free     []int64
}

// New creates a heap Arena with room for initialPages pages up front.
func New(pageSize, initialPages int) *Arena {
	if pageSize <= 0 {
		pageSize = 4096
	}
	if initialPages < 1 {
		initialPages = 1
	}
	return &Arena{
		pageSize: pageSize,
		buf:      make([]byte, pageSize*initialPages),
	}
}

func (a *Arena) Base() []byte { return a.buf }

func (a *Arena) PageSize() int { return a.pageSize }

func (a *Arena) AllocatePage() (int64, error) {
	if n := len(a.free); n > 0 {
		off := a.free[n-1]
		a.free = a.free[:n-1]
		clear(a.buf[off : off+int64(a.pageSize)])
		return off, nil
	}
	if a.next+int64(a.pageSize) > int64(len(a.buf)) {
		return 0, arena.ErrArenaFull
	}
	off := a.next
	a.next += int64(a.pageSize)
	return off, nil
}

func (a *Arena) FreePage(offset int64) error {
	if offset < 0 || offset+int64(a.pageSize) > int64(len(a.buf)) || offset%int64(a.pageSize) != 0 {
		return arena.ErrBadOffset
	}
	a.free = append(a.free, offset)
	return nil
}

func (a *Arena) Grow(minPages int) error {
	need := int64(minPages) * int64(a.pageSize)
	if a.next+need <= int64(len(a.buf)) {
		return nil
	}
	grown := make([]byte, a.next+need)
	copy(grown, a.buf)
	a.buf = grown
	return nil
}

func (a *Arena) Close() error { return nil }
