// Package arena defines the page-pool contract a Signature Tree is built
// on top of. A tree never allocates node memory directly; it asks an
// Arena for pages by offset and re-derives every cached pointer from
// Base() after each operation, because Grow may relocate the backing
// store.
package arena

import "errors"

// ErrArenaFull is returned by AllocatePage when the arena has exhausted
// its reserved address space and cannot satisfy the request without a
// Grow call from the caller.
var ErrArenaFull = errors.New("arena: full")

// ErrBadOffset is returned by FreePage when given an offset that does
// not correspond to a page previously returned by AllocatePage.
var ErrBadOffset = errors.New("arena: bad offset")

// Arena is the page-pool contract required by the sgt package. Offsets
// are always relative to Base() and measured in bytes; PageSize is
// fixed for the lifetime of an Arena.
//
// Base() may return a different pointer after Grow; callers must never
// cache the []byte returned by Base across a call that can trigger
// growth (AllocatePage, Grow itself).
type Arena interface {
	// Base returns the current backing slice. Index by page offset to
	// reach a page's bytes: Base()[offset : offset+PageSize()].
	Base() []byte

	// PageSize returns the fixed page size in bytes.
	PageSize() int

	// AllocatePage returns the offset of a free page, zeroed, sized
	// PageSize(). Returns ErrArenaFull if none is available and the
	// arena did not grow itself to satisfy the request.
	AllocatePage() (offset int64, err error)

	// FreePage returns the page at offset to the free list for reuse.
	FreePage(offset int64) error

	// Grow extends the arena's reserved space so that at least
	// minPages additional pages can be allocated. It may invalidate
	// the slice previously returned by Base.
	Grow(minPages int) error

	// Close releases any resources (file descriptors, mappings) held
	// by the arena.
	Close() error
}
