package sgt

import (
	"unsafe"
)

// DefaultPageSize is the compile-time page size shared by arena and
// tree (§6): 4096 bytes, matching the teacher's own MDBX-compatible
// default page size.
const DefaultPageSize = 4096

// pyramidLevelSizes computes the entry count of each pyramid level for
// an 8-ary tournament tree over `rank` diffs, narrowing from the
// bottom (one entry per 8 diffs) up to a single root entry.
func pyramidLevelSizes(rank int) []int {
	var sizes []int
	n := rank
	for n > 1 {
		n = (n + 7) / 8
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		sizes = []int{1}
	}
	return sizes
}

// layout describes the byte offsets of a Node's fields within one page.
// It is derived once for a given (pageSize, withCache) configuration,
// replacing the C++ template's compile-time NodeRank<> computation
// with a value NewSignatureTree computes for each tree.
type layout struct {
	pageSize    int
	rank        int // R: reps[0..rank], diffs[0..rank-1]
	withCache   bool
	sizeOff     int
	repsOff     int
	diffsOff    int
	cacheOff    int
	pyrValOff   int
	pyrIdxOff   int
	pyrLevels   []int
	pyrValTotal int
	pyrIdxTotal int
	levelBases  []int // offset within pyrVals/pyrIdxes where each level begins
}

// deriveLayout finds the largest rank R such that a Node of this shape
// fits within pageSize bytes (§3: "the largest value such that the node
// layout fits in one page").
func deriveLayout(pageSize int, withCache bool) layout {
	const sizeFieldBytes = 2
	const repBytes = 8
	const diffBytes = 2
	const cacheBytes = 16 * 2

	fits := func(r int) (lo layout, ok bool) {
		if r < 1 {
			return layout{}, false
		}
		off := 0
		lo.sizeOff = off
		off += sizeFieldBytes
		lo.repsOff = off
		off += (r + 1) * repBytes
		lo.diffsOff = off
		off += r * diffBytes
		if withCache {
			lo.cacheOff = off
			off += cacheBytes
		}
		levels := pyramidLevelSizes(r)
		lo.pyrLevels = levels
		lo.pyrValOff = off
		valTotal := 0
		for _, n := range levels {
			valTotal += n
		}
		lo.pyrValTotal = valTotal
		off += valTotal * diffBytes
		lo.pyrIdxOff = off
		lo.pyrIdxTotal = valTotal
		off += valTotal * 1
		lo.pageSize = pageSize
		lo.rank = r
		lo.withCache = withCache
		return lo, off <= pageSize
	}

	// Binary search the largest rank that fits.
	best := layout{}
	lo, hi := 1, pageSize/repBytes
	for lo <= hi {
		mid := (lo + hi) / 2
		if l, ok := fits(mid); ok {
			best = l
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	base := 0
	best.levelBases = make([]int, len(best.pyrLevels))
	for i, n := range best.pyrLevels {
		best.levelBases[i] = base
		base += n
	}
	return best
}

// defaultLayout is the precomputed layout for DefaultPageSize with the
// dense-input cache storage enabled. NewSignatureTree does not use it;
// it derives each tree's layout from that tree's Options.
var defaultLayout = deriveLayout(DefaultPageSize, true)

// node is a thin, pointer-free view over one page's bytes. It never
// owns the bytes: every accessor indexes into a []byte slice fetched
// fresh from the arena's Base(), so a Grow-triggered relocation never
// leaves a node holding a stale pointer (§5: "save the offset, re-read
// base, re-translate").
type node struct {
	buf []byte
	lo  *layout
}

func newNode(base []byte, offset int64, lo *layout) node {
	return node{buf: base[offset : offset+int64(lo.pageSize) : offset+int64(lo.pageSize)], lo: lo}
}

func (n node) size() int {
	return int(uint16(n.buf[n.lo.sizeOff]) | uint16(n.buf[n.lo.sizeOff+1])<<8)
}

func (n node) setSize(v int) {
	n.buf[n.lo.sizeOff] = byte(v)
	n.buf[n.lo.sizeOff+1] = byte(v >> 8)
}

// reps returns the node's record array, reps[0..size()] live.
func (n node) reps() []uint64 {
	p := unsafe.Pointer(&n.buf[n.lo.repsOff])
	return unsafe.Slice((*uint64)(p), n.lo.rank+1)
}

// diffs returns the node's diff array, diffs[0..size()-1] live.
func (n node) diffs() []Diff {
	p := unsafe.Pointer(&n.buf[n.lo.diffsOff])
	return unsafe.Slice((*Diff)(p), n.lo.rank)
}

func (n node) cache() []uint16 {
	if !n.lo.withCache {
		return nil
	}
	p := unsafe.Pointer(&n.buf[n.lo.cacheOff])
	return unsafe.Slice((*uint16)(p), 16)
}

// clearCache invalidates the dense-input cache (§4.3: "invalidated on
// any structural edit of the node").
func (n node) clearCache() {
	c := n.cache()
	for i := range c {
		c[i] = 0
	}
}

func (n node) pyrVals() []Diff {
	p := unsafe.Pointer(&n.buf[n.lo.pyrValOff])
	return unsafe.Slice((*Diff)(p), n.lo.pyrValTotal)
}

func (n node) pyrIdxes() []uint8 {
	p := unsafe.Pointer(&n.buf[n.lo.pyrIdxOff])
	return unsafe.Slice((*uint8)(p), n.lo.pyrIdxTotal)
}

// insertGap opens room for a new diff at diffs[at] and a new rep at
// reps[at+dir], shifting every existing diff at or after 'at' and
// every existing rep at or after 'at+dir' up by one slot. Callers must
// have already checked size() < rank+1.
func (n node) insertGap(at, dir int) {
	sz := n.size()
	reps := n.reps()
	diffs := n.diffs()
	repAt := at + dir
	copy(reps[repAt+1:sz+1], reps[repAt:sz])
	copy(diffs[at+1:sz], diffs[at:sz-1])
	n.setSize(sz + 1)
}

// removeGap removes the diff at diffs[idx] and the rep at reps[idx+dir],
// shifting everything above down by one slot.
func (n node) removeGap(idx, dir int) {
	sz := n.size()
	reps := n.reps()
	diffs := n.diffs()
	repIdx := idx + dir
	copy(reps[repIdx:sz-1], reps[repIdx+1:sz])
	if sz > 1 {
		copy(diffs[idx:sz-2], diffs[idx+1:sz-1])
	}
	n.setSize(sz - 1)
}
