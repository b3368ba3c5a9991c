package sgt

// The dense-input cache (§4.3) is a pure accelerator: 16 entries keyed
// by the top 4 bits of the node-wide min diff's critical byte, each
// recording an (offset, span) descriptor for the bucket a query with
// that prefix falls into. A zero entry means "not cached"; this
// implementation never writes a nonzero entry and the descent never
// consults the cache, which satisfies §4.3's requirement that a
// correct implementation "may omit the cache entirely" while still
// carrying the storage (node.go's layout) so that node byte layout
// matches a cache-enabled build. clearCache
// (node.go) is still called on every structural edit so that enabling
// the accelerator later is a pure addition, not a correctness fix.

// cacheBucket returns the cache slot index for the top 4 bits of k's
// byte at the node's min-diff byte offset.
func cacheBucket(k []byte, minDiffByteOff int) int {
	b := criticalByte(k, minDiffByteOff)
	return int(b >> 4)
}

// cacheLookup reports whether n has a usable cache entry for k relative
// to the node's min diff. Since nothing writes a nonzero entry (see the
// comment above), it reports a miss for every node this package builds.
// Nothing calls it: descent.go does not consult the cache.
func cacheLookup(n node, minDiffByteOff int, k []byte) (offset, span int, ok bool) {
	c := n.cache()
	if c == nil {
		return 0, 0, false
	}
	entry := c[cacheBucket(k, minDiffByteOff)]
	if entry == 0 {
		return 0, 0, false
	}
	return int(entry >> 8), int(entry & 0xFF), true
}
