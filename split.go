package sgt

// splitNode implements §4.6's Split for a full node: it hands a
// contiguous run of the node's records and diffs that forms a whole
// subtree, holding at most half the node's records, off to a freshly
// allocated child page and replaces that run, in place, with a
// single packed pointer to the child. The node shrinks; no parent
// bookkeeping is required because the split is entirely local to the
// node (the node that was full simply gains one more internal pointer
// among its own records).
//
// This implementation always allocates a fresh child rather than first
// searching for an existing adjacent child to grow into (§4.6 step 1):
// the search-for-adjacent-child optimization is skipped as a
// deliberate simplification (see DESIGN.md) in favor of the
// unconditionally-correct step 2 path.
func (t *Tree) splitNode(nodeOffset int64) error {
	n := newNode(t.arena.Base(), nodeOffset, &t.layout)
	size := n.size()
	if size < 2 {
		return newError(ErrCorrupted, "split called on a node that cannot be split", nil)
	}

	// Bisect at the range minimum toward the larger side until the
	// rep range reps[lo..hi] holds at most half the node: such a range
	// is a whole subtree, so it can move to a child intact.
	lo, hi := 0, size-1
	for hi-lo+1 > size/2 {
		if m := minAt(n, lo, hi); m-lo >= hi-m-1 {
			hi = m
		} else {
			lo = m + 1
		}
	}

	childOffset, err := t.allocatePage()
	if err != nil {
		return err
	}

	// Re-derive n: allocatePage's Grow path may have moved Base().
	n = newNode(t.arena.Base(), nodeOffset, &t.layout)
	child := newNode(t.arena.Base(), childOffset, &t.layout)

	srcReps := n.reps()
	srcDiffs := n.diffs()
	moved := hi - lo + 1

	childReps := child.reps()
	childDiffs := child.diffs()
	copy(childReps[0:moved], srcReps[lo:hi+1])
	copy(childDiffs[0:moved-1], srcDiffs[lo:hi])
	child.setSize(moved)
	pyramidBuild(child, child.size()-1, 0)

	srcReps[lo] = t.helper.Pack(childOffset)
	copy(srcReps[lo+1:size-moved+1], srcReps[hi+1:size])
	copy(srcDiffs[lo:size-moved], srcDiffs[hi:size-1])
	n.setSize(size - moved + 1)
	pyramidBuild(n, n.size()-1, 0)
	n.clearCache()

	return nil
}

// allocatePage asks the arena for a page, growing once and retrying on
// ErrArenaFull per §7's "retry once after Grow, then give up" contract.
func (t *Tree) allocatePage() (int64, error) {
	off, err := t.arena.AllocatePage()
	if err == nil {
		return off, nil
	}
	if growErr := t.arena.Grow(1); growErr != nil {
		return 0, newError(ErrArenaExhausted, "arena grow failed", growErr)
	}
	off, err = t.arena.AllocatePage()
	if err != nil {
		return 0, newError(ErrArenaExhausted, "arena allocation failed after grow", err)
	}
	return off, nil
}

// mergeChildInto folds a child page's contents back into the parent at
// the slot holding the packed pointer to it, freeing the child page.
// Used by Del when the parent has enough room (§4.6 Merge) and by
// Compact.
func (t *Tree) mergeChildInto(parentOffset int64, slot int, childOffset int64) error {
	parent := newNode(t.arena.Base(), parentOffset, &t.layout)
	child := newNode(t.arena.Base(), childOffset, &t.layout)

	parentSize := parent.size()
	childSize := child.size()
	if parentSize+childSize-1 > parent.lo.rank+1 {
		return newError(ErrCorrupted, "merge target does not fit", nil)
	}

	parentReps := parent.reps()
	parentDiffs := parent.diffs()
	childReps := child.reps()
	childDiffs := child.diffs()

	// Shift everything above slot up by (childSize-1) rep slots and
	// (childSize-1) diff slots to make room, then copy the child in.
	shiftBy := childSize - 1
	if shiftBy > 0 {
		copy(parentReps[slot+childSize:parentSize+shiftBy], parentReps[slot+1:parentSize])
		if slot < parentSize-1 {
			copy(parentDiffs[slot+childSize-1:parentSize-1+shiftBy], parentDiffs[slot:parentSize-1])
		}
	}
	copy(parentReps[slot:slot+childSize], childReps[0:childSize])
	if childSize > 1 {
		copy(parentDiffs[slot:slot+childSize-1], childDiffs[0:childSize-1])
	}

	parent.setSize(parentSize + shiftBy)
	pyramidBuild(parent, parent.size()-1, 0)
	parent.clearCache()

	return t.arena.FreePage(childOffset)
}
