package sgt

// combatInsertSlot finds where, within node n, a new diff packedDiff
// (separating the existing opponent leaf from the new key k) must be
// inserted (§4.5). It walks the same range-halving descent as
// findBestMatchInNode, but stops the instant it meets a diff with
// *lower* priority (a larger packed value) than packedDiff, since
// packedDiff must then split the range above that point; early reports
// that stop. Otherwise the walk ends at a single rep and the slot puts
// the new record beside it, on the side given by direction.
func combatInsertSlot(n node, k []byte, packedDiff Diff, direction int) (idx, dir int, early bool) {
	size := n.size()
	if size <= 1 {
		return 0, direction, false
	}

	diffs := n.diffs()
	lo, hi := 0, size-1
	minIt := minAt(n, lo, hi)

	for {
		d := diffs[minIt]
		if d > packedDiff {
			// The whole current subrange [lo,hi] of reps shares a bit
			// value at packedDiff's position (none of its own diffs
			// are precise enough to distinguish it), so the new
			// record either precedes the entire subrange (k's bit is
			// 0: insert at lo) or follows all of it (k's bit is 1:
			// insert at hi, the subrange's own last rep index) — never
			// splicing into its middle.
			if directionBit(k, packedDiff) == 0 {
				return lo, 0, true
			}
			return hi, 1, true
		}
		dirBit := directionBit(k, d)
		if dirBit == 0 {
			hi = minIt
			if hi == lo {
				return lo, direction, false
			}
			minIt = trimRight(n, lo, hi)
		} else {
			lo = minIt + 1
			if lo == hi {
				return lo, direction, false
			}
			minIt = trimLeft(n, lo, hi)
		}
	}
}

// insertAt writes packedDiff/newRep into node n at position insertIdx,
// direction dir, shifting higher slots up and rebuilding the pyramid.
// Returns false if n has no room (caller must split first).
func insertAt(n node, insertIdx, dir int, packedDiff Diff, newRep uint64) bool {
	if n.size() >= n.lo.rank+1 {
		return false
	}
	n.insertGap(insertIdx, dir)
	diffs := n.diffs()
	reps := n.reps()
	diffs[insertIdx] = packedDiff
	reps[insertIdx+dir] = newRep
	pyramidBuild(n, n.size()-1, insertIdx)
	n.clearCache()
	return true
}

// combatInsert is the Tree-level entry point for §4.5: insert k/v given
// the descent stack that already found the opponent leaf rep
// opponentRep at stack's last frame. Returns false (no error) if k
// already exists and no upsert callback accepted the collision.
func (t *Tree) combatInsert(stack []descendResult, opponentRep uint64, k, v []byte, onDup func(oldValue []byte) bool) (bool, error) {
	opponentKey := t.helper.Key(opponentRep)
	if bytesEqual(opponentKey, k) {
		if onDup != nil && onDup(t.helper.Trans(opponentRep)) {
			rep, err := t.helper.Add(k, v)
			if err != nil {
				return false, err
			}
			hint := stack[len(stack)-1]
			n := newNode(t.arena.Base(), hint.nodeOffset, &t.layout)
			n.reps()[hint.idx+hint.direction] = rep
			return true, nil
		}
		return false, nil
	}

	packedDiff, direction := criticalBitDiff(opponentKey, k)

	newRep, err := t.helper.Add(k, v)
	if err != nil {
		return false, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		// The new diff belongs in the shallowest node whose descent path
		// meets a diff larger than packedDiff, or else beside the
		// opponent leaf in the deepest node.
		var hint descendResult
		var n node
		var insertIdx, dir int
		for _, hint = range stack {
			n = newNode(t.arena.Base(), hint.nodeOffset, &t.layout)
			var early bool
			if insertIdx, dir, early = combatInsertSlot(n, k, packedDiff, direction); early {
				break
			}
		}
		if insertAt(n, insertIdx, dir, packedDiff, newRep) {
			return true, nil
		}

		// Node full: split and retry once.
		if err := t.splitNode(hint.nodeOffset); err != nil {
			return false, err
		}
		// Re-resolve the hint: the key may now live in a different
		// node after the split moved part of this page's contents.
		stack, _ = t.findBestMatch(k)
	}
	return false, newError(ErrCorrupted, "combat-insert could not place new diff after split", nil)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
