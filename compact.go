package sgt

// Compact performs a whole-tree pass (§4.6) pulling children back into
// parents wherever they fit, to produce the densest representation
// after a workload with many deletes. This implementation only
// performs full merges (a child that fits entirely in its parent's
// free slots); the partial-pull of a child's leftmost/rightmost
// monotone run described in §4.6 is not implemented (see DESIGN.md) —
// Compact here is a strict subset of the spec's pass, safe to run but
// not guaranteed to reach the same fixed point on adversarial inputs.
func (t *Tree) Compact() error {
	if t.rootSize() == 0 {
		return nil
	}
	_, err := t.compactNode(t.root)
	return err
}

// compactNode recursively compacts offset's subtree, repeatedly
// merging any packed child that now fits, until no more local merges
// are possible. Returns whether anything changed.
func (t *Tree) compactNode(offset int64) (bool, error) {
	changed := false
	for {
		progressed := false
		n := newNode(t.arena.Base(), offset, &t.layout)
		size := n.size()
		for i := 0; i < size; i++ {
			rep := n.reps()[i]
			if !t.helper.IsPacked(rep) {
				continue
			}
			childOffset := t.helper.Unpack(rep)
			if _, err := t.compactNode(childOffset); err != nil {
				return changed, err
			}

			n = newNode(t.arena.Base(), offset, &t.layout)
			child := newNode(t.arena.Base(), childOffset, &t.layout)
			if n.size()+child.size()-1 <= n.lo.rank+1 {
				if err := t.mergeChildInto(offset, i, childOffset); err != nil {
					return changed, err
				}
				progressed, changed = true, true
				break
			}
		}
		if !progressed {
			break
		}
	}
	return changed, nil
}
