package sgt

// findBestMatchInNode implements §4.4's FindBestMatch over a single
// node's live diff range [0, size()-1). It returns the slot such that
// reps[idx+direction] is the record reached by the bit-critical descent
// for key k.
func findBestMatchInNode(n node, k []byte) (idx, direction int) {
	size := n.size()
	if size <= 1 {
		return 0, 0
	}

	lo, hi := 0, size-1
	minIt := minAt(n, lo, hi)
	diffs := n.diffs()

	for {
		d := diffs[minIt]
		dir := directionBit(k, d)
		if dir == 0 {
			hi = minIt
			if hi == lo {
				return minIt, 0
			}
			minIt = trimRight(n, lo, hi)
		} else {
			lo = minIt + 1
			if lo == hi {
				return minIt, 1
			}
			minIt = trimLeft(n, lo, hi)
		}
	}
}

// descendResult is one frame of a full-tree descent: the node visited
// and the slot chosen within it.
type descendResult struct {
	nodeOffset int64
	idx        int
	direction  int
}

// findBestMatch walks from the root to a leaf record for key k,
// following packed child pointers via h. It returns the full stack of
// frames visited (root first) so callers (insert, delete) can resume
// from any ancestor without re-descending from the root.
func (t *Tree) findBestMatch(k []byte) (stack []descendResult, rep uint64) {
	offset := t.root
	for {
		n := newNode(t.arena.Base(), offset, &t.layout)
		idx, dir := findBestMatchInNode(n, k)
		stack = append(stack, descendResult{nodeOffset: offset, idx: idx, direction: dir})
		rep = n.reps()[idx+dir]
		if !t.helper.IsPacked(rep) {
			return stack, rep
		}
		offset = t.helper.Unpack(rep)
	}
}
