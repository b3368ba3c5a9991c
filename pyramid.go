package sgt

// pyramidBuild rebuilds every level of n's 8-ary tournament tree over
// diffs[0:liveCount). §4.2 specifies a partial rebuild starting at the
// level containing rebuildFrom/8; this implementation always rebuilds
// in full, trading the optimization for a simpler, easier-to-verify
// correctness argument (documented as a deliberate simplification in
// DESIGN.md). rebuildFrom is accepted for API symmetry with the spec
// and ignored.
func pyramidBuild(n node, liveCount int, rebuildFrom int) {
	diffs := n.diffs()
	vals := n.pyrVals()
	idxes := n.pyrIdxes()
	levels := n.lo.pyrLevels
	bases := n.lo.levelBases

	if len(levels) == 0 {
		return
	}

	// Level 0 reduces directly over diffs.
	lvl0base, lvl0size := bases[0], levels[0]
	for g := 0; g < lvl0size; g++ {
		start := g * 8
		end := start + 8
		if end > liveCount {
			end = liveCount
		}
		if start >= end {
			vals[lvl0base+g] = maxDiff
			idxes[lvl0base+g] = 0
			continue
		}
		minV, minI := diffs[start], 0
		for i := start + 1; i < end; i++ {
			if diffs[i] < minV {
				minV, minI = diffs[i], i-start
			}
		}
		vals[lvl0base+g] = minV
		idxes[lvl0base+g] = uint8(minI)
	}

	prevBase, prevSize := lvl0base, lvl0size
	for lvl := 1; lvl < len(levels); lvl++ {
		base, size := bases[lvl], levels[lvl]
		for g := 0; g < size; g++ {
			start := g * 8
			end := start + 8
			if end > prevSize {
				end = prevSize
			}
			if start >= end {
				vals[base+g] = maxDiff
				idxes[base+g] = 0
				continue
			}
			minV, minI := vals[prevBase+start], 0
			for i := start + 1; i < end; i++ {
				if vals[prevBase+i] < minV {
					minV, minI = vals[prevBase+i], i-start
				}
			}
			vals[base+g] = minV
			idxes[base+g] = uint8(minI)
		}
		prevBase, prevSize = base, size
	}
}

// scalarEightWideMin is the shared scalar implementation behind
// eightWideMin on every architecture (see pyramid_amd64.go /
// pyramid_other.go).
func scalarEightWideMin(group []Diff) (min Diff, idx int) {
	min, idx = group[0], 0
	for i := 1; i < len(group); i++ {
		if group[i] < min {
			min, idx = group[i], i
		}
	}
	return min, idx
}

// blockSize returns the number of raw diffs a single entry at pyramid
// level `level` (0-based, level 0 being the bottom level built directly
// over diffs) aggregates: 8 for level 0, 64 for level 1, and so on.
func blockSize(level int) int {
	return 1 << (uint(3 * (level + 1)))
}

// resolveAbsoluteIndex recovers the absolute diffs index of the minimum
// recorded at n's pyramid level `level`, group `groupIdx`, by following
// idxes down through each level below it (each level's idx is only
// local to the group of 8 entries one level down; level 0's idx is
// local to a group of 8 raw diffs).
func resolveAbsoluteIndex(n node, level, groupIdx int) int {
	idxes := n.pyrIdxes()
	base := n.lo.levelBases[level]
	local := int(idxes[base+groupIdx])
	if level == 0 {
		return groupIdx*8 + local
	}
	return resolveAbsoluteIndex(n, level-1, groupIdx*8+local)
}

// rangeMinRaw scans diffs[lo,hi) directly, using the 8-wide SIMD-style
// primitive when the range is small (§4.2: "for small ranges (<=8) fall
// back to a direct SIMD or scalar scan"). Callers only ever reach this
// with hi-lo <= 8, since rangeMinAt's block decomposition never leaves
// a larger remainder unaggregated.
func rangeMinRaw(diffs []Diff, lo, hi int) (Diff, int) {
	if hi-lo <= 8 {
		v, i := eightWideMin(diffs[lo:hi])
		return v, lo + i
	}
	best, bestI := diffs[lo], lo
	for i := lo + 1; i < hi; i++ {
		if diffs[i] < best {
			best, bestI = diffs[i], i
		}
	}
	return best, bestI
}

// rangeMinAt answers §4.2's MinAt(lo,hi) by descending the pyramid
// starting at `level`: raw diffs[lo,hi) is decomposed into an optional
// partial run below the first aligned block, zero or more fully
// aligned blocks at this level (each answered in O(1) from the
// precomputed vals/idxes built by pyramidBuild), and an optional
// partial run above the last aligned block — each partial run is
// resolved by recursing one level down, bottoming out at a direct scan
// once the remainder is small. This reads the pyramid's stored
// aggregates rather than rescanning every diff, giving true O(log8 R)
// behavior for the large ranges queries actually start with.
func rangeMinAt(n node, level, lo, hi int) (Diff, int) {
	if level < 0 {
		return rangeMinRaw(n.diffs(), lo, hi)
	}

	bs := blockSize(level)
	firstFullBlock := (lo + bs - 1) / bs
	lastFullBlockExclusive := hi / bs

	var best Diff = maxDiff
	bestIdx := -1
	consider := func(v Diff, i int) {
		if i >= 0 && v < best {
			best, bestIdx = v, i
		}
	}

	if leftHi := firstFullBlock * bs; lo < leftHi {
		if leftHi > hi {
			leftHi = hi
		}
		consider(rangeMinAt(n, level-1, lo, leftHi))
	}

	vals := n.pyrVals()
	base := n.lo.levelBases[level]
	numGroups := n.lo.pyrLevels[level]
	for g := firstFullBlock; g < lastFullBlockExclusive && g < numGroups; g++ {
		consider(vals[base+g], resolveAbsoluteIndex(n, level, g))
	}

	if rightLo := lastFullBlockExclusive * bs; rightLo < hi {
		if rightLo < lo {
			rightLo = lo
		}
		consider(rangeMinAt(n, level-1, rightLo, hi))
	}

	return best, bestIdx
}

// minAt returns the absolute index in diffs of the minimum diff within
// [lo,hi), descending the node's pyramid (§4.2) rather than rescanning
// every diff. Ties are broken toward the lowest index, matching the
// leftmost-wins tournament semantics. hi must be > lo.
func minAt(n node, lo, hi int) int {
	levels := n.lo.pyrLevels
	if len(levels) == 0 {
		_, idx := rangeMinRaw(n.diffs(), lo, hi)
		return idx
	}
	_, idx := rangeMinAt(n, len(levels)-1, lo, hi)
	return idx
}

// trimRight returns minAt(lo,hi) after conceptually restricting the
// pyramid's working range to [lo,hi) (§4.2's TrimRight). This
// implementation re-queries the pyramid over the narrowed range rather
// than patching group-by-group in place as §4.2 describes; see
// DESIGN.md for the tradeoff (still O(log8 R) per call via the real
// pyramid, just without the amortized incremental patch).
func trimRight(n node, lo, hi int) int {
	return minAt(n, lo, hi)
}

// trimLeft is the left-restricted counterpart of trimRight.
func trimLeft(n node, lo, hi int) int {
	return minAt(n, lo, hi)
}
