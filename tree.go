package sgt

import (
	"github.com/sigtree/sgt/arena"
	"github.com/sigtree/sgt/helper"
)

// Options configures a new Tree, mirroring the teacher's Env/flags
// construction pattern (NewEnv(Default); SetGeometry(...)) rather than
// a struct of unrelated global knobs: every field here governs the
// node byte layout or the pluggable collaborators named in §6.
type Options struct {
	// PageSize is the fixed page size shared by the arena and every
	// node (§6). Defaults to DefaultPageSize.
	PageSize int

	// WithCache enables the dense-input cache's storage (§4.3). The
	// cache is currently write-only dead storage (see cache.go); this
	// flag only changes the byte layout so a future accelerated
	// descent has somewhere to write.
	WithCache bool

	// Arena supplies page storage. It is required: NewSignatureTree
	// returns an error if it is nil.
	Arena arena.Arena

	// Helper is the record/child-pointer codec shared by every node.
	// Defaults to a fresh helper.ByteHelper if nil.
	Helper helper.Helper
}

// Tree is a Signature Tree: a bit-critical trie index over byte keys,
// backed by an arena.Arena and a helper.Helper.
type Tree struct {
	arena  arena.Arena
	helper helper.Helper
	layout layout
	root   int64
}

// NewSignatureTree creates an empty Tree per the given Options.
func NewSignatureTree(opts Options) (*Tree, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	lo := deriveLayout(pageSize, opts.WithCache)
	if lo.rank < 1 {
		return nil, newError(ErrCorrupted, "page size too small to hold a single record", nil)
	}

	a := opts.Arena
	if a == nil {
		return nil, newError(ErrCorrupted, "Options.Arena is required", nil)
	}
	h := opts.Helper
	if h == nil {
		h = helper.NewByteHelper()
	}

	t := &Tree{arena: a, helper: h, layout: lo}

	rootOffset, err := t.allocatePage()
	if err != nil {
		return nil, err
	}
	t.root = rootOffset
	return t, nil
}

func (t *Tree) rootNode() node {
	return newNode(t.arena.Base(), t.root, &t.layout)
}

func (t *Tree) rootSize() int {
	return t.rootNode().size()
}

// Get returns the value most recently associated with k, if present.
func (t *Tree) Get(k []byte) ([]byte, bool) {
	if len(k) > maxKeyLen {
		return nil, false
	}
	if t.rootSize() == 0 {
		return nil, false
	}
	_, rep := t.findBestMatch(k)
	if t.helper.IsPacked(rep) {
		return nil, false
	}
	if !bytesEqual(t.helper.Key(rep), k) {
		return nil, false
	}
	return t.helper.Trans(rep), true
}

// Add inserts k/v, returning false without modifying the tree if k
// already exists (§4.5's default if_dup policy: reject).
func (t *Tree) Add(k, v []byte) (bool, error) {
	return t.AddWithCallback(k, v, nil)
}

// AddWithCallback is Add with an explicit upsert policy: onDup, if
// non-nil, is called with the existing value when k already exists; a
// true return replaces it with v.
func (t *Tree) AddWithCallback(k, v []byte, onDup func(oldValue []byte) bool) (bool, error) {
	if len(k) > maxKeyLen {
		return false, newError(ErrKeyTooLong, "key exceeds maxKeyLen", nil)
	}

	if t.rootSize() == 0 {
		rep, err := t.helper.Add(k, v)
		if err != nil {
			return false, err
		}
		n := t.rootNode()
		n.reps()[0] = rep
		n.setSize(1)
		return true, nil
	}

	stack, opponentRep := t.findBestMatch(k)
	return t.combatInsert(stack, opponentRep, k, v, onDup)
}

// Del removes k, if present, returning whether anything was removed.
func (t *Tree) Del(k []byte) (bool, error) {
	if t.rootSize() == 0 {
		return false, nil
	}

	stack, rep := t.findBestMatch(k)
	if !bytesEqual(t.helper.Key(rep), k) {
		return false, nil
	}

	if err := t.helper.Del(rep); err != nil {
		return false, err
	}

	leaf := stack[len(stack)-1]
	n := newNode(t.arena.Base(), leaf.nodeOffset, &t.layout)

	if n.size() == 1 && len(stack) > 1 {
		// This node's only record is the one being removed; drop the
		// whole page and its parent's pointer to it instead of leaving
		// a size-0 non-root node (§3: "size == 0 is only legal for the
		// root page").
		if err := t.dropEmptyChild(stack); err != nil {
			return false, err
		}
	} else {
		n.removeGap(leaf.idx, leaf.direction)
		pyramidBuild(n, n.size()-1, leaf.idx)
		n.clearCache()
	}

	if err := t.mergeUp(stack[:len(stack)-1]); err != nil {
		return false, err
	}
	if err := t.collapseRoot(); err != nil {
		return false, err
	}
	return true, nil
}

// dropEmptyChild frees the leaf frame's node (whose sole record was
// just deleted) and removes the parent's diff/pointer slot that
// referenced it.
func (t *Tree) dropEmptyChild(stack []descendResult) error {
	leaf := stack[len(stack)-1]
	parent := stack[len(stack)-2]
	pn := newNode(t.arena.Base(), parent.nodeOffset, &t.layout)
	pn.removeGap(parent.idx, parent.direction)
	pyramidBuild(pn, pn.size()-1, parent.idx)
	pn.clearCache()
	return t.arena.FreePage(leaf.nodeOffset)
}

// mergeUp walks the given prefix of the descent stack from the leaf's
// parent toward the root, merging each packed child back into its
// parent while it still fits (§4.6 Merge).
func (t *Tree) mergeUp(stack []descendResult) error {
	for i := len(stack) - 1; i >= 0; i-- {
		frame := stack[i]
		parentNode := newNode(t.arena.Base(), frame.nodeOffset, &t.layout)
		slot := frame.idx + frame.direction
		rep := parentNode.reps()[slot]
		if !t.helper.IsPacked(rep) {
			continue
		}
		childOffset := t.helper.Unpack(rep)
		childNode := newNode(t.arena.Base(), childOffset, &t.layout)
		if parentNode.size()+childNode.size()-1 > parentNode.lo.rank+1 {
			continue
		}
		if err := t.mergeChildInto(frame.nodeOffset, slot, childOffset); err != nil {
			return err
		}
	}
	return nil
}

// collapseRoot implements §4.6's root-collapse rule: if the root's
// sole record is a packed pointer, replace the root's contents with
// the child's and free the child page.
func (t *Tree) collapseRoot() error {
	root := t.rootNode()
	if root.size() != 1 {
		return nil
	}
	rep := root.reps()[0]
	if !t.helper.IsPacked(rep) {
		return nil
	}
	childOffset := t.helper.Unpack(rep)
	child := newNode(t.arena.Base(), childOffset, &t.layout)

	childSize := child.size()
	copy(root.reps()[0:childSize], child.reps()[0:childSize])
	if childSize > 1 {
		copy(root.diffs()[0:childSize-1], child.diffs()[0:childSize-1])
	}
	root.setSize(childSize)
	pyramidBuild(root, root.size()-1, 0)
	root.clearCache()

	return t.arena.FreePage(childOffset)
}

// Size returns the number of keys in the tree, computed by a full
// traversal (§6).
func (t *Tree) Size() int {
	if t.rootSize() == 0 {
		return 0
	}
	n := 0
	t.walkInOrder(t.root, true, func(rep uint64) bool {
		n++
		return true
	})
	return n
}

// Close releases the tree's arena.
func (t *Tree) Close() error {
	return t.arena.Close()
}
