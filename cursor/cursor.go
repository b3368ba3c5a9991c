// Package cursor provides a thin, STL-iterator-style wrapper around a
// Tree's Visit engine (sig_tree_iter_impl.h in original_source), named
// in spec.md as an out-of-scope-but-present collaborator.
package cursor

import "github.com/sigtree/sgt"

// entry is one buffered (key, value) pair.
type entry struct {
	key, value []byte
}

// Cursor is a forward/backward iterator over a Tree's keys. Seek,
// First and Last each materialize their remaining scan via Tree.Visit
// into an internal buffer; Next/Prev simply advance an index into it.
// This trades live re-seeking for a simpler implementation built
// directly on the already-simplified full-scan Visit (see visit.go).
type Cursor struct {
	tree    *sgt.Tree
	entries []entry
	pos     int
}

// New creates a Cursor over tree, positioned before the first entry.
func New(tree *sgt.Tree) *Cursor {
	return &Cursor{tree: tree, pos: -1}
}

func (c *Cursor) fill(target []byte, forward bool) {
	c.entries = c.entries[:0]
	c.pos = -1
	c.tree.Visit(target, forward, func(key, value []byte) bool {
		c.entries = append(c.entries, entry{
			key:   append([]byte(nil), key...),
			value: append([]byte(nil), value...),
		})
		return true
	})
	if len(c.entries) > 0 {
		c.pos = 0
	}
}

// First positions the cursor at the least key in the tree.
func (c *Cursor) First() bool {
	c.fill(nil, true)
	return c.pos >= 0
}

// Last positions the cursor at the greatest key in the tree.
func (c *Cursor) Last() bool {
	c.fill(nil, false)
	return c.pos >= 0
}

// Seek positions the cursor at the least key >= target.
func (c *Cursor) Seek(target []byte) bool {
	c.fill(target, true)
	return c.pos >= 0
}

// SeekBackward positions the cursor at the greatest key <= target.
func (c *Cursor) SeekBackward(target []byte) bool {
	c.fill(target, false)
	return c.pos >= 0
}

// Next advances the cursor by one entry, in the direction of the last
// fill (Seek/First advance forward, Last/SeekBackward advance toward
// smaller keys).
func (c *Cursor) Next() bool {
	if c.pos < 0 || c.pos+1 >= len(c.entries) {
		c.pos = len(c.entries)
		return false
	}
	c.pos++
	return true
}

// Valid reports whether the cursor currently rests on an entry.
func (c *Cursor) Valid() bool {
	return c.pos >= 0 && c.pos < len(c.entries)
}

// Key returns the current entry's key. Valid must be true.
func (c *Cursor) Key() []byte {
	return c.entries[c.pos].key
}

// Value returns the current entry's value. Valid must be true.
func (c *Cursor) Value() []byte {
	return c.entries[c.pos].value
}
