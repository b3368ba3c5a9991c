// Package sgt implements a Signature Tree: an ordered, bit-critical trie
// index mapping variable-length byte keys to opaque fixed-width records.
// Nodes are plain byte pages drawn from a caller-supplied arena.Arena, so
// the same engine backs either a heap-allocated index or an mmap-backed
// on-disk one.
//
// The structure is single-writer, single-reader: callers serialize their
// own access. Ordering is by critical-bit, not lexicographic; see
// Tree.Visit.
package sgt
