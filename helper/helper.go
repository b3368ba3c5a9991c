// Package helper defines the record codec contract a Signature Tree
// delegates to for turning caller keys/values into the fixed-width REP
// handles stored inline in a node, and for tagging child-page pointers
// so the tree can tell them apart from leaf records (sig_tree.h's
// Helper/KVTrans template parameters). bytes.go provides a concrete
// byte-slab implementation.
package helper

// Helper is both the leaf record codec and the child-pointer codec a
// tree shares across all of its nodes.
//
// Leaf reps, returned by Add, must always satisfy IsPacked(rep) ==
// false: the tree reserves whatever bit IsPacked tests for its own
// child-pointer tagging via Pack/Unpack, and a Helper that lets Add
// collide with that bit corrupts the tree (§6: "one bit ... must be
// reserved to distinguish the two spaces").
type Helper interface {
	// Add stores key and value, returning a leaf REP for them.
	Add(key, value []byte) (rep uint64, err error)

	// Del releases whatever Add allocated for rep.
	Del(rep uint64) error

	// Trans returns the value stored for a leaf rep.
	Trans(rep uint64) []byte

	// Key returns the key stored for a leaf rep.
	Key(rep uint64) []byte

	// Pack encodes a child page offset as a REP with IsPacked true.
	Pack(offset int64) uint64

	// Unpack recovers the child page offset from a packed REP.
	// Unpack(Pack(x)) == x for any offset x.
	Unpack(rep uint64) int64

	// IsPacked reports whether rep is a child-page pointer rather
	// than a leaf record.
	IsPacked(rep uint64) bool
}
