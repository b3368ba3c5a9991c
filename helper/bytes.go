package helper

// ByteHelper is a concrete Helper implementation backed by a single
// growable slab. Leaf records are length-prefixed (key, value) pairs
// appended to the slab; the REP is twice the slab offset, so Add
// always produces an even handle (bit 0 clear) and IsPacked/Pack/
// Unpack are free to use bit 0 as the child-pointer tag without ever
// colliding with a leaf rep.
//
// Entries are stored as:
// [2-byte big-endian keyLen][key][2-byte big-endian valueLen][value].
type ByteHelper struct {
	slab []byte
}

// NewByteHelper creates an empty ByteHelper.
func NewByteHelper() *ByteHelper {
	return &ByteHelper{}
}

// Add stores key and value and returns an even (unpacked) REP for them.
func (h *ByteHelper) Add(key, value []byte) (uint64, error) {
	off := int64(len(h.slab))
	h.slab = append(h.slab, byte(len(key)>>8), byte(len(key)))
	h.slab = append(h.slab, key...)
	h.slab = append(h.slab, byte(len(value)>>8), byte(len(value)))
	h.slab = append(h.slab, value...)
	return uint64(off) << 1, nil
}

// Del is a no-op: ByteHelper never reclaims slab space. A compacting
// helper would shrink here; this one trades space for simplicity,
// matching the teacher's own "append-only, rebuild to reclaim" stance
// in its page layer.
func (h *ByteHelper) Del(rep uint64) error {
	return nil
}

func (h *ByteHelper) entry(rep uint64) (key, value []byte) {
	off := int64(rep >> 1)
	keyLen := int64(h.slab[off])<<8 | int64(h.slab[off+1])
	key = h.slab[off+2 : off+2+keyLen]
	vOff := off + 2 + keyLen
	valueLen := int64(h.slab[vOff])<<8 | int64(h.slab[vOff+1])
	value = h.slab[vOff+2 : vOff+2+valueLen]
	return key, value
}

func (h *ByteHelper) Trans(rep uint64) []byte {
	_, v := h.entry(rep)
	return v
}

func (h *ByteHelper) Key(rep uint64) []byte {
	k, _ := h.entry(rep)
	return k
}

// Pack encodes offset as a child-pointer REP: (offset<<1)|1.
func (h *ByteHelper) Pack(offset int64) uint64 {
	return uint64(offset)<<1 | 1
}

// Unpack recovers the child page offset from a packed REP.
func (h *ByteHelper) Unpack(rep uint64) int64 {
	return int64(rep >> 1)
}

func (h *ByteHelper) IsPacked(rep uint64) bool {
	return rep&1 == 1
}
