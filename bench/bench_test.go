// Package bench holds Go benchmark drivers for the sgt engine, in the
// style of the teacher's benchmarks/ and tests/bench_* files: plain
// testing.B, no external benchmark harness.
package bench

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/sigtree/sgt"
	"github.com/sigtree/sgt/arena/heap"
)

func newTree(b *testing.B) *sgt.Tree {
	b.Helper()
	a := heap.New(sgt.DefaultPageSize, 64)
	t, err := sgt.NewSignatureTree(sgt.Options{PageSize: sgt.DefaultPageSize, Arena: a})
	if err != nil {
		b.Fatal(err)
	}
	return t
}

func uint32Key(v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return buf[:]
}

func BenchmarkAdd(b *testing.B) {
	t := newTree(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := uint32Key(uint32(i)*2 + 1)
		if _, err := t.Add(k, k); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetHit(b *testing.B) {
	t := newTree(b)
	const n = 100000
	for i := 0; i < n; i++ {
		k := uint32Key(uint32(i)*2 + 1)
		if _, err := t.Add(k, k); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.Get(uint32Key(uint32(i%n)*2 + 1))
	}
}

func BenchmarkVisitForward(b *testing.B) {
	t := newTree(b)
	const n = 50000
	for i := 0; i < n; i++ {
		k := uint32Key(uint32(i)*2 + 1)
		if _, err := t.Add(k, k); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		count := 0
		t.Visit(nil, true, func(key, value []byte) bool {
			count++
			return true
		})
	}
}

func BenchmarkAddDeleteChurn(b *testing.B) {
	t := newTree(b)
	r := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := uint32Key(r.Uint32() | 1)
		t.Add(k, k)
		t.Del(k)
	}
}
