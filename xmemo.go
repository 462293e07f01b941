// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "sync"

// Xmemo is the computed cache described in §4.5: a map from a normalized ITE
// triple to the NID it was last resolved to. Unlike the teacher's fixed-slot
// applycache/itecache (cache.go, hashed into a bounded array with eviction
// collisions), Xmemo never evicts: a normalized triple has exactly one
// possible result for the lifetime of a Base, so a stale hit is impossible
// and a growable sync.Map is the simpler, and here the correct, choice.
type Xmemo struct {
	m sync.Map // iteTriple -> NID
}

func newXmemo() *Xmemo {
	return &Xmemo{}
}

// Get returns the cached result for triple, if any.
func (x *Xmemo) Get(triple iteTriple) (NID, bool) {
	v, ok := x.m.Load(triple)
	if !ok {
		return O, false
	}
	return v.(NID), true
}

// Put records the result for triple. A second Put for the same triple (two
// racing resolutions that both normalized to it before either committed) is
// harmless: both necessarily carry the same NID, since the unique table
// deduplicates on exactly the same key.
func (x *Xmemo) Put(triple iteTriple, nid NID) {
	x.m.Store(triple, nid)
}

// Len returns the number of distinct triples ever cached, for diagnostics.
func (x *Xmemo) Len() int {
	n := 0
	x.m.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
