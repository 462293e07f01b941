// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "sync"

// uniqueRow is the unique table's storage for a single VID: a growable slice
// of committed VHL records (indexed by IDX) plus the (Hi, Lo) -> IDX index
// that GetOrMake consults before appending a new row. One mutex per VID keeps
// unrelated variables from contending with each other, the same way the
// computed cache (xmemo.go) shards by sync.Map bucket rather than a single
// global lock.
type uniqueRow struct {
	mu      sync.Mutex
	records []VHL
	index   map[[2]NID]uint32
}

// HiLoCache is the unique table described in §4.4: the row-sharded map from
// (V, Hi, Lo) to the single canonical NID for that node. It never removes a
// record once committed, so a NID handed out by GetOrMake remains valid for
// the lifetime of the Base that owns this cache.
type HiLoCache struct {
	rows sync.Map // VID -> *uniqueRow
}

func newHiLoCache() *HiLoCache {
	return &HiLoCache{}
}

func (c *HiLoCache) rowFor(v VID) *uniqueRow {
	if r, ok := c.rows.Load(v); ok {
		return r.(*uniqueRow)
	}
	r, _ := c.rows.LoadOrStore(v, &uniqueRow{index: make(map[[2]NID]uint32)})
	return r.(*uniqueRow)
}

// GetOrMake returns the canonical NID for (v, hi, lo), building and storing a
// new VHL record only if this exact triple was never seen before at this
// VID. Callers are responsible for canonicalHiLo (hi must not carry INV) and
// for hi != lo (the reduction rule): GetOrMake rejects a hi carrying INV with
// InvariantViolated, but does not check hi != lo or the depth ordering.
func (c *HiLoCache) GetOrMake(v VID, hi, lo NID) (NID, error) {
	if hi.IsInv() {
		return O, newError(InvariantViolated, "GetOrMake(%s,%s,%s): hi carries INV", v, hi, lo)
	}
	row := c.rowFor(v)
	key := [2]NID{hi, lo}

	row.mu.Lock()
	defer row.mu.Unlock()
	if idx, ok := row.index[key]; ok {
		return FromVidIdx(v, idx), nil
	}
	idx := uint32(len(row.records))
	row.records = append(row.records, VHL{V: v, Hi: hi, Lo: lo})
	row.index[key] = idx
	return FromVidIdx(v, idx), nil
}

// Lookup returns the VHL stored at (v, idx), for decoding an existing NID's
// children (childrenOf) or for traversal (Allnodes, persistence).
func (c *HiLoCache) Lookup(v VID, idx uint32) (VHL, bool) {
	r, ok := c.rows.Load(v)
	if !ok {
		return VHL{}, false
	}
	row := r.(*uniqueRow)
	row.mu.Lock()
	defer row.mu.Unlock()
	if int(idx) >= len(row.records) {
		return VHL{}, false
	}
	return row.records[idx], true
}

// Size returns the total number of committed VHL records, across every VID.
func (c *HiLoCache) Size() int {
	total := 0
	c.rows.Range(func(_, v interface{}) bool {
		row := v.(*uniqueRow)
		row.mu.Lock()
		total += len(row.records)
		row.mu.Unlock()
		return true
	})
	return total
}

// RecordsOf returns a snapshot copy of every VHL stored for v, in IDX order.
// Used by Allnodes and by the persistence codec.
func (c *HiLoCache) RecordsOf(v VID) []VHL {
	r, ok := c.rows.Load(v)
	if !ok {
		return nil
	}
	row := r.(*uniqueRow)
	row.mu.Lock()
	defer row.mu.Unlock()
	out := make([]VHL, len(row.records))
	copy(out, row.records)
	return out
}

// Rows calls f once for every VID that has at least one committed record.
// Iteration order is unspecified (sync.Map's), which is why persistence
// (§6.3) sorts VID before writing them out.
func (c *HiLoCache) Rows(f func(v VID)) {
	c.rows.Range(func(k, _ interface{}) bool {
		f(k.(VID))
		return true
	})
}
