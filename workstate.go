// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "sync"

// QID indexes a registered query inside a WorkState.
type QID int

// Slot identifies which child of a parent query a dependency fills.
type Slot int

// The two slots of a partial VHL.
const (
	SlotHi Slot = iota
	SlotLo
)

func (s Slot) String() string {
	if s == SlotHi {
		return "hi"
	}
	return "lo"
}

// dep is an edge in the query dependency graph: completing the query it is
// attached to provides slot of the query at parent. invert records whether
// the edge itself requires negating the child's (canonical, invert-free)
// result before it is fed into the parent's slot: the same canonical Triple
// can be reached from two complementary original ITE calls (ite(f,g,h) and
// ite(f,!g,!h) normalize to the same Triple with opposite Invert), so a
// query's resolved value is always the canonical answer and every consumer
// — an edge here, or a top-level caller — applies its own invert when it
// reads that value, never the query itself.
type dep struct {
	parent QID
	slot   Slot
	invert bool
}

// queryRecord is the state of one pending or resolved ITE query: the
// normalized triple it was registered for, its branch variable, the partial
// VHL being assembled (hi/lo, filled independently and possibly out of
// order), the list of dependents to notify on completion, and, once
// resolved, the final (canonical, invert-free) NID.
type queryRecord struct {
	triple iteTriple
	v      VID

	hiSet bool
	hi    NID
	loSet bool
	lo    NID

	resolved bool
	result   NID

	deps []dep
	done chan struct{}
}

// WorkState is the concurrent registry of in-progress and completed ITE
// queries described in §4.5/§4.6: the growable vector of query records, the
// triple→QID index that prevents duplicate work, the partial VHL being
// assembled for each query, the dependency edges between them, and the
// computed cache that every resolution fills.
//
// Registration (addTask/addDep) and completion (setPart/resolve) each take
// a single short-held mutex; this is the one "leaf-level lock" guarding
// WorkState, and it is never held simultaneously with a unique-table row
// lock (commit releases the WorkState lock before calling into the unique
// table).
type WorkState struct {
	mu      sync.Mutex
	queries []*queryRecord
	qidOf   map[iteTriple]QID

	unique *HiLoCache
	cache  *Xmemo
}

func newWorkState(unique *HiLoCache, cache *Xmemo) *WorkState {
	return &WorkState{
		qidOf:  make(map[iteTriple]QID),
		unique: unique,
		cache:  cache,
	}
}

// addTask registers the normalized triple n.Triple, returning its QID and
// whether this call is the one that created it. Two concurrent callers
// presenting the same normalized triple always receive the same QID, and
// fresh is true for at most one of them: the whole check-then-insert is one
// critical section.
func (ws *WorkState) addTask(n normalized) (QID, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if qid, ok := ws.qidOf[n.Triple]; ok {
		return qid, false
	}
	qid := QID(len(ws.queries))
	ws.queries = append(ws.queries, &queryRecord{
		triple: n.Triple,
		v:      n.V,
		done:   make(chan struct{}),
	})
	ws.qidOf[n.Triple] = qid
	return qid, true
}

// addDep records that resolving child provides slot of parent, negating the
// result first if invert is set (see dep). If child is already resolved by
// the time this is called, the caller is responsible for re-checking
// Get(child) and propagating manually: this closes the race between "child
// resolves" and "dependency is registered" without requiring addDep and
// resolve to share a single lock for their whole duration.
func (ws *WorkState) addDep(child, parent QID, slot Slot, invert bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.queries[child].deps = append(ws.queries[child].deps, dep{parent: parent, slot: slot, invert: invert})
}

// Done returns a channel closed once qid is resolved, for a coordinator to
// select on alongside the Swarm's results channel.
func (ws *WorkState) Done(qid QID) <-chan struct{} {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.queries[qid].done
}

// Get returns a snapshot of qid's registered triple, branch variable, and
// (if any) resolution.
func (ws *WorkState) Get(qid QID) (triple iteTriple, v VID, resolved bool, result NID) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	q := ws.queries[qid]
	return q.triple, q.v, q.resolved, q.result
}

// setPart writes a resolved child into qid's partial VHL. Once both slots
// are filled it commits the VHL (or collapses to a direct value if the two
// children turn out equal) and resolves qid, propagating the result to its
// own dependents in turn.
//
// A late result for an already-resolved qid is tolerated and discarded: this
// is what lets the Swarm abandon a dangling sub-query after the opportunistic
// short-circuit in §4.6 without having to cancel it explicitly.
func (ws *WorkState) setPart(qid QID, slot Slot, nid NID) error {
	ws.mu.Lock()
	q := ws.queries[qid]
	if q.resolved {
		ws.mu.Unlock()
		return nil
	}
	switch slot {
	case SlotHi:
		q.hi, q.hiSet = nid, true
	case SlotLo:
		q.lo, q.loSet = nid, true
	}
	ready := q.hiSet && q.loSet
	var hi, lo NID
	var v VID
	if ready {
		hi, lo, v = q.hi, q.lo, q.v
	}
	ws.mu.Unlock()
	if !ready {
		return nil
	}
	return ws.commit(qid, v, hi, lo)
}

// commit builds (or looks up) the unique-table entry for (v, hi, lo),
// applying the reduction rule directly when hi == lo, and resolves qid with
// the canonical result. No invert is applied here: a query's resolved value
// is always the canonical (invert-free) answer for its registered Triple,
// per the dep doc comment.
func (ws *WorkState) commit(qid QID, v VID, hi, lo NID) error {
	var res NID
	if hi == lo {
		res = hi
	} else {
		cHi, cLo, flip := canonicalHiLo(hi, lo)
		n, err := ws.unique.GetOrMake(v, cHi, cLo)
		if err != nil {
			return err
		}
		res = n
		if flip {
			res = res.Inv()
		}
	}
	return ws.resolve(qid, res)
}

// resolve marks qid resolved with nid, fills the computed cache, wakes any
// goroutine blocked on Done(qid), and propagates the result (inverted per
// edge where required) to every query depending on qid. Because every
// sub-query branches on a strictly deeper VID than its parent (guaranteed
// by the normalizer, §4.3), this propagation can never cycle back on
// itself: the dependency graph is a DAG whose depth is bounded by the
// number of variables (§4.5, §9).
func (ws *WorkState) resolve(qid QID, nid NID) error {
	ws.mu.Lock()
	q := ws.queries[qid]
	if q.resolved {
		ws.mu.Unlock()
		return nil
	}
	q.resolved = true
	q.result = nid
	triple := q.triple
	deps := append([]dep(nil), q.deps...)
	close(q.done)
	ws.mu.Unlock()

	ws.cache.Put(triple, nid)

	for _, d := range deps {
		res := nid
		if d.invert {
			res = res.Inv()
		}
		if err := ws.setPart(d.parent, d.slot, res); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of queries ever registered, for diagnostics.
func (ws *WorkState) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.queries)
}
