// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Base is the BDD engine of §4.7: the unique table, computed cache,
// WorkState registry and Swarm bundled together with the lifecycle needed to
// run the Swarm's worker goroutines. It plays the role of the teacher's
// *BDD/*tables pair (bdd.go, hudd.go), generalized from a single mutable
// node array to the concurrent, append-only structures of this design.
type Base struct {
	varnum int
	unique *HiLoCache
	cache  *Xmemo
	ws     *WorkState
	swarm  *Swarm

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	sf singleflight.Group

	virtuals uint32 // not used: an AST (ast.go) numbers its own virtual variables
}

// New returns a new Base with varnum real input variables (numbered
// 0..varnum-1) and starts its Swarm. Mirrors the teacher's New (hudd.go):
// validate, build config, allocate the kernel structures, and return ready
// to use. Close must be called to stop the Swarm's goroutines.
func New(varnum int, options ...func(*configs)) (*Base, error) {
	if varnum < 0 {
		return nil, newError(MalformedInput, "bad number of variables (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	if config.logger != nil {
		SetLogger(config.logger)
	}

	unique := newHiLoCache()
	cache := newXmemo()
	ws := newWorkState(unique, cache)
	swarm := newSwarm(ws, unique)

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	n := config.workers
	if n < 1 {
		n = defaultWorkers()
	}
	swarm.Start(gctx, group, n)
	log.Debugw("robdd base started", "varnum", varnum, "workers", n)

	return &Base{
		varnum: varnum,
		unique: unique,
		cache:  cache,
		ws:     ws,
		swarm:  swarm,
		ctx:    ctx,
		cancel: cancel,
		group:  group,
	}, nil
}

// Close stops the Swarm's worker goroutines and waits for them to return,
// surfacing the first InvariantViolated error raised by any worker, if any.
func (b *Base) Close() error {
	b.cancel()
	return b.group.Wait()
}

// Varnum returns the number of real input variables this Base was built
// with.
func (b *Base) Varnum() int { return b.varnum }

// Ithvar returns the leaf NID for the i'th real variable.
func (b *Base) Ithvar(i int) (NID, error) {
	if i < 0 || i >= b.varnum {
		return O, newError(MalformedInput, "variable index %d out of range [0,%d)", i, b.varnum)
	}
	return VarNID(VReal(uint32(i))), nil
}

func applyInvert(n NID, invert bool) NID {
	if invert {
		return n.Inv()
	}
	return n
}

// Ite computes ite(f,g,h), the fundamental operation of §4.1-4.7: a single
// normalization pass either resolves it directly or registers it with the
// WorkState and drives the Swarm, coordinating however many concurrent
// sub-queries that spawns, until the root query resolves.
//
// Concurrent external callers presenting the very same (f,g,h) share a
// single coordinator round-trip via singleflight, rather than each
// independently draining the Swarm's results channel for identical work.
func (b *Base) Ite(f, g, h NID) (NID, error) {
	n := normalizeITE(f, g, h)
	if n.IsDirect {
		return n.Direct, nil
	}
	if cached, ok := b.cache.Get(n.Triple); ok {
		return applyInvert(cached, n.Invert), nil
	}

	key := n.Triple.String()
	v, err, _ := b.sf.Do(key, func() (interface{}, error) {
		qid, fresh := b.ws.addTask(n)
		if fresh {
			b.swarm.Post(qid)
		}
		return b.await(qid)
	})
	if err != nil {
		return O, err
	}
	return applyInvert(v.(NID), n.Invert), nil
}

// await is the coordinator loop described in §4.6: it cooperatively drains
// the Swarm's shared results channel, applying whatever bookkeeping each
// result requires, until qid itself is resolved — whether by this very
// goroutine processing the result that completes it, or by some other
// coordinator doing so concurrently (in which case Done(qid) wakes us).
func (b *Base) await(qid QID) (NID, error) {
	done := b.ws.Done(qid)
	for {
		select {
		case <-done:
			_, _, resolved, result := b.ws.Get(qid)
			if !resolved {
				return O, newError(InvariantViolated, "await(%d): done closed but not resolved", qid)
			}
			return result, nil
		case r, ok := <-b.swarm.results:
			if !ok {
				return O, newError(InvariantViolated, "await(%d): results channel closed", qid)
			}
			if err := b.handleResult(r); err != nil {
				return O, err
			}
		case <-b.ctx.Done():
			return O, wrapError(Cancelled, b.ctx.Err(), "await: base closed")
		}
	}
}

// handleResult applies one worker step's outcome: the opportunistic
// short-circuit of §4.6 when both cofactors already agree, or dispatching
// each cofactor's normalized result to the appropriate slot of the parent
// query.
func (b *Base) handleResult(r stepResult) error {
	if r.hi.IsDirect && r.lo.IsDirect && r.hi.Direct == r.lo.Direct {
		return b.ws.resolve(r.qid, r.hi.Direct)
	}
	if err := b.dispatchChild(r.qid, SlotHi, r.hi); err != nil {
		return err
	}
	return b.dispatchChild(r.qid, SlotLo, r.lo)
}

// dispatchChild fills parent's slot with the result of the normalized
// sub-query n, resolving it immediately when possible (it was direct, or
// already cached) and otherwise registering it with the WorkState — posting
// it to the Swarm when it is genuinely new — and wiring a dependency edge so
// its eventual resolution propagates here.
func (b *Base) dispatchChild(parent QID, slot Slot, n normalized) error {
	if n.IsDirect {
		return b.ws.setPart(parent, slot, n.Direct)
	}
	if cached, ok := b.cache.Get(n.Triple); ok {
		return b.ws.setPart(parent, slot, applyInvert(cached, n.Invert))
	}
	childQid, fresh := b.ws.addTask(n)
	if fresh {
		b.swarm.Post(childQid)
	}
	b.ws.addDep(childQid, parent, slot, n.Invert)
	if _, _, resolved, result := b.ws.Get(childQid); resolved {
		return b.ws.setPart(parent, slot, applyInvert(result, n.Invert))
	}
	return nil
}

// And returns the logical 'and' of a sequence of NID, folding pairwise with
// Ite(a,b,O), following the teacher's variadic And (bdd.go).
func (b *Base) And(ns ...NID) (NID, error) {
	if len(ns) == 0 {
		return I, nil
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		r, err := b.Ite(acc, n, O)
		if err != nil {
			return O, err
		}
		acc = r
	}
	return acc, nil
}

// Or returns the logical 'or' of a sequence of NID, folding pairwise with
// Ite(a,I,b).
func (b *Base) Or(ns ...NID) (NID, error) {
	if len(ns) == 0 {
		return O, nil
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		r, err := b.Ite(acc, I, n)
		if err != nil {
			return O, err
		}
		acc = r
	}
	return acc, nil
}

// Xor returns the logical exclusive-or of a and b: ite(a,!b,b).
func (b *Base) Xor(a, c NID) (NID, error) {
	return b.Ite(a, c.Inv(), c)
}

// Not returns the negation of n. It never touches the unique table: it is
// the packed-identifier operation NID.Not.
func (b *Base) Not(n NID) NID { return n.Not() }

// WhenHi returns n|v=1, n's cofactor setting v to true, assuming n's own top
// VID is exactly v (a single step, as used internally by the Swarm). For a
// general substitution at every occurrence of v regardless of where it
// appears in n's structure, use When.
func (b *Base) WhenHi(n NID, v VID) (NID, error) {
	hi, _, err := b.Cofactor(n, v)
	return hi, err
}

// WhenLo returns n|v=0, the companion of WhenHi.
func (b *Base) WhenLo(n NID, v VID) (NID, error) {
	_, lo, err := b.Cofactor(n, v)
	return lo, err
}

// When computes n|v=b (§4.7's when_var), substituting at every occurrence of
// v in n's structure, however deep, rebuilding the result through Ite so it
// stays reduced and shared with the rest of the unique table. A local memo
// avoids revisiting a shared sub-DAG more than once per call.
func (b *Base) When(v VID, bit bool, n NID) (NID, error) {
	memo := make(map[NID]NID)
	var rec func(NID) (NID, error)
	rec = func(m NID) (NID, error) {
		if out, ok := memo[m]; ok {
			return out, nil
		}
		out, err := b.restrictOnce(v, bit, m, rec)
		if err != nil {
			return O, err
		}
		memo[m] = out
		return out, nil
	}
	return rec(n)
}

func (b *Base) restrictOnce(v VID, bit bool, n NID, rec func(NID) (NID, error)) (NID, error) {
	if n.IsVar() {
		if n.VID() == v {
			if (n.IsInv() && bit) || (!n.IsInv() && !bit) {
				return O, nil
			}
			return I, nil
		}
		return n, nil
	}
	if n.Raw() == O || n.IsConst() {
		return n, nil
	}
	u := n.VID()
	if u == v {
		hi, lo, err := childrenOf(b.unique, n)
		if err != nil {
			return O, err
		}
		if bit {
			return hi, nil
		}
		return lo, nil
	}
	hi, lo, err := childrenOf(b.unique, n)
	if err != nil {
		return O, err
	}
	rhi, err := rec(hi)
	if err != nil {
		return O, err
	}
	rlo, err := rec(lo)
	if err != nil {
		return O, err
	}
	return b.Ite(VarNID(u), rhi, rlo)
}

// Eval evaluates n to O or I under a total assignment, following the
// branches directly without creating any node: assignment[v] gives the
// Boolean value of variable v and must be present for every real variable n
// depends on, or Eval returns EvalUndefined.
func (b *Base) Eval(n NID, assignment map[VID]bool) (NID, error) {
	cur := n
	for {
		if cur.Raw() == O {
			return applyInvert(O, cur.IsInv()), nil
		}
		if cur.IsConst() {
			return O, newError(InvariantViolated, "Eval(%s): embedded truth tables are not yet supported", cur)
		}
		v := cur.VID()
		bit, ok := assignment[v]
		if !ok {
			return O, newError(EvalUndefined, "Eval: no assignment for %s", v)
		}
		var next NID
		if cur.IsVar() {
			if bit {
				next = I
			} else {
				next = O
			}
		} else {
			hi, lo, err := childrenOf(b.unique, cur)
			if err != nil {
				return O, err
			}
			if bit {
				next = hi
			} else {
				next = lo
			}
		}
		if next.Raw() == O && next.IsLeaf() {
			return next, nil
		}
		cur = next
	}
}

// level maps a VID to the teacher's top-down level convention
// (operations.go's Satcount): 0 is the shallowest real variable, varnum-1
// the deepest, and varnum the level of both leaves. Real-variable index and
// level run in opposite directions here because this design orders
// variables bottom-up (a larger index sits shallower, §3), the reverse of
// the teacher's own numbering.
func (b *Base) level(v VID) int {
	if v.IsReal() {
		return b.varnum - 1 - int(v.Index())
	}
	return b.varnum
}

// Satcount returns the number of satisfying variable assignments for n,
// using arbitrary-precision arithmetic following the teacher's Satcount
// (operations.go): a node's count is the sum of its children's counts, each
// scaled by 2^(gap in levels - 1) to account for don't-care variables
// skipped between the node and that child, and the whole result is finally
// scaled by 2^(level of n) for the variables skipped above the root.
func (b *Base) Satcount(n NID) (*big.Int, error) {
	if n.IsConst() {
		return nil, newError(InvariantViolated, "Satcount(%s): embedded truth tables are not yet supported", n)
	}
	memo := make(map[NID]*big.Int)
	var rec func(NID) (*big.Int, error)
	rec = func(m NID) (*big.Int, error) {
		if m.Raw() == O {
			if m.IsInv() {
				return big.NewInt(1), nil
			}
			return big.NewInt(0), nil
		}
		if c, ok := memo[m]; ok {
			return c, nil
		}
		hi, lo, err := childrenOf(b.unique, m)
		if err != nil {
			return nil, err
		}
		lvl := b.level(topVID(m))
		hiCount, err := rec(hi)
		if err != nil {
			return nil, err
		}
		loCount, err := rec(lo)
		if err != nil {
			return nil, err
		}
		res := new(big.Int).Mul(pow2(b.level(topVID(hi))-lvl-1), hiCount)
		res.Add(res, new(big.Int).Mul(pow2(b.level(topVID(lo))-lvl-1), loCount))
		memo[m] = res
		return res, nil
	}
	total, err := rec(n)
	if err != nil {
		return nil, err
	}
	return total.Mul(total, pow2(b.level(topVID(n)))), nil
}

func pow2(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

// Allnodes calls f once for every committed VHL record reachable from a
// NID's structure (or, with no arguments, every record ever committed),
// following the teacher's Allnodes contract (bdd.go, hudd.go's allnodesfrom)
// adapted to the append-only unique table: there is no mark bit to clear
// afterwards, so a plain visited set suffices.
func (b *Base) Allnodes(f func(v VID, idx uint32, hi, lo NID) error, roots ...NID) error {
	if len(roots) == 0 {
		var rangeErr error
		b.unique.Rows(func(v VID) {
			if rangeErr != nil {
				return
			}
			for idx, rec := range b.unique.RecordsOf(v) {
				if err := f(v, uint32(idx), rec.Hi, rec.Lo); err != nil {
					rangeErr = err
					return
				}
			}
		})
		return rangeErr
	}
	visited := make(map[NID]bool)
	var walk func(NID) error
	walk = func(n NID) error {
		key := n.Raw()
		if key.IsLeaf() || visited[key] {
			return nil
		}
		visited[key] = true
		rec, ok := b.unique.Lookup(key.VID(), key.Idx())
		if !ok {
			return newError(InvariantViolated, "Allnodes: no VHL at %s", key)
		}
		if err := f(key.VID(), key.Idx(), rec.Hi, rec.Lo); err != nil {
			return err
		}
		if err := walk(rec.Hi); err != nil {
			return err
		}
		return walk(rec.Lo)
	}
	for _, r := range roots {
		if err := walk(r); err != nil {
			return err
		}
	}
	return nil
}

// Nid inspects a single NID, the `nid(n)` operation of §6.2: for an
// internal node it returns the node's (hi, lo) pair and ok=true; for a leaf
// (a constant, a variable, or an embedded truth table) it returns ok=false,
// since a leaf has no VHL record to report.
func (b *Base) Nid(n NID) (hi, lo NID, ok bool, err error) {
	key := n.Raw()
	if key.IsLeaf() {
		return O, O, false, nil
	}
	rec, found := b.unique.Lookup(key.VID(), key.Idx())
	if !found {
		return O, O, false, newError(InvariantViolated, "Nid: no VHL at %s", key)
	}
	return rec.Hi, rec.Lo, true, nil
}
