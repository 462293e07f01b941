// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "sort"

// Cursor iterates over the satisfying assignments of a NID, in
// lexicographic order over the engine's own (bottom-up) variable order:
// shallowest (largest real-variable index) varies slowest, deepest
// (smallest index) varies fastest, with every don't-care variable fully
// expanded into both of its values — following the teacher's recursive
// Allsat traversal (operations.go) but enumerating complete assignments
// eagerly instead of reporting compressed (-1 for don't-care) profiles via
// a callback.
type Cursor struct {
	assignments []map[VID]bool
	pos         int
}

// Solutions returns a Cursor over every satisfying assignment of n, over
// the real variables 0..Varnum()-1 of b. The walk
// follows n's own (hi,lo) structure (§4.7) via childrenOf/topVID rather
// than testing every one of the 2^Varnum total assignments through Eval: a
// variable the current node's top VID does not match is a genuine
// don't-care and both of its values lead to the same subtree, while a
// falsified branch (a bare O leaf) is pruned immediately instead of being
// walked out to a full assignment first.
func (b *Base) Solutions(n NID) (*Cursor, error) {
	vars := make([]VID, b.varnum)
	for i := 0; i < b.varnum; i++ {
		vars[i] = VReal(uint32(i))
	}
	// Shallowest first: larger real-variable index is shallower (§3).
	sort.Slice(vars, func(i, j int) bool { return vars[i].Index() > vars[j].Index() })

	var out []map[VID]bool
	assignment := make(map[VID]bool, len(vars))

	// fillRemaining expands every variable from idx onward into both of its
	// values and records one completed assignment per combination. It is
	// only ever called once walk has reached a satisfied (I) leaf, so every
	// variable from idx onward is a genuine don't-care at that point.
	var fillRemaining func(idx int)
	fillRemaining = func(idx int) {
		if idx == len(vars) {
			snap := make(map[VID]bool, len(assignment))
			for k, v := range assignment {
				snap[k] = v
			}
			out = append(out, snap)
			return
		}
		v := vars[idx]
		assignment[v] = false
		fillRemaining(idx + 1)
		assignment[v] = true
		fillRemaining(idx + 1)
	}

	var walk func(idx int, cur NID) error
	walk = func(idx int, cur NID) error {
		if cur.Raw() == O {
			if cur.IsInv() {
				fillRemaining(idx)
			}
			// An unsatisfied leaf needs no further expansion: prune.
			return nil
		}
		if idx == len(vars) {
			return newError(InvariantViolated, "Solutions: %s still undetermined with no variables left", cur)
		}
		if cur.IsConst() {
			return newError(InvariantViolated, "Solutions(%s): embedded truth tables are not yet supported", cur)
		}
		v := vars[idx]
		switch CmpDepth(topVID(cur), v) {
		case Level:
			hi, lo, err := childrenOf(b.unique, cur)
			if err != nil {
				return err
			}
			assignment[v] = false
			if err := walk(idx+1, lo); err != nil {
				return err
			}
			assignment[v] = true
			return walk(idx+1, hi)
		case Below:
			// cur does not depend on v: both of its values lead here again.
			assignment[v] = false
			if err := walk(idx+1, cur); err != nil {
				return err
			}
			assignment[v] = true
			return walk(idx+1, cur)
		default:
			return newError(InvariantViolated, "Solutions: %s sits above %s in traversal order", topVID(cur), v)
		}
	}

	if err := walk(0, n); err != nil {
		return nil, err
	}
	return &Cursor{assignments: out}, nil
}

// Next advances the cursor and reports whether an assignment is available.
func (c *Cursor) Next() bool {
	if c.pos >= len(c.assignments) {
		return false
	}
	c.pos++
	return true
}

// Assignment returns the current satisfying assignment, valid only after a
// call to Next returned true.
func (c *Cursor) Assignment() map[VID]bool {
	return c.assignments[c.pos-1]
}

// Len returns the total number of satisfying assignments found.
func (c *Cursor) Len() int { return len(c.assignments) }
