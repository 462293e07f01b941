// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "fmt"

// VHL is a stored node record: a variable v together with its high (true)
// and low (false) children. Every non-leaf BDD node is, at rest, a VHL.
//
// Invariants (enforced by the unique table, never by this type itself):
//   - CmpDepth(v, topVID(Hi)) == Above, and likewise for Lo: children branch
//     on a strictly deeper variable, or are leaves.
//   - Hi != Lo (reduction rule).
//   - Hi does not carry the INV bit.
type VHL struct {
	V  VID
	Hi NID
	Lo NID
}

func (vhl VHL) String() string {
	return fmt.Sprintf("%s?%s:%s", vhl.V, vhl.Hi, vhl.Lo)
}

// iteTriple is a normalized (f,g,h) triple, used both as the computed-cache
// key and as the WorkState registration key. It is a plain comparable
// struct so it can be used directly as a Go map key.
type iteTriple struct {
	F, G, H NID
}

func (t iteTriple) String() string {
	return fmt.Sprintf("ite(%s,%s,%s)", t.F, t.G, t.H)
}

// normalized is the result of running the ITE normalizer (§4.3) on a triple.
// Either Direct is valid (the triple reduced to an existing NID with no need
// to consult the unique table) or Triple/Invert are valid (the canonical
// form to look up or build, plus the overall negation to re-apply to
// whatever NID is eventually produced for Triple).
type normalized struct {
	Direct   NID
	IsDirect bool
	Triple   iteTriple
	V        VID
	Invert   bool
}

// normalizeITE rewrites an ITE triple into canonical form, per §4.3:
//  1. algebraic identities that can resolve the triple directly;
//  2. factoring out an inverted "then" branch;
//  3. choosing the minimum-depth VID among top(f), top(g), top(h).
func normalizeITE(f, g, h NID) normalized {
	for {
		switch {
		case g == h:
			return normalized{Direct: g, IsDirect: true}
		case f == I:
			return normalized{Direct: g, IsDirect: true}
		case f == O:
			return normalized{Direct: h, IsDirect: true}
		case g == I && h == O:
			return normalized{Direct: f, IsDirect: true}
		case g == O && h == I:
			return normalized{Direct: f.Inv(), IsDirect: true}
		case f == g:
			g = I
			continue
		case f == h:
			h = O
			continue
		case g == f.Inv():
			g = O
			continue
		case h == f.Inv():
			h = I
			continue
		}
		break
	}

	invert := false
	if g.IsInv() {
		g, h = g.Inv(), h.Inv()
		invert = true
	}

	v := TopVID(topVID(f), topVID(g), topVID(h))
	return normalized{
		Triple: iteTriple{F: f, G: g, H: h},
		V:      v,
		Invert: invert,
	}
}

// canonicalHiLo applies the unique table's canonicalization rule: Hi must
// not carry the INV bit. If it does, the whole node is inverted and stored
// as (hi.Inv(), lo.Inv()); the caller must re-apply the returned invert flag
// to whatever NID the unique table hands back.
func canonicalHiLo(hi, lo NID) (cHi, cLo NID, invert bool) {
	if hi.IsInv() {
		return hi.Inv(), lo.Inv(), true
	}
	return hi, lo, false
}
