// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "fmt"

// VID is a Variable Identifier. It tags either the constant level (T), the
// absence of a variable (NoV), a real input variable (Var(k)), or a virtual
// placeholder variable standing for an AST subexpression (Vir(k)).
//
// VID is a small value type, kept separate from NID so that the depth
// ordering (CmpDepth) and the AST/BDD variable namespaces can be reasoned
// about without unpacking a full node identifier.
type VID struct {
	kind uint8
	idx  uint32
}

const (
	vidKindT uint8 = iota
	vidKindNoV
	vidKindReal
	vidKindVir
)

// VTrue returns the VID used for the constant level, below every real or
// virtual variable in depth order.
func VTrue() VID { return VID{kind: vidKindT} }

// VNoVar returns the VID standing for "no variable", above every other VID in
// depth order.
func VNoVar() VID { return VID{kind: vidKindNoV} }

// VReal returns the VID for the k'th real input variable.
func VReal(k uint32) VID { return VID{kind: vidKindReal, idx: k} }

// VVirtual returns the VID for the k'th virtual (AST placeholder) variable.
func VVirtual(k uint32) VID { return VID{kind: vidKindVir, idx: k} }

// IsTrue reports whether v is the constant level.
func (v VID) IsTrue() bool { return v.kind == vidKindT }

// IsNoVar reports whether v stands for the absence of a variable.
func (v VID) IsNoVar() bool { return v.kind == vidKindNoV }

// IsReal reports whether v is a real input variable.
func (v VID) IsReal() bool { return v.kind == vidKindReal }

// IsVirtual reports whether v is a virtual placeholder variable.
func (v VID) IsVirtual() bool { return v.kind == vidKindVir }

// Index returns the variable index carried by v. It is meaningless for
// VTrue() and VNoVar().
func (v VID) Index() uint32 { return v.idx }

func (v VID) String() string {
	switch v.kind {
	case vidKindT:
		return "T"
	case vidKindNoV:
		return "NoV"
	case vidKindReal:
		return fmt.Sprintf("Var(%d)", v.idx)
	case vidKindVir:
		return fmt.Sprintf("Vir(%d)", v.idx)
	}
	return "?"
}

// pack/unpack let NID embed a VID in its 24-bit VID field (see nid.go).
func (v VID) pack() uint64 {
	return uint64(v.kind)<<22 | uint64(v.idx&0x3FFFFF)
}

func unpackVID(x uint64) VID {
	return VID{kind: uint8(x >> 22), idx: uint32(x & 0x3FFFFF)}
}

// Depth is the result of comparing two VID by their position in the BDD,
// from the root (Above) to the leaves (Below).
type Depth int

const (
	Above Depth = -1
	Level Depth = 0
	Below Depth = 1
)

func (d Depth) String() string {
	switch d {
	case Above:
		return "Above"
	case Level:
		return "Level"
	case Below:
		return "Below"
	}
	return "?"
}

// depthRank assigns a total order key to a VID such that a smaller key means
// "closer to the top of the BDD" (shallower). Buckets are ordered
// NoV < Vir < Var < T, and within a bucket a LARGER variable index is
// shallower: this is the "bottom-up" ordering described in the
// specification, the opposite of the textbook top-down convention, chosen so
// that smaller real-variable indices sit deeper (closer to the leaves) and
// a node's top VID directly bounds the width of its truth table.
func depthRank(v VID) int64 {
	const bucket = int64(1) << 40
	switch v.kind {
	case vidKindNoV:
		return -1 // strictly above everything, including Vir(0)
	case vidKindVir:
		return 1*bucket - int64(v.idx)
	case vidKindReal:
		return 2*bucket - int64(v.idx)
	default: // vidKindT
		return 3 * bucket
	}
}

// CmpDepth implements the depth ordering between two VID. It returns Above
// when a sits strictly closer to the root than b, Below when it sits
// strictly closer to the leaves, and Level when a and b are the same
// variable.
func CmpDepth(a, b VID) Depth {
	ra, rb := depthRank(a), depthRank(b)
	switch {
	case ra < rb:
		return Above
	case ra > rb:
		return Below
	default:
		return Level
	}
}

// TopVID returns the minimum-depth (shallowest) VID among a set of VID,
// implementing vid_of_top for an ITE triple: vid_of_top(ite) =
// min_by_depth(top(f), top(g), top(h)).
func TopVID(vs ...VID) VID {
	if len(vs) == 0 {
		return VNoVar()
	}
	top := vs[0]
	for _, v := range vs[1:] {
		if CmpDepth(v, top) == Above {
			top = v
		}
	}
	return top
}
