// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

// NID is a packed Node Identifier: a 64-bit value that denotes either a
// leaf (a real or virtual variable), an embedded truth table of up to 5
// inputs, or a reference into the unique table (a VID, IDX pair). NID is a
// pure value type: all of the codec below is allocation-free and every
// algebraic decision that does not require dereferencing the unique table
// can be made by inspecting the bits directly.
//
// Layout, from the most to the least significant bit:
//
//	INV   (1 bit)  logical negation of the referenced function
//	VAR   (1 bit)  n denotes a single variable (leaf)
//	RVAR  (1 bit)  (when VAR) real variable, as opposed to virtual
//	CONST (1 bit)  n carries an embedded truth table
//	FUN   (1 bit)  n is to be treated as a function (AST operation list)
//	VID   (24 bits) branch variable, or (for CONST) the table's arity
//	IDX   (32 bits) unique-table row index, or (for CONST) the table itself
//
// Equal function implies equal NID, up to INV: two NID that differ only in
// their INV bit denote complementary functions.
type NID uint64

const (
	bitsIdx = 32
	bitsVid = 24

	shiftIdx   = 3
	shiftVid   = shiftIdx + bitsIdx   // 35
	shiftFun   = shiftVid + bitsVid   // 59
	shiftConst = shiftFun + 1         // 60
	shiftRVar  = shiftConst + 1       // 61
	shiftVar   = shiftRVar + 1        // 62
	shiftInv   = shiftVar + 1         // 63

	maskIdx = uint64(1)<<bitsIdx - 1
	maskVid = uint64(1)<<bitsVid - 1

	flagVar   = NID(1) << shiftVar
	flagRVar  = NID(1) << shiftRVar
	flagConst = NID(1) << shiftConst
	flagFun   = NID(1) << shiftFun
	flagInv   = NID(1) << shiftInv
)

// O is the fixed NID for the constant function false.
const O NID = 0

// I is the fixed NID for the constant function true: the negation of O.
var I NID = O.Not()

// FromVidIdx builds the NID referencing row idx of the unique table for
// variable v. It performs no lookup and no validation; callers (the unique
// table itself) are responsible for the invariant that (v, idx) addresses a
// committed VHL record.
func FromVidIdx(v VID, idx uint32) NID {
	return NID(v.pack()<<shiftVid | (uint64(idx) & maskIdx << shiftIdx))
}

// VarNID returns the leaf NID denoting the single variable v (real or
// virtual). The VAR flag is set so that the identifier fully describes the
// node without consulting the unique table.
func VarNID(v VID) NID {
	n := FromVidIdx(v, 0) | flagVar
	if v.IsReal() {
		n |= flagRVar
	}
	return n
}

// TableNID returns a NID embedding a truth table of the given arity
// (1..5, i.e. 2..32 entries). table's low 2^arity bits hold the output for
// every input combination, input k corresponding to bit k of the row index.
func TableNID(arity int, table uint32) NID {
	n := NID(uint64(arity)&maskVid<<shiftVid | uint64(table)&maskIdx<<shiftIdx)
	return n | flagConst
}

// Inv toggles the INV bit. It is idempotent: n.Inv().Inv() == n.
func (n NID) Inv() NID { return n ^ flagInv }

// Not is a synonym for Inv, matching the BDD engine's Not operation at the
// level of the packed identifier.
func (n NID) Not() NID { return n.Inv() }

// IsInv reports whether the INV bit is set.
func (n NID) IsInv() bool { return n&flagInv != 0 }

// Raw clears the INV bit.
func (n NID) Raw() NID { return n &^ flagInv }

// IsVar reports whether n denotes a single variable leaf.
func (n NID) IsVar() bool { return n.Raw()&flagVar != 0 }

// IsRVar reports whether n is a VAR leaf for a real (as opposed to virtual)
// variable. It is meaningless unless IsVar() is true.
func (n NID) IsRVar() bool { return n.Raw()&flagRVar != 0 }

// IsConst reports whether n carries an embedded truth table.
func (n NID) IsConst() bool { return n.Raw()&flagConst != 0 }

// IsFun reports whether n is tagged as an AST function reference.
func (n NID) IsFun() bool { return n.Raw()&flagFun != 0 }

// WithFun returns n tagged with the FUN flag, used by the AST base to mark
// the virtual-variable NID it hands out for an operation record.
func (n NID) WithFun() NID { return n | flagFun }

// VID returns the variable this NID branches on: for a VAR leaf, the
// variable itself; for an internal reference, the row's branch variable;
// meaningless for CONST NID (use TableArity/TableBits instead).
func (n NID) VID() VID {
	return unpackVID(uint64(n.Raw()) >> shiftVid & maskVid)
}

// Idx returns the unique-table row index this NID refers to. Meaningless for
// VAR and CONST NID.
func (n NID) Idx() uint32 {
	return uint32(uint64(n.Raw()) >> shiftIdx & maskIdx)
}

// TableArity returns the number of inputs (1..5) of an embedded truth table.
func (n NID) TableArity() int {
	return int(uint64(n.Raw()) >> shiftVid & maskVid)
}

// TableBits returns the raw truth table of a CONST NID.
func (n NID) TableBits() uint32 {
	return uint32(uint64(n.Raw()) >> shiftIdx & maskIdx)
}

// IsLeaf reports whether n can be treated as a leaf of the BDD for the
// purpose of cofactoring and depth comparisons: the two constants, a single
// variable, or an embedded truth table.
func (n NID) IsLeaf() bool {
	return n.Raw() == O || n.IsVar() || n.IsConst()
}

// topVID returns the VID this NID effectively branches on: its own VID for a
// VAR leaf or an internal reference, and the constant level T for O, I and
// embedded truth tables (the degenerate-truth-table reduction described as
// an open question in the specification is not attempted here: CONST NID
// are always treated as opaque leaves, never as branch points).
func topVID(n NID) VID {
	switch {
	case n.Raw() == O:
		return VTrue()
	case n.IsConst():
		return VTrue()
	default:
		return n.VID()
	}
}
