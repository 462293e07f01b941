// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

// childrenOf decodes the (hi, lo) children of an internal NID n, consulting
// the unique table for the VHL record at (n.VID(), n.Idx()) and re-applying
// n's own INV bit to both children. VAR leaves are decoded without touching
// the unique table: the variable itself denotes ITE(v, I, O).
func childrenOf(unique *HiLoCache, n NID) (hi, lo NID, err error) {
	if n.IsVar() {
		if n.IsInv() {
			return O, I, nil
		}
		return I, O, nil
	}
	if n.IsConst() {
		return O, O, newError(InvariantViolated, "childrenOf(%s): embedded truth table has no children", n)
	}
	if n.Raw() == O {
		return O, O, newError(InvariantViolated, "childrenOf(%s): constant leaf has no children", n)
	}
	vhl, ok := unique.Lookup(n.VID(), n.Idx())
	if !ok {
		return O, O, newError(InvariantViolated, "childrenOf(%s): no VHL stored at (%s,%d)", n, n.VID(), n.Idx())
	}
	if n.IsInv() {
		return vhl.Hi.Inv(), vhl.Lo.Inv(), nil
	}
	return vhl.Hi, vhl.Lo, nil
}

// cofactorPair returns (n|v=1, n|v=0), the cofactors of n with respect to
// variable v. If n's own top VID is not exactly v, n cannot depend on v at
// this branch (v was chosen as the shallowest among a whole ITE triple, so
// n's top is always Level with v or strictly Below it, never Above) and
// both cofactors equal n unchanged.
func cofactorPair(unique *HiLoCache, n NID, v VID) (hi, lo NID, err error) {
	if CmpDepth(topVID(n), v) != Level {
		return n, n, nil
	}
	return childrenOf(unique, n)
}

// Cofactor returns the pair (n|v=1, n|v=0) for external callers (the BDD
// engine's public WhenHi/WhenLo build on this).
func (b *Base) Cofactor(n NID, v VID) (hi, lo NID, err error) {
	return cofactorPair(b.unique, n, v)
}
