// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders n in the textual notation of §6.1: `O`/`I` for the
// constants, `xN`/`vN` for a real/virtual variable leaf, `xV.IDX`/`vV.IDX`
// for an internal unique-table reference, `t<bits>` for an embedded truth
// table, all with a leading `!` when the INV bit is set. This is the one
// canonical form Display ever emits; Parse additionally accepts the `@`
// and `fN.M`/`fX` alternate spellings described in §6.1.
func Display(n NID) string {
	prefix := ""
	if n.IsInv() {
		prefix = "!"
	}
	if n.IsConst() {
		return prefix + displayTable(n)
	}
	r := n.Raw()
	if r == O {
		if prefix == "!" {
			return "I"
		}
		return "O"
	}
	v := r.VID()
	letter := "x"
	if v.IsVirtual() {
		letter = "v"
	}
	if r.IsVar() {
		return prefix + letter + hexUpper(uint64(v.Index()))
	}
	return prefix + letter + hexUpper(uint64(v.Index())) + "." + hexUpper(uint64(r.Idx()))
}

func displayTable(n NID) string {
	arity := n.TableArity()
	width := 1 << uint(arity)
	s := strconv.FormatUint(uint64(n.TableBits()), 2)
	for len(s) < width {
		s = "0" + s
	}
	return "t" + s
}

func hexUpper(v uint64) string {
	return strings.ToUpper(strconv.FormatUint(v, 16))
}

// Parse is the inverse of Display: parse(display(n)) == n for every valid
// NID that does not carry the FUN flag. Display has no spelling for FUN, so
// an AST's virtual-variable handle displays as a plain `vN` and parses back
// without the flag.
func Parse(s string) (NID, error) {
	orig := s
	invert := false
	if strings.HasPrefix(s, "!") {
		invert = true
		s = s[1:]
	}
	n, err := parseBody(s)
	if err != nil {
		return O, wrapError(MalformedInput, err, fmt.Sprintf("parse %q", orig))
	}
	if invert {
		n = n.Inv()
	}
	return n, nil
}

func parseBody(s string) (NID, error) {
	switch {
	case s == "O":
		return O, nil
	case s == "I":
		return I, nil
	case strings.HasPrefix(s, "t"):
		return parseTable(s[1:])
	case strings.HasPrefix(s, "f"):
		return parseHexTable(s[1:])
	case strings.HasPrefix(s, "x"):
		return parseVarOrNode(s[1:], true)
	case strings.HasPrefix(s, "v"):
		return parseVarOrNode(s[1:], false)
	case strings.HasPrefix(s, "@"):
		return parseIndexed(s[1:])
	}
	return O, newError(MalformedInput, "unrecognized NID notation %q", s)
}

func parseVarOrNode(rest string, real bool) (NID, error) {
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		v, err := strconv.ParseUint(rest[:dot], 16, 32)
		if err != nil {
			return O, err
		}
		idx, err := strconv.ParseUint(rest[dot+1:], 16, 32)
		if err != nil {
			return O, err
		}
		vid := VReal(uint32(v))
		if !real {
			vid = VVirtual(uint32(v))
		}
		return FromVidIdx(vid, uint32(idx)), nil
	}
	k, err := strconv.ParseUint(rest, 16, 32)
	if err != nil {
		return O, err
	}
	if real {
		return VarNID(VReal(uint32(k))), nil
	}
	return VarNID(VVirtual(uint32(k))), nil
}

// parseIndexed handles the `@V.IDX` alternate form, where V is the VID's own
// packed kind+index encoding (VID.pack) rather than a plain variable index:
// unlike `xV.IDX`/`vV.IDX`, `@` carries no separate letter to say which
// namespace V belongs to, so the kind has to travel inside V itself.
func parseIndexed(rest string) (NID, error) {
	dot := strings.IndexByte(rest, '.')
	if dot < 0 {
		return O, newError(MalformedInput, "expected V.IDX after @, got %q", rest)
	}
	vRaw, err := strconv.ParseUint(rest[:dot], 16, 64)
	if err != nil {
		return O, err
	}
	idx, err := strconv.ParseUint(rest[dot+1:], 16, 32)
	if err != nil {
		return O, err
	}
	return FromVidIdx(unpackVID(vRaw), uint32(idx)), nil
}

func parseTable(rest string) (NID, error) {
	var arity int
	switch len(rest) {
	case 2:
		arity = 1
	case 4:
		arity = 2
	case 8:
		arity = 3
	case 16:
		arity = 4
	case 32:
		arity = 5
	default:
		return O, newError(MalformedInput, "truth table must have 2, 4, 8, 16 or 32 bits, got %d", len(rest))
	}
	bits, err := strconv.ParseUint(rest, 2, 32)
	if err != nil {
		return O, err
	}
	return TableNID(arity, uint32(bits)), nil
}

func parseHexTable(rest string) (NID, error) {
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		arity, err := strconv.Atoi(rest[:dot])
		if err != nil {
			return O, err
		}
		if arity < 1 || arity > 5 {
			return O, newError(MalformedInput, "truth table arity %d out of range [1,5]", arity)
		}
		bits, err := strconv.ParseUint(rest[dot+1:], 16, 32)
		if err != nil {
			return O, err
		}
		return TableNID(arity, uint32(bits)), nil
	}
	if len(rest) != 1 {
		return O, newError(MalformedInput, "bare hex truth table shorthand must be a single digit, got %q; use fN.M", rest)
	}
	bits, err := strconv.ParseUint(rest, 16, 32)
	if err != nil {
		return O, err
	}
	return TableNID(2, uint32(bits)), nil
}
