// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNIDConstants(t *testing.T) {
	assert.Equal(t, O, I.Inv())
	assert.Equal(t, I, O.Inv())
	assert.True(t, I.IsInv())
	assert.False(t, O.IsInv())
}

func TestNIDInvIdempotent(t *testing.T) {
	n := VarNID(VReal(3))
	assert.Equal(t, n, n.Inv().Inv())
}

func TestNIDVarLeaf(t *testing.T) {
	v := VReal(7)
	n := VarNID(v)
	require.True(t, n.IsVar())
	require.True(t, n.IsRVar())
	assert.Equal(t, v, n.VID())
	assert.False(t, n.IsConst())

	vv := VVirtual(2)
	nv := VarNID(vv)
	require.True(t, nv.IsVar())
	assert.False(t, nv.IsRVar())
}

func TestNIDFromVidIdx(t *testing.T) {
	v := VReal(1)
	n := FromVidIdx(v, 42)
	assert.False(t, n.IsVar())
	assert.Equal(t, v, n.VID())
	assert.Equal(t, uint32(42), n.Idx())
}

func TestNIDTable(t *testing.T) {
	n := TableNID(2, 0b1010)
	require.True(t, n.IsConst())
	assert.Equal(t, 2, n.TableArity())
	assert.Equal(t, uint32(0b1010), n.TableBits())
}

func TestNIDIsLeaf(t *testing.T) {
	assert.True(t, O.IsLeaf())
	assert.True(t, I.IsLeaf())
	assert.True(t, VarNID(VReal(0)).IsLeaf())
	assert.True(t, TableNID(1, 0b10).IsLeaf())
	assert.False(t, FromVidIdx(VReal(0), 0).IsLeaf())
}
