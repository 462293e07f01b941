// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayParseRoundTrip(t *testing.T) {
	cases := []NID{
		O,
		I,
		VarNID(VReal(0)),
		VarNID(VReal(0xA)).Inv(),
		VarNID(VVirtual(3)),
		FromVidIdx(VReal(2), 0x10),
		FromVidIdx(VVirtual(1), 5).Inv(),
		TableNID(1, 0b10),
		TableNID(2, 0b1011),
		TableNID(5, 0xDEADBEEF),
		TableNID(1, 0b10).Inv(),
		TableNID(2, 0b1011).Inv(),
	}
	for _, n := range cases {
		s := Display(n)
		got, err := Parse(s)
		require.NoError(t, err, "parsing %q", s)
		assert.Equal(t, n, got, "round trip of %q", s)
	}
}

func TestDisplayForms(t *testing.T) {
	assert.Equal(t, "O", Display(O))
	assert.Equal(t, "I", Display(I))
	assert.Equal(t, "x0", Display(VarNID(VReal(0))))
	assert.Equal(t, "!xA", Display(VarNID(VReal(0xA)).Inv()))
	assert.Equal(t, "v3", Display(VarNID(VVirtual(3))))
	assert.Equal(t, "x2.10", Display(FromVidIdx(VReal(2), 0x10)))
	assert.Equal(t, "t10", Display(TableNID(1, 0b10)))
	assert.Equal(t, "!t10", Display(TableNID(1, 0b10).Inv()))
}

func TestParseHexTableShorthand(t *testing.T) {
	n, err := Parse("fA")
	require.NoError(t, err)
	assert.Equal(t, 2, n.TableArity())
	assert.Equal(t, uint32(0xA), n.TableBits())

	n2, err := Parse("f3.A")
	require.NoError(t, err)
	assert.Equal(t, 3, n2.TableArity())
	assert.Equal(t, uint32(0xA), n2.TableBits())

	_, err = Parse("fAB")
	require.Error(t, err)
	assert.True(t, IsKind(err, MalformedInput))
}

func TestParseUnknownNotation(t *testing.T) {
	_, err := Parse("???")
	require.Error(t, err)
	assert.True(t, IsKind(err, MalformedInput))
}
