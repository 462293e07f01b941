// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiLoCacheDeduplicates(t *testing.T) {
	c := newHiLoCache()
	v := VReal(0)
	hi, lo := I, O
	n1, err := c.GetOrMake(v, hi, lo)
	require.NoError(t, err)
	n2, err := c.GetOrMake(v, hi, lo)
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
	assert.Equal(t, 1, c.Size())
}

func TestHiLoCacheRejectsInvertedHi(t *testing.T) {
	c := newHiLoCache()
	_, err := c.GetOrMake(VReal(0), I.Inv(), O)
	require.Error(t, err)
	assert.True(t, IsKind(err, InvariantViolated))
}

func TestHiLoCacheLookup(t *testing.T) {
	c := newHiLoCache()
	v := VReal(1)
	n, err := c.GetOrMake(v, I, O)
	require.NoError(t, err)
	vhl, ok := c.Lookup(v, n.Idx())
	require.True(t, ok)
	assert.Equal(t, v, vhl.V)
	assert.Equal(t, I, vhl.Hi)
	assert.Equal(t, O, vhl.Lo)

	_, ok = c.Lookup(v, 999)
	assert.False(t, ok)
}

func TestHiLoCacheRowsIndependentPerVID(t *testing.T) {
	c := newHiLoCache()
	_, err := c.GetOrMake(VReal(0), I, O)
	require.NoError(t, err)
	_, err = c.GetOrMake(VReal(1), I, O)
	require.NoError(t, err)
	count := 0
	c.Rows(func(v VID) { count++ })
	assert.Equal(t, 2, count)
}
