// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBase(t *testing.T, varnum int, opts ...func(*configs)) *Base {
	t.Helper()
	b, err := New(varnum, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestAndCommutes(t *testing.T) {
	b := newTestBase(t, 2)
	x0, err := b.Ithvar(0)
	require.NoError(t, err)
	x1, err := b.Ithvar(1)
	require.NoError(t, err)

	a, err := b.And(x0, x1)
	require.NoError(t, err)
	c, err := b.And(x1, x0)
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestXorSelfIsFalse(t *testing.T) {
	b := newTestBase(t, 1)
	x0, err := b.Ithvar(0)
	require.NoError(t, err)
	r, err := b.Xor(x0, x0)
	require.NoError(t, err)
	assert.Equal(t, O, r)
}

func TestOrWithNegationIsTrue(t *testing.T) {
	b := newTestBase(t, 1)
	x0, err := b.Ithvar(0)
	require.NoError(t, err)
	r, err := b.Or(x0, b.Not(x0))
	require.NoError(t, err)
	assert.Equal(t, I, r)
}

func TestIteSharesSubgraph(t *testing.T) {
	b := newTestBase(t, 3)
	x0, _ := b.Ithvar(0)
	x1, _ := b.Ithvar(1)
	x2, _ := b.Ithvar(2)

	n1, err := b.Ite(x0, x1, x2)
	require.NoError(t, err)
	n2, err := b.Ite(x0, x1, x2)
	require.NoError(t, err)
	assert.Equal(t, n1, n2, "identical triples must produce the identical NID")
}

func TestWhenRestrictsEveryOccurrence(t *testing.T) {
	b := newTestBase(t, 2)
	x0, _ := b.Ithvar(0)
	x1, _ := b.Ithvar(1)
	f, err := b.And(x0, x1) // x0 && x1
	require.NoError(t, err)

	hi, err := b.When(x0.VID(), true, f)
	require.NoError(t, err)
	assert.Equal(t, x1, hi)

	lo, err := b.When(x0.VID(), false, f)
	require.NoError(t, err)
	assert.Equal(t, O, lo)
}

func TestEvalAgreesWithConstruction(t *testing.T) {
	b := newTestBase(t, 2)
	x0, _ := b.Ithvar(0)
	x1, _ := b.Ithvar(1)
	f, err := b.And(x0, x1)
	require.NoError(t, err)

	for _, tt := range []struct {
		a0, a1, want bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	} {
		val, err := b.Eval(f, map[VID]bool{x0.VID(): tt.a0, x1.VID(): tt.a1})
		require.NoError(t, err)
		want := O
		if tt.want {
			want = I
		}
		assert.Equal(t, want, val)
	}
}

func TestEvalUndefinedAssignment(t *testing.T) {
	b := newTestBase(t, 1)
	x0, _ := b.Ithvar(0)
	_, err := b.Eval(x0, map[VID]bool{})
	require.Error(t, err)
	assert.True(t, IsKind(err, EvalUndefined))
}

func TestSatcountAndAnd(t *testing.T) {
	b := newTestBase(t, 2)
	x0, _ := b.Ithvar(0)
	x1, _ := b.Ithvar(1)
	f, err := b.And(x0, x1)
	require.NoError(t, err)
	count, err := b.Satcount(f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Int64())
}

func TestNidInspectsInternalNode(t *testing.T) {
	b := newTestBase(t, 2)
	x0, _ := b.Ithvar(0)
	x1, _ := b.Ithvar(1)
	f, err := b.And(x0, x1)
	require.NoError(t, err)

	hi, lo, ok, err := b.Nid(f)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, x0, hi)
	assert.Equal(t, O, lo)

	_, _, ok, err = b.Nid(x0)
	require.NoError(t, err)
	assert.False(t, ok, "a leaf has no VHL record")
}

func TestConcurrencyDeterminism(t *testing.T) {
	build := func(workers int) NID {
		b := newTestBase(t, 4, Workers(workers))
		x0, _ := b.Ithvar(0)
		x1, _ := b.Ithvar(1)
		x2, _ := b.Ithvar(2)
		x3, _ := b.Ithvar(3)
		f, err := b.And(x0, x1)
		require.NoError(t, err)
		g, err := b.Or(f, x2)
		require.NoError(t, err)
		h, err := b.Xor(g, x3)
		require.NoError(t, err)
		return h
	}
	want := Display(build(1))
	for _, n := range []int{1, 2, 4, 8} {
		assert.Equal(t, want, Display(build(n)), "worker count %d changed the result", n)
	}
}
