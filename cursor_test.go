// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionsEnumeratesExactlyTheSatisfyingAssignments(t *testing.T) {
	b := newTestBase(t, 3)
	x0, _ := b.Ithvar(0)
	x1, _ := b.Ithvar(1)
	x2, _ := b.Ithvar(2)

	f, err := b.And(x0, x1)
	require.NoError(t, err)
	f, err = b.Or(f, x2)
	require.NoError(t, err)

	cur, err := b.Solutions(f)
	require.NoError(t, err)
	assert.Equal(t, 5, cur.Len(), "(x0 && x1) || x2 has exactly 5 satisfying assignments over 3 Boolean inputs")

	v0, v1, v2 := x0.VID(), x1.VID(), x2.VID()
	seen := make(map[[3]bool]bool)
	for cur.Next() {
		a := cur.Assignment()
		key := [3]bool{a[v0], a[v1], a[v2]}
		assert.False(t, seen[key], "duplicate assignment %v", key)
		seen[key] = true

		val, err := b.Eval(f, a)
		require.NoError(t, err)
		assert.Equal(t, I, val, "assignment %v returned by Solutions must satisfy f", key)
	}

	// Cross-check against brute force over all 8 assignments.
	want := 0
	for i := 0; i < 8; i++ {
		a := map[VID]bool{
			v0: i&1 != 0,
			v1: i&2 != 0,
			v2: i&4 != 0,
		}
		val, err := b.Eval(f, a)
		require.NoError(t, err)
		if val == I {
			want++
			assert.True(t, seen[[3]bool{a[v0], a[v1], a[v2]}])
		}
	}
	assert.Equal(t, want, cur.Len())
}
