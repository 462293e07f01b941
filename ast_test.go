// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASTAlgebraicShortcuts(t *testing.T) {
	a := NewAST()
	x0 := VarNID(VReal(0))
	assert.Equal(t, O, a.And(x0, O))
	assert.Equal(t, x0, a.And(x0, I))
	assert.Equal(t, x0, a.And(x0, x0))
	assert.Equal(t, O, a.And(x0, x0.Inv()))
	assert.Equal(t, 0, a.Len(), "pure identities must never allocate a virtual variable")
}

func TestASTSharesEqualExpressions(t *testing.T) {
	a := NewAST()
	x0 := VarNID(VReal(0))
	x1 := VarNID(VReal(1))
	n1 := a.And(x0, x1)
	n2 := a.And(x0, x1)
	assert.Equal(t, n1, n2)
	assert.Equal(t, 1, a.Len())
}

func TestSortByCostPreservesChildBeforeParent(t *testing.T) {
	a := NewAST()
	x0 := VarNID(VReal(0))
	x1 := VarNID(VReal(1))
	x2 := VarNID(VReal(2))
	expr := a.Or(a.And(x0, x1), x2)

	sorted, roots := a.sortByCost([]NID{expr})
	require.Len(t, roots, 1)
	root := roots[0]
	require.True(t, root.IsVar() && root.IsFun())

	// Every operand virtual variable must have a strictly smaller index
	// than the node that refers to it (§4.9's termination argument).
	for k := uint32(0); k < uint32(sorted.Len()); k++ {
		_, x, y := sorted.Def(k)
		if x.IsVar() && x.IsFun() {
			assert.Less(t, x.VID().Index(), k)
		}
		if y.IsVar() && y.IsFun() {
			assert.Less(t, y.VID().Index(), k)
		}
	}
}

func TestSolverAgreesWithDirectConstruction(t *testing.T) {
	b := newTestBase(t, 3)
	x0, _ := b.Ithvar(0)
	x1, _ := b.Ithvar(1)
	x2, _ := b.Ithvar(2)

	direct, err := b.And(x0, x1)
	require.NoError(t, err)
	direct, err = b.Or(direct, x2)
	require.NoError(t, err)

	a := NewAST()
	expr := a.Or(a.And(x0, x1), x2)
	sorted, roots := a.sortByCost([]NID{expr})

	solver := NewSolver(b, sorted)
	got, err := solver.Solve(roots[0])
	require.NoError(t, err)

	assert.Equal(t, direct, got)
	assert.Equal(t, sorted.Len(), solver.Steps, "solver must perform exactly N substitution steps for an N-node AST")
}
