// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolvePropagatesInvertPerEdge guards the invert-storage fix: the same
// canonical child query can be depended on by two parents that each need a
// different polarity out of it (ite(f,g,h) and ite(f,!g,!h) can normalize to
// the same Triple with opposite Invert), so invert must live on the
// dependency edge, never baked into the child's own resolved value.
func TestResolvePropagatesInvertPerEdge(t *testing.T) {
	unique := newHiLoCache()
	cache := newXmemo()
	ws := newWorkState(unique, cache)

	child, _ := ws.addTask(normalized{Triple: iteTriple{F: VarNID(VReal(0)), G: I, H: O}, V: VReal(0)})
	parentA, _ := ws.addTask(normalized{Triple: iteTriple{F: VarNID(VReal(1)), G: I, H: O}, V: VReal(1)})
	parentB, _ := ws.addTask(normalized{Triple: iteTriple{F: VarNID(VReal(2)), G: I, H: O}, V: VReal(2)})

	ws.addDep(child, parentA, SlotHi, false)
	ws.addDep(child, parentB, SlotHi, true)

	canonical := VarNID(VReal(5))
	require.NoError(t, ws.resolve(child, canonical))

	assert.True(t, ws.queries[parentA].hiSet)
	assert.Equal(t, canonical, ws.queries[parentA].hi)

	assert.True(t, ws.queries[parentB].hiSet)
	assert.Equal(t, canonical.Inv(), ws.queries[parentB].hi)

	_, _, resolved, result := ws.Get(child)
	assert.True(t, resolved)
	assert.Equal(t, canonical, result, "a query's own resolved value is always the canonical, invert-free answer")
}

func TestDoneChannelClosesOnResolve(t *testing.T) {
	unique := newHiLoCache()
	cache := newXmemo()
	ws := newWorkState(unique, cache)

	qid, _ := ws.addTask(normalized{Triple: iteTriple{F: VarNID(VReal(0)), G: I, H: O}, V: VReal(0)})
	done := ws.Done(qid)

	select {
	case <-done:
		t.Fatal("done must not be closed before resolve")
	case <-time.After(10 * time.Millisecond):
	}

	require.NoError(t, ws.resolve(qid, I))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done must close once resolve runs")
	}
}

func TestAddTaskDeduplicatesByTriple(t *testing.T) {
	unique := newHiLoCache()
	cache := newXmemo()
	ws := newWorkState(unique, cache)

	n := normalized{Triple: iteTriple{F: VarNID(VReal(0)), G: I, H: O}, V: VReal(0)}
	qid1, fresh1 := ws.addTask(n)
	qid2, fresh2 := ws.addTask(n)
	assert.Equal(t, qid1, qid2)
	assert.True(t, fresh1)
	assert.False(t, fresh2)
}

func TestCommitCollapsesEqualChildren(t *testing.T) {
	unique := newHiLoCache()
	cache := newXmemo()
	ws := newWorkState(unique, cache)

	qid, _ := ws.addTask(normalized{Triple: iteTriple{F: VarNID(VReal(0)), G: I, H: O}, V: VReal(0)})
	require.NoError(t, ws.setPart(qid, SlotHi, I))
	require.NoError(t, ws.setPart(qid, SlotLo, I))

	_, _, resolved, result := ws.Get(qid)
	require.True(t, resolved)
	assert.Equal(t, I, result, "equal hi/lo must collapse without consulting the unique table")
}
