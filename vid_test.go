// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmpDepthBuckets(t *testing.T) {
	assert.Equal(t, Above, CmpDepth(VNoVar(), VVirtual(0)))
	assert.Equal(t, Above, CmpDepth(VVirtual(0), VReal(0)))
	assert.Equal(t, Above, CmpDepth(VReal(0), VTrue()))
}

func TestCmpDepthWithinBucketIsBottomUp(t *testing.T) {
	// Larger real-variable index sits shallower ("Above") than a smaller one:
	// the opposite of the textbook top-down convention (§2).
	assert.Equal(t, Above, CmpDepth(VReal(5), VReal(2)))
	assert.Equal(t, Below, CmpDepth(VReal(2), VReal(5)))
	assert.Equal(t, Level, CmpDepth(VReal(3), VReal(3)))

	assert.Equal(t, Above, CmpDepth(VVirtual(5), VVirtual(2)))
}

func TestTopVID(t *testing.T) {
	top := TopVID(VReal(2), VReal(5), VTrue())
	assert.Equal(t, VReal(5), top)

	assert.Equal(t, VNoVar(), TopVID())
}

func TestVIDKindPredicates(t *testing.T) {
	assert.True(t, VTrue().IsTrue())
	assert.True(t, VNoVar().IsNoVar())
	assert.True(t, VReal(1).IsReal())
	assert.True(t, VVirtual(1).IsVirtual())
}
