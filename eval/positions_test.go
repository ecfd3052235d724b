package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rho/types"
)

func testCtx() *types.EvalContext {
	return types.NewEvalContext()
}

func subsetRead() Mode     { return Mode{NumDims: 1, Subset: true} }
func subsetWrite() Mode    { return Mode{NumDims: 1, Subset: true, Assignment: true} }
func elementRead() Mode    { return Mode{NumDims: 1, Subset: false} }
func elementWrite() Mode   { return Mode{NumDims: 1, Subset: false, Assignment: true} }
func matrixRead(d int) Mode { return Mode{Dim: d, NumDims: 2, Subset: true} }

func TestPositiveInBoundsPassesThrough(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{10, 20, 30, 40, 50})
	for i := 1; i <= 5; i++ {
		for _, mode := range []Mode{subsetRead(), elementRead(), subsetWrite(), elementWrite()} {
			r, err := normalizeSubscript(ctx, container, types.NewIntScalar(i), 5, nil, mode)
			require.Nil(t, err)
			assert.Equal(t, []int{i}, r.Positions)
		}
	}
}

func TestZeroSubscript(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})

	r, err := normalizeSubscript(ctx, container, types.NewIntScalar(0), 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Empty(t, r.Positions)

	// in element mode the zero is filtered and the empty selection
	// gate reports it
	r, err = normalizeSubscript(ctx, container, types.NewIntScalar(0), 3, nil, elementRead())
	require.Nil(t, err)
	assert.Empty(t, r.Positions)

	// zeros mixed with positives contribute nothing
	r, err = normalizeSubscript(ctx, container, types.NewIntVector([]int{0, 2, 0, 3}), 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{2, 3}, r.Positions)
}

func TestNegativeComplement(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3, 4, 5})
	r, err := normalizeSubscript(ctx, container, types.NewIntVector([]int{-1, -3}), 5, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{2, 4, 5}, r.Positions)
}

func TestNegativeBeyondLengthExcludesNothing(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})
	r, err := normalizeSubscript(ctx, container, types.NewIntScalar(-10), 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1, 2, 3}, r.Positions)
}

func TestNegativeOnOneAndTwoElementDimensions(t *testing.T) {
	ctx := testCtx()
	one := types.NewIntVector([]int{7})
	r, err := normalizeSubscript(ctx, one, types.NewIntScalar(-2), 1, nil, elementRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1}, r.Positions, "excluding a position past the end keeps the only element")

	r, err = normalizeSubscript(ctx, one, types.NewIntScalar(-1), 1, nil, elementRead())
	require.Nil(t, err)
	assert.Empty(t, r.Positions, "excluding the only element leaves nothing")

	two := types.NewIntVector([]int{7, 8})
	r, err = normalizeSubscript(ctx, two, types.NewIntScalar(-1), 2, nil, elementRead())
	require.Nil(t, err)
	assert.Equal(t, []int{2}, r.Positions)

	r, err = normalizeSubscript(ctx, two, types.NewIntScalar(-2), 2, nil, elementRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1}, r.Positions)
}

func TestMixedSignsRejected(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})
	cases := [][]int{
		{1, -2},
		{-1, 2},
		{-1, types.NAInt},
		{0, 1, -2},
	}
	for _, idx := range cases {
		_, err := normalizeSubscript(ctx, container, types.NewIntVector(idx), 3, nil, subsetRead())
		require.NotNil(t, err, "index %v", idx)
		assert.Equal(t, types.ErrOnlyZeroMixed, err.Code)
	}
}

func TestZerosMixedWithNegativesAllowed(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})
	r, err := normalizeSubscript(ctx, container, types.NewIntVector([]int{0, -2, 0}), 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1, 3}, r.Positions)
}

func TestOutOfBoundsSubscript(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})

	// subset read past the end is NA, not an error
	r, err := normalizeSubscript(ctx, container, types.NewIntScalar(7), 3, nil, subsetRead())
	require.Nil(t, err)
	require.Len(t, r.Positions, 1)
	assert.True(t, types.IsNAInt(r.Positions[0]))

	// subset assignment past the end extends
	r, err = normalizeSubscript(ctx, container, types.NewIntScalar(7), 3, nil, subsetWrite())
	require.Nil(t, err)
	assert.Equal(t, []int{7}, r.Positions)

	// element read past the end is an error
	_, err = normalizeSubscript(ctx, container, types.NewIntScalar(7), 3, nil, elementRead())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrSubscriptBounds, err.Code)

	// matrix access past the dimension is an error even for subset
	_, err = normalizeSubscript(ctx, container, types.NewIntScalar(7), 3, nil, matrixRead(0))
	require.NotNil(t, err)
	assert.Equal(t, types.ErrSubscriptBounds, err.Code)
}

func TestLogicalSelection(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3, 4})

	idx := types.NewLogicalVector([]byte{types.LogicalTrue, types.LogicalFalse, types.LogicalNA, types.LogicalTrue})
	r, err := normalizeSubscript(ctx, container, idx, 4, nil, subsetRead())
	require.Nil(t, err)
	require.Len(t, r.Positions, 3)
	assert.Equal(t, 1, r.Positions[0])
	assert.True(t, types.IsNAInt(r.Positions[1]))
	assert.Equal(t, 4, r.Positions[2])
}

func TestLogicalRecycling(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3, 4, 5, 6})
	idx := types.NewLogicalVector([]byte{types.LogicalTrue, types.LogicalFalse})
	r, err := normalizeSubscript(ctx, container, idx, 6, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1, 3, 5}, r.Positions)
}

func TestLogicalLongerThanVector(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2})

	// single-dimension subset extends to the subscript's length
	idx := types.NewLogicalVector([]byte{types.LogicalTrue, types.LogicalTrue, types.LogicalTrue})
	r, err := normalizeSubscript(ctx, container, idx, 2, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1, 2, 3}, r.Positions)

	// on a matrix dimension that is an error
	_, err = normalizeSubscript(ctx, container, idx, 2, nil, matrixRead(0))
	require.NotNil(t, err)
	assert.Equal(t, types.ErrLogicalSubscriptTooLong, err.Code)
}

func TestDoubleTruncation(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})
	r, err := normalizeSubscript(ctx, container, types.NewDoubleVector([]float64{2.9}), 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{2}, r.Positions)

	r, err = normalizeSubscript(ctx, container, types.NewDoubleVector([]float64{-1.7}), 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{2, 3}, r.Positions)

	// a fraction truncates to zero and selects nothing
	r, err = normalizeSubscript(ctx, container, types.NewDoubleVector([]float64{0.5}), 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Empty(t, r.Positions)
}

func TestCharacterResolution(t *testing.T) {
	ctx := testCtx()
	names := types.NewStrVector([]string{"a", "b", "c"})
	container := types.NewIntVector([]int{1, 2, 3})

	r, err := normalizeSubscript(ctx, container, types.NewStrScalar("b"), 3, names, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{2}, r.Positions)

	// unmatched name reads as NA
	r, err = normalizeSubscript(ctx, container, types.NewStrScalar("z"), 3, names, subsetRead())
	require.Nil(t, err)
	require.Len(t, r.Positions, 1)
	assert.True(t, types.IsNAInt(r.Positions[0]))

	// duplicate names resolve to the first occurrence
	dup := types.NewStrVector([]string{"a", "b", "a"})
	r, err = normalizeSubscript(ctx, container, types.NewStrScalar("a"), 3, dup, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1}, r.Positions)
}

func TestCharacterAssignmentAppends(t *testing.T) {
	ctx := testCtx()
	names := types.NewStrVector([]string{"a", "b", "c"})
	container := types.NewIntVector([]int{1, 2, 3})

	r, err := normalizeSubscript(ctx, container, types.NewStrScalar("z"), 3, names, subsetWrite())
	require.Nil(t, err)
	assert.Equal(t, []int{4}, r.Positions)
	require.NotNil(t, r.Names)
	assert.Equal(t, "z", r.Names.At(1))

	// repeats of the same new name share one appended position;
	// distinct new names get successive positions
	idx := types.NewStrVector([]string{"x", "b", "x", "y"})
	r, err = normalizeSubscript(ctx, container, idx, 3, names, subsetWrite())
	require.Nil(t, err)
	assert.Equal(t, []int{4, 2, 4, 5}, r.Positions)
}

func TestCharacterOnMatrixDimension(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3, 4})

	// no dimnames at all
	_, err := normalizeSubscript(ctx, container, types.NewStrScalar("a"), 2, nil, matrixRead(0))
	require.NotNil(t, err)
	assert.Equal(t, types.ErrNoArrayDimnames, err.Code)

	// unmatched against existing dimnames is out of bounds
	names := types.NewStrVector([]string{"r1", "r2"})
	_, err = normalizeSubscript(ctx, container, types.NewStrScalar("zz"), 2, names, matrixRead(0))
	require.NotNil(t, err)
	assert.Equal(t, types.ErrSubscriptBounds, err.Code)
}

func TestComplexAndRawRejected(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})

	_, err := normalizeSubscript(ctx, container, types.NewComplexScalar(1+2i), 3, nil, subsetRead())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrInvalidSubscriptType, err.Code)
	assert.Equal(t, "complex", err.Detail)

	_, err = normalizeSubscript(ctx, container, types.NewRawVector([]byte{1}), 3, nil, subsetRead())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrInvalidSubscriptType, err.Code)
	assert.Equal(t, "raw", err.Detail)
}

func TestMissingSubscript(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})

	r, err := normalizeSubscript(ctx, container, types.Missing, 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1, 2, 3}, r.Positions)

	// element access with a missing subscript works only on a
	// one-element dimension
	one := types.NewIntVector([]int{9})
	r, err = normalizeSubscript(ctx, one, types.Missing, 1, nil, elementRead())
	require.Nil(t, err)
	assert.Equal(t, []int{1}, r.Positions)

	_, err = normalizeSubscript(ctx, container, types.Missing, 3, nil, elementWrite())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrMissingSubscript, err.Code)

	_, err = normalizeSubscript(ctx, container, types.Missing, 3, nil, elementRead())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrInvalidSubscriptType, err.Code)
}

func TestNullSubscript(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})

	r, err := normalizeSubscript(ctx, container, types.Null, 3, nil, subsetRead())
	require.Nil(t, err)
	assert.Empty(t, r.Positions)

	_, err = normalizeSubscript(ctx, container, types.Null, 3, nil, elementRead())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrSelectLessThanOne, err.Code)
}

func TestNASubscript(t *testing.T) {
	ctx := testCtx()
	atomic := types.NewIntVector([]int{1, 2, 3})
	lst := types.NewList([]types.Value{types.NewIntScalar(1)})

	// subset read flows NA through
	r, err := normalizeSubscript(ctx, atomic, types.NewIntScalar(types.NAInt), 3, nil, subsetRead())
	require.Nil(t, err)
	require.Len(t, r.Positions, 1)
	assert.True(t, types.IsNAInt(r.Positions[0]))

	// element read on an atomic vector is out of bounds
	_, err = normalizeSubscript(ctx, atomic, types.NewIntScalar(types.NAInt), 3, nil, elementRead())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrSubscriptBounds, err.Code)

	// element read on a list yields no value
	r, err = normalizeSubscript(ctx, lst, types.NewIntScalar(types.NAInt), 1, nil, elementRead())
	require.Nil(t, err)
	assert.True(t, r.NoValue)

	// assignment defers NA to the update step
	r, err = normalizeSubscript(ctx, atomic, types.NewIntScalar(types.NAInt), 3, nil, subsetWrite())
	require.Nil(t, err)
	require.Len(t, r.Positions, 1)
	assert.True(t, types.IsNAInt(r.Positions[0]))
}

func TestListSubscriptRejected(t *testing.T) {
	ctx := testCtx()
	container := types.NewIntVector([]int{1, 2, 3})
	idx := types.NewList([]types.Value{types.NewIntScalar(1)})
	_, err := normalizeSubscript(ctx, container, idx, 3, nil, subsetRead())
	require.NotNil(t, err)
	assert.Equal(t, types.ErrInvalidSubscriptType, err.Code)
	assert.Equal(t, "list", err.Detail)
}
