package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rho/types"
)

func TestSubsetUpdateBasic(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	res := UpdateValue(ctx, x, []types.Value{types.NewIntScalar(2)}, types.NewIntScalar(9), true)
	require.True(t, res.IsNormal())
	assert.Equal(t, types.NewIntVector([]int{1, 9, 3}), res.Val)
	// the original container is untouched
	assert.Equal(t, types.NewIntVector([]int{1, 2, 3}), x)
}

func TestSubsetUpdateRecycling(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3, 4})
	idx := types.NewIntVector([]int{1, 2, 3, 4})
	res := UpdateValue(ctx, x, []types.Value{idx}, types.NewIntVector([]int{8, 9}), true)
	require.True(t, res.IsNormal())
	assert.Equal(t, types.NewIntVector([]int{8, 9, 8, 9}), res.Val)
}

func TestSubsetUpdatePromotesType(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	res := UpdateValue(ctx, x, []types.Value{types.NewIntScalar(1)}, types.NewDoubleScalar(1.5), true)
	require.True(t, res.IsNormal())
	assert.Equal(t, types.NewDoubleVector([]float64{1.5, 2, 3}), res.Val)

	res = UpdateValue(ctx, x, []types.Value{types.NewIntScalar(3)}, types.NewStrScalar("s"), true)
	require.True(t, res.IsNormal())
	assert.Equal(t, types.NewStrVector([]string{"1", "2", "s"}), res.Val)
}

func TestSubsetUpdateExtends(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	res := UpdateValue(ctx, x, []types.Value{types.NewIntScalar(5)}, types.NewIntScalar(9), true)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.IntVector)
	require.Equal(t, 5, out.Length())
	assert.True(t, out.NAAt(4))
	assert.Equal(t, 9, out.At(5))
}

func TestCharacterAssignmentAppendsElement(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	res := UpdateValue(ctx, x, []types.Value{types.NewStrScalar("z")}, types.NewIntScalar(9), true)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.IntVector)
	require.Equal(t, 4, out.Length())
	assert.Equal(t, []int{1, 2, 3, 9}, out.Data())
	names := types.NamesOf(out)
	require.NotNil(t, names)
	assert.Equal(t, []string{"", "", "", "z"}, names.Data())
}

func TestCharacterAssignmentExistingName(t *testing.T) {
	ctx := testCtx()
	x := named([]int{1, 2, 3}, []string{"a", "b", "c"})
	res := UpdateValue(ctx, x, []types.Value{types.NewStrScalar("b")}, types.NewIntScalar(9), true)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.IntVector)
	assert.Equal(t, []int{1, 9, 3}, out.Data())
	assert.Equal(t, []string{"a", "b", "c"}, types.NamesOf(out).Data())
}

func TestLogicalNAInAssignment(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	idx := types.NewLogicalVector([]byte{types.LogicalTrue, types.LogicalNA, types.LogicalTrue})

	// a one-element value skips the NA slot
	res := UpdateValue(ctx, x, []types.Value{idx}, types.NewIntScalar(0), true)
	require.True(t, res.IsNormal())
	assert.Equal(t, types.NewIntVector([]int{0, 2, 0}), res.Val)

	// a longer value cannot be placed
	res = UpdateValue(ctx, x, []types.Value{idx}, types.NewIntVector([]int{7, 8}), true)
	require.True(t, res.IsError())
	assert.Equal(t, types.ErrTypeMismatch, res.Err.Code)
}

func TestElementUpdate(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	res := UpdateValue(ctx, x, []types.Value{types.NewIntScalar(2)}, types.NewIntScalar(9), false)
	require.True(t, res.IsNormal())
	assert.Equal(t, types.NewIntVector([]int{1, 9, 3}), res.Val)

	// more than one supplied element is an error for [[
	res = UpdateValue(ctx, x, []types.Value{types.NewIntScalar(2)}, types.NewIntVector([]int{7, 8}), false)
	require.True(t, res.IsError())
	assert.Equal(t, types.ErrTypeMismatch, res.Err.Code)
}

func TestElementUpdateExtends(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	res := UpdateValue(ctx, x, []types.Value{types.NewIntScalar(5)}, types.NewIntScalar(9), false)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.IntVector)
	require.Equal(t, 5, out.Length())
	assert.True(t, out.NAAt(4))
	assert.Equal(t, 9, out.At(5))
}

func TestListElementUpdate(t *testing.T) {
	ctx := testCtx()
	lst := types.NewList([]types.Value{types.NewIntScalar(1), types.NewStrScalar("s")})

	res := UpdateValue(ctx, lst, []types.Value{types.NewIntScalar(2)}, types.NewDoubleScalar(2.5), false)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.ListValue)
	assert.Equal(t, types.NewDoubleScalar(2.5), out.ElemAt(2))

	// NULL deletes the element
	res = UpdateValue(ctx, lst, []types.Value{types.NewIntScalar(1)}, types.Null, false)
	require.True(t, res.IsNormal())
	out = res.Val.(*types.ListValue)
	require.Equal(t, 1, out.Length())
	assert.Equal(t, types.NewStrScalar("s"), out.ElemAt(1))
}

func TestListElementUpdateByNewName(t *testing.T) {
	ctx := testCtx()
	lst := types.NewList([]types.Value{types.NewIntScalar(1)})
	res := UpdateValue(ctx, lst, []types.Value{types.NewStrScalar("f")}, types.NewIntScalar(9), false)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.ListValue)
	require.Equal(t, 2, out.Length())
	assert.Equal(t, types.NewIntScalar(9), out.ElemAt(2))
	assert.Equal(t, "f", types.NamesOf(out).At(2))
}

func TestListSubsetDeleteWithNull(t *testing.T) {
	ctx := testCtx()
	lst := types.NewList([]types.Value{
		types.NewIntScalar(1), types.NewIntScalar(2), types.NewIntScalar(3),
	})
	res := UpdateValue(ctx, lst, []types.Value{types.NewIntVector([]int{1, 3})}, types.Null, true)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.ListValue)
	require.Equal(t, 1, out.Length())
	assert.Equal(t, types.NewIntScalar(2), out.ElemAt(1))
}

func TestAtomicNullValueRejected(t *testing.T) {
	ctx := testCtx()
	x := types.NewIntVector([]int{1, 2, 3})
	res := UpdateValue(ctx, x, []types.Value{types.NewIntScalar(1)}, types.Null, true)
	require.True(t, res.IsError())
	assert.Equal(t, types.ErrTypeMismatch, res.Err.Code)
}

func TestMatrixSubsetUpdate(t *testing.T) {
	ctx := testCtx()
	m := matrix23()
	res := UpdateValue(ctx, m,
		[]types.Value{types.NewIntScalar(1), types.NewIntScalar(2)},
		types.NewIntScalar(0), true)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.IntVector)
	assert.Equal(t, []int{1, 2, 0, 4, 5, 6}, out.Data())
	// the shape survives an in-place update
	assert.Equal(t, []int{2, 3}, types.DimsOf(out))
}

func TestMatrixUpdateWrongSubscriptCount(t *testing.T) {
	ctx := testCtx()
	m := matrix23()
	res := UpdateValue(ctx, m,
		[]types.Value{types.NewIntScalar(1), types.NewIntScalar(2), types.NewIntScalar(1)},
		types.NewIntScalar(0), true)
	require.True(t, res.IsError())
	assert.Equal(t, types.ErrIncorrectSubscriptsMatrix, res.Err.Code)
}

func TestExtensionDropsDims(t *testing.T) {
	ctx := testCtx()
	m := matrix23()
	res := UpdateValue(ctx, m, []types.Value{types.NewIntScalar(9)}, types.NewIntScalar(0), true)
	require.True(t, res.IsNormal())
	assert.Nil(t, types.DimsOf(res.Val))
	assert.Equal(t, 9, res.Val.(*types.IntVector).Length())
}

func TestUpdateNullContainer(t *testing.T) {
	ctx := testCtx()

	// numeric subscript seeds a vector of the value's kind
	res := UpdateValue(ctx, types.Null, []types.Value{types.NewIntScalar(1)}, types.NewDoubleScalar(5), false)
	require.True(t, res.IsNormal())
	assert.Equal(t, types.NewDoubleScalar(5), res.Val)

	// character subscript seeds a list
	res = UpdateValue(ctx, types.Null, []types.Value{types.NewStrScalar("a")}, types.NewIntScalar(1), false)
	require.True(t, res.IsNormal())
	out, ok := res.Val.(*types.ListValue)
	require.True(t, ok)
	assert.Equal(t, "a", types.NamesOf(out).At(1))
}

func TestRecursiveElementUpdate(t *testing.T) {
	ctx := testCtx()
	inner := types.NewList([]types.Value{types.NewIntScalar(7), types.NewIntScalar(8)})
	lst := types.NewList([]types.Value{types.NewStrScalar("x"), inner})
	res := UpdateValue(ctx, lst, []types.Value{types.NewIntVector([]int{2, 1})}, types.NewIntScalar(0), false)
	require.True(t, res.IsNormal())
	out := res.Val.(*types.ListValue)
	updated := out.ElemAt(2).(*types.ListValue)
	assert.Equal(t, types.NewIntScalar(0), updated.ElemAt(1))
	assert.Equal(t, types.NewIntScalar(8), updated.ElemAt(2))
	// the sibling slot is untouched
	assert.Equal(t, types.NewStrScalar("x"), out.ElemAt(1))
}

func TestFieldUpdate(t *testing.T) {
	ctx := testCtx()
	attrs := types.NewAttributes()
	attrs.SetNames(types.NewStrVector([]string{"a"}))
	lst := types.NewList([]types.Value{types.NewIntScalar(1)}).WithAttrs(attrs)

	// replace an existing field
	res := UpdateField(ctx, lst, "a", types.NewIntScalar(9))
	require.True(t, res.IsNormal())
	out := res.Val.(*types.ListValue)
	assert.Equal(t, types.NewIntScalar(9), out.ElemAt(1))

	// append a new field
	res = UpdateField(ctx, lst, "b", types.NewIntScalar(2))
	require.True(t, res.IsNormal())
	out = res.Val.(*types.ListValue)
	require.Equal(t, 2, out.Length())
	assert.Equal(t, "b", types.NamesOf(out).At(2))

	// delete via NULL
	res = UpdateField(ctx, out, "a", types.Null)
	require.True(t, res.IsNormal())
	out = res.Val.(*types.ListValue)
	require.Equal(t, 1, out.Length())
	assert.Equal(t, "b", types.NamesOf(out).At(1))

	// $ on NULL builds a fresh list
	res = UpdateField(ctx, types.Null, "k", types.NewIntScalar(1))
	require.True(t, res.IsNormal())
	assert.Equal(t, "k", types.NamesOf(res.Val).At(1))
}
