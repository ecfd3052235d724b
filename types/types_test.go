package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteType(t *testing.T) {
	cases := []struct {
		a, b TypeCode
		want TypeCode
		ok   bool
	}{
		{TYPE_LOGICAL, TYPE_INT, TYPE_INT, true},
		{TYPE_INT, TYPE_DOUBLE, TYPE_DOUBLE, true},
		{TYPE_DOUBLE, TYPE_COMPLEX, TYPE_COMPLEX, true},
		{TYPE_COMPLEX, TYPE_STR, TYPE_STR, true},
		{TYPE_INT, TYPE_STR, TYPE_STR, true},
		{TYPE_STR, TYPE_LIST, TYPE_LIST, true},
		{TYPE_RAW, TYPE_RAW, TYPE_RAW, true},
		{TYPE_RAW, TYPE_INT, TYPE_NULL, false},
		{TYPE_INT, TYPE_RAW, TYPE_NULL, false},
	}
	for _, c := range cases {
		got, ok := PromoteType(c.a, c.b)
		assert.Equal(t, c.ok, ok, "%s + %s", c.a, c.b)
		if ok {
			assert.Equal(t, c.want, got, "%s + %s", c.a, c.b)
		}
	}
}

func TestCoerceVector(t *testing.T) {
	t.Run("int to double", func(t *testing.T) {
		got, ok := CoerceVector(NewIntVector([]int{1, NAInt, 3}), TYPE_DOUBLE)
		require.True(t, ok)
		dv := got.(*DoubleVector)
		assert.Equal(t, 1.0, dv.At(1))
		assert.True(t, dv.NAAt(2))
		assert.Equal(t, 3.0, dv.At(3))
	})
	t.Run("double to string drops trailing zero", func(t *testing.T) {
		got, ok := CoerceVector(NewDoubleVector([]float64{2, 2.5}), TYPE_STR)
		require.True(t, ok)
		sv := got.(*StrVector)
		assert.Equal(t, "2", sv.At(1))
		assert.Equal(t, "2.5", sv.At(2))
	})
	t.Run("complex to string", func(t *testing.T) {
		cv := NewComplexVector([]complex128{complex(1, 2)})
		assert.Equal(t, complex(1, 2), cv.At(1))
		got, ok := CoerceVector(cv, TYPE_STR)
		require.True(t, ok)
		assert.Equal(t, "1+2i", got.(*StrVector).At(1))
	})
	t.Run("logical to int", func(t *testing.T) {
		got, ok := CoerceVector(NewLogicalVector([]byte{LogicalTrue, LogicalFalse, LogicalNA}), TYPE_INT)
		require.True(t, ok)
		iv := got.(*IntVector)
		assert.Equal(t, 1, iv.At(1))
		assert.Equal(t, 0, iv.At(2))
		assert.True(t, iv.NAAt(3))
	})
	t.Run("atomic to list keeps elements", func(t *testing.T) {
		got, ok := CoerceVector(NewIntVector([]int{7, 8}), TYPE_LIST)
		require.True(t, ok)
		lst := got.(*ListValue)
		require.Equal(t, 2, lst.Length())
		assert.True(t, lst.ElemAt(1).Equal(NewIntScalar(7)))
	})
	t.Run("nothing demotes to logical", func(t *testing.T) {
		_, ok := CoerceVector(NewIntVector([]int{1}), TYPE_LOGICAL)
		assert.False(t, ok)
	})
}

func TestEqual(t *testing.T) {
	t.Run("type strict", func(t *testing.T) {
		assert.False(t, NewIntScalar(1).Equal(NewDoubleScalar(1)))
	})
	t.Run("na aware", func(t *testing.T) {
		assert.True(t, NewIntScalar(NAInt).Equal(NewIntScalar(NAInt)))
		assert.False(t, NewIntScalar(NAInt).Equal(NewIntScalar(1)))
		assert.True(t, NewDoubleScalar(NADouble()).Equal(NewDoubleScalar(NADouble())))
	})
	t.Run("attributes ignored", func(t *testing.T) {
		attrs := NewAttributes()
		attrs.SetNames(NewStrVector([]string{"a"}))
		named := NewIntScalar(5).WithAttrs(attrs)
		assert.True(t, named.Equal(NewIntScalar(5)))
	})
	t.Run("length mismatch", func(t *testing.T) {
		assert.False(t, NewIntVector([]int{1, 2}).Equal(NewIntVector([]int{1})))
	})
}

func TestAttributesRouting(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("names", NewStrVector([]string{"a", "b"}))
	attrs.Set("class", NewStrScalar("thing"))

	require.NotNil(t, attrs.Names())
	assert.Equal(t, "a", attrs.Names().At(1))
	assert.Equal(t, []string{"class"}, attrs.ExtraNames())

	cp := attrs.Copy()
	cp.Remove("names")
	assert.Nil(t, cp.Names())
	require.NotNil(t, attrs.Names(), "copy must not share state")

	attrs.Remove("names")
	attrs.Remove("class")
	assert.True(t, attrs.IsEmpty())
}

func TestLookupName(t *testing.T) {
	ctx := NewEvalContext()

	t.Run("short vector scans", func(t *testing.T) {
		names := NewStrVector([]string{"x", "y", "z"})
		assert.Equal(t, 2, ctx.LookupName(names, "y"))
		assert.Equal(t, 0, ctx.LookupName(names, "q"))
	})
	t.Run("long vector uses the cached table", func(t *testing.T) {
		data := make([]string, 40)
		na := make([]bool, 40)
		for i := range data {
			data[i] = string(rune('a' + i%26))
		}
		data[5] = "dup"
		data[25] = "dup"
		na[7] = true
		names := NewStrVectorWithNA(data, na)
		// first lookup builds the table, second hits it
		assert.Equal(t, 6, ctx.LookupName(names, "dup"))
		assert.Equal(t, 6, ctx.LookupName(names, "dup"))
		assert.Equal(t, 0, ctx.LookupName(names, "missing"))
	})
	t.Run("nil names", func(t *testing.T) {
		assert.Equal(t, 0, ctx.LookupName(nil, "x"))
	})
}

func TestConsumeStep(t *testing.T) {
	ctx := NewEvalContextWithLimit(3)
	assert.True(t, ctx.ConsumeStep())
	assert.True(t, ctx.ConsumeStep())
	assert.True(t, ctx.ConsumeStep())
	assert.False(t, ctx.ConsumeStep())
	assert.Equal(t, 4, ctx.StepsUsed())
}

func TestIntSeq(t *testing.T) {
	up := IntSeq(1, 4)
	require.Equal(t, 4, up.Length())
	assert.Equal(t, 1, up.At(1))
	assert.Equal(t, 4, up.At(4))

	down := IntSeq(3, 1)
	require.Equal(t, 3, down.Length())
	assert.Equal(t, 3, down.At(1))
	assert.Equal(t, 1, down.At(3))
}
