package builtins

import (
	"fmt"

	"rho/types"
)

// builtinNames implements names(x)
func builtinNames(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	if nm := types.NamesOf(args[0]); nm != nil {
		return types.Ok(nm)
	}
	return types.Ok(types.Null)
}

// builtinSetNames implements names(x) <- value. A too-short value is
// padded with NA; a too-long one is an error; NULL removes the names.
func builtinSetNames(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 2 {
		return types.Err(types.ErrArgumentCount)
	}
	vec, ok := types.AsVector(args[0])
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "attempt to set an attribute on a NULL")
	}
	if types.IsNull(args[1]) {
		attrs := vec.Attrs().Copy()
		if attrs == nil {
			return types.Ok(vec)
		}
		attrs.SetNames(nil)
		return types.Ok(normalizedAttrs(vec, attrs))
	}
	value, ok := types.AsVector(args[1])
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "invalid value for 'names'")
	}
	coerced, ok := types.CoerceVector(value, types.TYPE_STR)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "invalid value for 'names'")
	}
	nm := coerced.(*types.StrVector)
	if nm.Length() > vec.Length() {
		return types.ErrDetail(types.ErrTypeMismatch,
			fmt.Sprintf("'names' attribute [%d] must be the same length as the vector [%d]",
				nm.Length(), vec.Length()))
	}
	if nm.Length() < vec.Length() {
		data := make([]string, vec.Length())
		na := make([]bool, vec.Length())
		for i := 1; i <= nm.Length(); i++ {
			data[i-1] = nm.At(i)
			na[i-1] = nm.NAAt(i)
		}
		for i := nm.Length(); i < vec.Length(); i++ {
			na[i] = true
		}
		nm = types.NewStrVectorWithNA(data, na)
	}
	attrs := vec.Attrs().Copy()
	if attrs == nil {
		attrs = types.NewAttributes()
	}
	attrs.SetNames(nm)
	return types.Ok(vec.WithAttrs(attrs))
}

// builtinDim implements dim(x)
func builtinDim(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	if dims := types.DimsOf(args[0]); dims != nil {
		return types.Ok(types.NewIntVector(append([]int(nil), dims...)))
	}
	return types.Ok(types.Null)
}

// builtinSetDim implements dim(x) <- value. Setting dimensions clears
// the names and dimnames; the dimension product must equal the length.
func builtinSetDim(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 2 {
		return types.Err(types.ErrArgumentCount)
	}
	vec, ok := types.AsVector(args[0])
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "attempt to set an attribute on a NULL")
	}
	if types.IsNull(args[1]) {
		attrs := vec.Attrs().Copy()
		if attrs == nil {
			return types.Ok(vec)
		}
		attrs.SetDims(nil)
		attrs.SetDimNames(nil)
		return types.Ok(normalizedAttrs(vec, attrs))
	}
	value, ok := types.AsVector(args[1])
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "invalid first argument, must be vector (list or atomic)")
	}
	coerced, ok := types.CoerceVector(value, types.TYPE_INT)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "invalid value for 'dim'")
	}
	iv := coerced.(*types.IntVector)
	dims := make([]int, iv.Length())
	product := 1
	for i := 1; i <= iv.Length(); i++ {
		if iv.NAAt(i) {
			return types.ErrDetail(types.ErrTypeMismatch, "the dims contain missing values")
		}
		if iv.At(i) < 0 {
			return types.ErrDetail(types.ErrTypeMismatch, "the dims contain negative values")
		}
		dims[i-1] = iv.At(i)
		product *= iv.At(i)
	}
	if product != vec.Length() {
		return types.ErrDetail(types.ErrTypeMismatch,
			fmt.Sprintf("dims [product %d] do not match the length of object [%d]",
				product, vec.Length()))
	}
	attrs := vec.Attrs().Copy()
	if attrs == nil {
		attrs = types.NewAttributes()
	}
	attrs.SetDims(dims)
	attrs.SetNames(nil)
	attrs.SetDimNames(nil)
	return types.Ok(vec.WithAttrs(attrs))
}

// builtinDimNames implements dimnames(x)
func builtinDimNames(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	if vec, ok := types.AsVector(args[0]); ok {
		if dn := vec.Attrs().DimNames(); dn != nil {
			return types.Ok(dn)
		}
	}
	return types.Ok(types.Null)
}

// builtinSetDimNames implements dimnames(x) <- value
func builtinSetDimNames(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 2 {
		return types.Err(types.ErrArgumentCount)
	}
	vec, ok := types.AsVector(args[0])
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "attempt to set an attribute on a NULL")
	}
	if types.IsNull(args[1]) {
		attrs := vec.Attrs().Copy()
		if attrs == nil {
			return types.Ok(vec)
		}
		attrs.SetDimNames(nil)
		return types.Ok(normalizedAttrs(vec, attrs))
	}
	dn, ok := args[1].(*types.ListValue)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "'dimnames' must be a list")
	}
	dims := vec.Attrs().Dims()
	if dims == nil {
		return types.ErrDetail(types.ErrTypeMismatch, "'dimnames' applied to non-array")
	}
	if dn.Length() != len(dims) {
		return types.ErrDetail(types.ErrTypeMismatch,
			fmt.Sprintf("length of 'dimnames' [%d] must match that of 'dims' [%d]",
				dn.Length(), len(dims)))
	}
	elems := make([]types.Value, dn.Length())
	for d := 1; d <= dn.Length(); d++ {
		elem := dn.ElemAt(d)
		if types.IsNull(elem) {
			elems[d-1] = types.Null
			continue
		}
		ev, ok := types.AsVector(elem)
		if !ok {
			return types.ErrDetail(types.ErrTypeMismatch, "invalid type for 'dimnames'")
		}
		coerced, ok := types.CoerceVector(ev, types.TYPE_STR)
		if !ok {
			return types.ErrDetail(types.ErrTypeMismatch, "invalid type for 'dimnames'")
		}
		if coerced.Length() != dims[d-1] {
			return types.ErrDetail(types.ErrTypeMismatch,
				fmt.Sprintf("length of 'dimnames' [%d] not equal to array extent", d))
		}
		elems[d-1] = coerced
	}
	attrs := vec.Attrs().Copy()
	if attrs == nil {
		attrs = types.NewAttributes()
	}
	attrs.SetDimNames(types.NewList(elems))
	return types.Ok(vec.WithAttrs(attrs))
}

// builtinAttr implements attr(x, which)
func builtinAttr(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 2 {
		return types.Err(types.ErrArgumentCount)
	}
	which, ok := args[1].(*types.StrVector)
	if !ok || which.Length() != 1 || which.NAAt(1) {
		return types.ErrDetail(types.ErrTypeMismatch, "'which' must be of mode character")
	}
	vec, ok := types.AsVector(args[0])
	if !ok {
		return types.Ok(types.Null)
	}
	if v := vec.Attrs().Get(which.At(1)); v != nil {
		return types.Ok(v)
	}
	return types.Ok(types.Null)
}

// builtinSetAttr implements attr(x, which) <- value, routing the
// special attributes through their replacement semantics
func builtinSetAttr(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 3 {
		return types.Err(types.ErrArgumentCount)
	}
	which, ok := args[1].(*types.StrVector)
	if !ok || which.Length() != 1 || which.NAAt(1) {
		return types.ErrDetail(types.ErrTypeMismatch, "'name' must be non-null character string")
	}
	switch which.At(1) {
	case "names":
		return builtinSetNames(ctx, []types.Value{args[0], args[2]}, nil)
	case "dim":
		return builtinSetDim(ctx, []types.Value{args[0], args[2]}, nil)
	case "dimnames":
		return builtinSetDimNames(ctx, []types.Value{args[0], args[2]}, nil)
	}
	vec, ok := types.AsVector(args[0])
	if !ok {
		if types.IsNull(args[2]) {
			return types.Ok(types.Null)
		}
		return types.ErrDetail(types.ErrTypeMismatch, "attempt to set an attribute on a NULL")
	}
	attrs := vec.Attrs().Copy()
	if attrs == nil {
		attrs = types.NewAttributes()
	}
	attrs.Set(which.At(1), args[2])
	return types.Ok(normalizedAttrs(vec, attrs))
}

// builtinAttributes implements attributes(x): a named list of all
// attributes, or NULL when none are set
func builtinAttributes(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	vec, ok := types.AsVector(args[0])
	if !ok {
		return types.Ok(types.Null)
	}
	attrs := vec.Attrs()
	if attrs.IsEmpty() {
		return types.Ok(types.Null)
	}
	var elems []types.Value
	var elemNames []string
	if nm := attrs.Names(); nm != nil {
		elems = append(elems, nm)
		elemNames = append(elemNames, "names")
	}
	if dims := attrs.Dims(); dims != nil {
		elems = append(elems, types.NewIntVector(append([]int(nil), dims...)))
		elemNames = append(elemNames, "dim")
	}
	if dn := attrs.DimNames(); dn != nil {
		elems = append(elems, dn)
		elemNames = append(elemNames, "dimnames")
	}
	for _, name := range attrs.ExtraNames() {
		elems = append(elems, attrs.Get(name))
		elemNames = append(elemNames, name)
	}
	outAttrs := types.NewAttributes()
	outAttrs.SetNames(types.NewStrVector(elemNames))
	return types.Ok(types.NewList(elems).WithAttrs(outAttrs))
}

// normalizedAttrs attaches the attribute set, dropping it entirely when
// the last attribute was just removed
func normalizedAttrs(vec types.Vector, attrs *types.Attributes) types.Vector {
	if attrs.IsEmpty() {
		return vec.WithAttrs(nil)
	}
	return vec.WithAttrs(attrs)
}
