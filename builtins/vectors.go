package builtins

import (
	"fmt"

	"rho/types"
)

// builtinLength implements length(x)
func builtinLength(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	return types.Ok(types.NewIntScalar(types.Length(args[0])))
}

// builtinTypeof implements typeof(x)
func builtinTypeof(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	return types.Ok(types.NewStrScalar(args[0].Type().String()))
}

// builtinIsNA implements is.na(x)
func builtinIsNA(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	vec, ok := types.AsVector(args[0])
	if !ok {
		return types.Ok(types.NewLogicalVector(nil))
	}
	data := make([]byte, vec.Length())
	for i := 1; i <= vec.Length(); i++ {
		if vec.NAAt(i) {
			data[i-1] = types.LogicalTrue
		}
	}
	return types.Ok(types.NewLogicalVector(data))
}

// builtinSeqLen implements seq_len(n)
func builtinSeqLen(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	n, ok := scalarInt(args[0])
	if !ok || n < 0 {
		return types.ErrDetail(types.ErrTypeMismatch,
			"argument must be coercible to non-negative integer")
	}
	if n == 0 {
		return types.Ok(types.NewIntVector(nil))
	}
	return types.Ok(types.IntSeq(1, n))
}

// builtinPrint implements print(x): the value flows back visibly and
// the REPL renders it
func builtinPrint(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	if len(args) != 1 {
		return types.Err(types.ErrArgumentCount)
	}
	return types.Ok(args[0])
}

// builtinList implements list(...)
func builtinList(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	elems := make([]types.Value, len(args))
	copy(elems, args)
	lst := types.NewList(elems)
	if outNames := argNames(args, names); outNames != nil {
		attrs := types.NewAttributes()
		attrs.SetNames(outNames)
		return types.Ok(lst.WithAttrs(attrs))
	}
	return types.Ok(lst)
}

// builtinVector implements vector(mode, length): a zero-filled vector
// of the given mode
func builtinVector(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	mode := "logical"
	n := 0
	if len(args) >= 1 {
		sv, ok := args[0].(*types.StrVector)
		if !ok || sv.Length() != 1 {
			return types.ErrDetail(types.ErrTypeMismatch, "invalid 'mode' argument")
		}
		mode = sv.At(1)
	}
	if len(args) >= 2 {
		var ok bool
		n, ok = scalarInt(args[1])
		if !ok || n < 0 {
			return types.ErrDetail(types.ErrTypeMismatch, "invalid 'length' argument")
		}
	}
	switch mode {
	case "logical":
		return types.Ok(types.NewLogicalVector(make([]byte, n)))
	case "integer":
		return types.Ok(types.NewIntVector(make([]int, n)))
	case "double", "numeric":
		return types.Ok(types.NewDoubleVector(make([]float64, n)))
	case "complex":
		return types.Ok(types.NewComplexVector(make([]complex128, n)))
	case "character":
		return types.Ok(types.NewStrVector(make([]string, n)))
	case "raw":
		return types.Ok(types.NewRawVector(make([]byte, n)))
	case "list":
		elems := make([]types.Value, n)
		for i := range elems {
			elems[i] = types.Null
		}
		return types.Ok(types.NewList(elems))
	}
	return types.ErrDetail(types.ErrTypeMismatch,
		fmt.Sprintf("vector: cannot make a vector of mode '%s'", mode))
}

// builtinC implements c(...): concatenation with type promotion.
// NULL arguments vanish; a list argument makes the result a list.
func builtinC(ctx *types.EvalContext, args []types.Value, names []string) types.Result {
	kind := types.TYPE_NULL
	kept := make([]types.Vector, 0, len(args))
	keptNames := make([]string, 0, len(args))
	for i, arg := range args {
		if types.IsNull(arg) {
			continue
		}
		vec, ok := types.AsVector(arg)
		if !ok {
			return types.ErrDetail(types.ErrTypeMismatch,
				"argument "+fmt.Sprint(i+1)+" cannot be combined")
		}
		if kind == types.TYPE_NULL {
			kind = vec.Type()
		} else {
			next, ok := types.PromoteType(kind, vec.Type())
			if !ok {
				return types.ErrDetail(types.ErrTypeMismatch,
					"cannot combine types "+kind.String()+" and "+vec.Type().String())
			}
			kind = next
		}
		kept = append(kept, vec)
		if names != nil && i < len(names) {
			keptNames = append(keptNames, names[i])
		} else {
			keptNames = append(keptNames, "")
		}
	}
	if len(kept) == 0 {
		return types.Ok(types.Null)
	}

	var out types.Vector
	switch kind {
	case types.TYPE_LIST:
		var elems []types.Value
		for _, vec := range kept {
			cv, _ := types.CoerceVector(vec, types.TYPE_LIST)
			lst := cv.(*types.ListValue)
			elems = append(elems, lst.Elements()...)
		}
		out = types.NewList(elems)
	default:
		out = concatAtomic(kept, kind)
		if out == nil {
			return types.ErrDetail(types.ErrTypeMismatch, "cannot combine arguments")
		}
	}

	if outNames := combinedNames(kept, keptNames); outNames != nil {
		attrs := types.NewAttributes()
		attrs.SetNames(outNames)
		out = out.WithAttrs(attrs)
	}
	return types.Ok(out)
}

// concatAtomic concatenates vectors after coercing all of them to the
// common kind
func concatAtomic(kept []types.Vector, kind types.TypeCode) types.Vector {
	switch kind {
	case types.TYPE_STR:
		var data []string
		var na []bool
		for _, vec := range kept {
			cv, ok := types.CoerceVector(vec, kind)
			if !ok {
				return nil
			}
			sv := cv.(*types.StrVector)
			for i := 1; i <= sv.Length(); i++ {
				data = append(data, sv.At(i))
				na = append(na, sv.NAAt(i))
			}
		}
		return types.NewStrVectorWithNA(data, na)
	case types.TYPE_COMPLEX:
		var data []complex128
		for _, vec := range kept {
			cv, ok := types.CoerceVector(vec, kind)
			if !ok {
				return nil
			}
			data = append(data, cv.(*types.ComplexVector).Data()...)
		}
		return types.NewComplexVector(data)
	case types.TYPE_DOUBLE:
		var data []float64
		for _, vec := range kept {
			cv, ok := types.CoerceVector(vec, kind)
			if !ok {
				return nil
			}
			data = append(data, cv.(*types.DoubleVector).Data()...)
		}
		return types.NewDoubleVector(data)
	case types.TYPE_INT:
		var data []int
		for _, vec := range kept {
			cv, ok := types.CoerceVector(vec, kind)
			if !ok {
				return nil
			}
			data = append(data, cv.(*types.IntVector).Data()...)
		}
		return types.NewIntVector(data)
	case types.TYPE_LOGICAL:
		var data []byte
		for _, vec := range kept {
			data = append(data, vec.(*types.LogicalVector).Data()...)
		}
		return types.NewLogicalVector(data)
	case types.TYPE_RAW:
		var data []byte
		for _, vec := range kept {
			data = append(data, vec.(*types.RawVector).Data()...)
		}
		return types.NewRawVector(data)
	}
	return nil
}

// combinedNames builds the result names for c(): an explicit argument
// name wins (numbered when the argument has several elements), else an
// argument's own element names carry over. Nil when nothing is named.
func combinedNames(kept []types.Vector, keptNames []string) *types.StrVector {
	any := false
	for i, vec := range kept {
		if keptNames[i] != "" || types.NamesOf(vec) != nil {
			any = true
			break
		}
	}
	if !any {
		return nil
	}
	var data []string
	for i, vec := range kept {
		inner := types.NamesOf(vec)
		for j := 1; j <= vec.Length(); j++ {
			switch {
			case keptNames[i] != "" && vec.Length() == 1:
				data = append(data, keptNames[i])
			case keptNames[i] != "":
				data = append(data, fmt.Sprintf("%s%d", keptNames[i], j))
			case inner != nil && j <= inner.Length() && !inner.NAAt(j):
				data = append(data, inner.At(j))
			default:
				data = append(data, "")
			}
		}
	}
	return types.NewStrVector(data)
}

// argNames builds a names vector from call argument names, or nil when
// none are present
func argNames(args []types.Value, names []string) *types.StrVector {
	any := false
	for _, n := range names {
		if n != "" {
			any = true
			break
		}
	}
	if !any {
		return nil
	}
	data := make([]string, len(args))
	copy(data, names)
	return types.NewStrVector(data)
}

// scalarInt extracts a single whole number from a numeric value
func scalarInt(v types.Value) (int, bool) {
	switch val := v.(type) {
	case *types.IntVector:
		if val.Length() != 1 || val.NAAt(1) {
			return 0, false
		}
		return val.At(1), true
	case *types.DoubleVector:
		if val.Length() != 1 || val.NAAt(1) {
			return 0, false
		}
		return int(val.At(1)), true
	}
	return 0, false
}
