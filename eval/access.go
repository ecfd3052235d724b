package eval

import (
	"strings"

	"rho/parser"
	"rho/types"
)

// AccessVectorNode reads from a container: x[...] when Subset, x[[...]]
// otherwise. A nil subscript entry is an omitted subscript. Drop and
// Exact hold the stripped drop=/exact= arguments of the call site.
type AccessVectorNode struct {
	Target     Node
	Subscripts []Node
	Subset     bool
	Drop       bool
	Exact      bool
	Src        parser.Position
}

func (n *AccessVectorNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	target := n.Target.Execute(ctx, env)
	if !target.IsNormal() {
		return target
	}
	indexes := make([]types.Value, len(n.Subscripts))
	for i, sub := range n.Subscripts {
		if sub == nil {
			indexes[i] = types.Missing
			continue
		}
		res := sub.Execute(ctx, env)
		if !res.IsNormal() {
			return res
		}
		indexes[i] = res.Val
	}
	return AccessValue(ctx, target.Val, indexes, n.Subset, n.Drop, n.Exact)
}

// AccessValue resolves an access over an already-materialized container
// and subscript values. Shared between the access node and the update
// path, which reads the current slice before computing its replacement.
func AccessValue(ctx *types.EvalContext, container types.Value, indexes []types.Value, subset, drop, exact bool) types.Result {
	if types.IsNull(container) {
		if len(indexes) > 1 {
			return types.Err(types.ErrIncorrectDimensions)
		}
		return types.Ok(types.Null)
	}
	vec, ok := types.AsVector(container)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"object of type '"+container.Type().String()+"' is not subsettable")
	}
	if subset {
		return accessSubset(ctx, vec, indexes, drop)
	}
	return accessElement(ctx, vec, indexes, exact)
}

// accessSubset implements x[...]
func accessSubset(ctx *types.EvalContext, vec types.Vector, indexes []types.Value, drop bool) types.Result {
	if len(indexes) <= 1 {
		// linear access; x[] yields the container unchanged
		if len(indexes) == 0 || types.IsMissing(indexes[0]) {
			return types.Ok(vec)
		}
		mode := Mode{NumDims: 1, Subset: true}
		r, err := normalizeSubscript(ctx, vec, indexes[0], vec.Length(), types.NamesOf(vec), mode)
		if err != nil {
			return types.RaiseError(err)
		}
		return types.Ok(takeVector(vec, r.Positions))
	}
	return accessMatrixSubset(ctx, vec, indexes, drop)
}

// accessMatrixSubset implements m[i, j, ...] over an array container
func accessMatrixSubset(ctx *types.EvalContext, vec types.Vector, indexes []types.Value, drop bool) types.Result {
	dims := types.DimsOf(vec)
	if len(dims) != len(indexes) {
		return types.Err(types.ErrIncorrectDimensions)
	}
	attrs := vec.Attrs()
	perDim := make([][]int, len(indexes))
	for d, idx := range indexes {
		mode := Mode{Dim: d, NumDims: len(indexes), Subset: true}
		r, err := normalizeSubscript(ctx, vec, idx, dims[d], attrs.DimensionName(d), mode)
		if err != nil {
			return types.RaiseError(err)
		}
		perDim[d] = r.Positions
	}

	linear := linearizePositions(perDim, dims)
	result := takeVector(vec, linear)

	// rebuild shape attributes: result dims are the per-dimension
	// selection counts, dimnames are the selected slices of the
	// source dimnames
	lens := make([]int, len(perDim))
	for d := range perDim {
		lens[d] = len(perDim[d])
	}
	var keptDims []int
	var keptNames []types.Value
	anyDimNames := false
	for d := range lens {
		if drop && lens[d] == 1 {
			continue
		}
		keptDims = append(keptDims, lens[d])
		dn := attrs.DimensionName(d)
		if dn != nil {
			keptNames = append(keptNames, dn.Take(perDim[d]))
			anyDimNames = true
		} else {
			keptNames = append(keptNames, types.Null)
		}
	}
	out := types.NewAttributes()
	switch {
	case len(keptDims) >= 2:
		out.SetDims(keptDims)
		if anyDimNames {
			out.SetDimNames(types.NewList(keptNames))
		}
	case len(keptDims) == 1 && anyDimNames:
		if sv, ok := keptNames[0].(*types.StrVector); ok {
			out.SetNames(sv)
		}
	}
	if out.IsEmpty() {
		return types.Ok(result.WithAttrs(nil))
	}
	return types.Ok(result.WithAttrs(out))
}

// linearizePositions folds per-dimension position sets into linear
// column-major positions, the first dimension varying fastest. An NA
// in any dimension makes the whole linear position NA.
func linearizePositions(perDim [][]int, dims []int) []int {
	strides := make([]int, len(dims))
	stride := 1
	for d := range dims {
		strides[d] = stride
		stride *= dims[d]
	}
	total := 1
	for _, p := range perDim {
		total *= len(p)
	}
	linear := make([]int, 0, total)
	counters := make([]int, len(perDim))
	for n := 0; n < total; n++ {
		pos := 1
		na := false
		for d := range perDim {
			p := perDim[d][counters[d]]
			if types.IsNAInt(p) {
				na = true
				break
			}
			pos += (p - 1) * strides[d]
		}
		if na {
			linear = append(linear, types.NAInt)
		} else {
			linear = append(linear, pos)
		}
		for d := 0; d < len(counters); d++ {
			counters[d]++
			if counters[d] < len(perDim[d]) {
				break
			}
			counters[d] = 0
		}
	}
	return linear
}

// accessElement implements x[[...]]
func accessElement(ctx *types.EvalContext, vec types.Vector, indexes []types.Value, exact bool) types.Result {
	if len(indexes) == 0 {
		indexes = []types.Value{types.Missing}
	}
	if len(indexes) != 1 {
		dims := types.DimsOf(vec)
		if len(dims) != len(indexes) {
			return types.Err(types.ErrImproperSubscript)
		}
		return accessMatrixElement(ctx, vec, indexes, dims)
	}
	idx := indexes[0]

	// a multi-element subscript on a list is a path: x[[c(i, j)]]
	// selects x[[i]][[j]]
	if lst, isList := vec.(*types.ListValue); isList {
		if iv, ok := types.AsVector(idx); ok && iv.Length() > 1 && recursiveIndexKind(idx) {
			return accessRecursive(ctx, lst, iv, exact)
		}
	}

	if sv, ok := idx.(*types.StrVector); ok && !exact && sv.Length() == 1 && !sv.NAAt(1) {
		if pos := partialMatch(types.NamesOf(vec), sv.At(1)); pos != 0 {
			return elementAt(vec, pos)
		}
	}

	mode := Mode{NumDims: 1, Subset: false}
	r, err := normalizeSubscript(ctx, vec, idx, vec.Length(), types.NamesOf(vec), mode)
	if err != nil {
		return types.RaiseError(err)
	}
	if r.NoValue {
		return types.Ok(types.Null)
	}
	if len(r.Positions) == 0 {
		return types.Err(types.ErrSelectLessThanOne)
	}
	if len(r.Positions) > 1 {
		return types.Err(types.ErrSelectMoreThanOne)
	}
	pos := r.Positions[0]
	if types.IsNAInt(pos) || pos > vec.Length() {
		return types.Err(types.ErrSubscriptBounds)
	}
	return elementAt(vec, pos)
}

// accessMatrixElement implements m[[i, j]]: every subscript must
// resolve to exactly one in-bounds position
func accessMatrixElement(ctx *types.EvalContext, vec types.Vector, indexes []types.Value, dims []int) types.Result {
	attrs := vec.Attrs()
	pos := 1
	stride := 1
	for d, idx := range indexes {
		mode := Mode{Dim: d, NumDims: len(indexes), Subset: false}
		r, err := normalizeSubscript(ctx, vec, idx, dims[d], attrs.DimensionName(d), mode)
		if err != nil {
			return types.RaiseError(err)
		}
		if len(r.Positions) == 0 {
			return types.Err(types.ErrSelectLessThanOne)
		}
		if len(r.Positions) > 1 {
			return types.Err(types.ErrSelectMoreThanOne)
		}
		p := r.Positions[0]
		if types.IsNAInt(p) || p > dims[d] {
			return types.Err(types.ErrSubscriptBounds)
		}
		pos += (p - 1) * stride
		stride *= dims[d]
	}
	return elementAt(vec, pos)
}

// accessRecursive walks a multi-element subscript one level at a time
func accessRecursive(ctx *types.EvalContext, lst *types.ListValue, path types.Vector, exact bool) types.Result {
	var cur types.Value = lst
	for k := 1; k <= path.Length(); k++ {
		res := AccessValue(ctx, cur, []types.Value{path.ElemAt(k)}, false, true, exact)
		if !res.IsNormal() {
			return res
		}
		cur = res.Val
	}
	return types.Ok(cur)
}

// elementAt extracts one element: list elements come out as themselves,
// atomic elements as unnamed length-1 vectors
func elementAt(vec types.Vector, pos int) types.Result {
	return types.Ok(vec.ElemAt(pos))
}

// partialMatch resolves a name by unique prefix, for exact = FALSE
// element access. Returns 0 on no match or an ambiguous one.
func partialMatch(names *types.StrVector, name string) int {
	if names == nil {
		return 0
	}
	found := 0
	for i := 1; i <= names.Length(); i++ {
		if names.NAAt(i) {
			continue
		}
		if names.At(i) == name {
			return i
		}
		if strings.HasPrefix(names.At(i), name) {
			if found != 0 {
				return 0
			}
			found = i
		}
	}
	return found
}

// AccessFieldNode reads a list field: x$name
type AccessFieldNode struct {
	Target Node
	Field  string
	Src    parser.Position
}

func (n *AccessFieldNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	target := n.Target.Execute(ctx, env)
	if !target.IsNormal() {
		return target
	}
	return AccessField(ctx, target.Val, n.Field)
}

// AccessField resolves x$name over a materialized container. An absent
// field is NULL, never an error.
func AccessField(ctx *types.EvalContext, container types.Value, field string) types.Result {
	if types.IsNull(container) {
		return types.Ok(types.Null)
	}
	lst, ok := container.(*types.ListValue)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"$ operator is invalid for atomic vectors")
	}
	pos := ctx.LookupName(types.NamesOf(lst), field)
	if pos == 0 {
		pos = partialMatch(types.NamesOf(lst), field)
	}
	if pos == 0 {
		return types.Ok(types.Null)
	}
	return types.Ok(lst.ElemAt(pos))
}

// takeVector dispatches a positional subset over the concrete vector
// kinds
func takeVector(vec types.Vector, positions []int) types.Vector {
	switch v := vec.(type) {
	case *types.IntVector:
		return v.Take(positions)
	case *types.DoubleVector:
		return v.Take(positions)
	case *types.LogicalVector:
		return v.Take(positions)
	case *types.StrVector:
		return v.Take(positions)
	case *types.ComplexVector:
		return v.Take(positions)
	case *types.RawVector:
		return v.Take(positions)
	case *types.ListValue:
		return v.Take(positions)
	}
	return vec
}

// recursiveIndexKind reports whether a subscript kind can address a
// path into nested lists
func recursiveIndexKind(idx types.Value) bool {
	switch idx.(type) {
	case *types.IntVector, *types.DoubleVector, *types.StrVector:
		return true
	}
	return false
}
