package eval

import (
	"rho/parser"
	"rho/types"
)

// maxExtension caps how far an assignment may grow a vector, so a
// runaway subscript cannot exhaust memory
const maxExtension = 1 << 26

// UpdateVectorNode computes the new whole container for x[...] <- v
// (Subset) or x[[...]] <- v. It never writes a variable itself; the
// enclosing replacement sequence does the writeback.
type UpdateVectorNode struct {
	Target     Node
	Subscripts []Node
	Subset     bool
	Value      Node
	Src        parser.Position
}

func (n *UpdateVectorNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
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
	value := n.Value.Execute(ctx, env)
	if !value.IsNormal() {
		return value
	}
	return UpdateValue(ctx, target.Val, indexes, value.Val, n.Subset)
}

// UpdateValue computes the new container resulting from writing value
// into the selection the subscripts describe
func UpdateValue(ctx *types.EvalContext, container types.Value, indexes []types.Value, value types.Value, subset bool) types.Result {
	if subset {
		return updateSubset(ctx, container, indexes, value)
	}
	return updateElement(ctx, container, indexes, value)
}

// updateElement implements x[[...]] <- v
func updateElement(ctx *types.EvalContext, container types.Value, indexes []types.Value, value types.Value) types.Result {
	if len(indexes) == 0 {
		indexes = []types.Value{types.Missing}
	}
	if len(indexes) != 1 {
		return updateMatrixElement(ctx, container, indexes, value)
	}
	idx := indexes[0]

	if types.IsNull(container) {
		container = nullSeedContainer(idx, value)
		if types.IsNull(container) {
			return types.Ok(types.Null)
		}
	}
	vec, ok := types.AsVector(container)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"object of type '"+container.Type().String()+"' is not subsettable")
	}

	// a multi-element subscript updates a path through nested lists:
	// x[[c(i, j)]] <- v rewrites x[[i]][[j]]
	if lst, isList := vec.(*types.ListValue); isList {
		if iv, vecOK := types.AsVector(idx); vecOK && iv.Length() > 1 && recursiveIndexKind(idx) {
			return updateRecursive(ctx, lst, iv, value)
		}
	}

	mode := Mode{NumDims: 1, Subset: false, Assignment: true}
	r, err := normalizeSubscript(ctx, vec, idx, vec.Length(), types.NamesOf(vec), mode)
	if err != nil {
		return types.RaiseError(err)
	}
	if len(r.Positions) == 0 {
		return types.Err(types.ErrSelectLessThanOne)
	}
	if len(r.Positions) > 1 {
		return types.Err(types.ErrSelectMoreThanOne)
	}
	pos := r.Positions[0]
	if types.IsNAInt(pos) {
		return types.Err(types.ErrSubscriptBounds)
	}

	if lst, isList := vec.(*types.ListValue); isList {
		return updateListElement(lst, pos, r.Names, value)
	}
	if types.IsNull(value) {
		return types.ErrDetail(types.ErrTypeMismatch, "replacement has length zero")
	}
	if types.Length(value) != 1 {
		return types.ErrDetail(types.ErrTypeMismatch,
			"more elements supplied than there are to replace")
	}
	return writePositions(vec, []int{pos}, value, r.Names)
}

// updateMatrixElement implements m[[i, j]] <- v
func updateMatrixElement(ctx *types.EvalContext, container types.Value, indexes []types.Value, value types.Value) types.Result {
	vec, ok := types.AsVector(container)
	if !ok {
		return types.Err(types.ErrImproperSubscript)
	}
	dims := types.DimsOf(vec)
	if len(dims) != len(indexes) {
		return types.Err(types.ErrImproperSubscript)
	}
	attrs := vec.Attrs()
	pos := 1
	stride := 1
	for d, idx := range indexes {
		mode := Mode{Dim: d, NumDims: len(indexes), Subset: false, Assignment: true}
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
	if lst, isList := vec.(*types.ListValue); isList {
		return updateListElement(lst, pos, nil, value)
	}
	if types.Length(value) != 1 {
		return types.ErrDetail(types.ErrTypeMismatch,
			"more elements supplied than there are to replace")
	}
	return writePositions(vec, []int{pos}, value, nil)
}

// updateRecursive rewrites one level of a nested path and propagates
// the updated slice outward
func updateRecursive(ctx *types.EvalContext, lst *types.ListValue, path types.Vector, value types.Value) types.Result {
	head := path.ElemAt(1)
	rest := takeVector(path, tailPositions(path.Length()))
	inner := AccessValue(ctx, lst, []types.Value{head}, false, true, true)
	if !inner.IsNormal() {
		return inner
	}
	updated := UpdateValue(ctx, inner.Val, []types.Value{rest}, value, false)
	if !updated.IsNormal() {
		return updated
	}
	return UpdateValue(ctx, lst, []types.Value{head}, updated.Val, false)
}

func tailPositions(n int) []int {
	out := make([]int, n-1)
	for i := range out {
		out[i] = i + 2
	}
	return out
}

// updateListElement writes one list slot: NULL deletes, anything else
// replaces or extends
func updateListElement(lst *types.ListValue, pos int, appendNames *types.StrVector, value types.Value) types.Result {
	oldLen := lst.Length()
	if types.IsNull(value) {
		if pos > oldLen {
			return types.Ok(lst)
		}
		keep := make([]int, 0, oldLen-1)
		for i := 1; i <= oldLen; i++ {
			if i != pos {
				keep = append(keep, i)
			}
		}
		return types.Ok(lst.Take(keep))
	}
	if pos > oldLen+maxExtension {
		return types.Err(types.ErrSubscriptBounds)
	}
	newLen := oldLen
	if pos > newLen {
		newLen = pos
	}
	elems := make([]types.Value, newLen)
	copy(elems, lst.Elements())
	for i := oldLen; i < newLen; i++ {
		elems[i] = types.Null
	}
	elems[pos-1] = value
	out := types.NewList(elems)
	attrs := updatedAttrs(lst, []int{pos}, appendNames, oldLen, newLen)
	if attrs != nil {
		return types.Ok(out.WithAttrs(attrs))
	}
	return types.Ok(out)
}

// updateSubset implements x[...] <- v
func updateSubset(ctx *types.EvalContext, container types.Value, indexes []types.Value, value types.Value) types.Result {
	if types.IsNull(container) {
		if types.IsNull(value) {
			return types.Ok(types.Null)
		}
		container = nullSeedContainer(nil, value)
	}
	vec, ok := types.AsVector(container)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"object of type '"+container.Type().String()+"' is not subsettable")
	}
	if len(indexes) > 1 {
		return updateMatrixSubset(ctx, vec, indexes, value)
	}

	var positions []int
	var appendNames *types.StrVector
	if len(indexes) == 0 || types.IsMissing(indexes[0]) {
		positions = allPositions(vec.Length())
	} else {
		mode := Mode{NumDims: 1, Subset: true, Assignment: true}
		r, err := normalizeSubscript(ctx, vec, indexes[0], vec.Length(), types.NamesOf(vec), mode)
		if err != nil {
			return types.RaiseError(err)
		}
		positions = r.Positions
		appendNames = r.Names
	}

	if lst, isList := vec.(*types.ListValue); isList && types.IsNull(value) {
		return deleteListPositions(lst, positions)
	}
	if len(positions) == 0 {
		return types.Ok(vec)
	}
	return writePositions(vec, positions, value, appendNames)
}

// updateMatrixSubset implements m[i, j, ...] <- v
func updateMatrixSubset(ctx *types.EvalContext, vec types.Vector, indexes []types.Value, value types.Value) types.Result {
	dims := types.DimsOf(vec)
	if len(dims) != len(indexes) {
		if len(dims) == 2 {
			return types.Err(types.ErrIncorrectSubscriptsMatrix)
		}
		return types.Err(types.ErrIncorrectSubscripts)
	}
	attrs := vec.Attrs()
	perDim := make([][]int, len(indexes))
	for d, idx := range indexes {
		mode := Mode{Dim: d, NumDims: len(indexes), Subset: true, Assignment: true}
		r, err := normalizeSubscript(ctx, vec, idx, dims[d], attrs.DimensionName(d), mode)
		if err != nil {
			return types.RaiseError(err)
		}
		perDim[d] = r.Positions
	}
	linear := linearizePositions(perDim, dims)
	if len(linear) == 0 {
		return types.Ok(vec)
	}
	return writePositions(vec, linear, value, nil)
}

// deleteListPositions removes the selected elements from a list
func deleteListPositions(lst *types.ListValue, positions []int) types.Result {
	drop := make(map[int]bool, len(positions))
	for _, pos := range positions {
		if !types.IsNAInt(pos) && pos <= lst.Length() {
			drop[pos] = true
		}
	}
	keep := make([]int, 0, lst.Length())
	for i := 1; i <= lst.Length(); i++ {
		if !drop[i] {
			keep = append(keep, i)
		}
	}
	return types.Ok(lst.Take(keep))
}

// strElem pairs a string datum with its NA flag so character updates
// can splice through one generic path
type strElem struct {
	s  string
	na bool
}

// writePositions writes value into the given positions of a vector,
// promoting the container type, recycling the value, and extending
// past the end where positions demand it. NA positions are skipped for
// a one-element value and rejected otherwise.
func writePositions(vec types.Vector, positions []int, value types.Value, appendNames *types.StrVector) types.Result {
	valueVec, ok := types.AsVector(value)
	if !ok || valueVec.Length() == 0 {
		return types.ErrDetail(types.ErrTypeMismatch, "replacement has length zero")
	}
	vlen := valueVec.Length()
	hasNA := false
	maxPos := 0
	for _, pos := range positions {
		if types.IsNAInt(pos) {
			hasNA = true
			continue
		}
		if pos > maxPos {
			maxPos = pos
		}
	}
	if hasNA && vlen > 1 {
		return types.ErrDetail(types.ErrTypeMismatch,
			"NAs are not allowed in subscripted assignments")
	}
	oldLen := vec.Length()
	if maxPos > oldLen+maxExtension {
		return types.Err(types.ErrSubscriptBounds)
	}
	newLen := oldLen
	if maxPos > newLen {
		newLen = maxPos
	}

	kind, ok := types.PromoteType(vec.Type(), valueVec.Type())
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"incompatible types in subassignment")
	}
	target, ok := types.CoerceVector(vec, kind)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"incompatible types in subassignment")
	}
	source, ok := types.CoerceVector(valueVec, kind)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"incompatible types in subassignment")
	}

	var out types.Vector
	switch t := target.(type) {
	case *types.IntVector:
		s := source.(*types.IntVector)
		out = types.NewIntVector(splice(t.Data(), types.NAInt, positions, s.Data(), newLen))
	case *types.DoubleVector:
		s := source.(*types.DoubleVector)
		out = types.NewDoubleVector(splice(t.Data(), types.NADouble(), positions, s.Data(), newLen))
	case *types.LogicalVector:
		s := source.(*types.LogicalVector)
		out = types.NewLogicalVector(splice(t.Data(), types.LogicalNA, positions, s.Data(), newLen))
	case *types.ComplexVector:
		s := source.(*types.ComplexVector)
		na := complex(types.NADouble(), types.NADouble())
		out = types.NewComplexVector(splice(t.Data(), na, positions, s.Data(), newLen))
	case *types.RawVector:
		s := source.(*types.RawVector)
		out = types.NewRawVector(splice(t.Data(), 0, positions, s.Data(), newLen))
	case *types.StrVector:
		s := source.(*types.StrVector)
		spliced := splice(strElems(t), strElem{na: true}, positions, strElems(s), newLen)
		data := make([]string, len(spliced))
		var mask []bool
		for i, e := range spliced {
			data[i] = e.s
			if e.na {
				if mask == nil {
					mask = make([]bool, len(spliced))
				}
				mask[i] = true
			}
		}
		out = types.NewStrVectorWithNA(data, mask)
	case *types.ListValue:
		elems := make([]types.Value, 0, t.Length())
		for i := 1; i <= t.Length(); i++ {
			elems = append(elems, t.ElemAt(i))
		}
		svals := make([]types.Value, 0, source.Length())
		for i := 1; i <= source.Length(); i++ {
			svals = append(svals, source.ElemAt(i))
		}
		out = types.NewList(splice(elems, types.Value(types.Null), positions, svals, newLen))
	default:
		return types.ErrDetail(types.ErrInternalConsistency,
			"unhandled container kind "+target.Type().String())
	}

	attrs := updatedAttrs(vec, positions, appendNames, oldLen, newLen)
	if attrs != nil {
		out = out.WithAttrs(attrs)
	}
	return types.Ok(out)
}

// splice copies old data to newLen (filling with fill), then writes the
// recycled values at the selected positions, skipping NA slots
func splice[T any](old []T, fill T, positions []int, vals []T, newLen int) []T {
	data := make([]T, newLen)
	copy(data, old)
	for i := len(old); i < newLen; i++ {
		data[i] = fill
	}
	for k, pos := range positions {
		if types.IsNAInt(pos) {
			continue
		}
		data[pos-1] = vals[k%len(vals)]
	}
	return data
}

func strElems(v *types.StrVector) []strElem {
	out := make([]strElem, v.Length())
	for i := 1; i <= v.Length(); i++ {
		out[i-1] = strElem{s: v.At(i), na: v.NAAt(i)}
	}
	return out
}

// updatedAttrs rebuilds the attribute set after an update: names are
// extended and appended names applied; dimensions survive only when
// the length did not change.
func updatedAttrs(vec types.Vector, positions []int, appendNames *types.StrVector, oldLen, newLen int) *types.Attributes {
	attrs := vec.Attrs().Copy()
	names := attrs.Names()
	if names == nil && appendNames == nil {
		if attrs != nil && newLen != oldLen {
			attrs.SetDims(nil)
			attrs.SetDimNames(nil)
			if attrs.IsEmpty() {
				return nil
			}
		}
		return attrs
	}
	data := make([]string, newLen)
	for i := 1; names != nil && i <= names.Length() && i <= newLen; i++ {
		if !names.NAAt(i) {
			data[i-1] = names.At(i)
		}
	}
	if appendNames != nil {
		for k, pos := range positions {
			if types.IsNAInt(pos) || pos > newLen || k+1 > appendNames.Length() {
				continue
			}
			if !appendNames.NAAt(k + 1) {
				data[pos-1] = appendNames.At(k + 1)
			}
		}
	}
	if attrs == nil {
		attrs = types.NewAttributes()
	}
	attrs.SetNames(types.NewStrVector(data))
	if newLen != oldLen {
		attrs.SetDims(nil)
		attrs.SetDimNames(nil)
	}
	return attrs
}

// nullSeedContainer picks the empty container an assignment into NULL
// starts from: a list for character subscripts or list values, else an
// empty vector of the value's kind
func nullSeedContainer(idx types.Value, value types.Value) types.Value {
	if _, isStr := idx.(*types.StrVector); isStr {
		return types.NewEmptyList()
	}
	switch value.(type) {
	case *types.ListValue:
		return types.NewEmptyList()
	case *types.IntVector:
		return types.NewIntVector(nil)
	case *types.DoubleVector:
		return types.NewDoubleVector(nil)
	case *types.LogicalVector:
		return types.NewLogicalVector(nil)
	case *types.StrVector:
		return types.NewStrVector(nil)
	case *types.ComplexVector:
		return types.NewComplexVector(nil)
	case *types.RawVector:
		return types.NewRawVector(nil)
	}
	return types.NewEmptyList()
}

// allPositions returns 1..n
func allPositions(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// UpdateFieldNode computes the new list for x$field <- v
type UpdateFieldNode struct {
	Target Node
	Field  string
	Value  Node
	Src    parser.Position
}

func (n *UpdateFieldNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	target := n.Target.Execute(ctx, env)
	if !target.IsNormal() {
		return target
	}
	value := n.Value.Execute(ctx, env)
	if !value.IsNormal() {
		return value
	}
	return UpdateField(ctx, target.Val, n.Field, value.Val)
}

// UpdateField writes a named list slot: replace when the name exists,
// append otherwise, delete on NULL
func UpdateField(ctx *types.EvalContext, container types.Value, field string, value types.Value) types.Result {
	if types.IsNull(container) {
		if types.IsNull(value) {
			return types.Ok(types.Null)
		}
		container = types.NewEmptyList()
	}
	lst, ok := container.(*types.ListValue)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"$ operator is invalid for atomic vectors")
	}
	pos := ctx.LookupName(types.NamesOf(lst), field)
	if types.IsNull(value) {
		if pos == 0 {
			return types.Ok(lst)
		}
		return updateListElement(lst, pos, nil, value)
	}
	if pos == 0 {
		pos = lst.Length() + 1
		appended := types.NAFilledStrVector(1)
		appended.SetAt(1, field)
		return updateListElement(lst, pos, appended, value)
	}
	return updateListElement(lst, pos, nil, value)
}
