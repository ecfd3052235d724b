package eval

import (
	"math"

	"rho/types"
)

// Mode characterizes one access call site: which dimension this
// subscript resolves, how many subscripts the site has, and whether it
// is a subset-style ([) or element-style ([[, $) access in read or
// assignment position. A Mode is fixed when the expression is lowered
// and never changes afterward.
type Mode struct {
	Dim        int // 0-based dimension this subscript applies to
	NumDims    int // number of subscripts at the call site
	Subset     bool
	Assignment bool
}

// Resolved is the outcome of normalizing one subscript: the 1-based
// positions to operate on. types.NAInt marks an NA position. Names,
// when non-nil, runs parallel to Positions and carries the name each
// appended position introduces (character assignment past the end).
// NoValue marks element access that is defined to yield NULL rather
// than a position (NA subscript into a list).
type Resolved struct {
	Positions []int
	Names     *types.StrVector
	NoValue   bool
}

// normalizeSubscript converts one subscript value into Resolved
// positions for a dimension of the given size. The guards run in a
// fixed order; the first matching rule wins. Any subscript kind that
// reaches the end is an internal defect, not a silent default.
func normalizeSubscript(ctx *types.EvalContext, container types.Value, index types.Value, dimSize int, dimNames *types.StrVector, mode Mode) (Resolved, *types.RError) {
	if types.IsMissing(index) {
		return normalizeMissing(dimSize, mode)
	}
	if types.IsNull(index) {
		if mode.Subset {
			return Resolved{}, nil
		}
		return Resolved{}, &types.RError{Code: types.ErrSelectLessThanOne}
	}

	switch idx := index.(type) {
	case *types.LogicalVector:
		return normalizeLogical(idx, dimSize, mode)
	case *types.IntVector:
		vals := make([]int, idx.Length())
		for i := 1; i <= idx.Length(); i++ {
			vals[i-1] = idx.At(i)
		}
		return normalizeInts(vals, container, dimSize, mode)
	case *types.DoubleVector:
		vals := make([]int, idx.Length())
		for i := 1; i <= idx.Length(); i++ {
			vals[i-1] = truncateToPosition(idx.At(i))
		}
		return normalizeInts(vals, container, dimSize, mode)
	case *types.StrVector:
		return normalizeCharacter(ctx, idx, dimNames, dimSize, mode)
	case *types.ComplexVector:
		return Resolved{}, &types.RError{Code: types.ErrInvalidSubscriptType, Detail: "complex"}
	case *types.RawVector:
		return Resolved{}, &types.RError{Code: types.ErrInvalidSubscriptType, Detail: "raw"}
	case *types.ListValue:
		return Resolved{}, &types.RError{Code: types.ErrInvalidSubscriptType, Detail: "list"}
	case *types.FunctionValue:
		return Resolved{}, &types.RError{Code: types.ErrInvalidSubscriptType, Detail: "closure"}
	}
	return Resolved{}, &types.RError{
		Code:   types.ErrInternalConsistency,
		Detail: "unhandled subscript kind " + index.Type().String(),
	}
}

// normalizeMissing handles an omitted subscript, as in x[] or m[, 2]
func normalizeMissing(dimSize int, mode Mode) (Resolved, *types.RError) {
	if mode.Subset {
		out := make([]int, dimSize)
		for i := range out {
			out[i] = i + 1
		}
		return Resolved{Positions: out}, nil
	}
	// element access allows a missing subscript only for a
	// one-element dimension, where it means position 1
	if dimSize == 1 {
		return Resolved{Positions: []int{1}}, nil
	}
	if mode.Assignment {
		return Resolved{}, &types.RError{Code: types.ErrMissingSubscript}
	}
	return Resolved{}, &types.RError{Code: types.ErrInvalidSubscriptType, Detail: "symbol"}
}

// normalizeLogical recycles a logical subscript over the dimension.
// TRUE selects the position, FALSE skips it, NA selects an NA
// position. A logical subscript longer than a single subset dimension
// extends the selection to its own length; anywhere else that is an
// error.
func normalizeLogical(idx *types.LogicalVector, dimSize int, mode Mode) (Resolved, *types.RError) {
	n := idx.Length()
	if n == 0 {
		return Resolved{}, nil
	}
	limit := dimSize
	if n > dimSize {
		if mode.Subset && mode.NumDims == 1 {
			limit = n
		} else {
			return Resolved{}, &types.RError{Code: types.ErrLogicalSubscriptTooLong}
		}
	}
	var out []int
	for i := 1; i <= limit; i++ {
		switch idx.At(((i - 1) % n) + 1) {
		case types.LogicalTrue:
			out = append(out, i)
		case types.LogicalNA:
			out = append(out, types.NAInt)
		}
	}
	return Resolved{Positions: out}, nil
}

// normalizeInts applies the integer subscript rules to values that are
// already integers (or doubles truncated to integers). NAInt entries
// mark NA subscripts.
func normalizeInts(vals []int, container types.Value, dimSize int, mode Mode) (Resolved, *types.RError) {
	var hasNeg, hasPos, hasNA bool
	for _, v := range vals {
		switch {
		case v == types.NAInt:
			hasNA = true
		case v < 0:
			hasNeg = true
		case v > 0:
			hasPos = true
		}
	}
	if hasNeg && (hasPos || hasNA) {
		return Resolved{}, &types.RError{Code: types.ErrOnlyZeroMixed}
	}
	if hasNeg {
		return complementPositions(vals, dimSize), nil
	}

	// non-negative path: zeros contribute nothing
	var out []int
	for _, v := range vals {
		switch {
		case v == types.NAInt:
			pos, err := naPosition(container, mode)
			if err != nil {
				return Resolved{}, err
			}
			if pos == 0 {
				return Resolved{NoValue: true}, nil
			}
			out = append(out, pos)
		case v == 0:
			if !mode.Subset {
				// filtered to an empty selection; the
				// element-access gate reports it
				continue
			}
		case v <= dimSize:
			out = append(out, v)
		default:
			// out of bounds
			if mode.Subset && mode.NumDims == 1 {
				if mode.Assignment {
					out = append(out, v) // extension
				} else {
					out = append(out, types.NAInt)
				}
			} else if !mode.Subset && mode.Assignment && mode.NumDims == 1 {
				out = append(out, v) // [[ assignment extends too
			} else {
				return Resolved{}, &types.RError{Code: types.ErrSubscriptBounds}
			}
		}
	}
	return Resolved{Positions: out}, nil
}

// naPosition decides what an NA subscript means outside subset mode.
// Returns NAInt when the NA flows through as an NA position, 0 when
// the access is defined to yield no value.
func naPosition(container types.Value, mode Mode) (int, *types.RError) {
	if mode.Subset || mode.Assignment {
		// reads produce an NA element; assignment validity
		// depends on the assigned value and is checked at the
		// update step
		return types.NAInt, nil
	}
	if container != nil && container.Type() == types.TYPE_LIST {
		return 0, nil
	}
	return 0, &types.RError{Code: types.ErrSubscriptBounds}
}

// complementPositions resolves an all-negative subscript: every
// position of the dimension except the excluded ones. Magnitudes past
// the dimension exclude nothing.
func complementPositions(vals []int, dimSize int) Resolved {
	excluded := make(map[int]bool, len(vals))
	for _, v := range vals {
		if v < 0 && -v <= dimSize {
			excluded[-v] = true
		}
	}
	var out []int
	for i := 1; i <= dimSize; i++ {
		if !excluded[i] {
			out = append(out, i)
		}
	}
	return Resolved{Positions: out}
}

// normalizeCharacter resolves names against the dimension's names.
// A matched name takes its first occurrence's position. An unmatched
// name is NA on a single-dimension read, out of bounds on a matrix,
// and on assignment appends a fresh position past the end. Repeats of
// the same new name within one subscript resolve to the same appended
// position.
func normalizeCharacter(ctx *types.EvalContext, idx *types.StrVector, names *types.StrVector, dimSize int, mode Mode) (Resolved, *types.RError) {
	if mode.NumDims > 1 && names == nil {
		return Resolved{}, &types.RError{Code: types.ErrNoArrayDimnames}
	}
	out := make([]int, 0, idx.Length())
	var appended *types.StrVector
	nextAppend := dimSize
	firstNew := make(map[string]int)
	for i := 1; i <= idx.Length(); i++ {
		isNA := idx.NAAt(i)
		name := ""
		if !isNA {
			name = idx.At(i)
		}
		pos := 0
		if !isNA && name != "" {
			pos = ctx.LookupName(names, name)
		}
		if pos == 0 {
			switch {
			case mode.Assignment && mode.NumDims == 1:
				if p, ok := firstNew[name]; ok && !isNA {
					pos = p
				} else {
					nextAppend++
					pos = nextAppend
					if !isNA {
						firstNew[name] = pos
					}
				}
				if appended == nil {
					appended = types.NAFilledStrVector(idx.Length())
				}
				if !isNA {
					appended.SetAt(len(out)+1, name)
				}
			case mode.NumDims > 1:
				return Resolved{}, &types.RError{Code: types.ErrSubscriptBounds}
			default:
				pos = types.NAInt
			}
		}
		out = append(out, pos)
	}
	return Resolved{Positions: out, Names: appended}, nil
}

// truncateToPosition converts a double subscript value to an integer
// position, mapping NA and NaN to the NA position
func truncateToPosition(f float64) int {
	if types.IsNADouble(f) || math.IsNaN(f) {
		return types.NAInt
	}
	if math.IsInf(f, 1) || f >= math.MaxInt32 {
		return math.MaxInt32
	}
	if math.IsInf(f, -1) || f <= math.MinInt32+1 {
		return math.MinInt32 + 1
	}
	return int(f)
}
