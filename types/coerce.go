package types

import (
	"fmt"
	"math"
	"strconv"
)

// typeRank orders the vector kinds for promotion: combining two kinds
// yields the higher-ranked one. Raw does not promote.
func typeRank(t TypeCode) int {
	switch t {
	case TYPE_NULL:
		return 0
	case TYPE_LOGICAL:
		return 1
	case TYPE_INT:
		return 2
	case TYPE_DOUBLE:
		return 3
	case TYPE_COMPLEX:
		return 4
	case TYPE_STR:
		return 5
	case TYPE_LIST:
		return 6
	}
	return -1
}

// PromoteType returns the common kind two vector kinds combine to.
// Raw only combines with raw; anything else is not promotable.
func PromoteType(a, b TypeCode) (TypeCode, bool) {
	if a == TYPE_RAW || b == TYPE_RAW {
		if a == b {
			return TYPE_RAW, true
		}
		return TYPE_NULL, false
	}
	ra, rb := typeRank(a), typeRank(b)
	if ra < 0 || rb < 0 {
		return TYPE_NULL, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

// CoerceVector converts a vector to the given kind, preserving
// attributes. Character vectors do not convert back to numbers here.
func CoerceVector(v Vector, k TypeCode) (Vector, bool) {
	if v.Type() == k {
		return v, true
	}
	n := v.Length()
	switch k {
	case TYPE_LIST:
		elems := make([]Value, n)
		for i := 1; i <= n; i++ {
			elems[i-1] = v.ElemAt(i)
		}
		return (&ListValue{elems: elems}).WithAttrs(v.Attrs().Copy()), true
	case TYPE_STR:
		data := make([]string, n)
		var na []bool
		for i := 1; i <= n; i++ {
			if v.NAAt(i) {
				if na == nil {
					na = make([]bool, n)
				}
				na[i-1] = true
				continue
			}
			s, ok := elemAsString(v, i)
			if !ok {
				return nil, false
			}
			data[i-1] = s
		}
		return (&StrVector{data: data, na: na}).WithAttrs(v.Attrs().Copy()), true
	case TYPE_COMPLEX:
		data := make([]complex128, n)
		for i := 1; i <= n; i++ {
			f, ok := elemAsDouble(v, i)
			if !ok {
				return nil, false
			}
			data[i-1] = complex(f, 0)
		}
		return (&ComplexVector{data: data}).WithAttrs(v.Attrs().Copy()), true
	case TYPE_DOUBLE:
		data := make([]float64, n)
		for i := 1; i <= n; i++ {
			f, ok := elemAsDouble(v, i)
			if !ok {
				return nil, false
			}
			data[i-1] = f
		}
		return (&DoubleVector{data: data}).WithAttrs(v.Attrs().Copy()), true
	case TYPE_INT:
		data := make([]int, n)
		for i := 1; i <= n; i++ {
			x, ok := elemAsInt(v, i)
			if !ok {
				return nil, false
			}
			data[i-1] = x
		}
		return (&IntVector{data: data}).WithAttrs(v.Attrs().Copy()), true
	case TYPE_LOGICAL:
		return nil, false // nothing demotes to logical
	}
	return nil, false
}

// elemAsDouble reads element i as a double (NA maps to the NA double)
func elemAsDouble(v Vector, i int) (float64, bool) {
	if v.NAAt(i) {
		return NADouble(), true
	}
	switch src := v.(type) {
	case *LogicalVector:
		if src.At(i) == LogicalTrue {
			return 1, true
		}
		return 0, true
	case *IntVector:
		return float64(src.At(i)), true
	case *DoubleVector:
		return src.At(i), true
	}
	return 0, false
}

// elemAsInt reads element i as an integer, truncating doubles
func elemAsInt(v Vector, i int) (int, bool) {
	if v.NAAt(i) {
		return NAInt, true
	}
	switch src := v.(type) {
	case *LogicalVector:
		if src.At(i) == LogicalTrue {
			return 1, true
		}
		return 0, true
	case *IntVector:
		return src.At(i), true
	case *DoubleVector:
		f := src.At(i)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return NAInt, true
		}
		return int(f), true
	}
	return 0, false
}

// elemAsString formats element i the way deparsing does
func elemAsString(v Vector, i int) (string, bool) {
	switch src := v.(type) {
	case *LogicalVector:
		if src.At(i) == LogicalTrue {
			return "TRUE", true
		}
		return "FALSE", true
	case *IntVector:
		return strconv.Itoa(src.At(i)), true
	case *DoubleVector:
		return FormatDouble(src.At(i)), true
	case *ComplexVector:
		x := src.At(i)
		return fmt.Sprintf("%s+%si", FormatDouble(real(x)), FormatDouble(imag(x))), true
	case *StrVector:
		return src.At(i), true
	}
	return "", false
}

// FormatDouble renders a double without a trailing ".0" for whole
// numbers, matching printed output
func FormatDouble(f float64) string {
	if math.IsInf(f, 1) {
		return "Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
