package types

import (
	"strconv"
	"strings"
)

// DoubleVector represents a double-precision vector. NaN carries the
// missing-value semantics for index conversion (see na.go).
type DoubleVector struct {
	data  []float64
	attrs *Attributes
}

// NewDoubleVector creates a double vector owning the given data
func NewDoubleVector(data []float64) *DoubleVector {
	return &DoubleVector{data: data}
}

// NewDoubleScalar creates a length-1 double vector
func NewDoubleScalar(x float64) *DoubleVector {
	return &DoubleVector{data: []float64{x}}
}

// Type returns the rho type
func (v *DoubleVector) Type() TypeCode { return TYPE_DOUBLE }

// Length returns the element count
func (v *DoubleVector) Length() int { return len(v.data) }

// Data returns the internal data slice
func (v *DoubleVector) Data() []float64 { return v.data }

// At returns the datum at a 1-based position
func (v *DoubleVector) At(i int) float64 { return v.data[i-1] }

// NAAt reports whether the element at a 1-based position is NA
func (v *DoubleVector) NAAt(i int) bool { return IsNADouble(v.data[i-1]) }

// Attrs returns the attribute set (may be nil)
func (v *DoubleVector) Attrs() *Attributes { return v.attrs }

// WithAttrs returns a shallow copy carrying the given attributes
func (v *DoubleVector) WithAttrs(a *Attributes) Vector {
	return &DoubleVector{data: v.data, attrs: a}
}

// Copy returns a deep copy of data and attributes
func (v *DoubleVector) Copy() *DoubleVector {
	return &DoubleVector{data: append([]float64(nil), v.data...), attrs: v.attrs.Copy()}
}

// ElemAt returns the element at a 1-based position as a length-1 vector
func (v *DoubleVector) ElemAt(i int) Value {
	return NewDoubleScalar(v.data[i-1])
}

// Take builds a new vector from 1-based positions (NA and past-the-end
// positions yield NA elements; names are carried along)
func (v *DoubleVector) Take(positions []int) *DoubleVector {
	data := make([]float64, len(positions))
	for i, pos := range positions {
		if IsNAInt(pos) || pos > len(v.data) {
			data[i] = NADouble()
		} else {
			data[i] = v.data[pos-1]
		}
	}
	return &DoubleVector{data: data, attrs: takenAttrs(v.attrs, positions)}
}

// Equal compares element data with NA equal to NA (attributes ignored)
func (v *DoubleVector) Equal(other Value) bool {
	o, ok := other.(*DoubleVector)
	if !ok || len(o.data) != len(v.data) {
		return false
	}
	for i := range v.data {
		if IsNADouble(v.data[i]) != IsNADouble(o.data[i]) {
			return false
		}
		if !IsNADouble(v.data[i]) && v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// String returns the rho literal representation
func (v *DoubleVector) String() string {
	elems := make([]string, len(v.data))
	for i, x := range v.data {
		if IsNADouble(x) {
			elems[i] = "NA"
		} else {
			elems[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
	}
	if len(elems) == 1 && v.attrs.IsEmpty() {
		return elems[0]
	}
	return "c(" + strings.Join(elems, ", ") + ")"
}
