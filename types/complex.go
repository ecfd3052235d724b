package types

import (
	"fmt"
	"strings"
)

// ComplexVector represents a complex vector. An element with a NaN
// component is missing.
type ComplexVector struct {
	data  []complex128
	attrs *Attributes
}

// NewComplexVector creates a complex vector owning the given data
func NewComplexVector(data []complex128) *ComplexVector {
	return &ComplexVector{data: data}
}

// NewComplexScalar creates a length-1 complex vector
func NewComplexScalar(x complex128) *ComplexVector {
	return &ComplexVector{data: []complex128{x}}
}

// Type returns the rho type
func (v *ComplexVector) Type() TypeCode { return TYPE_COMPLEX }

// Length returns the element count
func (v *ComplexVector) Length() int { return len(v.data) }

// Data returns the internal data slice
func (v *ComplexVector) Data() []complex128 { return v.data }

// At returns the element at a 1-based position
func (v *ComplexVector) At(i int) complex128 { return v.data[i-1] }

// NAAt reports whether the element at a 1-based position is NA
func (v *ComplexVector) NAAt(i int) bool { return IsNAComplex(v.data[i-1]) }

// Attrs returns the attribute set (may be nil)
func (v *ComplexVector) Attrs() *Attributes { return v.attrs }

// WithAttrs returns a shallow copy carrying the given attributes
func (v *ComplexVector) WithAttrs(a *Attributes) Vector {
	return &ComplexVector{data: v.data, attrs: a}
}

// ElemAt returns the element at a 1-based position as a length-1 vector
func (v *ComplexVector) ElemAt(i int) Value {
	return NewComplexScalar(v.data[i-1])
}

// Copy returns a deep copy of data and attributes
func (v *ComplexVector) Copy() *ComplexVector {
	return &ComplexVector{data: append([]complex128(nil), v.data...), attrs: v.attrs.Copy()}
}

// Take builds a new vector from 1-based positions (NA and past-the-end
// positions yield NA elements; names are carried along)
func (v *ComplexVector) Take(positions []int) *ComplexVector {
	data := make([]complex128, len(positions))
	for i, pos := range positions {
		if IsNAInt(pos) || pos > len(v.data) {
			data[i] = complex(NADouble(), NADouble())
		} else {
			data[i] = v.data[pos-1]
		}
	}
	return &ComplexVector{data: data, attrs: takenAttrs(v.attrs, positions)}
}

// Equal compares element data with NA equal to NA (attributes ignored)
func (v *ComplexVector) Equal(other Value) bool {
	o, ok := other.(*ComplexVector)
	if !ok || len(o.data) != len(v.data) {
		return false
	}
	for i := range v.data {
		if IsNAComplex(v.data[i]) != IsNAComplex(o.data[i]) {
			return false
		}
		if !IsNAComplex(v.data[i]) && v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// String returns the rho literal representation
func (v *ComplexVector) String() string {
	elems := make([]string, len(v.data))
	for i, x := range v.data {
		if IsNAComplex(x) {
			elems[i] = "NA"
		} else {
			elems[i] = fmt.Sprintf("%g+%gi", real(x), imag(x))
		}
	}
	if len(elems) == 1 && v.attrs.IsEmpty() {
		return elems[0]
	}
	return "c(" + strings.Join(elems, ", ") + ")"
}
