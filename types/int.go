package types

import (
	"fmt"
	"strings"
)

// IntVector represents an integer vector. Missing elements hold the
// NAInt sentinel.
type IntVector struct {
	data  []int
	attrs *Attributes
}

// NewIntVector creates an integer vector owning the given data
func NewIntVector(data []int) *IntVector {
	return &IntVector{data: data}
}

// NewIntScalar creates a length-1 integer vector
func NewIntScalar(x int) *IntVector {
	return &IntVector{data: []int{x}}
}

// IntSeq creates the vector low..high inclusive (a ':' range)
func IntSeq(low, high int) *IntVector {
	if high < low {
		data := make([]int, low-high+1)
		for i := range data {
			data[i] = low - i
		}
		return &IntVector{data: data}
	}
	data := make([]int, high-low+1)
	for i := range data {
		data[i] = low + i
	}
	return &IntVector{data: data}
}

// Type returns the rho type
func (v *IntVector) Type() TypeCode { return TYPE_INT }

// Length returns the element count
func (v *IntVector) Length() int { return len(v.data) }

// Data returns the internal data slice
func (v *IntVector) Data() []int { return v.data }

// At returns the datum at a 1-based position
func (v *IntVector) At(i int) int { return v.data[i-1] }

// NAAt reports whether the element at a 1-based position is NA
func (v *IntVector) NAAt(i int) bool { return IsNAInt(v.data[i-1]) }

// Attrs returns the attribute set (may be nil)
func (v *IntVector) Attrs() *Attributes { return v.attrs }

// WithAttrs returns a shallow copy carrying the given attributes
func (v *IntVector) WithAttrs(a *Attributes) Vector {
	return &IntVector{data: v.data, attrs: a}
}

// Copy returns a deep copy of data and attributes
func (v *IntVector) Copy() *IntVector {
	return &IntVector{data: append([]int(nil), v.data...), attrs: v.attrs.Copy()}
}

// ElemAt returns the element at a 1-based position as a length-1 vector
func (v *IntVector) ElemAt(i int) Value {
	return NewIntScalar(v.data[i-1])
}

// Take builds a new vector from 1-based positions. An NA position or a
// position past the end yields an NA element; names are carried along.
func (v *IntVector) Take(positions []int) *IntVector {
	data := make([]int, len(positions))
	for i, pos := range positions {
		if IsNAInt(pos) || pos > len(v.data) {
			data[i] = NAInt
		} else {
			data[i] = v.data[pos-1]
		}
	}
	return &IntVector{data: data, attrs: takenAttrs(v.attrs, positions)}
}

// Equal compares element data with NA equal to NA (attributes ignored)
func (v *IntVector) Equal(other Value) bool {
	o, ok := other.(*IntVector)
	if !ok || len(o.data) != len(v.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// String returns the rho literal representation
func (v *IntVector) String() string {
	elems := make([]string, len(v.data))
	for i, x := range v.data {
		if IsNAInt(x) {
			elems[i] = "NA"
		} else {
			elems[i] = fmt.Sprintf("%dL", x)
		}
	}
	if len(elems) == 1 && v.attrs.IsEmpty() {
		return elems[0]
	}
	return "c(" + strings.Join(elems, ", ") + ")"
}
