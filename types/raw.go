package types

import (
	"fmt"
	"strings"
)

// RawVector represents a raw byte vector. Raw has no NA value.
type RawVector struct {
	data  []byte
	attrs *Attributes
}

// NewRawVector creates a raw vector owning the given data
func NewRawVector(data []byte) *RawVector {
	return &RawVector{data: data}
}

// Type returns the rho type
func (v *RawVector) Type() TypeCode { return TYPE_RAW }

// Length returns the element count
func (v *RawVector) Length() int { return len(v.data) }

// Data returns the internal data slice
func (v *RawVector) Data() []byte { return v.data }

// NAAt always reports false: raw has no missing value
func (v *RawVector) NAAt(i int) bool { return false }

// Attrs returns the attribute set (may be nil)
func (v *RawVector) Attrs() *Attributes { return v.attrs }

// WithAttrs returns a shallow copy carrying the given attributes
func (v *RawVector) WithAttrs(a *Attributes) Vector {
	return &RawVector{data: v.data, attrs: a}
}

// ElemAt returns the element at a 1-based position as a length-1 vector
func (v *RawVector) ElemAt(i int) Value {
	return NewRawVector([]byte{v.data[i-1]})
}

// Copy returns a deep copy of data and attributes
func (v *RawVector) Copy() *RawVector {
	return &RawVector{data: append([]byte(nil), v.data...), attrs: v.attrs.Copy()}
}

// Take builds a new vector from 1-based positions. Raw has no NA, so
// NA and past-the-end positions yield zero bytes.
func (v *RawVector) Take(positions []int) *RawVector {
	data := make([]byte, len(positions))
	for i, pos := range positions {
		if !IsNAInt(pos) && pos <= len(v.data) {
			data[i] = v.data[pos-1]
		}
	}
	return &RawVector{data: data, attrs: takenAttrs(v.attrs, positions)}
}

// Equal compares element data (attributes ignored)
func (v *RawVector) Equal(other Value) bool {
	o, ok := other.(*RawVector)
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
func (v *RawVector) String() string {
	elems := make([]string, len(v.data))
	for i, b := range v.data {
		elems[i] = fmt.Sprintf("%02x", b)
	}
	if len(elems) == 1 && v.attrs.IsEmpty() {
		return elems[0]
	}
	return "c(" + strings.Join(elems, ", ") + ")"
}
