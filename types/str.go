package types

import (
	"strconv"
	"strings"
)

// StrVector represents a character vector. Missing elements are
// tracked in a parallel NA mask (nil when the vector is complete).
type StrVector struct {
	data  []string
	na    []bool
	attrs *Attributes
}

// NewStrVector creates a complete character vector owning the given data
func NewStrVector(data []string) *StrVector {
	return &StrVector{data: data}
}

// NewStrVectorWithNA creates a character vector with an NA mask.
// A nil mask means the vector is complete.
func NewStrVectorWithNA(data []string, na []bool) *StrVector {
	return &StrVector{data: data, na: na}
}

// NewStrScalar creates a length-1 character vector
func NewStrScalar(s string) *StrVector {
	return &StrVector{data: []string{s}}
}

// NewStrNA creates the length-1 NA character vector
func NewStrNA() *StrVector {
	return &StrVector{data: []string{""}, na: []bool{true}}
}

// NAFilledStrVector creates a character vector of n NA elements.
// Used when a names vector is created by a partial names assignment.
func NAFilledStrVector(n int) *StrVector {
	na := make([]bool, n)
	for i := range na {
		na[i] = true
	}
	return &StrVector{data: make([]string, n), na: na}
}

// Type returns the rho type
func (v *StrVector) Type() TypeCode { return TYPE_STR }

// Length returns the element count
func (v *StrVector) Length() int { return len(v.data) }

// Data returns the internal data slice
func (v *StrVector) Data() []string { return v.data }

// At returns the datum at a 1-based position
func (v *StrVector) At(i int) string { return v.data[i-1] }

// NAAt reports whether the element at a 1-based position is NA
func (v *StrVector) NAAt(i int) bool { return v.na != nil && v.na[i-1] }

// Attrs returns the attribute set (may be nil)
func (v *StrVector) Attrs() *Attributes { return v.attrs }

// WithAttrs returns a shallow copy carrying the given attributes
func (v *StrVector) WithAttrs(a *Attributes) Vector {
	return &StrVector{data: v.data, na: v.na, attrs: a}
}

// Copy returns a deep copy of data, NA mask and attributes
func (v *StrVector) Copy() *StrVector {
	c := &StrVector{data: append([]string(nil), v.data...), attrs: v.attrs.Copy()}
	if v.na != nil {
		c.na = append([]bool(nil), v.na...)
	}
	return c
}

// ElemAt returns the element at a 1-based position as a length-1 vector
func (v *StrVector) ElemAt(i int) Value {
	if v.NAAt(i) {
		return NewStrNA()
	}
	return NewStrScalar(v.data[i-1])
}

// SetAt sets the datum at a 1-based position in place (clears NA)
func (v *StrVector) SetAt(i int, s string) {
	v.data[i-1] = s
	if v.na != nil {
		v.na[i-1] = false
	}
}

// Take builds a new vector from 1-based positions (NA and past-the-end
// positions yield NA elements; names are carried along)
func (v *StrVector) Take(positions []int) *StrVector {
	data := make([]string, len(positions))
	var na []bool
	setNA := func(i int) {
		if na == nil {
			na = make([]bool, len(positions))
		}
		na[i] = true
	}
	for i, pos := range positions {
		switch {
		case IsNAInt(pos) || pos > len(v.data):
			setNA(i)
		case v.NAAt(pos):
			setNA(i)
		default:
			data[i] = v.data[pos-1]
		}
	}
	return &StrVector{data: data, na: na, attrs: takenAttrs(v.attrs, positions)}
}

// Find returns the 1-based position of the first element equal to s,
// or 0 when no element matches. NA elements never match.
func (v *StrVector) Find(s string) int {
	for i, datum := range v.data {
		if (v.na == nil || !v.na[i]) && datum == s {
			return i + 1
		}
	}
	return 0
}

// Equal compares element data with NA equal to NA (attributes ignored)
func (v *StrVector) Equal(other Value) bool {
	o, ok := other.(*StrVector)
	if !ok || len(o.data) != len(v.data) {
		return false
	}
	for i := range v.data {
		if v.NAAt(i+1) != o.NAAt(i+1) {
			return false
		}
		if !v.NAAt(i+1) && v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// String returns the rho literal representation
func (v *StrVector) String() string {
	elems := make([]string, len(v.data))
	for i, s := range v.data {
		if v.NAAt(i + 1) {
			elems[i] = "NA"
		} else {
			elems[i] = strconv.Quote(s)
		}
	}
	if len(elems) == 1 && v.attrs.IsEmpty() {
		return elems[0]
	}
	return "c(" + strings.Join(elems, ", ") + ")"
}
