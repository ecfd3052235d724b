package types

import "strings"

// LogicalVector represents a logical vector. Elements are stored as
// bytes so NA fits alongside TRUE and FALSE.
type LogicalVector struct {
	data  []byte
	attrs *Attributes
}

// NewLogicalVector creates a logical vector owning the given data
func NewLogicalVector(data []byte) *LogicalVector {
	return &LogicalVector{data: data}
}

// NewLogicalScalar creates a length-1 logical vector from a Go bool
func NewLogicalScalar(b bool) *LogicalVector {
	if b {
		return &LogicalVector{data: []byte{LogicalTrue}}
	}
	return &LogicalVector{data: []byte{LogicalFalse}}
}

// NewLogicalNA creates the length-1 NA logical vector
func NewLogicalNA() *LogicalVector {
	return &LogicalVector{data: []byte{LogicalNA}}
}

// Type returns the rho type
func (v *LogicalVector) Type() TypeCode { return TYPE_LOGICAL }

// Length returns the element count
func (v *LogicalVector) Length() int { return len(v.data) }

// Data returns the internal data slice
func (v *LogicalVector) Data() []byte { return v.data }

// At returns the datum at a 1-based position
func (v *LogicalVector) At(i int) byte { return v.data[i-1] }

// NAAt reports whether the element at a 1-based position is NA
func (v *LogicalVector) NAAt(i int) bool { return v.data[i-1] == LogicalNA }

// Attrs returns the attribute set (may be nil)
func (v *LogicalVector) Attrs() *Attributes { return v.attrs }

// WithAttrs returns a shallow copy carrying the given attributes
func (v *LogicalVector) WithAttrs(a *Attributes) Vector {
	return &LogicalVector{data: v.data, attrs: a}
}

// Copy returns a deep copy of data and attributes
func (v *LogicalVector) Copy() *LogicalVector {
	return &LogicalVector{data: append([]byte(nil), v.data...), attrs: v.attrs.Copy()}
}

// ElemAt returns the element at a 1-based position as a length-1 vector
func (v *LogicalVector) ElemAt(i int) Value {
	return &LogicalVector{data: []byte{v.data[i-1]}}
}

// Take builds a new vector from 1-based positions (NA and past-the-end
// positions yield NA elements; names are carried along)
func (v *LogicalVector) Take(positions []int) *LogicalVector {
	data := make([]byte, len(positions))
	for i, pos := range positions {
		if IsNAInt(pos) || pos > len(v.data) {
			data[i] = LogicalNA
		} else {
			data[i] = v.data[pos-1]
		}
	}
	return &LogicalVector{data: data, attrs: takenAttrs(v.attrs, positions)}
}

// Equal compares element data with NA equal to NA (attributes ignored)
func (v *LogicalVector) Equal(other Value) bool {
	o, ok := other.(*LogicalVector)
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
func (v *LogicalVector) String() string {
	elems := make([]string, len(v.data))
	for i, b := range v.data {
		switch b {
		case LogicalTrue:
			elems[i] = "TRUE"
		case LogicalFalse:
			elems[i] = "FALSE"
		default:
			elems[i] = "NA"
		}
	}
	if len(elems) == 1 && v.attrs.IsEmpty() {
		return elems[0]
	}
	return "c(" + strings.Join(elems, ", ") + ")"
}
