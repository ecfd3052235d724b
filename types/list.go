package types

import "strings"

// ListValue represents a generic vector (list): an ordered sequence of
// arbitrary values with the usual vector attributes. Element updates
// are copy-on-write.
type ListValue struct {
	elems []Value
	attrs *Attributes
}

// NewList creates a list owning the given elements
func NewList(elems []Value) *ListValue {
	return &ListValue{elems: elems}
}

// NewEmptyList creates an empty list
func NewEmptyList() *ListValue {
	return &ListValue{}
}

// Type returns the rho type
func (l *ListValue) Type() TypeCode { return TYPE_LIST }

// Length returns the element count
func (l *ListValue) Length() int { return len(l.elems) }

// Elements returns the internal element slice for iteration
func (l *ListValue) Elements() []Value { return l.elems }

// ElemAt returns the element at a 1-based position
func (l *ListValue) ElemAt(i int) Value { return l.elems[i-1] }

// NAAt reports whether the element at a 1-based position is the NULL
// placeholder (lists have no NA of their own)
func (l *ListValue) NAAt(i int) bool {
	_, isNull := l.elems[i-1].(NullValue)
	return isNull
}

// Attrs returns the attribute set (may be nil)
func (l *ListValue) Attrs() *Attributes { return l.attrs }

// WithAttrs returns a shallow copy carrying the given attributes
func (l *ListValue) WithAttrs(a *Attributes) Vector {
	return &ListValue{elems: l.elems, attrs: a}
}

// Copy returns a copy with an independent element slice and attributes.
// The elements themselves are shared (immutable under copy-on-write).
func (l *ListValue) Copy() *ListValue {
	return &ListValue{elems: append([]Value(nil), l.elems...), attrs: l.attrs.Copy()}
}

// Set returns a new list with the element at a 1-based position
// replaced (copy-on-write)
func (l *ListValue) Set(i int, v Value) *ListValue {
	c := l.Copy()
	c.elems[i-1] = v
	return c
}

// Append returns a new list with the value appended (copy-on-write)
func (l *ListValue) Append(v Value) *ListValue {
	c := &ListValue{elems: make([]Value, len(l.elems)+1), attrs: l.attrs.Copy()}
	copy(c.elems, l.elems)
	c.elems[len(l.elems)] = v
	return c
}

// Take builds a new list from 1-based positions (NA and past-the-end
// positions yield NULL elements; names are carried along)
func (l *ListValue) Take(positions []int) *ListValue {
	elems := make([]Value, len(positions))
	for i, pos := range positions {
		if IsNAInt(pos) || pos > len(l.elems) {
			elems[i] = Null
		} else {
			elems[i] = l.elems[pos-1]
		}
	}
	return &ListValue{elems: elems, attrs: takenAttrs(l.attrs, positions)}
}

// Equal compares elements deeply (attributes ignored)
func (l *ListValue) Equal(other Value) bool {
	o, ok := other.(*ListValue)
	if !ok || len(o.elems) != len(l.elems) {
		return false
	}
	for i := range l.elems {
		if !l.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// String returns the rho literal representation
func (l *ListValue) String() string {
	parts := make([]string, len(l.elems))
	names := l.attrs.Names()
	for i, elem := range l.elems {
		if names != nil && i < names.Length() && !names.NAAt(i+1) && names.At(i+1) != "" {
			parts[i] = names.At(i+1) + " = " + elem.String()
		} else {
			parts[i] = elem.String()
		}
	}
	return "list(" + strings.Join(parts, ", ") + ")"
}
