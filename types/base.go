package types

// Value is the interface all rho values implement
type Value interface {
	Type() TypeCode
	String() string   // rho literal representation
	Equal(Value) bool // Deep equality, NA == NA
}

// Vector is implemented by every value with a length and attributes:
// the atomic vector types and generic lists.
type Vector interface {
	Value
	Length() int
	Attrs() *Attributes         // nil when the value has no attributes
	WithAttrs(*Attributes) Vector // shallow copy carrying the given attributes
	NAAt(i int) bool            // 1-based; is-NA-at-position predicate
	ElemAt(i int) Value         // 1-based; element as a length-1 value
}

// AsVector returns v as a Vector if its kind has vector shape
func AsVector(v Value) (Vector, bool) {
	vec, ok := v.(Vector)
	return vec, ok
}

// Length returns the language-level length of any value:
// vectors report their element count, NULL reports 0 and scalars 1.
func Length(v Value) int {
	switch val := v.(type) {
	case Vector:
		return val.Length()
	case NullValue:
		return 0
	default:
		return 1
	}
}
