package types

// NullValue represents NULL, the zero-length empty value
type NullValue struct{}

// Null is the NULL singleton
var Null = NullValue{}

// Type returns the rho type
func (NullValue) Type() TypeCode { return TYPE_NULL }

// String returns the rho literal representation
func (NullValue) String() string { return "NULL" }

// Equal reports whether the other value is also NULL
func (NullValue) Equal(other Value) bool {
	_, ok := other.(NullValue)
	return ok
}

// IsNull reports whether a value is NULL
func IsNull(v Value) bool {
	_, ok := v.(NullValue)
	return ok
}

// MissingValue represents an omitted argument, e.g. the elided index in
// x[] or x[,2]. It only ever appears as an operand during lowering and
// index resolution.
type MissingValue struct{}

// Missing is the missing-argument singleton
var Missing = MissingValue{}

// Type returns the rho type
func (MissingValue) Type() TypeCode { return TYPE_MISSING }

// String returns the printed form of a missing argument
func (MissingValue) String() string { return "" }

// Equal reports whether the other value is also missing
func (MissingValue) Equal(other Value) bool {
	_, ok := other.(MissingValue)
	return ok
}

// IsMissing reports whether a value is the missing-argument marker
func IsMissing(v Value) bool {
	_, ok := v.(MissingValue)
	return ok
}
