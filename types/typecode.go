package types

// TypeCode identifies the runtime kind of a value
type TypeCode int

const (
	TYPE_NULL TypeCode = iota
	TYPE_LOGICAL
	TYPE_INT
	TYPE_DOUBLE
	TYPE_COMPLEX
	TYPE_RAW
	TYPE_STR
	TYPE_LIST
	TYPE_FUNCTION
	TYPE_ENV
	TYPE_MISSING
)

// String returns the name typeof() reports for the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_NULL:
		return "NULL"
	case TYPE_LOGICAL:
		return "logical"
	case TYPE_INT:
		return "integer"
	case TYPE_DOUBLE:
		return "double"
	case TYPE_COMPLEX:
		return "complex"
	case TYPE_RAW:
		return "raw"
	case TYPE_STR:
		return "character"
	case TYPE_LIST:
		return "list"
	case TYPE_FUNCTION:
		return "closure"
	case TYPE_ENV:
		return "environment"
	case TYPE_MISSING:
		return "missing"
	default:
		return "unknown"
	}
}

// IsVector reports whether values of this type carry length, names and dims
func (t TypeCode) IsVector() bool {
	switch t {
	case TYPE_LOGICAL, TYPE_INT, TYPE_DOUBLE, TYPE_COMPLEX, TYPE_RAW, TYPE_STR, TYPE_LIST:
		return true
	default:
		return false
	}
}
