package types

import "fmt"

// ErrorCode identifies an evaluation-time error condition.
// The subscript codes mirror the diagnostics the language defines for
// indexing and replacement; the general codes cover the rest of the runtime.
type ErrorCode int

const (
	ErrNone ErrorCode = iota

	// Subscript and dimension errors
	ErrIncorrectSubscripts
	ErrIncorrectSubscriptsMatrix
	ErrImproperSubscript
	ErrIncorrectDimensions
	ErrMissingSubscript
	ErrInvalidSubscriptType
	ErrSelectLessThanOne
	ErrSelectMoreThanOne
	ErrSubscriptBounds
	ErrLogicalSubscriptTooLong
	ErrOnlyZeroMixed
	ErrNoArrayDimnames

	// General runtime errors
	ErrVariableNotFound
	ErrFunctionNotFound
	ErrTypeMismatch
	ErrArgumentCount
	ErrInvalidReplacementTarget
	ErrInternalConsistency
)

// String returns the symbolic name for an error code
func (e ErrorCode) String() string {
	switch e {
	case ErrNone:
		return "ErrNone"
	case ErrIncorrectSubscripts:
		return "IncorrectSubscripts"
	case ErrIncorrectSubscriptsMatrix:
		return "IncorrectSubscriptsMatrix"
	case ErrImproperSubscript:
		return "ImproperSubscript"
	case ErrIncorrectDimensions:
		return "IncorrectDimensions"
	case ErrMissingSubscript:
		return "MissingSubscript"
	case ErrInvalidSubscriptType:
		return "InvalidSubscriptType"
	case ErrSelectLessThanOne:
		return "SelectLessThanOne"
	case ErrSelectMoreThanOne:
		return "SelectMoreThanOne"
	case ErrSubscriptBounds:
		return "SubscriptBounds"
	case ErrLogicalSubscriptTooLong:
		return "LogicalSubscriptTooLong"
	case ErrOnlyZeroMixed:
		return "OnlyZeroMixed"
	case ErrNoArrayDimnames:
		return "NoArrayDimnames"
	case ErrVariableNotFound:
		return "VariableNotFound"
	case ErrFunctionNotFound:
		return "FunctionNotFound"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrArgumentCount:
		return "ArgumentCount"
	case ErrInvalidReplacementTarget:
		return "InvalidReplacementTarget"
	case ErrInternalConsistency:
		return "InternalConsistency"
	default:
		return "ErrUnknown"
	}
}

// ErrorFromString converts a symbolic name back to an ErrorCode.
// Used by the conformance loader to decode expected errors.
func ErrorFromString(s string) (ErrorCode, bool) {
	for c := ErrNone; c <= ErrInternalConsistency; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return ErrNone, false
}

// RError is a raised error condition: a stable code plus an optional
// detail used by codes whose message names a specific type or symbol.
type RError struct {
	Code   ErrorCode
	Detail string
}

// Message returns the user-facing diagnostic text for the condition
func (e *RError) Message() string {
	switch e.Code {
	case ErrIncorrectSubscripts:
		return "incorrect number of subscripts"
	case ErrIncorrectSubscriptsMatrix:
		return "incorrect number of subscripts on a matrix"
	case ErrImproperSubscript:
		return "[[ ]] improper number of subscripts"
	case ErrIncorrectDimensions:
		return "incorrect number of dimensions"
	case ErrMissingSubscript:
		return "[[ ]] with missing subscript"
	case ErrInvalidSubscriptType:
		return fmt.Sprintf("invalid subscript type '%s'", e.Detail)
	case ErrSelectLessThanOne:
		return "attempt to select less than one element"
	case ErrSelectMoreThanOne:
		return "attempt to select more than one element"
	case ErrSubscriptBounds:
		return "subscript out of bounds"
	case ErrLogicalSubscriptTooLong:
		return "(subscript) logical subscript too long"
	case ErrOnlyZeroMixed:
		return "only 0's may be mixed with negative subscripts"
	case ErrNoArrayDimnames:
		return "no 'dimnames' attribute for array"
	case ErrVariableNotFound:
		return fmt.Sprintf("object '%s' not found", e.Detail)
	case ErrFunctionNotFound:
		if e.Detail == "" {
			return "could not find function"
		}
		return fmt.Sprintf("could not find function \"%s\"", e.Detail)
	case ErrTypeMismatch:
		if e.Detail == "" {
			return "invalid argument type"
		}
		return e.Detail
	case ErrArgumentCount:
		return "incorrect number of arguments"
	case ErrInvalidReplacementTarget:
		return "invalid assignment left-hand side"
	case ErrInternalConsistency:
		return fmt.Sprintf("internal consistency error: %s", e.Detail)
	default:
		return "unknown error"
	}
}

// Error makes RError usable as a Go error for lowering-time propagation
func (e *RError) Error() string {
	return e.Message()
}
