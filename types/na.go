package types

import "math"

// NAInt is the missing-value sentinel for integer data and resolved
// positions. It matches the language's NA_integer_ (smallest int32).
const NAInt = math.MinInt32

// Logical data is stored as bytes so a logical vector can hold NA.
const (
	LogicalFalse byte = 0
	LogicalTrue  byte = 1
	LogicalNA    byte = 2
)

// IsNAInt reports whether an integer datum is the NA sentinel
func IsNAInt(x int) bool {
	return x == NAInt
}

// IsNADouble reports whether a double datum is missing. NaN carries NA
// semantics for index conversion; the distinction between NA_real_ and
// NaN is not observable through indexing.
func IsNADouble(x float64) bool {
	return math.IsNaN(x)
}

// IsNAComplex reports whether a complex datum is missing
func IsNAComplex(x complex128) bool {
	return math.IsNaN(real(x)) || math.IsNaN(imag(x))
}

// NADouble returns the missing double value
func NADouble() float64 {
	return math.NaN()
}
