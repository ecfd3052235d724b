package types

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal    ControlFlow = iota // Normal execution
	FlowException                    // An error condition is being raised
)

// Result represents the outcome of executing a node.
// This unifies normal values and raised error conditions so node
// execution can propagate either without panics.
type Result struct {
	Val       Value       // The value (if Flow == FlowNormal)
	Flow      ControlFlow // Control flow state
	Err       *RError     // Only set when Flow == FlowException
	Invisible bool        // Value should not be auto-printed (assignments)
}

// Ok creates a Result for normal execution with a value
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// OkInvisible creates a normal Result whose value is not auto-printed
func OkInvisible(v Value) Result {
	return Result{Val: v, Flow: FlowNormal, Invisible: true}
}

// Err creates a Result raising the given error condition
func Err(code ErrorCode) Result {
	return Result{Flow: FlowException, Err: &RError{Code: code}}
}

// ErrDetail creates a Result raising a condition with a detail string
func ErrDetail(code ErrorCode, detail string) Result {
	return Result{Flow: FlowException, Err: &RError{Code: code, Detail: detail}}
}

// RaiseError creates a Result raising an already-built condition
func RaiseError(err *RError) Result {
	return Result{Flow: FlowException, Err: err}
}

// IsNormal returns true if this is normal execution
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsError returns true if this is a raised condition
func (r Result) IsError() bool {
	return r.Flow == FlowException
}
