package types

// BuiltinFunc is the signature all builtin functions implement.
// args holds the evaluated arguments in call order and names the
// corresponding argument names ("" for positional arguments).
type BuiltinFunc func(ctx *EvalContext, args []Value, names []string) Result

// FunctionValue represents a callable function value
type FunctionValue struct {
	Name string
	Fn   BuiltinFunc
}

// NewFunction creates a function value
func NewFunction(name string, fn BuiltinFunc) *FunctionValue {
	return &FunctionValue{Name: name, Fn: fn}
}

// Type returns the rho type
func (f *FunctionValue) Type() TypeCode { return TYPE_FUNCTION }

// String returns the printed form of a function value
func (f *FunctionValue) String() string {
	if f.Name == "" {
		return "function"
	}
	return f.Name
}

// Equal reports identity by name
func (f *FunctionValue) Equal(other Value) bool {
	o, ok := other.(*FunctionValue)
	return ok && o.Name == f.Name
}
