package builtins

import (
	"golang.org/x/exp/slices"

	"rho/types"
)

// Registry holds all registered builtin functions, including the
// replacement forms assignment lowering rewrites into (names<-,
// dim<- and friends).
type Registry struct {
	funcs map[string]*types.FunctionValue
}

// NewRegistry creates a registry with the base builtins registered
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]*types.FunctionValue)}

	// vector basics
	r.Register("length", builtinLength)
	r.Register("c", builtinC)
	r.Register("typeof", builtinTypeof)
	r.Register("is.na", builtinIsNA)
	r.Register("seq_len", builtinSeqLen)
	r.Register("list", builtinList)
	r.Register("vector", builtinVector)
	r.Register("print", builtinPrint)

	// attribute access and the replacement forms
	r.Register("names", builtinNames)
	r.Register("names<-", builtinSetNames)
	r.Register("dim", builtinDim)
	r.Register("dim<-", builtinSetDim)
	r.Register("dimnames", builtinDimNames)
	r.Register("dimnames<-", builtinSetDimNames)
	r.Register("attr", builtinAttr)
	r.Register("attr<-", builtinSetAttr)
	r.Register("attributes", builtinAttributes)

	return r
}

// Register adds a builtin under the given name
func (r *Registry) Register(name string, fn types.BuiltinFunc) {
	r.funcs[name] = types.NewFunction(name, fn)
}

// Lookup finds a builtin by name
func (r *Registry) Lookup(name string) (*types.FunctionValue, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns all registered names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
