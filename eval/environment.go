package eval

import "rho/types"

// Environment is a chain of variable frames. Lookup walks the chain
// toward the global frame; plain assignment always binds locally.
type Environment struct {
	vars   map[string]types.Value
	parent *Environment
}

// NewEnvironment creates a child environment. A nil parent makes a
// global environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]types.Value),
		parent: parent,
	}
}

// Get looks up a variable, walking the parent chain
func (e *Environment) Get(name string) (types.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetLocal looks up a variable in this frame only
func (e *Environment) GetLocal(name string) (types.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds a variable in this frame
func (e *Environment) Set(name string, v types.Value) {
	e.vars[name] = v
}

// SetSuper implements <<- assignment: rebind the first existing
// binding found in an enclosing frame, or bind in the global frame
// when no enclosing frame has one.
func (e *Environment) SetSuper(name string, v types.Value) {
	for env := e.parent; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return
		}
	}
	e.Global().vars[name] = v
}

// Remove deletes a binding from the nearest frame that has it
func (e *Environment) Remove(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			delete(env.vars, name)
			return true
		}
	}
	return false
}

// Global returns the outermost frame of the chain
func (e *Environment) Global() *Environment {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Names returns the variables bound in this frame
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	return names
}
