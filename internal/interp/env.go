package interp

// Environment is a frame in the ordered chain of spec.md §3: a map from
// name to Value, plus a pointer to its parent frame. Lookup walks the chain
// to the root; writing creates or updates a binding in the current frame
// only -- a frame is never mutated by a child's writes.
type Environment struct {
	parent *Environment
	vars   map[string]Value
}

// NewRootEnvironment returns an empty, parentless environment -- the global
// scope, populated once with built-ins and top-level function definitions.
func NewRootEnvironment() *Environment {
	return &Environment{vars: map[string]Value{}}
}

// NewChild returns a new frame whose parent is env, used for function call
// frames and the implicit behavior-invocation frame (spec.md §4.6).
func (env *Environment) NewChild() *Environment {
	return &Environment{parent: env, vars: map[string]Value{}}
}

// NewSibling returns a new frame that shares env's parent rather than
// pointing at env itself. Function call frames do not use it: they are
// NewChild frames of the function's captured environment.
func (env *Environment) NewSibling() *Environment {
	return &Environment{parent: env.parent, vars: map[string]Value{}}
}

// Lookup walks the chain from env to the root looking for name, returning
// its nearest binding.
func (env *Environment) Lookup(name string) (Value, bool) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Define binds name to value in the current frame, creating or overwriting
// the binding -- never touching a parent frame.
func (env *Environment) Define(name string, value Value) {
	env.vars[name] = value
}
