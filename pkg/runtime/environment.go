package runtime

import "sort"

// Environment provides lexical scoping for Quill runtime values. A child
// environment is one scope frame; discarding the child pops the frame. The
// global environment has no parent and is never discarded.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Extend pushes a fresh child frame.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Define inserts or shadows a binding in the current frame only.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the nearest frame holding it.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return e.unboundError(name)
}

// Get retrieves a binding, searching innermost to outermost.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, e.unboundError(name)
}

// Has reports whether the name is bound anywhere on the chain.
func (e *Environment) Has(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			return true
		}
	}
	return false
}

// unboundError enumerates every reachable name so the failure is diagnosable.
func (e *Environment) unboundError(name string) *Error {
	return NewError(NameError, "undefined variable '%s' (known names: %s)", name, joinNames(e.allKeys()))
}

// Snapshot returns a copy of the current frame's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Keys returns the current frame's names in sorted order (deterministic for
// diagnostics and tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// allKeys gathers every bound name on the chain, innermost shadowing outer.
func (e *Environment) allKeys() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.parent {
		for k := range env.values {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}
