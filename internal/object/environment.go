package object

import "sort"

// Environment is one scope. Scopes are shared by pointer; a closure keeps
// its defining scope alive for as long as it is reachable.
type Environment struct {
	store map[string]Object
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a child scope whose lookups fall back to
// outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get walks outward until name is found.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if obj, ok := env.store[name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// Set binds name in this scope only, replacing any previous binding.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

func (e *Environment) Outer() *Environment { return e.outer }

// Names lists every name visible from this scope, sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
