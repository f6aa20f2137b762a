package runtime

import (
	"fmt"
	"sync"
)

type binding struct {
	value       Value
	mutable     bool
	initialized bool
}

// Environment is a lexical scope: a binding table chained to its parent.
// Closures share environments across goroutines, so access is guarded.
type Environment struct {
	mu       sync.RWMutex
	parent   *Environment
	bindings map[string]*binding
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent:   parent,
		bindings: make(map[string]*binding),
	}
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

func (e *Environment) Parent() *Environment { return e.parent }

// Define creates and initializes a binding in this scope, shadowing any
// binding of the same name in outer scopes.
func (e *Environment) Define(name string, value Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings[name] = &binding{value: value, mutable: true, initialized: true}
}

// DefineConst creates an immutable initialized binding.
func (e *Environment) DefineConst(name string, value Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings[name] = &binding{value: value, mutable: false, initialized: true}
}

// CreateMutableBinding declares a name without initializing it. Reads before
// InitializeBinding report the temporal dead zone.
func (e *Environment) CreateMutableBinding(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings[name] = &binding{mutable: true}
}

// InitializeBinding gives a declared binding its first value.
func (e *Environment) InitializeBinding(name string, value Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bindings[name]
	if !ok {
		return fmt.Errorf("cannot initialize undeclared binding '%s'", name)
	}
	b.value = value
	b.initialized = true
	return nil
}

// Get resolves a name through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		env.mu.RLock()
		b, ok := env.bindings[name]
		env.mu.RUnlock()
		if !ok {
			continue
		}
		if !b.initialized {
			return nil, fmt.Errorf("cannot access '%s' before initialization", name)
		}
		if b.value == nil {
			return Undefined, nil
		}
		return b.value, nil
	}
	return nil, fmt.Errorf("%s is not defined", name)
}

// Assign updates the nearest binding for the name.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		env.mu.Lock()
		b, ok := env.bindings[name]
		if ok {
			if !b.mutable {
				env.mu.Unlock()
				return fmt.Errorf("assignment to constant variable '%s'", name)
			}
			b.value = value
			b.initialized = true
			env.mu.Unlock()
			return nil
		}
		env.mu.Unlock()
	}
	return fmt.Errorf("%s is not defined", name)
}

// Has reports whether the name resolves anywhere in the chain.
func (e *Environment) Has(name string) bool {
	for env := e; env != nil; env = env.parent {
		env.mu.RLock()
		_, ok := env.bindings[name]
		env.mu.RUnlock()
		if ok {
			return true
		}
	}
	return false
}

// HasInCurrentScope reports whether this scope itself binds the name.
func (e *Environment) HasInCurrentScope(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.bindings[name]
	return ok
}
