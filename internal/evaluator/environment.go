package evaluator

import (
	"sync"

	"github.com/funvibe/slovo/internal/interner"
)

// Environment is a lexically-scoped frame of name bindings, chained to an
// outer frame (spec §4.E). Keyed by interned symbol rather than string so
// every lookup is a map access on a uint32, not a string compare.
type Environment struct {
	mu    sync.RWMutex
	store map[interner.Symbol]Value
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[interner.Symbol]Value)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get resolves name in this frame or any enclosing one.
func (e *Environment) Get(name interner.Symbol) (Value, bool) {
	e.mu.RLock()
	v, ok := e.store[name]
	e.mu.RUnlock()
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return v, ok
}

// Define binds name in THIS frame, shadowing any outer binding (used by
// 'пусть' and by parameter binding on function/method entry).
func (e *Environment) Define(name interner.Symbol, val Value) {
	e.mu.Lock()
	e.store[name] = val
	e.mu.Unlock()
}

// Update assigns to an existing binding, walking outward, and reports
// whether one was found (used by plain-identifier assignment statements).
func (e *Environment) Update(name interner.Symbol, val Value) bool {
	e.mu.Lock()
	_, ok := e.store[name]
	if ok {
		e.store[name] = val
	}
	e.mu.Unlock()
	if ok {
		return true
	}
	if e.outer != nil {
		return e.outer.Update(name, val)
	}
	return false
}
