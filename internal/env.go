package internal

import "fmt"

// env is one scope frame. Closures keep their declaring frame alive.
type env struct {
	enclosing *env
	values    map[string]loxValue
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]loxValue),
	}
}

func (e *env) get(name *token) (loxValue, error) {
	for scope := e; scope != nil; scope = scope.enclosing {
		if value, ok := scope.values[name.lexeme]; ok {
			return value, nil
		}
	}
	return nil, fmt.Errorf("%w '%s'.", errUndefinedVar, name.lexeme)
}

// define always binds in this frame, shadowing outer bindings
func (e *env) define(name string, value loxValue) {
	e.values[name] = value
}

func (e *env) assign(name *token, value loxValue) error {
	for scope := e; scope != nil; scope = scope.enclosing {
		if _, ok := scope.values[name.lexeme]; ok {
			scope.values[name.lexeme] = value
			return nil
		}
	}
	return fmt.Errorf("%w '%s'.", errUndefinedVar, name.lexeme)
}

func (e *env) depth() int {
	n := 0
	for scope := e.enclosing; scope != nil; scope = scope.enclosing {
		n++
	}
	return n
}
