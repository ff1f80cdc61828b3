package internal

import "fmt"

type callable interface {
	loxValue
	arity() int
	call(exec *exec, arguments []loxValue) loxValue
}

type loxFunction struct {
	declaration   *fnStmt
	closure       *env
	isInitializer bool
}

// returnValue unwinds a function body up to its call
type returnValue struct {
	value loxValue
}

func (f *loxFunction) arity() int {
	return len(f.declaration.params)
}

func (f *loxFunction) call(exec *exec, arguments []loxValue) (result loxValue) {
	env := newEnv(f.closure)
	for i, param := range f.declaration.params {
		env.define(param.lexeme, arguments[i])
	}

	defer func() {
		if r := recover(); r != nil {
			returnVal, isReturn := r.(returnValue)
			if !isReturn {
				panic(r)
			}
			result = returnVal.value
			if f.isInitializer {
				result = f.closure.values["this"]
			}
		}
	}()

	exec.executeBlock(f.declaration.body, env)

	if f.isInitializer {
		return f.closure.values["this"]
	}
	return nilValue
}

func (f *loxFunction) bind(object *loxInstance) *loxFunction {
	environment := newEnv(f.closure)
	environment.define("this", object)
	return &loxFunction{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *loxFunction) typeName() string { return "function" }

func (f *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}
