package internal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type exec struct {
	state *interpreterState

	globals  *env
	depth    int
	maxDepth int
}

// breakSignal unwinds a loop body up to its while statement
type breakSignal struct{}

// interpret runs every statement against the globals and stops at the
// first runtime fault, which is reported and makes it return false.
// With echo set, a lone expression statement prints its value.
func (e *exec) interpret(echo bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			runErr, isRunErr := r.(*runtimeError)
			if !isRunErr {
				panic(r)
			}
			e.state.runtimeError = runErr
			e.state.log.WithFields(logrus.Fields{
				"line":  runErr.token.line,
				"token": runErr.token.lexeme,
			}).Debug(runErr.err)
			e.state.printRuntimeError()
			ok = false
		}
	}()

	e.depth = 0
	stmts := e.state.stmts
	if echo && len(stmts) == 1 {
		if exprSt, isExpr := stmts[0].(*exprStmt); isExpr {
			value := e.evaluate(exprSt.expression, e.globals)
			e.state.logger.Println(value.String())
			return true
		}
	}
	for _, s := range stmts {
		e.execute(s, e.globals)
	}
	return true
}

func (e *exec) execute(s stmt, env *env) {
	switch st := s.(type) {
	case *exprStmt:
		e.evaluate(st.expression, env)
	case *printStmt:
		e.state.logger.Println(e.evaluate(st.expression, env).String())
	case *varStmt:
		var val loxValue = nilValue
		if st.initializer != nil {
			val = e.evaluate(st.initializer, env)
		}
		env.define(st.name.lexeme, val)
	case *blockStmt:
		e.executeBlock(st.stmts, newEnv(env))
	case *ifStmt:
		if truthy(e.evaluate(st.condition, env)) {
			e.execute(st.thenBranch, env)
		} else if st.elseBranch != nil {
			e.execute(st.elseBranch, env)
		}
	case *whileStmt:
		e.executeWhile(st, env)
	case *fnStmt:
		env.define(st.name.lexeme, &loxFunction{
			declaration: st,
			closure:     env,
		})
	case *returnStmt:
		var val loxValue = nilValue
		if st.value != nil {
			val = e.evaluate(st.value, env)
		}
		panic(returnValue{value: val})
	case *breakStmt:
		panic(breakSignal{})
	case *classStmt:
		class := &loxClass{
			name:    st.name.lexeme,
			methods: make(map[string]*loxFunction, len(st.methods)),
		}
		for _, method := range st.methods {
			class.methods[method.name.lexeme] = &loxFunction{
				declaration:   method,
				closure:       env,
				isInitializer: method.name.lexeme == "init",
			}
		}
		env.define(st.name.lexeme, class)
	default:
		panic(fmt.Sprintf("unknown statement %T", s))
	}
}

// executeBlock runs stmts in env. The caller's scope is untouched
// whichever way the block exits.
func (e *exec) executeBlock(stmts []stmt, env *env) {
	if e.state.log.IsLevelEnabled(logrus.TraceLevel) {
		e.state.log.WithField("depth", env.depth()).Trace("enter block")
	}
	for _, s := range stmts {
		e.execute(s, env)
	}
}

func (e *exec) executeWhile(st *whileStmt, env *env) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBreak := r.(breakSignal); !isBreak {
				panic(r)
			}
		}
	}()
	for truthy(e.evaluate(st.condition, env)) {
		e.execute(st.body, env)
	}
}

func (e *exec) evaluate(x expr, env *env) loxValue {
	switch ex := x.(type) {
	case *literalExpr:
		return ex.value
	case *groupingExpr:
		return e.evaluate(ex.expression, env)
	case *unaryExpr:
		return e.unary(ex, env)
	case *binaryExpr:
		return e.binary(ex, env)
	case *logicalExpr:
		return e.logical(ex, env)
	case *variableExpr:
		value, err := env.get(ex.name)
		if err != nil {
			e.state.runtimeErr(err, ex.name)
		}
		return value
	case *assignExpr:
		value := e.evaluate(ex.value, env)
		if err := env.assign(ex.name, value); err != nil {
			e.state.runtimeErr(err, ex.name)
		}
		return value
	case *callExpr:
		return e.call(ex, env)
	case *getExpr:
		object, isInstance := e.evaluate(ex.object, env).(*loxInstance)
		if !isInstance {
			e.state.runtimeErr(errOnlyInstanceProps, ex.name)
		}
		value, err := object.get(ex.name)
		if err != nil {
			e.state.runtimeErr(err, ex.name)
		}
		return value
	case *setExpr:
		object, isInstance := e.evaluate(ex.object, env).(*loxInstance)
		if !isInstance {
			e.state.runtimeErr(errOnlyInstanceFields, ex.name)
		}
		value := e.evaluate(ex.value, env)
		object.set(ex.name, value)
		return value
	case *thisExpr:
		value, err := env.get(ex.keyword)
		if err != nil {
			e.state.runtimeErr(err, ex.keyword)
		}
		return value
	default:
		panic(fmt.Sprintf("unknown expression %T", x))
	}
}

func (e *exec) unary(ex *unaryExpr, env *env) loxValue {
	value := e.evaluate(ex.right, env)
	switch ex.operator.token {
	case tkBang:
		return loxBool(!truthy(value))
	case tkMinus:
		num, ok := value.(loxNumber)
		if !ok {
			e.state.runtimeErr(errOnlyNumber, ex.operator)
		}
		return -num
	default:
		panic("unknown unary operator " + ex.operator.lexeme)
	}
}

func (e *exec) binary(ex *binaryExpr, env *env) loxValue {
	left := e.evaluate(ex.left, env)
	right := e.evaluate(ex.right, env)
	op := ex.operator.token

	switch op {
	case tkEqualEqual:
		return loxBool(equal(left, right))
	case tkBangEqual:
		return loxBool(!equal(left, right))
	}

	switch l := left.(type) {
	case loxNumber:
		if r, ok := right.(loxNumber); ok {
			if apply, ok := numberOperations[op]; ok {
				return apply(l, r)
			}
		}
	case loxString:
		if r, ok := right.(loxString); ok {
			if apply, ok := stringOperations[op]; ok {
				return apply(l, r)
			}
		}
	}

	e.state.runtimeErr(operandsError(op), ex.operator)
	return nil
}

// logical yields the operand that decided the result
func (e *exec) logical(ex *logicalExpr, env *env) loxValue {
	left := e.evaluate(ex.left, env)
	if ex.operator.token == tkOr {
		if truthy(left) {
			return left
		}
	} else if !truthy(left) {
		return left
	}
	return e.evaluate(ex.right, env)
}

func (e *exec) call(ex *callExpr, env *env) loxValue {
	callee := e.evaluate(ex.callee, env)
	arguments := make([]loxValue, len(ex.arguments))
	for i := range ex.arguments {
		arguments[i] = e.evaluate(ex.arguments[i], env)
	}

	fn, isFn := callee.(callable)
	if !isFn {
		e.state.runtimeErr(errOnlyCallable, ex.paren)
	}

	if len(arguments) != fn.arity() {
		e.state.runtimeErr(
			fmt.Errorf("%w: expected %d but got %d.", errInvalidNumberArguments, fn.arity(), len(arguments)),
			ex.paren,
		)
	}

	e.depth++
	defer func() { e.depth-- }()
	if e.maxDepth > 0 && e.depth > e.maxDepth {
		e.state.runtimeErr(errStackOverflow, ex.paren)
	}

	if e.state.log.IsLevelEnabled(logrus.TraceLevel) {
		e.state.log.WithFields(logrus.Fields{
			"callee": fn.String(),
			"line":   ex.paren.line,
			"depth":  e.depth,
		}).Trace("call")
	}

	return fn.call(e, arguments)
}
