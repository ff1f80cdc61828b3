package internal

import (
	"strings"
)

// notation decides where an operator goes relative to its operands
type notation int

const (
	prefixNotation notation = iota
	rpnNotation
)

func (n notation) apply(name string, operands ...string) string {
	if n == rpnNotation {
		if len(operands) == 0 {
			return name
		}
		return strings.Join(operands, " ") + " " + name
	}
	if len(operands) == 0 {
		return "(" + name + ")"
	}
	return "(" + name + " " + strings.Join(operands, " ") + ")"
}

// PrintTree prints every parsed statement, one per line
func (state *interpreterState) PrintTree(n notation) {
	for _, st := range state.stmts {
		state.logger.Println(renderStmt(st, n))
	}
}

func renderExpr(x expr, n notation) string {
	switch ex := x.(type) {
	case *literalExpr:
		if str, isStr := ex.value.(loxString); isStr {
			return str.Repr()
		}
		return ex.value.String()
	case *groupingExpr:
		// Grouping only matters to the prefix form, postfix order already encodes it
		if n == rpnNotation {
			return renderExpr(ex.expression, n)
		}
		return n.apply("group", renderExpr(ex.expression, n))
	case *unaryExpr:
		return n.apply(ex.operator.lexeme, renderExpr(ex.right, n))
	case *binaryExpr:
		return n.apply(ex.operator.lexeme, renderExpr(ex.left, n), renderExpr(ex.right, n))
	case *logicalExpr:
		return n.apply(ex.operator.lexeme, renderExpr(ex.left, n), renderExpr(ex.right, n))
	case *variableExpr:
		return ex.name.lexeme
	case *assignExpr:
		return n.apply("=", ex.name.lexeme, renderExpr(ex.value, n))
	case *callExpr:
		operands := []string{renderExpr(ex.callee, n)}
		for _, arg := range ex.arguments {
			operands = append(operands, renderExpr(arg, n))
		}
		return n.apply("call", operands...)
	case *getExpr:
		return n.apply(".", renderExpr(ex.object, n), ex.name.lexeme)
	case *setExpr:
		return n.apply("=", n.apply(".", renderExpr(ex.object, n), ex.name.lexeme), renderExpr(ex.value, n))
	case *thisExpr:
		return "this"
	default:
		panic("unknown expression")
	}
}

func renderStmt(s stmt, n notation) string {
	switch st := s.(type) {
	case *exprStmt:
		return renderExpr(st.expression, n)
	case *printStmt:
		return n.apply("print", renderExpr(st.expression, n))
	case *varStmt:
		if st.initializer == nil {
			return n.apply("var", st.name.lexeme)
		}
		return n.apply("var", st.name.lexeme, renderExpr(st.initializer, n))
	case *blockStmt:
		return n.apply("block", renderStmts(st.stmts, n)...)
	case *ifStmt:
		operands := []string{renderExpr(st.condition, n), renderStmt(st.thenBranch, n)}
		if st.elseBranch != nil {
			operands = append(operands, renderStmt(st.elseBranch, n))
		}
		return n.apply("if", operands...)
	case *whileStmt:
		return n.apply("while", renderExpr(st.condition, n), renderStmt(st.body, n))
	case *fnStmt:
		return renderFn(st, n)
	case *returnStmt:
		if st.value == nil {
			return n.apply("return")
		}
		return n.apply("return", renderExpr(st.value, n))
	case *breakStmt:
		return n.apply("break")
	case *classStmt:
		operands := []string{st.name.lexeme}
		for _, method := range st.methods {
			operands = append(operands, renderFn(method, n))
		}
		return n.apply("class", operands...)
	default:
		panic("unknown statement")
	}
}

func renderFn(st *fnStmt, n notation) string {
	params := make([]string, len(st.params))
	for i, param := range st.params {
		params[i] = param.lexeme
	}
	operands := []string{st.name.lexeme, n.apply("params", params...)}
	return n.apply("fun", append(operands, renderStmts(st.body, n)...)...)
}

func renderStmts(stmts []stmt, n notation) []string {
	out := make([]string, len(stmts))
	for i, st := range stmts {
		out[i] = renderStmt(st, n)
	}
	return out
}
