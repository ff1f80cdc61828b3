package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// parseError is a syntax error found while scanning or parsing.
// token is nil for scanner errors.
type parseError struct {
	err   error
	token *token
	line  int
}

func (e parseError) Error() string {
	switch {
	case e.token == nil:
		return fmt.Sprintf("[line %d] Error: %s", e.line, e.err)
	case e.token.token == tkEOF:
		return fmt.Sprintf("[line %d] Error at end: %s", e.line, e.err)
	default:
		return fmt.Sprintf("[line %d] Error at '%s': %s", e.line, e.token.lexeme, e.err)
	}
}

type runtimeError struct {
	err   error
	token *token
}

func (e *runtimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.err, e.token.line)
}

func (e *runtimeError) Unwrap() error {
	return e.err
}

// interpreterState stores the state of one scan/parse/interpret run
type interpreterState struct {
	absPath string
	source  string
	tokens  []token
	stmts   []stmt

	errors       []parseError
	runtimeError *runtimeError

	logger IPrinter
	log    *logrus.Logger
}

func (s *interpreterState) scanError(err error, line int) {
	s.errors = append(s.errors, parseError{
		err:  err,
		line: line,
	})
}

// setError reports a syntax error without unwinding the parser
func (s *interpreterState) setError(err error, tk *token) {
	s.errors = append(s.errors, parseError{
		err:   err,
		token: tk,
		line:  tk.line,
	})
}

// fatalError reports a syntax error and unwinds to the enclosing declaration
func (s *interpreterState) fatalError(err error, tk *token) {
	s.setError(err, tk)
	panic(s.errors[len(s.errors)-1])
}

// runtimeErr aborts the current interpretation
func (s *interpreterState) runtimeErr(err error, tk *token) {
	panic(&runtimeError{err: err, token: tk})
}

// Valid returns true if no syntax error was reported
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

// PrintErrors prints all syntax errors, returns true if there was any
func (s *interpreterState) PrintErrors() bool {
	for _, e := range s.errors {
		s.logger.Fprintf(os.Stderr, "%s\n", e.Error())
	}
	return len(s.errors) > 0
}

func (s *interpreterState) printRuntimeError() {
	if s.runtimeError != nil {
		s.logger.Fprintf(os.Stderr, "%s\n", s.runtimeError.Error())
	}
}

// Lexer errors
var errIllegalChar = errors.New("Unexpected character.")
var errUnclosedString = errors.New("Unterminated string.")
var errInvalidNumber = errors.New("Invalid number literal.")

// Parser errors
var errExpectedExpression = errors.New("Expect expression.")
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errExpectedArgsParen = errors.New("Expect ')' after arguments.")
var errExpectedParamsParen = errors.New("Expect ')' after parameters.")
var errExpectedCondParen = errors.New("Expect ')' after condition.")
var errExpectedIfParen = errors.New("Expect '(' after 'if'.")
var errExpectedWhileParen = errors.New("Expect '(' after 'while'.")
var errExpectedForParen = errors.New("Expect '(' after 'for'.")
var errExpectedForClausesParen = errors.New("Expect ')' after for clauses.")
var errExpectedNameParen = errors.New("Expect '(' after name.")
var errExpectedBodyBrace = errors.New("Expect '{' before body.")
var errUnclosedBlock = errors.New("Expect '}' after block.")
var errExpectedClassName = errors.New("Expect class name.")
var errExpectedClassBrace = errors.New("Expect '{' before class body.")
var errUnclosedClass = errors.New("Expect '}' after class body.")
var errExpectedFunctionName = errors.New("Expect function name.")
var errExpectedMethodName = errors.New("Expect method name.")
var errExpectedParamName = errors.New("Expect parameter name.")
var errExpectedIdentifier = errors.New("Expect variable name.")
var errExpectedProp = errors.New("Expect property name after '.'.")
var errExpectedValueSemicolon = errors.New("Expect ';' after value.")
var errExpectedExprSemicolon = errors.New("Expect ';' after expression.")
var errExpectedVarSemicolon = errors.New("Expect ';' after variable declaration.")
var errExpectedReturnSemicolon = errors.New("Expect ';' after return value.")
var errExpectedBreakSemicolon = errors.New("Expect ';' after 'break'.")
var errExpectedLoopSemicolon = errors.New("Expect ';' after loop condition.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errInvalidAssignment = errors.New("Invalid assignment target.")
var errOnlyAllowedInsideLoop = errors.New("Can't use 'break' outside of a loop.")
var errReturnTopLevel = errors.New("Can't return from top-level code.")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class.")

// Runtime errors
var errOnlyNumber = errors.New("Operand must be a number.")
var errOnlyNumbers = errors.New("Operands must be numbers.")
var errNumbersOrStrings = errors.New("Operands must be two numbers or two strings.")
var errUndefinedVar = errors.New("Undefined variable")
var errUndefinedProp = errors.New("Undefined property")
var errOnlyCallable = errors.New("Can only call functions and classes.")
var errInvalidNumberArguments = errors.New("Wrong number of arguments")
var errOnlyInstanceProps = errors.New("Only instances have properties.")
var errOnlyInstanceFields = errors.New("Only instances have fields.")
var errStackOverflow = errors.New("Stack overflow.")
