package internal

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// ErrSyntax is returned when the source has scan or parse errors; nothing was run
var ErrSyntax = errors.New("syntax error")

// ErrRuntime is returned when the run stopped on a runtime fault
var ErrRuntime = errors.New("runtime error")

// Interpreter keeps the global scope alive between runs
type Interpreter struct {
	config  Config
	printer IPrinter
	log     *logrus.Logger
	globals *env
}

// NewInterpreter creates an interpreter writing output and diagnostics to p.
// A nil logger discards log output.
func NewInterpreter(p IPrinter, cfg Config, log *logrus.Logger) *Interpreter {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Interpreter{
		config:  cfg,
		printer: p,
		log:     log,
		globals: newEnv(nil),
	}
}

// load scans and parses source, printing syntax errors if any
func (i *Interpreter) load(absPath, source string) (*interpreterState, error) {
	state := &interpreterState{
		absPath: absPath,
		source:  source,
		errors:  make([]parseError, 0),
		logger:  i.printer,
		log:     i.log,
	}
	lexer := &lexer{
		line:  1,
		state: state,
	}
	parser := &parser{
		state: state,
	}

	lexer.scan()
	parser.parse()

	if state.PrintErrors() {
		i.log.WithFields(logrus.Fields{
			"path":   absPath,
			"errors": len(state.errors),
		}).Debug("refusing to run source with syntax errors")
		return state, ErrSyntax
	}
	return state, nil
}

func (i *Interpreter) run(absPath, source string, echo bool) error {
	state, err := i.load(absPath, source)
	if err != nil {
		return err
	}

	exec := &exec{
		state:    state,
		globals:  i.globals,
		maxDepth: i.config.MaxCallDepth,
	}
	if !exec.interpret(echo) {
		return ErrRuntime
	}
	return nil
}

// Run executes a whole program
func (i *Interpreter) Run(absPath, source string) error {
	return i.run(absPath, source, false)
}

// Eval executes one prompt input, echoing the value of a lone expression
func (i *Interpreter) Eval(source string) error {
	return i.run("", source, true)
}

// PrintTree prints the parsed statements instead of running them
func (i *Interpreter) PrintTree(absPath, source string, rpn bool) error {
	state, err := i.load(absPath, source)
	if err != nil {
		return err
	}
	n := prefixNotation
	if rpn {
		n = rpnNotation
	}
	state.PrintTree(n)
	return nil
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance
func RunSourceWithPrinter(absPath, source string, p IPrinter) bool {
	return NewInterpreter(p, DefaultConfig(), nil).Run(absPath, source) == nil
}
