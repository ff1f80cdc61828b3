package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"

	"treelox/internal"
	"treelox/internal/history"
)

// Exit codes follow sysexits.h
const (
	exitUsage   = 64
	exitSyntax  = 65
	exitRuntime = 70
)

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprint(w, color.Red(fmt.Sprintf(format, a...)))
	}
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprintln(w, color.Red(fmt.Sprint(a...)))
	}
	return fmt.Fprintln(w, a...)
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	printAst := flag.Bool("ast", false, "print the syntax tree in prefix form instead of running")
	printRpn := flag.Bool("rpn", false, "print the syntax tree in reverse polish form instead of running")
	verbose := flag.Bool("v", false, "debug logging")
	noColor := flag.Bool("no-color", false, "disable colored diagnostics")
	showHistory := flag.Int("history", -1, "print the last N prompt inputs (0 for all) and exit")
	flag.Parse()

	cfg := internal.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = internal.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if *noColor {
		cfg.Color = false
	}
	if !cfg.Color {
		color.Disable()
	}

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	var store *history.Store
	if cfg.HistoryFile != "" {
		if store, err = history.Open(cfg.HistoryFile); err != nil {
			log.Fatal(err)
		}
		defer store.Close()
	}

	if *showHistory >= 0 {
		if store == nil {
			log.Fatal("history_file is not configured")
		}
		inputs, err := store.Recent(*showHistory)
		if err != nil {
			log.Fatal(err)
		}
		for _, input := range inputs {
			fmt.Println(input)
		}
		return
	}

	interp := internal.NewInterpreter(stdPrinter{}, cfg, logger)

	switch flag.NArg() {
	case 0:
		runPrompt(interp, cfg.Prompt, store, logger)
	case 1:
		code := runFile(interp, flag.Arg(0), *printAst, *printRpn)
		if store != nil {
			store.Close()
		}
		os.Exit(code)
	default:
		fmt.Println("Usage: lox [flags] [/path/to/script.lox]")
		os.Exit(exitUsage)
	}
}

func runFile(interp *internal.Interpreter, path string, printAst, printRpn bool) int {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatal(err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	b, err := ioutil.ReadAll(file)
	if err != nil {
		log.Fatal(err)
	}

	source := string(b)

	if printAst || printRpn {
		err = interp.PrintTree(absPath, source, printRpn)
	} else {
		err = interp.Run(absPath, source)
	}

	switch {
	case errors.Is(err, internal.ErrSyntax):
		return exitSyntax
	case errors.Is(err, internal.ErrRuntime):
		return exitRuntime
	}
	return 0
}

// runPrompt keeps one global scope across lines; errors don't end the session
func runPrompt(interp *internal.Interpreter, prompt string, store *history.Store, logger *logrus.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := scanner.Text()
		if store != nil {
			if err := store.Append(line); err != nil {
				logger.WithError(err).Warn("could not record input")
			}
		}
		interp.Eval(line)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
