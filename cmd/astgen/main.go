package main

import (
	"fmt"
	"go/format"
	"log"
	"os"
	"strings"
)

var nodes = map[string][]string{
	"Stmt": {
		"Block: stmts []stmt",
		"Break: keyword *token",
		"Class: name *token, methods []*fnStmt",
		"Expr: expression expr",
		"Fn: name *token, params []*token, body []stmt",
		"If: keyword *token, condition expr, thenBranch stmt, elseBranch stmt",
		"Print: keyword *token, expression expr",
		"Return: keyword *token, value expr",
		"Var: name *token, initializer expr",
		"While: keyword *token, condition expr, body stmt",
	},
	"Expr": {
		"Assign: name *token, value expr",
		"Binary: left expr, operator *token, right expr",
		"Call: callee expr, paren *token, arguments []expr",
		"Get: object expr, name *token",
		"Grouping: expression expr",
		"Literal: value loxValue",
		"Logical: left expr, operator *token, right expr",
		"Set: object expr, name *token, value expr",
		"This: keyword *token",
		"Unary: operator *token, right expr",
		"Variable: name *token",
	},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: astgen Expr|Stmt")
		os.Exit(2)
	}
	types, ok := nodes[os.Args[1]]
	if !ok {
		log.Fatalf("unknown node set %q", os.Args[1])
	}
	out, err := format.Source([]byte(generateAst(os.Args[1], types)))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))
}

func generateAst(baseName string, types []string) string {
	lower := strings.ToLower(baseName)

	out := "// Code generated by cmd/astgen. DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Sealed interface: only types in this package can implement the marker
	out += "type " + lower + " interface {\n"
	out += "\t" + lower + "Node()\n"
	out += "}\n\n"

	for _, t := range types {
		typeDef := strings.Split(t, ":")
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}

	return out
}

func generateType(baseName, name, fields string) string {
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	for _, field := range strings.Split(fields, ",") {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"

	out += "func (*" + structName + ") " + strings.ToLower(baseName) + "Node() {}\n\n"

	return out
}
