package internal

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

type testPrinter struct {
	printed string
}

func (t *testPrinter) Println(a ...interface{}) (n int, err error) {
	for i, e := range a {
		if i != 0 {
			t.printed += " "
		}
		t.printed += fmt.Sprintf("%v", e)
	}
	t.printed += "\n"
	return 0, nil
}

func (t *testPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	t.printed += fmt.Sprintf(format, a...)
	return 0, nil
}

func (t *testPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return t.Println(a...)
}

func (t *testPrinter) Equals(p string) bool {
	if t.printed == p+"\n" {
		t.Reset()
		return true
	}
	return false
}

func (t *testPrinter) Reset() {
	t.printed = ""
}

func checkExpression(t *testing.T, exp string, result ...string) {
	t.Helper()
	source := "print " + exp + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	any := false
	for _, r := range result {
		if tp.Equals(r) {
			any = true
			break
		}
	}
	if !any {
		t.Errorf(
			"Error on: \n%s\n\tResult should be equal to %s instead of %s",
			exp,
			result,
			tp.printed,
		)
	}
}

func checkErrorMsg(t *testing.T, source string, errorMsg string, line int) {
	t.Helper()
	result := fmt.Sprintf("%s\n[line %d]", errorMsg, line)

	tp := &testPrinter{}
	if RunSourceWithPrinter("", source, tp) {
		t.Errorf("\nSource:\n----\n%s\n----\nExpected run to fail", source)
	}
	if !tp.Equals(result) {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound:\n----\n%s----",
			source,
			result,
			tp.printed,
		)
	}
}

func checkStatements(t *testing.T, code string, resultVar string, result string) {
	t.Helper()
	source := code + "\nprint " + resultVar + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\t%s should be equal to %s instead of %s",
			code,
			resultVar,
			result,
			tp.printed,
		)
	}
}

func checkOutput(t *testing.T, source string, lines ...string) {
	t.Helper()
	tp := &testPrinter{}
	RunSourceWithPrinter("", source, tp)
	if !tp.Equals(strings.Join(lines, "\n")) {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound:\n----\n%s----",
			source,
			strings.Join(lines, "\n"),
			tp.printed,
		)
	}
}

func TestExpressions(t *testing.T) {

	// Arithmethic
	{
		// Number
		checkExpression(t, "1", "1")
		checkExpression(t, "2.5", "2.5")

		// Negative
		checkExpression(t, "-1", "-1")
		checkExpression(t, "-(-3)", "3")

		// Precedence
		checkExpression(t, "1 + 2 * 3", "7")
		checkExpression(t, "(1 + 2) * 3", "9")
		checkExpression(t, "2 * 3 - 4 / 2", "4")

		// Left associativity
		checkExpression(t, "10 - 2 - 3", "5")
		checkExpression(t, "16 / 4 / 2", "2")

		// Divide numbers
		checkExpression(t, "12 / 2", "6")
		checkExpression(t, "1 / 2", "0.5")
		checkExpression(t, "1 / 0", "Infinity")
		checkExpression(t, "-1 / 0", "-Infinity")
	}

	// Strings
	{
		checkExpression(t, `"a" + "b"`, "ab")
		checkExpression(t, `"" + ""`, "")
		checkExpression(t, `"a" < "b"`, "true")
		checkExpression(t, `"b" <= "a"`, "false")
	}

	// Logical
	{
		// 'true' literal
		checkExpression(t, "true", "true")

		// 'false' literal
		checkExpression(t, "false", "false")

		// 'nil' literal
		checkExpression(t, "nil", "nil")

		// not
		checkExpression(t, "!false", "true")
		checkExpression(t, "!true", "false")
		checkExpression(t, "!nil", "true")
		checkExpression(t, `!""`, "false")
		checkExpression(t, "!0", "false")
		checkExpression(t, "!!1", "true")

		// and
		checkExpression(t, "true and true", "true")
		checkExpression(t, "false and true", "false")
		checkExpression(t, "true and false", "false")
		checkExpression(t, "1 and 2", "2")
		checkExpression(t, "nil and undefined", "nil")

		// or
		checkExpression(t, "false or false", "false")
		checkExpression(t, "false or true", "true")
		checkExpression(t, `nil or "x"`, "x")
		checkExpression(t, "true or undefined", "true")
	}

	// Equality
	{
		checkExpression(t, "nil == nil", "true")
		checkExpression(t, "nil == false", "false")
		checkExpression(t, "nil != 0", "true")
		checkExpression(t, `1 == "1"`, "false")
		checkExpression(t, `"a" == "a"`, "true")
		checkExpression(t, "1 != 2", "true")
		checkExpression(t, "true == true", "true")
		checkExpression(t, "0 == -0", "true")
	}

	// Comparison
	{
		checkExpression(t, "1 < 2", "true")
		checkExpression(t, "2 <= 2", "true")
		checkExpression(t, "3 > 4", "false")
		checkExpression(t, "3 >= 3", "true")
		checkExpression(t, "1 < 2 == true", "true")
	}
}

func TestStatements(t *testing.T) {
	// Declaration without initializer
	checkStatements(t, "var a;", "a", "nil")

	// Assignment is an expression
	checkStatements(t, "var a; var b; a = b = 3;", "a", "3")

	// Block scope
	checkOutput(t, "var x = 1; { var x = 2; print x; } print x;", "2", "1")

	// Assignment reaches the enclosing scope
	checkStatements(t, "var a = 1; { a = 2; }", "a", "2")

	// If / else
	checkStatements(t, `var a; if (1 > 2) a = "then"; else a = "else";`, "a", "else")
	checkStatements(t, `var a; if (0) a = "then";`, "a", "then")
	checkStatements(t, `var a = 1; if (nil) a = 2;`, "a", "1")

	// While
	checkStatements(t, "var i = 0; while (i < 10) i = i + 1;", "i", "10")

	// For
	checkStatements(t, "var sum = 0; for (var i = 0; i < 5; i = i + 1) sum = sum + i;", "sum", "10")
	checkStatements(t, "var i = 0; for (; i < 3;) i = i + 1;", "i", "3")

	// For loop variable doesn't leak
	checkErrorMsg(t, "for (var i = 0; i < 1; i = i + 1) {}\nprint i;", "Undefined variable 'i'.", 2)

	// Break leaves the innermost loop only
	checkOutput(t, `
var i = 0;
while (true) {
	if (i == 3) break;
	var j = 0;
	for (;;) {
		j = j + 1;
		if (j > 1) break;
	}
	i = i + 1;
}
print i;
`, "3")

	// Break skips the increment
	checkStatements(t, "var last; for (var i = 0; i < 10; i = i + 1) { last = i; if (i == 4) break; }", "last", "4")
}

func TestFunctions(t *testing.T) {
	checkStatements(t, "fun f() {}", "f", "<fn f>")
	checkStatements(t, "fun f() {} var r = f();", "r", "nil")
	checkStatements(t, "fun add(a, b) { return a + b; } var r = add(1, 2);", "r", "3")

	// Return from nested blocks and loops
	checkStatements(t, `
fun find(n) {
	var i = 0;
	while (true) {
		{
			if (i == n) return i * 2;
		}
		i = i + 1;
	}
}
var r = find(4);`, "r", "8")

	// Recursion
	checkStatements(t, `
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
var r = fib(15);`, "r", "610")

	// Closures keep their declaring scope after the call returns
	checkOutput(t, `
fun makeCounter() {
	var i = 0;
	fun count() {
		i = i + 1;
		return i;
	}
	return count;
}
var counter = makeCounter();
counter();
print counter();
var other = makeCounter();
print other();
`, "2", "1")

	// Lexical, not dynamic, scope
	checkOutput(t, `
var a = "global";
fun show() { print a; }
fun caller() {
	var a = "local";
	show();
}
caller();
`, "global")

	// Chained calls
	checkStatements(t, `
fun adder(a) {
	fun add(b) { return a + b; }
	return add;
}
var r = adder(1)(2);`, "r", "3")

	// Parameters shadow globals without changing them
	checkOutput(t, "var a = 1; fun f(a) { a = 5; print a; } f(2); print a;", "5", "1")

	// Scope is restored after a return unwinds a block
	checkOutput(t, `
var a = "outer";
fun f() {
	{
		var a = "inner";
		return a;
	}
}
print f();
print a;
`, "inner", "outer")
}

func TestClasses(t *testing.T) {
	checkStatements(t, "class A {}", "A", "A")
	checkStatements(t, "class A {} var a = A();", "a", "A instance")

	checkStatements(t, `
class Counter {
	init(start) {
		this.n = start;
	}
	inc() {
		this.n = this.n + 1;
		return this.n;
	}
}
var c = Counter(5);
c.inc();
var r = c.inc();`, "r", "7")

	// Fields shadow methods
	checkStatements(t, `
class A {
	m() { return "method"; }
}
var a = A();
a.m = "field";`, "a.m", "field")

	// Bound methods remember their instance
	checkStatements(t, `
class Person {
	init(name) { this.name = name; }
	greet() { return "hi " + this.name; }
}
var greet = Person("bob").greet;`, "greet()", "hi bob")

	// init always yields the instance
	checkStatements(t, `
class A {
	init() { return; }
}
var a = A();`, "a.init()", "A instance")
}

func TestRuntimeErrors(t *testing.T) {
	checkErrorMsg(t, `"a" + 1;`, "Operands must be two numbers or two strings.", 1)
	checkErrorMsg(t, `1 < "a";`, "Operands must be two numbers or two strings.", 1)
	checkErrorMsg(t, `1 - "a";`, "Operands must be numbers.", 1)
	checkErrorMsg(t, `"a" * "b";`, "Operands must be numbers.", 1)
	checkErrorMsg(t, `nil / 1;`, "Operands must be numbers.", 1)
	checkErrorMsg(t, `-"a";`, "Operand must be a number.", 1)

	// Unbound names
	checkErrorMsg(t, "x = 1;", "Undefined variable 'x'.", 1)
	checkErrorMsg(t, "\n\nprint y;", "Undefined variable 'y'.", 3)
	checkErrorMsg(t, "{ var a = 1; }\na = 2;", "Undefined variable 'a'.", 2)

	// Calls
	checkErrorMsg(t, `"f"();`, "Can only call functions and classes.", 1)
	checkErrorMsg(t, "fun f(a, b) {}\nf(1);", "Wrong number of arguments: expected 2 but got 1.", 2)
	checkErrorMsg(t, "fun f(a, b) {}\nf(1, 2, 3);", "Wrong number of arguments: expected 2 but got 3.", 2)
	checkErrorMsg(t, "class A {}\nA(1);", "Wrong number of arguments: expected 0 but got 1.", 2)
	checkErrorMsg(t, "fun f() { f(); }\nf();", "Stack overflow.", 1)

	// Properties
	checkErrorMsg(t, "var x = 1;\nprint x.y;", "Only instances have properties.", 2)
	checkErrorMsg(t, "var x = 1;\nx.y = 2;", "Only instances have fields.", 2)
	checkErrorMsg(t, "class A {}\nprint A().b;", "Undefined property 'b'.", 2)

	// Output committed before the fault is kept, nothing after it runs
	checkOutput(t, "print 1;\nprint x;\nprint 2;", "1", "Undefined variable 'x'.", "[line 2]")
}

func TestInterpreterKeepsGlobals(t *testing.T) {
	tp := &testPrinter{}
	interp := NewInterpreter(tp, DefaultConfig(), nil)

	if err := interp.Eval("var a = 1;"); err != nil {
		t.Fatal(err)
	}
	if err := interp.Eval("fun inc() { a = a + 1; }"); err != nil {
		t.Fatal(err)
	}
	if err := interp.Eval("inc();"); err != nil {
		t.Fatal(err)
	}
	tp.Reset()

	// A lone expression is echoed
	if err := interp.Eval("a + 1"); err == nil {
		t.Error("expected a syntax error without ';'")
	}
	tp.Reset()
	if err := interp.Eval("a + 1;"); err != nil {
		t.Fatal(err)
	}
	if !tp.Equals("3") {
		t.Errorf("echo should print 3 instead of %q", tp.printed)
	}

	// A fault in one input leaves the session usable
	if err := interp.Eval("undefined;"); err != ErrRuntime {
		t.Errorf("expected ErrRuntime, got %v", err)
	}
	tp.Reset()
	if err := interp.Eval("print a;"); err != nil {
		t.Fatal(err)
	}
	if !tp.Equals("2") {
		t.Errorf("a should be 2 instead of %q", tp.printed)
	}
}

func TestMaxCallDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCallDepth = 3
	source := `
fun depth(n) {
	if (n == 0) return 0;
	return depth(n - 1);
}
print depth(2);
print depth(3);
`
	tp := &testPrinter{}
	err := NewInterpreter(tp, cfg, nil).Run("", source)
	if err != ErrRuntime {
		t.Errorf("expected ErrRuntime, got %v", err)
	}
	if !tp.Equals("0\nStack overflow.\n[line 4]") {
		t.Errorf("unexpected output %q", tp.printed)
	}
}
