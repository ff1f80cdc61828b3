package internal

import (
	"math"
	"strconv"
)

// loxValue is any runtime value: loxNil, loxBool, loxNumber, loxString,
// *loxFunction, *loxClass or *loxInstance.
type loxValue interface {
	String() string
	typeName() string
}

type loxNil struct{}

type loxBool bool

type loxNumber float64

type loxString string

var nilValue = loxNil{}

func (loxNil) String() string   { return "nil" }
func (loxNil) typeName() string { return "nil" }

func (b loxBool) String() string {
	return strconv.FormatBool(bool(b))
}

func (loxBool) typeName() string { return "bool" }

func (n loxNumber) String() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (loxNumber) typeName() string { return "number" }

func (s loxString) String() string {
	return string(s)
}

func (loxString) typeName() string { return "string" }

// Repr returns the source form of the string
func (s loxString) Repr() string {
	return "\"" + string(s) + "\""
}

// truthy: nil and false are falsy, everything else is truthy
func truthy(value loxValue) bool {
	switch v := value.(type) {
	case loxNil:
		return false
	case loxBool:
		return bool(v)
	default:
		return true
	}
}

// equal never fails: values of different kinds are unequal
func equal(a, b loxValue) bool {
	switch x := a.(type) {
	case loxNil:
		_, ok := b.(loxNil)
		return ok
	case loxBool:
		y, ok := b.(loxBool)
		return ok && x == y
	case loxNumber:
		y, ok := b.(loxNumber)
		return ok && x == y
	case loxString:
		y, ok := b.(loxString)
		return ok && x == y
	case *loxFunction, *loxClass, *loxInstance:
		return a == b
	default:
		panic("unknown value type " + a.typeName())
	}
}

// literalValue converts a token literal produced by the lexer
func literalValue(literal interface{}) loxValue {
	switch v := literal.(type) {
	case float64:
		return loxNumber(v)
	case string:
		return loxString(v)
	default:
		return nilValue
	}
}
