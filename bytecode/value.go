package bytecode

import (
	"strconv"
)

type valueKind byte

const (
	kindNil valueKind = iota
	kindBool
	kindNumber
	kindString
	kindFunction
)

// Value is a tagged union over the dynamic types glint values can hold: a
// 64-bit float, a boolean, the nil singleton, an immutable UTF-8 string, and
// a shared reference to a compiled Function. Cross-variant comparisons
// yield false rather than an error; ordering is defined only on numbers.
type Value struct {
	kind    valueKind
	number  float64
	boolean bool
	str     string
	fn      *Function
}

var Nil = Value{kind: kindNil}

func Bool(b bool) Value {
	return Value{kind: kindBool, boolean: b}
}

func Number(f float64) Value {
	return Value{kind: kindNumber, number: f}
}

func String(s string) Value {
	return Value{kind: kindString, str: s}
}

func FunctionValue(fn *Function) Value {
	return Value{kind: kindFunction, fn: fn}
}

func (v Value) IsNil() bool      { return v.kind == kindNil }
func (v Value) IsBool() bool     { return v.kind == kindBool }
func (v Value) IsNumber() bool   { return v.kind == kindNumber }
func (v Value) IsString() bool   { return v.kind == kindString }
func (v Value) IsFunction() bool { return v.kind == kindFunction }

func (v Value) AsBool() bool         { return v.boolean }
func (v Value) AsNumber() float64    { return v.number }
func (v Value) AsString() string     { return v.str }
func (v Value) AsFunction() *Function { return v.fn }

// IsFalsey reports whether v is nil or boolean false; every other value
// (including 0 and "") is truthy.
func (v Value) IsFalsey() bool {
	return v.kind == kindNil || (v.kind == kindBool && !v.boolean)
}

// Equals implements same-variant, componentwise equality. nil == nil is
// true. Cross-variant comparisons are always false, never an error.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case kindNil:
		return true
	case kindBool:
		return v.boolean == other.boolean
	case kindNumber:
		return v.number == other.number
	case kindString:
		return v.str == other.str
	case kindFunction:
		return v.fn == other.fn
	}
	return false
}

// String formats v the way the print sink renders it: numbers in the
// shortest round-tripping decimal form, booleans/nil as lowercase words,
// strings as their raw characters, functions as "Function <name>" or
// "<script>" when unnamed.
func (v Value) String() string {
	switch v.kind {
	case kindNil:
		return "nil"
	case kindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case kindNumber:
		return formatNumber(v.number)
	case kindString:
		return v.str
	case kindFunction:
		if v.fn.Name == "" {
			return "<script>"
		}
		return "Function " + v.fn.Name
	}
	return "<invalid value>"
}

// formatNumber follows the behavior of rusty-lox's default f64 Display:
// integral values never show a trailing ".0"; everything else uses the
// shortest decimal text that round-trips, never switching to exponent
// notation at the magnitudes this language's literals realistically produce.
func formatNumber(f float64) string {
	const maxIntegral = 1e15
	if f == float64(int64(f)) && f > -maxIntegral && f < maxIntegral {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
