// Package value implements Ember's runtime value representation: a tagged
// union of Null, Bool, Number and String, plus the arithmetic, comparison
// and truthiness rules the VM applies to them.
package value

import (
	"fmt"
	"strconv"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
)

// Value is Ember's dynamically-typed runtime value. The zero Value is
// Null, which is also what a popped stack slot is reset to so that owned
// payloads (the string variant) are released promptly rather than held
// alive by a stale stack slot.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

// Null is the singular null value.
var Null = Value{kind: KindNull}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a 64-bit float.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps an owned string.
func String(s string) Value { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }

// AsBool returns the boolean payload. Callers must check IsBool first.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the float payload. Callers must check IsNumber first.
func (v Value) AsNumber() float64 { return v.n }

// AsString returns the string payload. Callers must check IsString first.
func (v Value) AsString() string { return v.s }

// IsFalsey reports whether v is one of the two falsey values: Null and
// Bool(false). Every other value, including Number(0) and the empty
// string, is truthy.
func (v Value) IsFalsey() bool {
	return v.kind == KindNull || (v.kind == KindBool && !v.b)
}

// Equal implements EQUAL's total, never-erroring equality: values of
// different kinds are never equal, values of the same kind compare by
// payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	default:
		return false
	}
}

// errIncompatible is returned by the arithmetic/comparison helpers below
// when operand kinds don't support the operation. The VM translates it
// into a RuntimeError carrying the current line.
var errIncompatible = fmt.Errorf("values have incompatible types")

// Add implements ADD: Number+Number, or String+String by concatenation
// (left operand's contents followed by the right operand's).
func Add(a, b Value) (Value, error) {
	if a.kind == KindNumber && b.kind == KindNumber {
		return Number(a.n + b.n), nil
	}
	if a.kind == KindString && b.kind == KindString {
		return String(a.s + b.s), nil
	}
	return Null, errIncompatible
}

func Subtract(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Null, errIncompatible
	}
	return Number(a.n - b.n), nil
}

func Multiply(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Null, errIncompatible
	}
	return Number(a.n * b.n), nil
}

func Divide(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Null, errIncompatible
	}
	// IEEE-754 division: a/0 yields +/-Inf or NaN, never an error.
	return Number(a.n / b.n), nil
}

// Negate implements NEGATE: numeric unary minus.
func Negate(v Value) (Value, error) {
	if v.kind != KindNumber {
		return Null, errIncompatible
	}
	return Number(-v.n), nil
}

// Greater implements GREATER: numeric strict greater-than.
func Greater(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Null, errIncompatible
	}
	return Bool(a.n > b.n), nil
}

// Less implements LESS: numeric strict less-than.
func Less(a, b Value) (Value, error) {
	if a.kind != KindNumber || b.kind != KindNumber {
		return Null, errIncompatible
	}
	return Bool(a.n < b.n), nil
}

// String renders v using the target printer's conventions: Go's default
// float formatting for numbers, true/false for bools, null for Null, and
// the raw contents (unquoted) for strings.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return "<invalid value>"
	}
}
