package calc

import (
	"math"
	"strconv"
	"strings"
)

// Type is the type of a Value. Types are ranked BoolType < IntType < FloatType;
// promotion between values always targets the highest rank involved.
type Type int8

const (
	BoolType Type = iota
	IntType
	FloatType
)

func (t Type) String() string {
	switch t {
	case BoolType:
		return "boolean"
	case IntType:
		return "integer"
	case FloatType:
		return "float"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Value is a boolean, 64-bit signed integer, or 64-bit float. The zero Value
// is the boolean false.
type Value struct {
	typ Type
	i   int64
	f   float64
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	v := Value{typ: BoolType}
	if b {
		v.i = 1
	}
	return v
}

// Int creates an integer value.
func Int(i int64) Value {
	return Value{typ: IntType, i: i}
}

// Float creates a float value.
func Float(f float64) Value {
	return Value{typ: FloatType, f: f}
}

// zero is the zero value of a type.
func zero(t Type) Value {
	return Value{typ: t}
}

// Type returns the type of the value.
func (v Value) Type() Type {
	return v.typ
}

// AsBool returns the value as a bool, if it is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.i != 0, v.typ == BoolType
}

// AsInt returns the value as an int64, if it is an integer.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.typ == IntType
}

// AsFloat returns the value as a float64, if it is a float.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.typ == FloatType
}

// Truth returns the value promoted to a boolean.
func (v Value) Truth() bool {
	if v.typ == FloatType {
		return v.f != 0
	}
	return v.i != 0
}

// Promote converts v to the type t. Booleans become 0 or 1, nonzero numbers
// become true, and floats truncate toward zero when they become integers. The
// second result is false only if t is not a valid type.
func (v Value) Promote(t Type) (Value, bool) {
	if v.typ == t {
		return v, true
	}
	switch t {
	case BoolType:
		return Bool(v.Truth()), true
	case IntType:
		if v.typ == FloatType {
			return Int(ftoi(v.f)), true
		}
		return Int(v.i), true
	case FloatType:
		return Float(float64(v.i)), true
	default:
		return Value{}, false
	}
}

// ftoi truncates a float toward zero, saturating at the limits of int64. NaN
// becomes 0.
func ftoi(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// String formats the value so that it reads back as a literal of the same
// type: floats always contain a decimal point.
func (v Value) String() string {
	switch v.typ {
	case BoolType:
		return strconv.FormatBool(v.i != 0)
	case IntType:
		return strconv.FormatInt(v.i, 10)
	case FloatType:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return strconv.FormatFloat(v.f, 'g', -1, 64)
		}
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return "<invalid value>"
	}
}

// Unify promotes every value to the highest-ranked type among them.
func Unify(vals ...Value) ([]Value, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	t := vals[0].typ
	for _, v := range vals[1:] {
		if v.typ > t {
			t = v.typ
		}
	}
	return UnifyTo(t, vals...)
}

// UnifyTo promotes every value to the type t.
func UnifyTo(t Type, vals ...Value) ([]Value, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	r := make([]Value, len(vals))
	for i, v := range vals {
		p, ok := v.Promote(t)
		if !ok {
			return nil, &UnifyError{Values: append([]Value(nil), vals...)}
		}
		r[i] = p
	}
	return r, nil
}

// types lists the types of vals.
func types(vals ...Value) []Type {
	r := make([]Type, len(vals))
	for i, v := range vals {
		r[i] = v.typ
	}
	return r
}
