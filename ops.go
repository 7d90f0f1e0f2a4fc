package calc

import "math"

// epsilon is the tolerance of float equality.
const epsilon = 2.220446049250313e-16

// ApplyUnary applies a prefix operator. If the result cannot be represented,
// e.g. negating the minimum integer, then overflowed is true; the value is
// then the wrapped or non-finite result.
func ApplyUnary(op Op, v Value) (r Value, overflowed bool, err error) {
	switch op {
	case OpNot:
		return Bool(!v.Truth()), false, nil
	case OpNeg:
		switch v.typ {
		case IntType:
			return Int(-v.i), v.i == math.MinInt64, nil
		case FloatType:
			return Float(-v.f), false, nil
		}
		return Value{}, false, &OpError{Op: op, Types: types(v)}
	case OpBitNot:
		switch v.typ {
		case BoolType:
			return Bool(v.i == 0), false, nil
		case IntType:
			return Int(^v.i), false, nil
		}
		return Value{}, false, &OpError{Op: op, Types: types(v)}
	default:
		return Value{}, false, &TypeError{Op: op, Arity: 1, Found: types(v)}
	}
}

// ApplyBinary applies an infix operator. Both operands are promoted to the
// higher-ranked of their types first, except for && and ||, which use the
// truth of each. If the result cannot be represented, then overflowed is
// true.
//
// ApplyBinary evaluates && and || with both operands already known; callers
// wanting short-circuit evaluation must check the left operand themselves.
func ApplyBinary(op Op, l, r Value) (Value, bool, error) {
	switch op {
	case OpAnd:
		return Bool(l.Truth() && r.Truth()), false, nil
	case OpOr:
		return Bool(l.Truth() || r.Truth()), false, nil
	}
	vs, err := Unify(l, r)
	if err != nil {
		return Value{}, false, err
	}
	a, b := vs[0], vs[1]
	switch op {
	case OpAdd, OpSub, OpMul:
		return arith(op, l, r, a, b)
	case OpDiv:
		return div(l, r, a, b)
	case OpMod:
		return mod(l, r, a, b)
	case OpPow:
		return pow(l, r, a, b)
	case OpBitAnd, OpBitOr, OpBitXor:
		return bitwise(op, l, r, a, b)
	case OpEq:
		return Bool(equal(a, b)), false, nil
	case OpNe:
		return Bool(!equal(a, b)), false, nil
	case OpLt, OpGt, OpLe, OpGe:
		return Bool(compare(op, a, b)), false, nil
	default:
		return Value{}, false, &TypeError{Op: op, Arity: 2, Found: types(l, r)}
	}
}

// finite flags a float result that is infinite or NaN.
func finite(f float64) (Value, bool, error) {
	return Float(f), math.IsInf(f, 0) || math.IsNaN(f), nil
}

func arith(op Op, l, r, a, b Value) (Value, bool, error) {
	switch a.typ {
	case IntType:
		var z int64
		var over bool
		switch op {
		case OpAdd:
			z, over = add(a.i, b.i)
		case OpSub:
			z, over = sub(a.i, b.i)
		case OpMul:
			z, over = mul(a.i, b.i)
		}
		return Int(z), over, nil
	case FloatType:
		switch op {
		case OpAdd:
			return finite(a.f + b.f)
		case OpSub:
			return finite(a.f - b.f)
		case OpMul:
			return finite(a.f * b.f)
		}
	}
	return Value{}, false, &OpError{Op: op, Types: types(l, r)}
}

func div(l, r, a, b Value) (Value, bool, error) {
	switch a.typ {
	case IntType:
		if b.i == 0 {
			return Value{}, false, &DivideByZeroError{Left: l, Right: r}
		}
		return Int(a.i / b.i), a.i == math.MinInt64 && b.i == -1, nil
	case FloatType:
		if b.f == 0 {
			return Value{}, false, &DivideByZeroError{Left: l, Right: r}
		}
		return finite(a.f / b.f)
	}
	return Value{}, false, &OpError{Op: OpDiv, Types: types(l, r)}
}

func mod(l, r, a, b Value) (Value, bool, error) {
	switch a.typ {
	case IntType:
		if b.i == 0 {
			return Value{}, false, &DivideByZeroError{Left: l, Right: r}
		}
		return Int(a.i % b.i), a.i == math.MinInt64 && b.i == -1, nil
	case FloatType:
		return finite(math.Mod(a.f, b.f))
	}
	return Value{}, false, &OpError{Op: OpMod, Types: types(l, r)}
}

func pow(l, r, a, b Value) (Value, bool, error) {
	switch a.typ {
	case BoolType, IntType:
		// Booleans raise as 0 and 1.
		if b.i < 0 {
			return Value{}, false, &OperandError{Op: OpPow, Operands: []Value{l, r}}
		}
		z, over := ipow(a.i, b.i)
		return Int(z), over, nil
	default:
		return finite(math.Pow(a.f, b.f))
	}
}

func bitwise(op Op, l, r, a, b Value) (Value, bool, error) {
	if a.typ == FloatType {
		return Value{}, false, &OpError{Op: op, Types: types(l, r)}
	}
	// Booleans are 0 and 1, and the result is an integer in either case.
	var z int64
	switch op {
	case OpBitAnd:
		z = a.i & b.i
	case OpBitOr:
		z = a.i | b.i
	case OpBitXor:
		z = a.i ^ b.i
	}
	return Int(z), false, nil
}

// equal compares unified values. Floats are equal when they differ by less
// than epsilon.
func equal(a, b Value) bool {
	if a.typ == FloatType {
		return a.f == b.f || math.Abs(a.f-b.f) < epsilon
	}
	return a.i == b.i
}

// compare applies a relational operator to unified values. false orders
// before true.
func compare(op Op, a, b Value) bool {
	if a.typ == FloatType {
		switch op {
		case OpLt:
			return a.f < b.f
		case OpGt:
			return a.f > b.f
		case OpLe:
			return a.f <= b.f
		default:
			return a.f >= b.f
		}
	}
	switch op {
	case OpLt:
		return a.i < b.i
	case OpGt:
		return a.i > b.i
	case OpLe:
		return a.i <= b.i
	default:
		return a.i >= b.i
	}
}

func add(a, b int64) (int64, bool) {
	z := a + b
	return z, (a^z)&(b^z) < 0
}

func sub(a, b int64) (int64, bool) {
	z := a - b
	return z, (a^b)&(a^z) < 0
}

func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	z := a * b
	if a == -1 && b == math.MinInt64 || b == -1 && a == math.MinInt64 {
		return z, true
	}
	return z, z/b != a
}

// ipow raises x to the non-negative power n by repeated squaring.
func ipow(x, n int64) (int64, bool) {
	z := int64(1)
	over := false
	for n > 0 {
		var o bool
		if n&1 != 0 {
			z, o = mul(z, x)
			over = over || o
		}
		n >>= 1
		if n > 0 {
			x, o = mul(x, x)
			over = over || o
		}
	}
	return z, over
}
