package calc

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function that expressions can call.
type Func interface {
	// Call evaluates the function. The arguments are fully evaluated, left
	// to right, before the call. Call must not modify args. Errors should be
	// one of the error types in this package, usually *ArityError,
	// *DomainError, or *OperandError.
	Call(args []Value) (Value, error)
}

// FuncOf adapts an ordinary function to Func. The function checks its own
// arity.
type FuncOf func(args []Value) (Value, error)

func (f FuncOf) Call(args []Value) (Value, error) {
	return f(args)
}

// prec is the precision of bigfloat computations, the same as a float64
// mantissa plus guard bits.
const prec = 64

func defaults() map[string]Func {
	return map[string]Func{
		"to_bool":  Monadic("to_bool", promoter(BoolType)),
		"to_int":   Monadic("to_int", promoter(IntType)),
		"to_float": Monadic("to_float", promoter(FloatType)),
		"any":      Variadic("any", 0, anyOf),
		"all":      Variadic("all", 0, allOf),
		"max":      Variadic("max", 1, extreme(OpGt)),
		"min":      Variadic("min", 1, extreme(OpLt)),
		"clamp":    Fixed("clamp", 3, clamp),
		"abs":      Monadic("abs", abs),

		"exp":  Real("exp", exp, nil),
		"ln":   Real("ln", bigfloat.Log, positive),
		"log":  FuncOf(logb),
		"sqrt": Real("sqrt", (*big.Float).Sqrt, nonnegative),
		"pow":  Fixed("pow", 2, powf),

		// constants
		"pi": Niladic("pi", func() Value { return bigconst(bigfloat.Pi) }),
		"e": Niladic("e", func() Value {
			return bigconst(func(out *big.Float) *big.Float {
				var one big.Float
				one.SetFloat64(1)
				return bigfloat.Exp(out, &one)
			})
		}),
	}
}

// DefaultFuncs returns a new map containing the default functions.
func DefaultFuncs() map[string]Func {
	return defaults()
}

// DisableDefaultFuncs returns a functions map suitable for disabling all
// default functions when passed to SetFuncs.
func DisableDefaultFuncs() map[string]Func {
	m := defaults()
	for k := range m {
		m[k] = nil
	}
	return m
}

type fixed struct {
	name string
	n    int
	f    func(args []Value) (Value, error)
}

func (f fixed) Call(args []Value) (Value, error) {
	if len(args) != f.n {
		return Value{}, &ArityError{Func: f.name, Want: f.n, Got: len(args)}
	}
	return f.f(args)
}

// Fixed wraps a function of exactly n arguments into a Func. Calls with any
// other number of arguments return an *ArityError.
func Fixed(name string, n int, f func(args []Value) (Value, error)) Func {
	return fixed{name, n, f}
}

// Monadic wraps a function of one argument into a Func.
func Monadic(name string, f func(x Value) (Value, error)) Func {
	return fixed{name, 1, func(args []Value) (Value, error) { return f(args[0]) }}
}

// Niladic wraps a function of zero arguments, generally a function which
// computes a constant, into a Func.
func Niladic(name string, f func() Value) Func {
	return fixed{name, 0, func([]Value) (Value, error) { return f(), nil }}
}

type variadic struct {
	name string
	min  int
	f    func(args []Value) (Value, error)
}

func (v variadic) Call(args []Value) (Value, error) {
	if len(args) < v.min {
		return Value{}, &ArityError{Func: v.name, Want: v.min, Got: len(args), AtLeast: true}
	}
	return v.f(args)
}

// Variadic wraps a function of at least min arguments into a Func.
func Variadic(name string, min int, f func(args []Value) (Value, error)) Func {
	return variadic{name, min, f}
}

type realFunc struct {
	name   string
	f      func(out, in *big.Float) *big.Float
	domain func(float64) bool
}

func (r realFunc) Call(args []Value) (v Value, err error) {
	if len(args) != 1 {
		return Value{}, &ArityError{Func: r.name, Want: 1, Got: len(args)}
	}
	x, _ := args[0].Promote(FloatType)
	if r.domain != nil && !r.domain(x.f) {
		return Value{}, &DomainError{X: args[0], Func: r.name}
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, _ := p.(error)
		if !errors.As(e, &big.ErrNaN{}) {
			panic(p)
		}
		v, err = Value{}, &DomainError{X: args[0], Func: r.name}
	}()
	in := new(big.Float).SetPrec(prec).SetFloat64(x.f)
	out, _ := r.f(new(big.Float).SetPrec(prec), in).Float64()
	return realResult(r.name, args, out)
}

// Real wraps a function from reals to reals, computed with big.Float, into a
// Func of one argument. domain reports whether an argument is valid; f may
// also panic with big.ErrNaN for invalid arguments. Arguments are promoted to
// float, and a result that does not fit in a float is an error.
func Real(name string, f func(out, in *big.Float) *big.Float, domain func(float64) bool) Func {
	return realFunc{name, f, domain}
}

// realResult checks the float result of a function.
func realResult(name string, args []Value, f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, &ResultError{Func: name, Operands: append([]Value(nil), args...), Result: Float(f)}
	}
	return Float(f), nil
}

func bigconst(f func(out *big.Float) *big.Float) Value {
	r, _ := f(new(big.Float).SetPrec(prec)).Float64()
	return Float(r)
}

func positive(x float64) bool {
	return x > 0
}

func nonnegative(x float64) bool {
	return x >= 0
}

// exp computes e**in. Outside the range of arguments checked here, the result
// overflows or rounds to zero as a float64, and the series in bigfloat.Exp is
// slow.
func exp(out, in *big.Float) *big.Float {
	switch x, _ := in.Float64(); {
	case x > 710:
		return out.SetInf(false)
	case x < -746:
		return out.SetFloat64(0)
	}
	return bigfloat.Exp(out, in)
}

func promoter(t Type) func(Value) (Value, error) {
	return func(x Value) (Value, error) {
		v, ok := x.Promote(t)
		if !ok {
			return Value{}, &UnifyError{Values: []Value{x}}
		}
		return v, nil
	}
}

func anyOf(args []Value) (Value, error) {
	for _, v := range args {
		if v.Truth() {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func allOf(args []Value) (Value, error) {
	for _, v := range args {
		if !v.Truth() {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

// extreme selects the argument for which op holds against every other, after
// unifying all arguments.
func extreme(op Op) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		vs, err := Unify(args...)
		if err != nil {
			return Value{}, err
		}
		r := vs[0]
		for _, v := range vs[1:] {
			if compare(op, v, r) {
				r = v
			}
		}
		return r, nil
	}
}

// clamp limits its third argument to the range given by the first two.
// Booleans clamp as integers.
func clamp(args []Value) (Value, error) {
	vs, err := Unify(args...)
	if err != nil {
		return Value{}, err
	}
	if vs[0].typ == BoolType {
		vs, _ = UnifyTo(IntType, vs...)
	}
	lo, hi, x := vs[0], vs[1], vs[2]
	if compare(OpGt, lo, hi) {
		return Value{}, &OperandError{Func: "clamp", Operands: append([]Value(nil), args...)}
	}
	switch {
	case compare(OpLt, x, lo):
		return lo, nil
	case compare(OpGt, x, hi):
		return hi, nil
	default:
		return x, nil
	}
}

func abs(x Value) (Value, error) {
	switch x.typ {
	case IntType:
		if x.i == math.MinInt64 {
			return Value{}, &ResultError{Func: "abs", Operands: []Value{x}, Result: x}
		}
		if x.i < 0 {
			return Int(-x.i), nil
		}
		return x, nil
	case FloatType:
		return Float(math.Abs(x.f)), nil
	default:
		v, _ := x.Promote(IntType)
		return v, nil
	}
}

// logb computes the logarithm of its first argument to the base given by its
// second, or 10 if there is no second argument.
func logb(args []Value) (Value, error) {
	switch len(args) {
	case 1:
		args = []Value{args[0], Int(10)}
	case 2:
	case 0:
		return Value{}, &ArityError{Func: "log", Want: 1, Got: 0, AtLeast: true}
	default:
		return Value{}, &ArityError{Func: "log", Want: 2, Got: len(args)}
	}
	x, _ := args[0].Promote(FloatType)
	b, _ := args[1].Promote(FloatType)
	if !(x.f > 0) {
		return Value{}, &DomainError{X: args[0], Arg: 1, Func: "log"}
	}
	if !(b.f > 0) || b.f == 1 {
		return Value{}, &DomainError{X: args[1], Arg: 2, Func: "log"}
	}
	out := bigfloat.Log(new(big.Float).SetPrec(prec), new(big.Float).SetPrec(prec).SetFloat64(x.f))
	base := bigfloat.Log(new(big.Float).SetPrec(prec), new(big.Float).SetPrec(prec).SetFloat64(b.f))
	r, _ := out.Quo(out, base).Float64()
	return realResult("log", args, r)
}

// powf raises its first argument to the power of its second as floats.
// Negative bases require integer exponents.
func powf(args []Value) (Value, error) {
	x, _ := args[0].Promote(FloatType)
	y, _ := args[1].Promote(FloatType)
	if x.f <= 0 {
		if x.f < 0 && y.f != math.Trunc(y.f) {
			return Value{}, &DomainError{X: args[0], Arg: 1, Func: "pow"}
		}
		return realResult("pow", args, math.Pow(x.f, y.f))
	}
	if l := y.f * math.Log(x.f); l > 1000 || l < -1000 {
		// Overflows or rounds to zero.
		return realResult("pow", args, math.Pow(x.f, y.f))
	}
	out := new(big.Float).SetPrec(prec)
	bigfloat.Pow(out, new(big.Float).SetPrec(prec).SetFloat64(x.f), new(big.Float).SetPrec(prec).SetFloat64(y.f))
	r, _ := out.Float64()
	return realResult("pow", args, r)
}
