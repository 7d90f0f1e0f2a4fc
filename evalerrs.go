package calc

import (
	"strconv"
	"strings"
)

// Error is an error from evaluating an expression, with the span of the
// subexpression that produced it. Err is one of the error types in this
// package, or an error returned by a Func.
type Error struct {
	Span Span
	Err  error
}

func (err *Error) Error() string {
	return errpos(err.Span.Start, err.Err.Error())
}

func (err *Error) Unwrap() error {
	return err.Err
}

func (err *Error) Pos() int {
	return err.Span.Start
}

// at attaches a span to an evaluation error. If err already has a span, it is
// returned unchanged.
func at(s Span, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Span: s, Err: err}
}

// NameKind is the kind of namespace a name is looked up in.
type NameKind int8

const (
	VariableName NameKind = iota
	MacroName
	FunctionName
)

func (k NameKind) String() string {
	switch k {
	case VariableName:
		return "variable"
	case MacroName:
		return "macro"
	case FunctionName:
		return "function"
	default:
		return "NameKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// NameError is an error from a lookup for a variable, macro, or function that
// is not defined.
type NameError struct {
	Kind NameKind
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined " + err.Kind.String() + ": " + strconv.Quote(err.Name)
}

// OpError is an error indicating an operator applied to operand types it
// does not support, e.g. bitwise operators on floats.
type OpError struct {
	Op    Op
	Types []Type
}

func (err *OpError) Error() string {
	return "operator " + err.Op.String() + " not supported for " + typelist(err.Types)
}

// TypeError is an error indicating an operator applied to a different number
// or types of operands than it takes.
type TypeError struct {
	Op Op
	// Arity is the number of operands the operator was applied to.
	Arity    int
	Found    []Type
	Expected []Type
}

func (err *TypeError) Error() string {
	msg := "operator " + err.Op.String() + " applied to " + strconv.Itoa(err.Arity) + " operands (" + typelist(err.Found) + ")"
	if err.Expected != nil {
		msg += ", want " + typelist(err.Expected)
	}
	return msg
}

// DivideByZeroError is an error indicating division or remainder by zero.
type DivideByZeroError struct {
	Left, Right Value
}

func (err *DivideByZeroError) Error() string {
	return "division by zero: " + err.Left.String() + " / " + err.Right.String()
}

// UnifyError is an error indicating a set of values that could not be
// promoted to a common type.
type UnifyError struct {
	Values []Value
}

func (err *UnifyError) Error() string {
	return "cannot unify " + valuelist(err.Values)
}

// OperandError is an error indicating operand values that an operator or
// function cannot use, e.g. a negative integer exponent.
type OperandError struct {
	Op Op
	// Func is the function name when the operands were function arguments.
	Func     string
	Operands []Value
}

func (err *OperandError) Error() string {
	return "invalid operands to " + opname(err.Op, err.Func) + ": " + valuelist(err.Operands)
}

// ResultError is an error indicating an operation whose result cannot be
// represented: integer overflow, or a float that is infinite or NaN.
type ResultError struct {
	Op Op
	// Func is the function name when the result is from a function call.
	Func     string
	Operands []Value
	Result   Value
}

func (err *ResultError) Error() string {
	return "invalid result " + err.Result.String() + " from " + opname(err.Op, err.Func) + " on " + valuelist(err.Operands)
}

// AssignError is an error indicating an assignment to something that is not
// a variable name.
type AssignError struct {
	Op Op
}

func (err *AssignError) Error() string {
	return "cannot assign with " + err.Op.String() + " to non-variable"
}

// ArityError is an error indicating a function called with the wrong number
// of arguments.
type ArityError struct {
	Func string
	// Want is the number of arguments the function takes, or the minimum if
	// AtLeast is set.
	Want    int
	Got     int
	AtLeast bool
}

func (err *ArityError) Error() string {
	want := strconv.Itoa(err.Want)
	if err.AtLeast {
		want = "at least " + want
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Got) + " arguments, want " + want
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// InternalError indicates a bug in this package rather than a problem with
// the input.
type InternalError struct {
	Msg string
}

func (err *InternalError) Error() string {
	return "internal error: " + err.Msg
}

func opname(op Op, fn string) string {
	if fn != "" {
		return fn
	}
	return op.String()
}

func typelist(ts []Type) string {
	s := make([]string, len(ts))
	for i, t := range ts {
		s[i] = t.String()
	}
	return strings.Join(s, " and ")
}

func valuelist(vs []Value) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = v.String()
	}
	return strings.Join(s, ", ")
}

// RecursionError is an error indicating a macro that refers to itself,
// directly or through other macros.
type RecursionError struct {
	Macro string
}

func (err *RecursionError) Error() string {
	return "macro {" + err.Macro + "} refers to itself"
}
