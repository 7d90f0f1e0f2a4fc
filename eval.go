package calc

import "errors"

// Vars is a variable environment. Each variable keeps the type it was
// created with; values assigned to it later are promoted to that type.
type Vars map[string]Value

// Macros maps macro names to the expressions they stand for. A macro is
// evaluated anew, in the current environment, each time it is referenced.
type Macros map[string]*Expr

// Define sets each of names to a copy of e.
func (m Macros) Define(e *Expr, names ...string) {
	for _, name := range names {
		m[name] = e.Clone()
	}
}

// Funcs maps function names to functions.
type Funcs map[string]Func

// Binding is a live reference to a variable.
type Binding struct {
	vars Vars
	name string
}

// Name returns the name of the bound variable.
func (b Binding) Name() string {
	return b.name
}

// Load returns the current value of the variable.
func (b Binding) Load() Value {
	return b.vars[b.name]
}

// Store sets the variable to v promoted to the variable's type and returns
// the stored value.
func (b Binding) Store(v Value) Value {
	if old, ok := b.vars[b.name]; ok {
		v, _ = v.Promote(old.typ)
	}
	b.vars[b.name] = v
	return v
}

// Result is the result of evaluating an expression. It is either a value or
// a binding to the variable the expression named.
type Result struct {
	val Value
	ref *Binding
}

// Value returns the result's value, loading it if the result is a binding.
func (r Result) Value() Value {
	if r.ref != nil {
		return r.ref.Load()
	}
	return r.val
}

// Binding returns the variable binding, if the result is one.
func (r Result) Binding() (Binding, bool) {
	if r.ref == nil {
		return Binding{}, false
	}
	return *r.ref, true
}

func (r Result) String() string {
	return r.Value().String()
}

// evaluator holds the state of one evaluation.
type evaluator struct {
	vars   Vars
	macros Macros
	funcs  Funcs
	// active is the stack of macros being evaluated.
	active []string
}

// Evaluate evaluates an expression. Assignments in the expression update
// vars; with nil vars, an assignment is an *InternalError. macros and funcs
// may be nil.
//
// Every error from Evaluate is an *Error carrying the span of the smallest
// subexpression that failed. Assignments completed before a failure remain in
// effect.
func Evaluate(e *Expr, vars Vars, macros Macros, funcs Funcs) (Result, error) {
	ev := evaluator{vars: vars, macros: macros, funcs: funcs}
	return ev.eval(e.n)
}

func (ev *evaluator) eval(n *node) (Result, error) {
	switch n.kind {
	case nodeValue:
		return Result{val: n.val}, nil
	case nodeName:
		if _, ok := ev.vars[n.name]; !ok {
			return Result{}, at(n.span, &NameError{Kind: VariableName, Name: n.name})
		}
		return Result{ref: &Binding{vars: ev.vars, name: n.name}}, nil
	case nodeMacro:
		return ev.macro(n)
	case nodeUnary:
		v, err := ev.value(n.left)
		if err != nil {
			return Result{}, err
		}
		r, over, err := ApplyUnary(n.op, v)
		if err != nil {
			return Result{}, at(n.span, err)
		}
		if over {
			return Result{}, at(n.span, &ResultError{Op: n.op, Operands: []Value{v}, Result: r})
		}
		return Result{val: r}, nil
	case nodeBinary:
		switch {
		case n.op.Assign():
			return ev.assign(n)
		case n.op == OpAnd, n.op == OpOr:
			return ev.logical(n)
		}
		l, err := ev.value(n.left)
		if err != nil {
			return Result{}, err
		}
		r, err := ev.value(n.right)
		if err != nil {
			return Result{}, err
		}
		return ev.apply(n, n.op, l, r)
	case nodeCond:
		c, err := ev.value(n.left)
		if err != nil {
			return Result{}, err
		}
		if c.Truth() {
			return ev.eval(n.right)
		}
		return ev.eval(n.alt)
	case nodeComma:
		var r Result
		for _, e := range n.list {
			var err error
			if r, err = ev.eval(e); err != nil {
				return Result{}, err
			}
		}
		return r, nil
	case nodeCall:
		return ev.call(n)
	default:
		return Result{}, at(n.span, &InternalError{Msg: "invalid AST node " + n.kind.String()})
	}
}

// value evaluates n and loads its value.
func (ev *evaluator) value(n *node) (Value, error) {
	r, err := ev.eval(n)
	if err != nil {
		return Value{}, err
	}
	return r.Value(), nil
}

// apply applies a binary operator for the node n.
func (ev *evaluator) apply(n *node, op Op, l, r Value) (Result, error) {
	z, over, err := ApplyBinary(op, l, r)
	if err != nil {
		return Result{}, at(n.span, err)
	}
	if over {
		return Result{}, at(n.span, &ResultError{Op: op, Operands: []Value{l, r}, Result: z})
	}
	return Result{val: z}, nil
}

// logical evaluates && and ||, evaluating the right operand only when the
// left does not decide the result.
func (ev *evaluator) logical(n *node) (Result, error) {
	l, err := ev.value(n.left)
	if err != nil {
		return Result{}, err
	}
	if l.Truth() == (n.op == OpOr) {
		return Result{val: Bool(l.Truth())}, nil
	}
	r, err := ev.value(n.right)
	if err != nil {
		return Result{}, err
	}
	return Result{val: Bool(r.Truth())}, nil
}

// assign evaluates = and the compound assignments. The target must be a
// variable name. Plain = creates the variable with the type of its first
// value; compound assignments require it to exist already.
func (ev *evaluator) assign(n *node) (Result, error) {
	if n.left.kind != nodeName {
		return Result{}, at(n.span, &AssignError{Op: n.op})
	}
	if ev.vars == nil {
		return Result{}, at(n.span, &InternalError{Msg: "assignment to " + n.left.name + " without a variable environment"})
	}
	b := &Binding{vars: ev.vars, name: n.left.name}
	if n.op == OpAssign {
		v, err := ev.value(n.right)
		if err != nil {
			return Result{}, err
		}
		if _, ok := ev.vars[b.name]; !ok {
			ev.vars[b.name] = zero(v.typ)
		}
		b.Store(v)
		return Result{ref: b}, nil
	}
	if _, ok := ev.vars[b.name]; !ok {
		return Result{}, at(n.left.span, &NameError{Kind: VariableName, Name: b.name})
	}
	v, err := ev.value(n.right)
	if err != nil {
		return Result{}, err
	}
	old := b.Load()
	v, _ = v.Promote(old.typ)
	var z Value
	switch op := n.op.Binary(); op {
	case OpAnd:
		z = Bool(old.Truth() && v.Truth())
	case OpOr:
		z = Bool(old.Truth() || v.Truth())
	default:
		var over bool
		z, over, err = ApplyBinary(op, old, v)
		if err != nil {
			return Result{}, at(n.span, err)
		}
		if over {
			return Result{}, at(n.span, &ResultError{Op: n.op, Operands: []Value{old, v}, Result: z})
		}
	}
	b.Store(z)
	return Result{ref: b}, nil
}

// macro evaluates a macro reference. Errors inside the macro are reported at
// the reference, since the macro's own spans refer to different source.
func (ev *evaluator) macro(n *node) (Result, error) {
	e, ok := ev.macros[n.name]
	if !ok {
		return Result{}, at(n.span, &NameError{Kind: MacroName, Name: n.name})
	}
	for _, m := range ev.active {
		if m == n.name {
			return Result{}, at(n.span, &RecursionError{Macro: n.name})
		}
	}
	ev.active = append(ev.active, n.name)
	r, err := ev.eval(e.n)
	ev.active = ev.active[:len(ev.active)-1]
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return Result{}, at(n.span, err)
	}
	return r, nil
}

// call evaluates a function call. Arguments are evaluated left to right
// before the call.
func (ev *evaluator) call(n *node) (Result, error) {
	if n.left.kind != nodeName {
		return Result{}, at(n.left.span, &NameError{Kind: FunctionName, Name: n.left.String()})
	}
	f := ev.funcs[n.left.name]
	if f == nil {
		return Result{}, at(n.left.span, &NameError{Kind: FunctionName, Name: n.left.name})
	}
	args := make([]Value, len(n.list))
	for i, e := range n.list {
		v, err := ev.value(e)
		if err != nil {
			return Result{}, err
		}
		args[i] = v
	}
	v, err := f.Call(args)
	if err != nil {
		return Result{}, at(n.span, err)
	}
	return Result{val: v}, nil
}

// Context is a context for evaluating expressions: variables, macros, and
// functions that persist across evaluations. The zero Context has no
// functions. It is not safe to use a Context concurrently.
type Context struct {
	vars   Vars
	macros Macros
	funcs  Funcs
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt map[string]Value
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	macroopt struct {
		name string
		e    *Expr
	}
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (funcopt) ctxOption()  {}
func (funcsopt) ctxOption() {}
func (macroopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val Value) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]Value) ContextOption {
	return varsopt(vars)
}

// SetFunc sets a function in the context. A nil fn removes the function.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// SetFuncs sets any number of functions in the context. Nil entries remove
// functions.
func SetFuncs(fns map[string]Func) ContextOption {
	return funcsopt(fns)
}

// DefineMacro defines a macro in the context.
func DefineMacro(name string, e *Expr) ContextOption {
	return macroopt{name, e}
}

// NewContext creates a new evaluation context with the default functions.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{funcs: DefaultFuncs()}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns its value. Assignments update the
// context's variables, even if evaluation later fails.
func (ctx *Context) Eval(e *Expr) (Value, error) {
	ctx.init()
	r, err := Evaluate(e, ctx.vars, ctx.macros, ctx.funcs)
	if err != nil {
		return Value{}, err
	}
	return r.Value(), nil
}

// Exec parses and evaluates src in the context.
func (ctx *Context) Exec(src string) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return ctx.Eval(e)
}

// Set sets the value of a variable, replacing its type. Returns ctx for
// chaining.
func (ctx *Context) Set(name string, value Value) *Context {
	ctx.init()
	ctx.vars[name] = value
	return ctx
}

// Lookup returns the value of a variable.
func (ctx *Context) Lookup(name string) (Value, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// Delete removes a variable. It reports whether the variable existed.
func (ctx *Context) Delete(name string) bool {
	_, ok := ctx.vars[name]
	delete(ctx.vars, name)
	return ok
}

// ClearVars removes all variables.
func (ctx *Context) ClearVars() {
	ctx.vars = make(Vars)
}

// VarNames returns the sorted names of the variables in the context.
func (ctx *Context) VarNames() []string {
	return keys(ctx.vars)
}

// Define sets a macro to a copy of e.
func (ctx *Context) Define(name string, e *Expr) *Context {
	ctx.init()
	ctx.macros.Define(e, name)
	return ctx
}

// Macro returns the expression a macro stands for.
func (ctx *Context) Macro(name string) (*Expr, bool) {
	e, ok := ctx.macros[name]
	return e, ok
}

// MacroNames returns the sorted names of the macros in the context.
func (ctx *Context) MacroNames() []string {
	return keys(ctx.macros)
}

// Func returns a function in the context.
func (ctx *Context) Func(name string) Func {
	return ctx.funcs[name]
}

// Clone creates a copy of a context and applies options to it. Options apply
// in order. Macros are shared with the original until redefined.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		vars:   make(Vars, len(ctx.vars)),
		macros: make(Macros, len(ctx.macros)),
		funcs:  make(Funcs, len(ctx.funcs)),
	}
	for k, v := range ctx.vars {
		n.vars[k] = v
	}
	for k, v := range ctx.macros {
		n.macros[k] = v
	}
	for k, v := range ctx.funcs {
		n.funcs[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.vars[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.vars[k] = v
			}
		case funcopt:
			n.setFunc(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				n.setFunc(k, v)
			}
		case macroopt:
			n.macros.Define(opt.e, opt.name)
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// init allocates the maps of a zero Context.
func (ctx *Context) init() {
	if ctx.vars == nil {
		ctx.vars = make(Vars)
	}
	if ctx.macros == nil {
		ctx.macros = make(Macros)
	}
}

func (ctx *Context) setFunc(name string, fn Func) {
	if fn == nil {
		delete(ctx.funcs, name)
		return
	}
	ctx.funcs[name] = fn
}

func keys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// EvalString is a shortcut to parse and evaluate a string expression in a new
// context with the default functions.
func EvalString(src string, opts ...ContextOption) (Value, error) {
	return NewContext(opts...).Exec(src)
}
