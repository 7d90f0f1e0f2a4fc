package calc

import (
	"io"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind
	span Span

	op   Op
	val  Value
	name string

	left  *node
	right *node
	alt   *node
	list  []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeValue // literal val
	nodeName  // variable or function name
	nodeMacro // macro name

	nodeUnary  // op applied to left
	nodeBinary // op applied to left and right
	nodeCond   // left ? right : alt
	nodeComma  // evaluate each of list, result is the last
	nodeCall   // call left with arguments list
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeValue:
		return "Value"
	case nodeName:
		return "Identifier"
	case nodeMacro:
		return "Macro"
	case nodeUnary:
		return "Unary"
	case nodeBinary:
		return "Binary"
	case nodeCond:
		return "Ternary"
	case nodeComma:
		return "Comma"
	case nodeCall:
		return "Call"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, bpNone)
	return b.String()
}

// fmt writes n as source text. Subexpressions are parenthesized only where
// their binding power is lower than that of the context they appear in, which
// is given by parent.
func (n *node) fmt(b *strings.Builder, parent int) {
	switch n.kind {
	case nodeValue:
		b.WriteString(n.val.String())
	case nodeName:
		b.WriteString(n.name)
	case nodeMacro:
		b.WriteByte('{')
		b.WriteString(n.name)
		b.WriteByte('}')
	case nodeUnary:
		wrap(b, bpUnary < parent, func() {
			b.WriteString(n.op.String())
			if n.op == OpNeg && !n.left.atomic() {
				// -1 would lex as a literal, -(1) does not.
				wrap(b, true, func() { n.left.fmt(b, bpNone) })
				return
			}
			n.left.fmt(b, bpUnary)
		})
	case nodeBinary:
		p := infix(n.op)
		lp, rp := p.lbp, p.lbp+1
		if p.right {
			lp, rp = p.lbp+1, p.lbp
		}
		wrap(b, p.lbp < parent, func() {
			n.left.fmt(b, lp)
			b.WriteByte(' ')
			b.WriteString(n.op.String())
			b.WriteByte(' ')
			n.right.fmt(b, rp)
		})
	case nodeCond:
		wrap(b, bpCond < parent, func() {
			n.left.fmt(b, bpCond+1)
			b.WriteString(" ? ")
			n.right.fmt(b, bpNone)
			b.WriteString(" : ")
			n.alt.fmt(b, bpCond)
		})
	case nodeComma:
		wrap(b, bpComma < parent, func() {
			for i, e := range n.list {
				if i > 0 {
					b.WriteString(", ")
				}
				e.fmt(b, bpArg)
			}
		})
	case nodeCall:
		n.left.fmt(b, bpCall+1)
		b.WriteByte('(')
		for i, e := range n.list {
			if i > 0 {
				b.WriteString(", ")
			}
			e.fmt(b, bpArg)
		}
		b.WriteByte(')')
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "$")
	}
}

// atomic reports whether n prints as a single token or a call, so that it
// never needs parentheses.
func (n *node) atomic() bool {
	switch n.kind {
	case nodeName, nodeMacro, nodeCall:
		return true
	default:
		return false
	}
}

func wrap(b *strings.Builder, paren bool, f func()) {
	if paren {
		b.WriteByte('(')
	}
	f()
	if paren {
		b.WriteByte(')')
	}
}

// equal reports whether two trees have the same structure, ignoring spans.
func (n *node) equal(m *node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.kind != m.kind || n.op != m.op || n.name != m.name || n.val != m.val {
		return false
	}
	if !n.left.equal(m.left) || !n.right.equal(m.right) || !n.alt.equal(m.alt) {
		return false
	}
	if len(n.list) != len(m.list) {
		return false
	}
	for i := range n.list {
		if !n.list[i].equal(m.list[i]) {
			return false
		}
	}
	return true
}

// clone deep-copies the tree.
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	r := *n
	r.left = n.left.clone()
	r.right = n.right.clone()
	r.alt = n.alt.clone()
	if n.list != nil {
		r.list = make([]*node, len(n.list))
		for i, e := range n.list {
			r.list[i] = e.clone()
		}
	}
	return &r
}

// names adds the variable names used in the tree to m. Names used only as
// callees are functions, not variables.
func (n *node) names(m map[string]bool) {
	if n == nil {
		return
	}
	switch n.kind {
	case nodeName:
		m[n.name] = true
	case nodeCall:
		if n.left.kind != nodeName {
			n.left.names(m)
		}
	default:
		n.left.names(m)
		n.right.names(m)
		n.alt.names(m)
	}
	for _, e := range n.list {
		e.names(m)
	}
}

// dump writes an indented description of the tree.
func (n *node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.kind.String())
	switch n.kind {
	case nodeValue:
		b.WriteString(" " + n.val.Type().String() + " " + n.val.String())
	case nodeName, nodeMacro:
		b.WriteString(" " + strconv.Quote(n.name))
	case nodeUnary, nodeBinary:
		b.WriteString(" " + n.op.String())
	}
	b.WriteString(" @ " + n.span.String() + "\n")
	for _, k := range [...]*node{n.left, n.right, n.alt} {
		if k != nil {
			k.dump(b, depth+1)
		}
	}
	for _, e := range n.list {
		e.dump(b, depth+1)
	}
}

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

func newExpr(n *node) *Expr {
	m := make(map[string]bool)
	n.names(m)
	e := Expr{n: n, names: make([]string, 0, len(m))}
	for k := range m {
		e.names = append(e.names, k)
	}
	sortstrs(e.names)
	return &e
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the sorted variable names the expression refers to. Names of
// called functions and macros are not included.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Span returns the span of source the expression was parsed from.
func (e *Expr) Span() Span {
	return e.n.span
}

// String formats the expression as source text which parses to an equal
// expression.
func (e *Expr) String() string {
	return e.n.String()
}

// Equal reports whether two expressions have the same structure. Spans are
// not compared.
func (e *Expr) Equal(f *Expr) bool {
	return e.n.equal(f.n)
}

// Clone returns a deep copy of the expression.
func (e *Expr) Clone() *Expr {
	return &Expr{n: e.n.clone(), names: e.Vars()}
}

// Dump writes a description of the syntax tree, one node per line, with the
// span of each node.
func (e *Expr) Dump(w io.Writer) error {
	var b strings.Builder
	e.n.dump(&b, 0)
	_, err := io.WriteString(w, b.String())
	return err
}
