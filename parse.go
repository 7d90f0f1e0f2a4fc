package calc

import "strconv"

// Expr    = Operand { Binary Expr } | Expr '?' Expr ':' Expr | Expr { ',' Expr }
// Operand = value | name | '{' name '}' | Unary Operand | '(' Expr ')' | Call | Operand Operand
// Call    = name '(' [ Expr { ',' Expr } ] ')'
// Unary   = '-' | '!' | '~'
//
// An operand directly following another operand is an implicit
// multiplication, binding tighter than * and looser than unary operators,
// unless the first operand is a bare name: "x y" is a syntax error.

// parser holds the state of one parse.
type parser struct {
	lex *lexer
	// tok is the current lookahead token.
	tok Token
}

// Parse parses an expression so it can be evaluated. Errors from malformed
// input match ErrSyntax or are a *LexError; both implement InputError.
func Parse(src string) (*Expr, error) {
	p := parser{lex: lex(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	switch {
	case p.tok.Kind == TokenNone:
	case p.tok.Kind == TokenOp && p.tok.Op == OpRParen:
		return nil, &BracketError{Col: p.tok.Span.Start, Right: ")"}
	default:
		return nil, &SyntaxError{Col: p.tok.Span.Start, Found: p.tok, Want: "operator or end of input"}
	}
	return newExpr(n), nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic("calc: MustParse(" + src + "): " + err.Error())
	}
	return e
}

// advance scans the next lookahead token.
func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// is reports whether the lookahead is the operator op.
func (p *parser) is(op Op) bool {
	return p.tok.Kind == TokenOp && p.tok.Op == op
}

// parseExpr parses operands and operators until reaching an operator that
// binds no tighter than rbp, or the end of the expression.
func (p *parser) parseExpr(rbp int) (*node, error) {
	// An identifier written directly before ( is a callee, so that (a)(b)
	// is a product. Nothing multiplies a bare identifier implicitly.
	bare := p.tok.Kind == TokenIdent
	left, err := p.nud()
	if err != nil {
		return nil, err
	}
	for {
		t := p.tok
		switch {
		case bare && p.is(OpLParen):
			if bpCall <= rbp {
				return left, nil
			}
			if left, err = p.call(left); err != nil {
				return nil, err
			}
		case !bare && t.startsExpr():
			// 2x, 2(x), (a)b
			if bpImplicit <= rbp {
				return left, nil
			}
			right, err := p.parseExpr(bpImplicit)
			if err != nil {
				return nil, err
			}
			left = binop(OpMul, left, right)
		case t.Kind == TokenOp:
			op := infix(t.Op)
			if op.lbp == bpNone || op.lbp <= rbp {
				return left, nil
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			switch t.Op {
			case OpCond:
				left, err = p.cond(left, t)
			case OpComma:
				left, err = p.comma(left)
			default:
				var right *node
				if right, err = p.parseExpr(op.rbp()); err == nil {
					left = binop(t.Op, left, right)
				}
			}
			if err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
		bare = false
	}
}

// nud parses the operand that begins an expression.
func (p *parser) nud() (*node, error) {
	t := p.tok
	switch t.Kind {
	case TokenValue:
		return &node{kind: nodeValue, val: t.Val, span: t.Span}, p.advance()
	case TokenIdent:
		return &node{kind: nodeName, name: t.Name, span: t.Span}, p.advance()
	case TokenMacro:
		return &node{kind: nodeMacro, name: t.Name, span: t.Span}, p.advance()
	case TokenNone:
		return nil, &EmptyExpressionError{Col: t.Span.Start}
	}
	switch t.Op {
	case OpSub, OpNot, OpBitNot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpr(bpUnary)
		if err != nil {
			return nil, err
		}
		op := t.Op
		if op == OpSub {
			op = OpNeg
		}
		return &node{kind: nodeUnary, op: op, left: operand, span: t.Span.Merge(operand.span)}, nil
	case OpLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		if err := p.expect(OpRParen, t); err != nil {
			return nil, err
		}
		return n, nil
	case OpRParen:
		return nil, &EmptyExpressionError{Col: t.Span.Start, End: ")"}
	default:
		return nil, &SyntaxError{Col: t.Span.Start, Found: t, Want: "operand"}
	}
}

// expect consumes the operator op, which must close the open bracket. If the
// lookahead is not op, the result is an appropriate syntax error.
func (p *parser) expect(op Op, open Token) error {
	if p.is(op) {
		return p.advance()
	}
	if p.tok.Kind == TokenNone && open.Op == OpLParen {
		return &BracketError{Col: open.Span.Start, Left: "("}
	}
	return &SyntaxError{Col: p.tok.Span.Start, Found: p.tok, Want: strconv.Quote(op.String())}
}

// call parses the argument list of a call. The lookahead is the (.
func (p *parser) call(callee *node) (*node, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	n := &node{kind: nodeCall, left: callee, span: callee.span}
	if !p.is(OpRParen) {
		for {
			arg, err := p.parseExpr(bpArg)
			if err != nil {
				return nil, err
			}
			n.list = append(n.list, arg)
			if !p.is(OpComma) {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	n.span = n.span.Merge(p.tok.Span)
	if err := p.expect(OpRParen, open); err != nil {
		return nil, err
	}
	return n, nil
}

// cond parses the branches of a ternary. The ? token q is already consumed.
func (p *parser) cond(c *node, q Token) (*node, error) {
	then, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	if err := p.expect(OpElse, q); err != nil {
		return nil, err
	}
	alt, err := p.parseExpr(infix(OpCond).rbp())
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeCond, left: c, right: then, alt: alt, span: c.span.Merge(alt.span)}, nil
}

// comma parses the remaining elements of a comma sequence. The first comma is
// already consumed.
func (p *parser) comma(first *node) (*node, error) {
	n := &node{kind: nodeComma, list: []*node{first}, span: first.span}
	for {
		e, err := p.parseExpr(bpArg)
		if err != nil {
			return nil, err
		}
		n.list = append(n.list, e)
		n.span = n.span.Merge(e.span)
		if !p.is(OpComma) {
			return n, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// binop creates a binary operator node spanning both operands.
func binop(op Op, left, right *node) *node {
	return &node{kind: nodeBinary, op: op, left: left, right: right, span: left.span.Merge(right.span)}
}
