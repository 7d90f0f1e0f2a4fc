package calc

import "strconv"

// Op is an operator or punctuation symbol.
type Op int8

const (
	OpNone Op = iota

	OpNot    // !
	OpNeg    // unary -
	OpBitNot // ~

	OpAdd    // +
	OpSub    // -
	OpMul    // *
	OpDiv    // /
	OpMod    // %
	OpPow    // **
	OpAnd    // &&
	OpOr     // ||
	OpBitAnd // &
	OpBitOr  // |
	OpBitXor // ^

	OpEq // ==
	OpNe // !=
	OpLt // <
	OpGt // >
	OpLe // <=
	OpGe // >=

	OpAssign       // =
	OpAddAssign    // +=
	OpSubAssign    // -=
	OpMulAssign    // *=
	OpDivAssign    // /=
	OpModAssign    // %=
	OpAndAssign    // &&=
	OpOrAssign     // ||=
	OpBitAndAssign // &=
	OpBitOrAssign  // |=
	OpBitXorAssign // ^=

	OpCond   // ?
	OpElse   // :
	OpLParen // (
	OpRParen // )
	OpComma  // ,

	opCount
)

var opsyms = [opCount]string{
	OpNone:         "",
	OpNot:          "!",
	OpNeg:          "-",
	OpBitNot:       "~",
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpMod:          "%",
	OpPow:          "**",
	OpAnd:          "&&",
	OpOr:           "||",
	OpBitAnd:       "&",
	OpBitOr:        "|",
	OpBitXor:       "^",
	OpEq:           "==",
	OpNe:           "!=",
	OpLt:           "<",
	OpGt:           ">",
	OpLe:           "<=",
	OpGe:           ">=",
	OpAssign:       "=",
	OpAddAssign:    "+=",
	OpSubAssign:    "-=",
	OpMulAssign:    "*=",
	OpDivAssign:    "/=",
	OpModAssign:    "%=",
	OpAndAssign:    "&&=",
	OpOrAssign:     "||=",
	OpBitAndAssign: "&=",
	OpBitOrAssign:  "|=",
	OpBitXorAssign: "^=",
	OpCond:         "?",
	OpElse:         ":",
	OpLParen:       "(",
	OpRParen:       ")",
	OpComma:        ",",
}

// String returns the operator's source symbol.
func (op Op) String() string {
	if op < 0 || op >= opCount {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return opsyms[op]
}

// Assign reports whether op is = or a compound assignment.
func (op Op) Assign() bool {
	return OpAssign <= op && op <= OpBitXorAssign
}

// Binary returns the operator that a compound assignment applies, e.g. OpAdd
// for OpAddAssign. Other operators return themselves.
func (op Op) Binary() Op {
	switch op {
	case OpAddAssign:
		return OpAdd
	case OpSubAssign:
		return OpSub
	case OpMulAssign:
		return OpMul
	case OpDivAssign:
		return OpDiv
	case OpModAssign:
		return OpMod
	case OpAndAssign:
		return OpAnd
	case OpOrAssign:
		return OpOr
	case OpBitAndAssign:
		return OpBitAnd
	case OpBitOrAssign:
		return OpBitOr
	case OpBitXorAssign:
		return OpBitXor
	default:
		return op
	}
}

// Binding powers. Higher binds tighter.
const (
	bpNone     = 0
	bpComma    = 1
	bpArg      = bpComma + 1
	bpAssign   = 3
	bpCond     = 5
	bpOr       = 10
	bpAnd      = 15
	bpBitOr    = 20
	bpBitXor   = 25
	bpBitAnd   = 30
	bpEq       = 35
	bpRel      = 40
	bpSum      = 50
	bpProduct  = 60
	bpImplicit = 65
	bpUnary    = 70
	bpPow      = 80
	bpCall     = 90
)

type operator struct {
	// lbp is the left binding power.
	lbp int
	// right indicates right-associativity.
	right bool
}

// rbp is the binding power at which to parse the right operand.
func (p operator) rbp() int {
	if p.right {
		return p.lbp - 1
	}
	return p.lbp
}

// infix gets the infix binding of an operator. Operators that are not infix
// have lbp 0.
func infix(op Op) operator {
	switch op {
	case OpPow:
		return operator{bpPow, true}
	case OpMul, OpDiv, OpMod:
		return operator{bpProduct, false}
	case OpAdd, OpSub:
		return operator{bpSum, false}
	case OpLt, OpLe, OpGt, OpGe:
		return operator{bpRel, false}
	case OpEq, OpNe:
		return operator{bpEq, false}
	case OpBitAnd:
		return operator{bpBitAnd, false}
	case OpBitXor:
		return operator{bpBitXor, false}
	case OpBitOr:
		return operator{bpBitOr, false}
	case OpAnd:
		return operator{bpAnd, false}
	case OpOr:
		return operator{bpOr, false}
	case OpCond:
		return operator{bpCond, true}
	case OpLParen:
		return operator{bpCall, false}
	case OpComma:
		return operator{bpComma, false}
	}
	if op.Assign() {
		return operator{bpAssign, true}
	}
	return operator{}
}

// TokenKind is the kind of a lexical token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenOp is an operator or punctuation.
	TokenOp
	// TokenValue is a boolean or numeric literal.
	TokenValue
	// TokenIdent is a variable or function name.
	TokenIdent
	// TokenMacro is a macro reference written {name}.
	TokenMacro
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenOp:
		return "Op"
	case TokenValue:
		return "Value"
	case TokenIdent:
		return "Ident"
	case TokenMacro:
		return "Macro"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a lexical token with the span of source it was scanned from.
type Token struct {
	Kind TokenKind
	// Op is the operator of a TokenOp.
	Op Op
	// Val is the literal of a TokenValue.
	Val Value
	// Name is the name of a TokenIdent or TokenMacro.
	Name string
	Span Span
}

// Text returns the token as it would be written in source.
func (t Token) Text() string {
	switch t.Kind {
	case TokenOp:
		return t.Op.String()
	case TokenValue:
		return t.Val.String()
	case TokenIdent:
		return t.Name
	case TokenMacro:
		return "{" + t.Name + "}"
	default:
		return ""
	}
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text() + "@" + t.Span.String()
}

// lbp is the left binding power of the token.
func (t Token) lbp() int {
	if t.Kind != TokenOp {
		return bpNone
	}
	return infix(t.Op).lbp
}

// startsExpr reports whether the token can begin an operand, for implicit
// multiplication after any operand but a bare name. The - token is always
// lexed as subtraction, so it never starts an implicit product.
func (t Token) startsExpr() bool {
	switch t.Kind {
	case TokenValue, TokenIdent, TokenMacro:
		return true
	case TokenOp:
		return t.Op == OpNot || t.Op == OpBitNot || t.Op == OpLParen
	default:
		return false
	}
}

// endsOperand reports whether the token can be the last token of an operand.
// The lexer uses this to decide whether a - begins a negative literal.
func (t Token) endsOperand() bool {
	switch t.Kind {
	case TokenValue, TokenIdent, TokenMacro:
		return true
	case TokenOp:
		return t.Op == OpRParen
	default:
		return false
	}
}
