package calc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// multiops are the operators longer than one byte, longest first so that
// each match is the longest possible.
var multiops = [...]struct {
	text string
	op   Op
}{
	{"&&=", OpAndAssign},
	{"||=", OpOrAssign},
	{"**", OpPow},
	{"==", OpEq},
	{"!=", OpNe},
	{"<=", OpLe},
	{">=", OpGe},
	{"&&", OpAnd},
	{"||", OpOr},
	{"+=", OpAddAssign},
	{"-=", OpSubAssign},
	{"*=", OpMulAssign},
	{"/=", OpDivAssign},
	{"%=", OpModAssign},
	{"&=", OpBitAndAssign},
	{"|=", OpBitOrAssign},
	{"^=", OpBitXorAssign},
}

// singleops maps one-byte operators.
var singleops = [256]Op{
	'+': OpAdd,
	'-': OpSub,
	'%': OpMod,
	'=': OpAssign,
	'*': OpMul,
	'/': OpDiv,
	'<': OpLt,
	'>': OpGt,
	'&': OpBitAnd,
	'|': OpBitOr,
	'^': OpBitXor,
	'(': OpLParen,
	')': OpRParen,
	',': OpComma,
	'?': OpCond,
	':': OpElse,
	'!': OpNot,
	'~': OpBitNot,
}

type lexer struct {
	src string
	pos int
	// prev is the last token scanned.
	prev Token
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// Tokenize scans the entire source into tokens. Whitespace separates tokens
// and is never itself a token. The error, if any, is a *LexError for the first
// byte that cannot begin a token.
func Tokenize(src string) ([]Token, error) {
	l := lex(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenNone {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// next scans the next token. At the end of the input, the result is a token
// of kind TokenNone with a nil error.
func (l *lexer) next() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return Token{Span: Span{Start: l.pos, End: l.pos}}, nil
	}
	tok, ok, err := l.scanIdent()
	if !ok && err == nil {
		tok, ok, err = l.scanNum()
	}
	if !ok && err == nil {
		tok, ok = l.scanOp()
	}
	if !ok && err == nil {
		tok, ok, err = l.scanMacro()
	}
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, l.error(l.pos)
	}
	l.prev = tok
	return tok, nil
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdent(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// identEnd returns the end of the identifier starting at i.
func (l *lexer) identEnd(i int) int {
	for i < len(l.src) && isIdent(l.src[i]) {
		i++
	}
	return i
}

// scanIdent scans an identifier or boolean literal. true and false look like
// identifiers, so they are checked here, and only as whole words.
func (l *lexer) scanIdent() (Token, bool, error) {
	if !isIdentStart(l.src[l.pos]) {
		return Token{}, false, nil
	}
	start := l.pos
	l.pos = l.identEnd(start)
	tok := Token{Span: Span{Start: start, End: l.pos}}
	switch name := l.src[start:l.pos]; name {
	case "true", "false":
		tok.Kind = TokenValue
		tok.Val = Bool(name == "true")
	default:
		tok.Kind = TokenIdent
		tok.Name = name
	}
	return tok, true, nil
}

// scanNum scans a numeric literal: an optional -, digits, and optionally a .
// followed by more digits, with underscores allowed among the digits. A - is
// only part of the literal where a binary minus could not appear.
func (l *lexer) scanNum() (Token, bool, error) {
	i := l.pos
	if l.src[i] == '-' {
		if l.prev.endsOperand() {
			return Token{}, false, nil
		}
		i++
	}
	switch {
	case i < len(l.src) && isDigit(l.src[i]):
	case i+1 < len(l.src) && l.src[i] == '.' && isDigit(l.src[i+1]):
	default:
		return Token{}, false, nil
	}
	var b strings.Builder
	if i > l.pos {
		b.WriteByte('-')
	}
	dot := false
scan:
	for ; i < len(l.src); i++ {
		c := l.src[i]
		switch {
		case isDigit(c):
			b.WriteByte(c)
		case c == '_':
			// Visual separator.
		case c == '.' && !dot:
			dot = true
			b.WriteByte(c)
		default:
			break scan
		}
	}
	start := l.pos
	tok := Token{Kind: TokenValue, Span: Span{Start: start, End: i}}
	text := b.String()
	if dot {
		f, err := strconv.ParseFloat(normfloat(text), 64)
		if err != nil {
			return Token{}, false, &LexError{Offset: start, Text: l.src[start:i]}
		}
		tok.Val = Float(f)
	} else {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Token{}, false, &LexError{Offset: start, Text: l.src[start:i]}
		}
		tok.Val = Int(n)
	}
	l.pos = i
	return tok, true, nil
}

// normfloat adds the zero digits that a bare leading or trailing decimal point
// implies.
func normfloat(s string) string {
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	switch {
	case strings.HasPrefix(s, "-."):
		s = "-0" + s[1:]
	case strings.HasPrefix(s, "."):
		s = "0" + s
	}
	return s
}

func (l *lexer) scanOp() (Token, bool) {
	rest := l.src[l.pos:]
	for _, m := range multiops {
		if strings.HasPrefix(rest, m.text) {
			tok := Token{Kind: TokenOp, Op: m.op, Span: Span{Start: l.pos, End: l.pos + len(m.text)}}
			l.pos += len(m.text)
			return tok, true
		}
	}
	op := singleops[rest[0]]
	if op == OpNone {
		return Token{}, false
	}
	tok := Token{Kind: TokenOp, Op: op, Span: single(l.pos)}
	l.pos++
	return tok, true
}

// scanMacro scans a macro reference, {name}.
func (l *lexer) scanMacro() (Token, bool, error) {
	if l.src[l.pos] != '{' {
		return Token{}, false, nil
	}
	start := l.pos
	if start+1 >= len(l.src) || !isIdentStart(l.src[start+1]) {
		return Token{}, false, l.error(start)
	}
	end := l.identEnd(start + 1)
	if end >= len(l.src) || l.src[end] != '}' {
		return Token{}, false, l.error(start)
	}
	l.pos = end + 1
	tok := Token{
		Kind: TokenMacro,
		Name: l.src[start+1 : end],
		Span: Span{Start: start, End: l.pos},
	}
	return tok, true, nil
}

// error creates an error for an invalid token starting at pos.
func (l *lexer) error(pos int) error {
	_, sz := utf8.DecodeRuneInString(l.src[pos:])
	return &LexError{Offset: pos, Text: l.src[pos : pos+sz]}
}

// LexError indicates a byte sequence that does not begin any token. It
// implements InputError.
type LexError struct {
	// Offset is the byte offset of the invalid token.
	Offset int
	// Text is the invalid text, at least the rune at Offset.
	Text string
}

func (err *LexError) Error() string {
	return errpos(err.Offset, "invalid token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Offset
}

// Span returns the span of the invalid text.
func (err *LexError) Span() Span {
	return Span{Start: err.Offset, End: err.Offset + len(err.Text)}
}
