package calc

import (
	"errors"
	"strconv"
)

// ErrSyntax matches every error from Parse that describes malformed input,
// under errors.Is.
var ErrSyntax = errors.New("syntax error")

// SyntaxError is an error indicating a token that cannot appear where the
// parser found it. It implements InputError.
type SyntaxError struct {
	// Col is the byte offset of the unexpected token.
	Col int
	// Found is the unexpected token. Its Kind is TokenNone at the end of
	// input.
	Found Token
	// Want describes what the parser expected instead.
	Want string
}

func (err *SyntaxError) Error() string {
	found := "end of input"
	if err.Found.Kind != TokenNone {
		found = strconv.Quote(err.Found.Text())
	}
	msg := "unexpected " + found
	if err.Want != "" {
		msg += ", want " + err.Want
	}
	return errpos(err.Col, msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func (err *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// BracketError is an error indicating mismatched parentheses in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket, or of the end of input for an
	// unclosed bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Is(target error) bool {
	return target == ErrSyntax
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col == 0 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrSyntax
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the source of the start of the text that
	// caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*Error)(nil)
)
