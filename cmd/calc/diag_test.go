package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestSnippet(t *testing.T) {
	long := strings.Repeat("x", 100) + " + y"
	wide := strings.Repeat("x", 200)
	cases := []struct {
		name   string
		src    string
		span   calc.Span
		text   string
		marker string
	}{
		{"whole", "5 / 0", calc.Span{Start: 0, End: 5}, "5 / 0", "^   ^"},
		{"one", "abc", calc.Span{Start: 1, End: 2}, "abc", " ^"},
		{"end", "1 +", calc.Span{Start: 3, End: 4}, "1 +", "   ^"},
		{"empty", "", calc.Span{Start: 0, End: 1}, "", "^"},
		{"long", long, calc.Span{Start: 103, End: 104}, long[54:], strings.Repeat(" ", 49) + "^"},
		{"wide", wide, calc.Span{Start: 0, End: 200}, wide[74:124], "^" + strings.Repeat(" ", 48) + "^"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text, marker := snippet(c.src, c.span)
			if text != c.text {
				t.Errorf("wrong text: want %q, got %q", c.text, text)
			}
			if marker != c.marker {
				t.Errorf("wrong marker: want %q, got %q", c.marker, marker)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"lex", "1 $ 2", "lexing error: 2: invalid token \"$\"\n1 $ 2\n  ^\n"},
		{"syntax", "1 +", "syntax error: 3: no expression at end\n1 +\n   ^\n"},
		{"bracket", "(1 + 2", "syntax error: 0: open bracket ( with no close bracket\n(1 + 2\n^\n"},
		{"eval", "5 / 0", "evaluation error: 0: division by zero: 5 / 0\n5 / 0\n^   ^\n"},
		{"name", "1 + yy", "evaluation error: 4: undefined variable: \"yy\"\n1 + yy\n    ^^\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calc.EvalString(c.src)
			if err == nil {
				t.Fatalf("%q gave no error", c.src)
			}
			var b strings.Builder
			printError(&b, c.src, err)
			if b.String() != c.want {
				t.Errorf("wrong output:\nwant %q\ngot  %q", c.want, b.String())
			}
		})
	}
}

func TestPrintErrorNoSpan(t *testing.T) {
	var b strings.Builder
	printError(&b, "x", errors.New("oops"))
	if b.String() != "error: oops\n" {
		t.Errorf("wrong output %q", b.String())
	}
}
