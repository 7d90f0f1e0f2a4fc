package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zephyrtronium/calc"
)

// snippetWidth is the most source text shown with an error.
const snippetWidth = 50

// printError writes err, then the source around the text it refers to with
// carets under the first and last bytes of that text.
func printError(w io.Writer, src string, err error) {
	fmt.Fprintf(w, "%s: %v\n", errkind(err), err)
	span, ok := errspan(err)
	if !ok {
		return
	}
	text, marker := snippet(src, span)
	fmt.Fprintln(w, text)
	fmt.Fprintln(w, marker)
}

func errkind(err error) string {
	var le *calc.LexError
	var ee *calc.Error
	switch {
	case errors.As(err, &le):
		return "lexing error"
	case errors.Is(err, calc.ErrSyntax):
		return "syntax error"
	case errors.As(err, &ee):
		return "evaluation error"
	default:
		return "error"
	}
}

// errspan finds the span of source an error refers to.
func errspan(err error) (calc.Span, bool) {
	var le *calc.LexError
	var ee *calc.Error
	var ie calc.InputError
	switch {
	case errors.As(err, &le):
		return le.Span(), true
	case errors.As(err, &ee):
		return ee.Span, true
	case errors.As(err, &ie):
		return calc.Span{Start: ie.Pos(), End: ie.Pos() + 1}, true
	default:
		return calc.Span{}, false
	}
}

// snippet selects a window of at most snippetWidth bytes of src centered on
// span and builds a line of carets marking the span's first and last bytes.
// A span at the end of src marks just past the last byte.
func snippet(src string, span calc.Span) (text, marker string) {
	start := clamp(span.Start, 0, len(src))
	end := clamp(span.End-1, start, len(src))
	lo := max(0, (start+end)/2-snippetWidth/2)
	hi := min(len(src), lo+snippetWidth)
	if hi-lo < snippetWidth {
		lo = max(0, hi-snippetWidth)
	}
	text = src[lo:hi]
	// Spans wider than the window mark its edges.
	first := max(start-lo, 0)
	last := end - lo
	if end >= hi && hi < len(src) {
		last = hi - lo - 1
	}
	b := []byte(strings.Repeat(" ", last+1))
	b[first] = '^'
	b[last] = '^'
	return text, string(b)
}

func clamp(x, lo, hi int) int {
	return max(lo, min(x, hi))
}
