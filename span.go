package calc

import "strconv"

// Span is a half-open range of byte offsets [Start, End) into the source of
// an expression.
type Span struct {
	Start int
	End   int
}

// single is the span of the one byte at pos.
func single(pos int) Span {
	return Span{Start: pos, End: pos + 1}
}

// Merge returns the smallest span enclosing both s and t.
func (s Span) Merge(t Span) Span {
	if t.Start < s.Start {
		s.Start = t.Start
	}
	if t.End > s.End {
		s.End = t.End
	}
	return s
}

// Len returns the number of bytes in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the byte offset pos is within the span.
func (s Span) Contains(pos int) bool {
	return s.Start <= pos && pos < s.End
}

func (s Span) String() string {
	return strconv.Itoa(s.Start) + ".." + strconv.Itoa(s.End)
}
