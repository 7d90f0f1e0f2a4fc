package main

import (
	"golang.org/x/text/number"

	"github.com/zephyrtronium/calc"
)

// format renders a value for display. With a locale, numbers use the
// locale's digit grouping and decimal separator.
func (sh *shell) format(v calc.Value) string {
	if sh.p == nil {
		return v.String()
	}
	switch v.Type() {
	case calc.IntType:
		i, _ := v.AsInt()
		return sh.p.Sprintf("%v", number.Decimal(i))
	case calc.FloatType:
		f, _ := v.AsFloat()
		return sh.p.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(15)))
	default:
		return v.String()
	}
}
