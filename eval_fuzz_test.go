package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("x += 2 ** 62, x *= 2")
	f.Add("{m} ? 1 : 2.5")
	f.Add("clamp(0, 10, x)")
	f.Add("log(8, 2) + pow(2, 0.5)")
	f.Fuzz(func(t *testing.T, s string) {
		ctx := calc.NewContext(calc.SetVar("x", calc.Int(1)), calc.DefineMacro("m", calc.MustParse("x > 0")))
		v, err := ctx.Exec(s)
		if err != nil {
			return
		}
		if _, err := calc.Parse(v.String()); err != nil {
			t.Errorf("result %v of %q does not parse: %v", v, s, err)
		}
	})
}
