package calc_test

import (
	"fmt"

	"github.com/zephyrtronium/calc"
)

type nargin struct{}

func (nargin) Call(args []calc.Value) (calc.Value, error) {
	return calc.Int(int64(len(args))), nil
}

func ExampleFunc() {
	ctx := calc.NewContext(calc.SetFunc("nargin", nargin{}))

	a := calc.MustParse("nargin()")
	b := calc.MustParse("nargin(100)")
	c := calc.MustParse("nargin(3, 2, 1)")
	for _, e := range []*calc.Expr{a, b, c} {
		v, _ := ctx.Eval(e)
		fmt.Println(v, e)
	}

	// Output:
	// 0 nargin()
	// 1 nargin(100)
	// 3 nargin(3, 2, 1)
}

func ExampleFixed() {
	hypot := calc.Fixed("hypot", 2, func(args []calc.Value) (calc.Value, error) {
		x, _ := args[0].Promote(calc.FloatType)
		y, _ := args[1].Promote(calc.FloatType)
		a, _ := x.AsFloat()
		b, _ := y.AsFloat()
		return calc.Float(a*a + b*b), nil
	})
	ctx := calc.NewContext(calc.SetFunc("hypot2", hypot))
	fmt.Println(ctx.Exec("hypot2(3, 4)"))
	fmt.Println(ctx.Exec("hypot2(3)"))

	// Output:
	// 25.0 <nil>
	// false 0: cannot call hypot with 1 arguments, want 2
}
