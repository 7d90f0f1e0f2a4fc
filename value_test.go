package calc

import (
	"math"
	"reflect"
	"testing"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Value{}, "false"},
		{Bool(true), "true"},
		{Int(-12), "-12"},
		{Float(3), "3.0"},
		{Float(-0.25), "-0.25"},
		{Float(1e21), "1000000000000000000000.0"},
		{Float(math.Inf(-1)), "-Inf"},
		{Float(math.NaN()), "NaN"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("%#v formatted as %q, want %q", c.v, got, c.want)
		}
	}
}

func TestPromote(t *testing.T) {
	cases := []struct {
		v    Value
		t    Type
		want Value
	}{
		{Bool(true), IntType, Int(1)},
		{Bool(false), FloatType, Float(0)},
		{Int(-3), BoolType, Bool(true)},
		{Int(0), BoolType, Bool(false)},
		{Int(7), FloatType, Float(7)},
		{Float(-2.75), IntType, Int(-2)},
		{Float(0.5), BoolType, Bool(true)},
		{Float(1e300), IntType, Int(math.MaxInt64)},
		{Float(-1e300), IntType, Int(math.MinInt64)},
		{Float(math.NaN()), IntType, Int(0)},
		{Int(5), IntType, Int(5)},
	}
	for _, c := range cases {
		got, ok := c.v.Promote(c.t)
		if !ok {
			t.Errorf("%v to %v failed", c.v, c.t)
			continue
		}
		if got != c.want {
			t.Errorf("%v to %v gave %v (%v), want %v", c.v, c.t, got, got.Type(), c.want)
		}
	}
	if _, ok := Int(1).Promote(Type(9)); ok {
		t.Error("promotion to invalid type succeeded")
	}
}

func TestUnify(t *testing.T) {
	vs, err := Unify(Bool(true), Int(2), Float(0.5))
	if err != nil {
		t.Fatal(err)
	}
	want := []Value{Float(1), Float(2), Float(0.5)}
	if !reflect.DeepEqual(vs, want) {
		t.Errorf("wrong values: want %v, got %v", want, vs)
	}
	if vs, err := Unify(); vs != nil || err != nil {
		t.Errorf("empty unify gave %v, %v", vs, err)
	}
	_, err = UnifyTo(Type(-1), Int(1))
	if _, ok := err.(*UnifyError); !ok {
		t.Errorf("invalid type gave %#v", err)
	}
}

func TestCheckedArith(t *testing.T) {
	cases := []struct {
		name string
		f    func(a, b int64) (int64, bool)
		a, b int64
		z    int64
		over bool
	}{
		{"add", add, 1, 2, 3, false},
		{"add-max", add, math.MaxInt64, 1, math.MinInt64, true},
		{"add-min", add, math.MinInt64, -1, math.MaxInt64, true},
		{"sub", sub, 1, 2, -1, false},
		{"sub-min", sub, math.MinInt64, 1, math.MaxInt64, true},
		{"sub-neg", sub, 0, math.MinInt64, math.MinInt64, true},
		{"mul", mul, -4, 5, -20, false},
		{"mul-zero", mul, 0, math.MinInt64, 0, false},
		{"mul-big", mul, 1 << 32, 1 << 31, 0, true},
		{"mul-neg-one", mul, -1, math.MinInt64, math.MinInt64, true},
		{"ipow", ipow, 3, 4, 81, false},
		{"ipow-zero", ipow, 0, 0, 1, false},
		{"ipow-neg", ipow, -2, 3, -8, false},
		{"ipow-min", ipow, -2, 63, math.MinInt64, false},
		{"ipow-over", ipow, 2, 63, math.MinInt64, true},
		{"ipow-one", ipow, -1, math.MaxInt64, -1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			z, over := c.f(c.a, c.b)
			if over != c.over {
				t.Errorf("wrong overflow: want %t, got %t", c.over, over)
			}
			if !over && z != c.z {
				t.Errorf("wrong result: want %d, got %d", c.z, z)
			}
		})
	}
}

func TestSpan(t *testing.T) {
	s := Span{Start: 2, End: 5}
	if m := s.Merge(Span{Start: 7, End: 9}); m != (Span{Start: 2, End: 9}) {
		t.Errorf("wrong merge %v", m)
	}
	if m := s.Merge(Span{Start: 3, End: 4}); m != s {
		t.Errorf("merge with inner span gave %v", m)
	}
	if s.Len() != 3 {
		t.Errorf("wrong length %d", s.Len())
	}
	if !s.Contains(2) || !s.Contains(4) || s.Contains(5) || s.Contains(1) {
		t.Errorf("wrong containment for %v", s)
	}
	if s.String() != "2..5" {
		t.Errorf("wrong string %q", s.String())
	}
}

func TestApplyOperatorArity(t *testing.T) {
	if _, _, err := ApplyUnary(OpAdd, Int(1)); err == nil {
		t.Error("unary + gave no error")
	} else if te, ok := err.(*TypeError); !ok || te.Arity != 1 {
		t.Errorf("unary + gave %#v", err)
	}
	if _, _, err := ApplyBinary(OpNot, Int(1), Int(2)); err == nil {
		t.Error("binary ! gave no error")
	} else if te, ok := err.(*TypeError); !ok || te.Arity != 2 {
		t.Errorf("binary ! gave %#v", err)
	}
}

func TestEvalInvalidNode(t *testing.T) {
	e := &Expr{n: &node{kind: nodeNone, span: Span{Start: 1, End: 2}}}
	_, err := Evaluate(e, Vars{}, nil, nil)
	ee, ok := err.(*Error)
	if !ok {
		t.Fatalf("wrong error %#v", err)
	}
	if _, ok := ee.Err.(*InternalError); !ok || ee.Span != e.n.span {
		t.Errorf("wrong error %#v", ee)
	}
}
