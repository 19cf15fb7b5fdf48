package mpcalc

import (
	"errors"
	"math/big"
	"testing"

	"github.com/npillmayer/mpcalc/mpf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDifference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// second difference of squares is the constant 2
	ctx := mpf.NewContext(64)
	s := []*big.Float{ctx.NewInt(0), ctx.NewInt(1), ctx.NewInt(4), ctx.NewInt(9)}
	if d := Difference(ctx, s, 2); d.Cmp(ctx.NewInt(2)) != 0 {
		t.Errorf("second difference of squares should be 2, got %v", d)
	}
	if d := Difference(ctx, s, 3); d.Sign() != 0 {
		t.Errorf("third difference of squares should vanish, got %v", d)
	}
}

func TestDiffPolynomial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// f = x^2 + x at x=1: f' = 3, f'' = 2, f''' = 0
	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Add(ctx.Mul(x, x), x), nil
	}
	one := ctx.NewInt(1)
	for n, want := range map[int]*big.Float{
		0: ctx.NewInt(2), 1: ctx.NewInt(3), 2: ctx.NewInt(2), 3: ctx.New(),
	} {
		d, err := Diff(ctx, f, one, n, nil)
		if err != nil {
			t.Fatal(err)
		}
		expectClose(t, ctx, d, want, 40)
	}
}

func TestDiffExp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// all derivatives of exp at 3 equal e^3
	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Exp(x), nil
	}
	want := ctx.Exp(ctx.NewInt(3))
	for n := 0; n <= 4; n++ {
		d, err := Diff(ctx, f, ctx.NewInt(3), n, nil)
		if err != nil {
			t.Fatal(err)
		}
		expectClose(t, ctx, d, want, 35)
	}
}

func TestDiffDirection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// one-sided derivatives of |x| at 0
	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Abs(x), nil
	}
	zero := ctx.New()
	d, err := Diff(ctx, f, zero, 1, &DiffOptions{Direction: 1})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, d, ctx.NewInt(1), 40)
	d, err = Diff(ctx, f, zero, 1, &DiffOptions{Direction: -1})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, d, ctx.NewInt(-1), 40)
	d, err = Diff(ctx, f, zero, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Sign() != 0 {
		t.Errorf("central derivative of |x| at 0 should be 0, got %v", d)
	}
}

func TestDiffSingular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// sin(x)/x has a removable singularity at 0; the shifted sample grid
	// avoids evaluating there
	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Div(ctx.Sin(x), x)
	}
	d, err := Diff(ctx, f, ctx.New(), 0, &DiffOptions{Singular: true})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, d, ctx.NewInt(1), 40)
}

func TestDiffContour(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// derivatives of z^2 at 1 by contour integration: 2x=2, 2, 0
	ctx := mpf.NewContextDigits(15)
	square := func(re, im *big.Float) (*big.Float, *big.Float, error) {
		vre := ctx.Sub(ctx.Mul(re, re), ctx.Mul(im, im))
		vim := ctx.MulInt(ctx.Mul(re, im), 2)
		return vre, vim, nil
	}
	opts := &DiffOptions{Method: DiffQuad, Complex: square}
	for n, want := range map[int]*big.Float{
		1: ctx.NewInt(2), 2: ctx.NewInt(2), 3: ctx.New(),
	} {
		d, err := Diff(ctx, nil, ctx.NewInt(1), n, opts)
		if err != nil {
			t.Fatal(err)
		}
		expectClose(t, ctx, d, want, 35)
	}
}

func TestDiffContourNeedsComplexEvaluator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	ctx := mpf.NewContext(53)
	_, err := Diff(ctx, nil, ctx.New(), 1, &DiffOptions{Method: DiffQuad})
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

func TestDiffsSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// derivatives of cos at 1 cycle through cos, -sin, -cos, sin
	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Cos(x), nil
	}
	one := ctx.NewInt(1)
	c, s := ctx.Cos(one), ctx.Sin(one)
	want := []*big.Float{c, ctx.Neg(s), ctx.Neg(c), s, c, ctx.Neg(s)}
	seq := Diffs(ctx, f, one, 5, nil)
	got, err := seq.Collect(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 derivatives, got %d", len(got))
	}
	for i, w := range want {
		expectClose(t, ctx, got[i], w, 30)
	}
	if _, err := seq.Next(); !errors.Is(err, ErrExhausted) {
		t.Errorf("sequence should be exhausted, got %v", err)
	}
}

func TestDiffsUnbounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Exp(x), nil
	}
	seq := Diffs(ctx, f, ctx.New(), -1, nil)
	got, err := seq.Collect(8)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 {
		t.Fatalf("unbounded sequence should deliver on demand, got %d values", len(got))
	}
	for _, d := range got {
		expectClose(t, ctx, d, ctx.NewInt(1), 30)
	}
}

func TestTaylorExp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// Taylor coefficients of exp at 0 are 1/k!
	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Exp(x), nil
	}
	coeffs, err := Taylor(ctx, f, ctx.New(), 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(coeffs) != 6 {
		t.Fatalf("expected 6 coefficients, got %d", len(coeffs))
	}
	for k, c := range coeffs {
		want := ctx.New().Quo(ctx.NewInt(1), ctx.FromInt(mpf.Factorial(k)))
		expectClose(t, ctx, c, want, 30)
	}
}

func TestDiffun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// the fourth derivative of sin is sin again
	ctx := mpf.NewContextDigits(15)
	sin := func(x *big.Float) (*big.Float, error) {
		return ctx.Sin(x), nil
	}
	sin4 := Diffun(ctx, sin, 4, nil)
	x := ctx.NewFloat(1.3)
	v, err := sin4(x)
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, v, ctx.Sin(x), 30)
}
