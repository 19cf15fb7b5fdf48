package mpcalc

import (
	"errors"
	"math/big"
	"testing"

	"github.com/npillmayer/mpcalc/mpf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestQuadOscSinc(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// Dirichlet integral: sin(x)/x over [0, inf) is pi/2
	ctx := mpf.NewContextDigits(15)
	v, err := QuadOsc(ctx, func(x *big.Float) (*big.Float, error) {
		return ctx.Div(ctx.Sin(x), x)
	}, Interval{ctx.New(), ctx.Inf(1)}, &OscOptions{Omega: ctx.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, v, ctx.Half(ctx.Pi()), 40)
}

func TestQuadOscDoublyInfinite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// sin(x)/x over the whole line is pi
	ctx := mpf.NewContextDigits(15)
	v, err := QuadOsc(ctx, func(x *big.Float) (*big.Float, error) {
		return ctx.Div(ctx.Sin(x), x)
	}, Interval{ctx.Inf(-1), ctx.Inf(1)}, &OscOptions{Omega: ctx.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, v, ctx.Pi(), 40)
}

func TestQuadOscDampedCosine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// cos(x) e^-x over [0, inf) is 1/2; a period works as well as a
	// frequency
	ctx := mpf.NewContextDigits(15)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Mul(ctx.Cos(x), ctx.Exp(ctx.Neg(x))), nil
	}
	half := ctx.NewFloat(0.5)
	iv := Interval{ctx.New(), ctx.Inf(1)}
	v, err := QuadOsc(ctx, f, iv, &OscOptions{Omega: ctx.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, v, half, 40)
	v, err = QuadOsc(ctx, f, iv, &OscOptions{Period: ctx.MulInt(ctx.Pi(), 2)})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, v, half, 40)
}

func TestQuadOscLowerInfinite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// cos(x) e^x over (-inf, 0] mirrors onto the damped cosine above
	ctx := mpf.NewContextDigits(15)
	v, err := QuadOsc(ctx, func(x *big.Float) (*big.Float, error) {
		return ctx.Mul(ctx.Cos(x), ctx.Exp(x)), nil
	}, Interval{ctx.Inf(-1), ctx.New()}, &OscOptions{Omega: ctx.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, v, ctx.NewFloat(0.5), 40)
}

func TestQuadOscExplicitZeros(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	// same Dirichlet integral, but with the zero distribution n pi given
	// explicitly
	ctx := mpf.NewContextDigits(15)
	pi := ctx.Pi()
	v, err := QuadOsc(ctx, func(x *big.Float) (*big.Float, error) {
		return ctx.Div(ctx.Sin(x), x)
	}, Interval{ctx.New(), ctx.Inf(1)}, &OscOptions{
		Zeros: func(n int64) (*big.Float, error) {
			return ctx.MulInt(pi, n), nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	expectClose(t, ctx, v, ctx.Half(pi), 40)
}

func TestQuadOscOptionValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mpcalc")
	defer teardown()

	ctx := mpf.NewContext(53)
	f := func(x *big.Float) (*big.Float, error) {
		return ctx.Sin(x), nil
	}
	halfline := Interval{ctx.New(), ctx.Inf(1)}
	one := ctx.NewInt(1)

	_, err := QuadOsc(ctx, f, halfline, nil)
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("missing zero description should be rejected, got %v", err)
	}
	_, err = QuadOsc(ctx, f, halfline, &OscOptions{Omega: one, Period: one})
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ambiguous zero description should be rejected, got %v", err)
	}
	_, err = QuadOsc(ctx, f, Interval{ctx.New(), one}, &OscOptions{Omega: one})
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("finite interval should be rejected, got %v", err)
	}
}
