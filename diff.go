package mpcalc

import (
	"fmt"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
	"github.com/npillmayer/mpcalc/quad"
)

// Difference returns the n-th forward difference of a sequence containing
// at least n+1 items,
//
//	sum (-1)^(k+n) C(n,k) s[k].
func Difference(ctx *mpf.Context, s []*big.Float, n int) *big.Float {
	assert(len(s) >= n+1, "forward difference needs n+1 samples")
	d := ctx.New()
	b := big.NewInt(1)
	if n&1 == 1 {
		b.SetInt64(-1)
	}
	for k := 0; k <= n; k++ {
		d.Add(d, ctx.Mul(ctx.FromInt(b), s[k]))
		b.Mul(b, big.NewInt(int64(k-n)))
		b.Quo(b, big.NewInt(int64(k+1)))
	}
	return d
}

// hsteps samples f on a grid of tiny steps around x for an order-n finite
// difference: centrally at x-nh, x-(n-2)h, ..., x+nh, or one-sidedly at
// x, x+h, ..., x+nh when a direction is set. It returns the samples, the
// difference normalization (the effective step) and the working precision
// at which the difference quotient must be formed.
//
// The step is 2^(-prec-addprec), optionally scaled by the magnitude of x,
// and the n+1 samples are computed at (n+1) times the target precision:
// dividing the n-th difference by h^n amplifies the sample error by
// roughly 2^(n(prec+addprec)).
func hsteps(ctx *mpf.Context, f Func, x *big.Float, n int, prec uint, o *DiffOptions) (values []*big.Float, norm *big.Float, workprec uint, err error) {
	addprec := o.AddPrec
	if addprec == 0 {
		addprec = 10
	}
	workprec = (prec + 2*uint(addprec)) * uint(n+1)
	restore := ctx.ElevateTo(workprec)
	defer restore()
	h := o.H
	if h == nil {
		hextra := 0
		if o.Relative {
			hextra = mpf.Mag(x)
		}
		h = ctx.Ldexp(1, -int(prec)-addprec-hextra)
	} else {
		h = ctx.Round(h)
	}
	var steps []int
	if o.Direction != 0 {
		if o.Direction < 0 {
			h = ctx.Neg(h)
		}
		for k := 0; k <= n; k++ {
			steps = append(steps, k)
		}
		norm = h
	} else {
		for k := -n; k <= n; k += 2 {
			steps = append(steps, k)
		}
		norm = ctx.MulInt(h, 2)
	}
	if o.Singular {
		x = ctx.Add(x, ctx.Half(h))
	}
	for _, k := range steps {
		v, err := f(ctx.Add(x, ctx.MulInt(h, int64(k))))
		if err != nil {
			return nil, nil, 0, err
		}
		values = append(values, v)
	}
	return values, norm, workprec, nil
}

// Diff numerically computes the n-th derivative of f at x for any
// nonnegative n.
//
// With DiffStep (the default), an order-n finite difference with a tiny
// step is used: n+1 function evaluations at (n+1) times the target
// precision, so f must support fast high-precision evaluation. Direction,
// step size and perturbation of the sample grid are taken from the
// options.
//
// With DiffQuad, the derivative is obtained from Cauchy's integral
// formula by quadrature along a circle around x. This takes many more
// function evaluations but hardly any extra precision, which can win for
// high orders when f is expensive at high precision. The contour leaves
// the real line, so the options must supply a Complex evaluator; f itself
// is not called on this path. The contour radius must stay clear of any
// singularity of f.
func Diff(ctx *mpf.Context, f Func, x *big.Float, n int, opts *DiffOptions) (*big.Float, error) {
	assert(n >= 0, "derivative order must be nonnegative")
	var o DiffOptions
	if opts != nil {
		o = *opts
	}
	if n == 0 && o.Method != DiffQuad && !o.Singular {
		v, err := f(x)
		if err != nil {
			return nil, err
		}
		return ctx.Round(v), nil
	}
	if o.Method == DiffStep {
		values, norm, workprec, err := hsteps(ctx, f, x, n, ctx.Prec(), &o)
		if err != nil {
			return nil, err
		}
		restore := ctx.ElevateTo(workprec)
		d := Difference(ctx, values, n)
		d.Quo(d, powInt(ctx, norm, n))
		restore()
		return ctx.Round(d), nil
	}

	if o.Complex == nil {
		return nil, fmt.Errorf("%w: contour differentiation needs a complex evaluator", ErrInvalidOption)
	}
	restore := ctx.Elevate(10)
	defer restore()
	radius := o.Radius
	if radius == nil {
		radius = ctx.NewFloat(0.25)
	} else {
		radius = ctx.Round(radius)
	}
	// f^(n)(x) = n!/(2 pi) integral over t in [0, 2pi] of
	// f(x + r e^(it)) (r e^(it))^(-n); only the real part survives for
	// real f, which folds the complex samples into
	// Re(f) cos(nt) + Im(f) sin(nt).
	integrand := func(xs ...*big.Float) (*big.Float, error) {
		t := xs[0]
		re := ctx.Add(x, ctx.Mul(radius, ctx.Cos(t)))
		im := ctx.Mul(radius, ctx.Sin(t))
		vre, vim, err := o.Complex(re, im)
		if err != nil {
			return nil, err
		}
		nt := ctx.MulInt(t, int64(n))
		return ctx.Add(ctx.Mul(vre, ctx.Cos(nt)), ctx.Mul(vim, ctx.Sin(nt))), nil
	}
	twopi := ctx.MulInt(ctx.Pi(), 2)
	d, _, err := quad.QuadTS(ctx, integrand, nil, []*big.Float{ctx.New(), twopi})
	if err != nil {
		return nil, err
	}
	d.Mul(d, ctx.FromInt(mpf.Factorial(n)))
	d.Quo(d, twopi)
	d.Quo(d, powInt(ctx, radius, n))
	restore()
	return ctx.Round(d), nil
}

// Diffun turns f into a function evaluating the n-th derivative of f.
// Options are handed through to Diff on every call.
func Diffun(ctx *mpf.Context, f Func, n int, opts *DiffOptions) Func {
	if n == 0 {
		return f
	}
	return func(x *big.Float) (*big.Float, error) {
		return Diff(ctx, f, x, n, opts)
	}
}

func powInt(ctx *mpf.Context, x *big.Float, n int) *big.Float {
	p := ctx.NewInt(1)
	for i := 0; i < n; i++ {
		p.Mul(p, x)
	}
	return p
}
