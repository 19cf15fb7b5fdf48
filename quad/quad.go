package quad

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
)

// Integrand is a real function of 1 to 3 real variables. It receives as
// many arguments as the integral has dimensions.
type Integrand func(xs ...*big.Float) (*big.Float, error)

// ErrDimension signals an unsupported number of integration intervals.
var ErrDimension = errors.New("quad: quadrature must have dimension 1, 2 or 3")

// ErrBadInterval signals an interval descriptor with fewer than two points.
var ErrBadInterval = errors.New("quad: interval needs at least two points")

// Options configures an integration. The zero value selects tanh-sinh
// quadrature with an automatically chosen maximum degree and the
// process-wide node registry.
type Options struct {
	Rule      Kind      // quadrature rule to apply
	MaxDegree int       // maximum rule degree to try before giving up; 0 = automatic
	Registry  *Registry // node cache; nil = DefaultRegistry
	Verbose   bool      // trace degree escalation at info instead of debug level
}

// Quad integrates f over a 1D interval, 2D rectangle or 3D cuboid, one
// interval descriptor per dimension. Endpoints may be infinite. A
// descriptor with more than two points splits that dimension into
// subintervals integrated separately, which is the tool of choice for
// mid-interval kinks or long oscillating ranges.
//
// Quad returns the integral value and an error estimate, both rounded to
// context precision. The estimate is heuristic: a large value reliably
// flags a failed integration, but a small one is no guarantee. When
// subintervals are involved, the largest estimate among them is returned.
func Quad(ctx *mpf.Context, f Integrand, opts *Options, intervals ...[]*big.Float) (*big.Float, *big.Float, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	rl, ok := rules[o.Rule]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(o.Rule))
	}
	reg := o.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	dim := len(intervals)
	if dim < 1 || dim > 3 {
		return nil, nil, ErrDimension
	}
	for _, iv := range intervals {
		if len(iv) < 2 {
			return nil, nil, ErrBadInterval
		}
	}
	prec := ctx.Prec()
	// aim a bit below the unit roundoff, results get re-rounded anyway
	epsilon := ctx.Ldexp(1, -int(prec)-2)
	m := o.MaxDegree
	if m == 0 {
		m = guessDegree(prec)
	}
	restore := ctx.Elevate(20)
	defer restore()
	var v, e *big.Float
	var err error
	switch dim {
	case 1:
		v, e, err = summation(ctx, rl, reg, func(x *big.Float) (*big.Float, error) {
			return f(x)
		}, intervals[0], prec, epsilon, m, o.Verbose)
	case 2:
		v, e, err = summation(ctx, rl, reg, func(x *big.Float) (*big.Float, error) {
			inner, _, err := summation(ctx, rl, reg, func(y *big.Float) (*big.Float, error) {
				return f(x, y)
			}, intervals[1], prec, epsilon, m, false)
			return inner, err
		}, intervals[0], prec, epsilon, m, o.Verbose)
	case 3:
		v, e, err = summation(ctx, rl, reg, func(x *big.Float) (*big.Float, error) {
			inner, _, err := summation(ctx, rl, reg, func(y *big.Float) (*big.Float, error) {
				inner2, _, err := summation(ctx, rl, reg, func(z *big.Float) (*big.Float, error) {
					return f(x, y, z)
				}, intervals[2], prec, epsilon, m, false)
				return inner2, err
			}, intervals[1], prec, epsilon, m, false)
			return inner, err
		}, intervals[0], prec, epsilon, m, o.Verbose)
	}
	if err != nil {
		return nil, nil, err
	}
	restore()
	return ctx.Round(v), ctx.Round(e), nil
}

// QuadTS integrates with the tanh-sinh rule, overriding any rule selection
// in opts.
func QuadTS(ctx *mpf.Context, f Integrand, opts *Options, intervals ...[]*big.Float) (*big.Float, *big.Float, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.Rule = TanhSinh
	return Quad(ctx, f, &o, intervals...)
}

// QuadGL integrates with the Gauss-Legendre rule, overriding any rule
// selection in opts.
func QuadGL(ctx *mpf.Context, f Integrand, opts *Options, intervals ...[]*big.Float) (*big.Float, *big.Float, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.Rule = GaussLegendre
	return Quad(ctx, f, &o, intervals...)
}

// summation computes the 1D integral of f over the (possibly split)
// interval given by points. For each subinterval the rule degree is raised
// from 1 up to maxDegree until estimateError signals convergence. Each
// subintegration is mapped to [-1, 1] first.
func summation(ctx *mpf.Context, rl rule, reg *Registry, f integrand1, points []*big.Float, prec uint, epsilon *big.Float, maxDegree int, verbose bool) (*big.Float, *big.Float, error) {
	logf := tracer().Debugf
	if verbose {
		logf = tracer().Infof
	}
	I := ctx.New()
	errMax := ctx.New()
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if a.Cmp(b) == 0 {
			continue
		}
		g := transformed(ctx, f, a, b)
		var results []*big.Float
		segErr := ctx.New()
		for degree := 1; degree <= maxDegree; degree++ {
			logf("integrating from %v to %v (degree %d of %d)", a, b, degree, maxDegree)
			s, err := rl.sumNext(ctx, reg, g, prec, degree, results)
			if err != nil {
				return nil, nil, err
			}
			results = append(results, s)
			if degree > 1 {
				segErr = estimateError(ctx, results, prec, epsilon)
				if segErr.Cmp(epsilon) <= 0 {
					break
				}
				logf("estimated error %v", segErr)
			}
		}
		I.Add(I, results[len(results)-1])
		if segErr.Cmp(errMax) > 0 {
			errMax = segErr
		}
	}
	if errMax.Cmp(epsilon) > 0 {
		logf("failed to reach full accuracy, estimated error %v", errMax)
	}
	return I, errMax, nil
}

// transformed maps an integrand over [a, b] to an equivalent integrand over
// the standard interval [-1, 1]. Finite intervals use a linear change of
// variables; intervals with an infinite endpoint use the substitution
// t = 1/x, and a doubly infinite interval is in addition folded onto its
// positive half by evaluating symmetrically.
func transformed(ctx *mpf.Context, f integrand1, a, b *big.Float) integrand1 {
	one := ctx.NewInt(1)
	two := ctx.NewInt(2)
	if !a.IsInf() && !b.IsInf() {
		if a.Cmp(ctx.NewInt(-1)) == 0 && b.Cmp(one) == 0 {
			return f
		}
		C := ctx.Half(ctx.Sub(b, a))
		D := ctx.Half(ctx.Add(b, a))
		return func(x *big.Float) (*big.Float, error) {
			fx, err := f(ctx.Add(D, ctx.Mul(C, x)))
			if err != nil {
				return nil, err
			}
			return ctx.Mul(C, fx), nil
		}
	}
	if mpf.IsNegInf(a) && mpf.IsPosInf(b) {
		return func(x *big.Float) (*big.Float, error) {
			u, err := ctx.Div(two, ctx.Add(x, one))
			if err != nil {
				return nil, err
			}
			w := ctx.Sub(one, u)
			fpos, err := f(w)
			if err != nil {
				return nil, err
			}
			fneg, err := f(ctx.Neg(w))
			if err != nil {
				return nil, err
			}
			v := ctx.Add(fpos, fneg)
			v.Mul(v, ctx.Mul(u, u))
			return ctx.Half(v), nil
		}
	}
	if mpf.IsNegInf(a) {
		b1 := ctx.Add(b, one)
		return func(x *big.Float) (*big.Float, error) {
			u, err := ctx.Div(two, ctx.Add(x, one))
			if err != nil {
				return nil, err
			}
			fx, err := f(ctx.Sub(b1, u))
			if err != nil {
				return nil, err
			}
			v := ctx.Mul(fx, ctx.Mul(u, u))
			return ctx.Half(v), nil
		}
	}
	assert(mpf.IsPosInf(b), "unordered infinite integration interval")
	a1 := ctx.Sub(a, one)
	return func(x *big.Float) (*big.Float, error) {
		u, err := ctx.Div(two, ctx.Add(x, one))
		if err != nil {
			return nil, err
		}
		fx, err := f(ctx.Add(a1, u))
		if err != nil {
			return nil, err
		}
		v := ctx.Mul(fx, ctx.Mul(u, u))
		return ctx.Half(v), nil
	}
}

// estimateError estimates the error of the last of a series of
// integrations done at degree 1, 2, ..., k of the same rule.
//
// For k = 2 the estimate is the plain difference of the two results. For
// k > 2 the extrapolation formula of Borwein, Bailey & Girgensohn is used,
// assuming that each degree increment roughly doubles the accuracy. The
// formula is not very conservative but has proven robust in practice.
func estimateError(ctx *mpf.Context, results []*big.Float, prec uint, epsilon *big.Float) *big.Float {
	assert(len(results) >= 2, "error estimation needs at least two results")
	n := len(results)
	if n == 2 {
		return ctx.Abs(ctx.Sub(results[0], results[1]))
	}
	last, prev, prev2 := results[n-1], results[n-2], results[n-3]
	if last.Cmp(prev) == 0 && last.Cmp(prev2) == 0 {
		return ctx.New()
	}
	d1 := ctx.Sub(last, prev)
	d2 := ctx.Sub(last, prev2)
	if d1.Sign() == 0 || d2.Sign() == 0 {
		return ctx.Round(epsilon)
	}
	// decimal magnitudes from binary ones; crude but all the formula needs
	D1 := float64(mpf.Mag(d1)) * math.Log10(2)
	D2 := float64(mpf.Mag(d2)) * math.Log10(2)
	D3 := -float64(prec)
	ratio := 0.0
	if D2 != 0 {
		ratio = D1 * D1 / D2
	}
	D4 := math.Min(0, math.Max(ratio, math.Max(2*D1, D3)))
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(-int64(math.Trunc(D4))), nil)
	e, err := ctx.Div(ctx.NewInt(1), ctx.FromInt(p))
	assert(err == nil, "power of ten must be finite and nonzero")
	return e
}

// guessDegree estimates the rule degree needed for full accuracy of a
// typical integral at the given bit precision, plus headroom of 2 for
// slightly misbehaved integrands. Tuned for both rules of this package.
func guessDegree(prec uint) int {
	g := 4
	if prec > 30 {
		g += int(math.Log2(float64(prec) / 30.0))
	}
	return g + 2
}
