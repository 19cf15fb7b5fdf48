package mpcalc

import (
	"fmt"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
)

// NSum computes the sum of f(k) for integer k ranging over the given
// interval, where either bound may be infinite. Finite sums are added up
// directly; infinite sums go through the adaptive extrapolation driver,
// which accelerates the sequence of partial sums (see SumOptions for the
// available methods and knobs).
//
// Acceleration makes quick work of many slowly convergent and even
// divergent series, but it is a heuristic: the methods assume the terms
// follow a regular rate of convergence. Irregular series are best summed
// with MethodDirect and, if needed, a manually raised precision.
//
// A doubly infinite sum is folded into f(0) plus a sum of f(k) + f(-k)
// over the positive integers; a sum with only the lower bound infinite is
// mirrored into one with an infinite upper bound.
func NSum(ctx *mpf.Context, f Func, iv Interval, opts *SumOptions) (*big.Float, error) {
	a, b := iv.A, iv.B
	assert(a != nil && b != nil, "summation interval with nil bound")
	if mpf.IsNegInf(a) {
		if mpf.IsPosInf(b) {
			f0, err := f(ctx.New())
			if err != nil {
				return nil, err
			}
			rest, err := NSum(ctx, func(k *big.Float) (*big.Float, error) {
				pos, err := f(k)
				if err != nil {
					return nil, err
				}
				neg, err := f(ctx.Neg(k))
				if err != nil {
					return nil, err
				}
				return ctx.Add(neg, pos), nil
			}, Interval{ctx.NewInt(1), ctx.Inf(1)}, opts)
			if err != nil {
				return nil, err
			}
			return ctx.Add(f0, rest), nil
		}
		return NSum(ctx, func(k *big.Float) (*big.Float, error) {
			return f(ctx.Neg(k))
		}, Interval{ctx.Neg(b), ctx.Inf(1)}, opts)
	}
	if !mpf.IsPosInf(b) {
		ai, _ := a.Int64()
		bi, _ := b.Int64()
		s := ctx.New()
		for k := ai; k <= bi; k++ {
			v, err := f(ctx.NewInt(k))
			if err != nil {
				return nil, err
			}
			s.Add(s, v)
		}
		return s, nil
	}

	ai, _ := a.Int64()
	update := func(partial []*big.Float, from, to int) ([]*big.Float, error) {
		psum := ctx.New()
		if len(partial) > 0 {
			psum = partial[len(partial)-1]
		}
		for k := from; k < to; k++ {
			v, err := f(ctx.NewInt(ai + int64(k)))
			if err != nil {
				return nil, err
			}
			psum = ctx.Add(psum, v)
			partial = append(partial, psum)
		}
		return partial, nil
	}

	prec := ctx.Prec()
	emfun := func(index int, tol *big.Float) (*big.Float, *big.Float, error) {
		// Euler-Maclaurin needs no cancellation headroom, so it runs just
		// above the caller's precision rather than at the driver's.
		restore := ctx.ElevateTo(prec + 10)
		defer restore()
		return SumEM(ctx, f, Interval{ctx.NewInt(ai + int64(index)), ctx.Inf(1)}, &EMOptions{Tol: tol})
	}
	return adaptiveExtrapolation(ctx, update, emfun, opts)
}

// NProd computes the product of f(k) for integer k ranging over the given
// interval, where either bound may be infinite. An infinite product is
// evaluated as the exponential of the sum of logarithms, with all options
// forwarded to NSum; factors must be positive for that route. Finite
// products are multiplied out directly.
func NProd(ctx *mpf.Context, f Func, iv Interval, opts *SumOptions) (*big.Float, error) {
	a, b := iv.A, iv.B
	assert(a != nil && b != nil, "product interval with nil bound")
	if !a.IsInf() && !b.IsInf() {
		ai, _ := a.Int64()
		bi, _ := b.Int64()
		p := ctx.NewInt(1)
		for k := ai; k <= bi; k++ {
			v, err := f(ctx.NewInt(k))
			if err != nil {
				return nil, err
			}
			p = ctx.Mul(p, v)
		}
		return p, nil
	}
	// The terms evaluate log(1+eps), which in itself is inaccurate. It
	// works out because the summation driver greatly raises the working
	// precision.
	restore := ctx.Elevate(10)
	v, err := NSum(ctx, func(k *big.Float) (*big.Float, error) {
		fk, err := f(k)
		if err != nil {
			return nil, err
		}
		return ctx.Log(fk)
	}, iv, opts)
	restore()
	if err != nil {
		return nil, err
	}
	return ctx.Exp(v), nil
}

// Limit estimates the limit of f(t) for t approaching x, where x may be
// finite or infinite. For finite x, f is sampled at x + d/n for
// consecutive integers n, with approach direction d taken from the
// options; for infinite x, at sign(x)*n. If the samples do not settle
// fast enough, the driver accelerates them by Richardson extrapolation or
// the Shanks transformation, as configured.
func Limit(ctx *mpf.Context, f Func, x *big.Float, opts *LimitOptions) (*big.Float, error) {
	var o LimitOptions
	if opts != nil {
		o = *opts
	}
	var g Func
	if x.IsInf() {
		d := ctx.NewInt(int64(x.Sign()))
		g = func(n *big.Float) (*big.Float, error) {
			return f(ctx.Mul(n, d))
		}
	} else {
		dir := o.Direction
		if dir == 0 {
			dir = 1
		}
		d := ctx.NewInt(int64(dir))
		g = func(n *big.Float) (*big.Float, error) {
			q, err := ctx.Div(d, n)
			if err != nil {
				return nil, fmt.Errorf("%w: limit sampled at distance 0", ErrInvalidOption)
			}
			return f(ctx.Add(x, q))
		}
	}

	update := func(partial []*big.Float, from, to int) ([]*big.Float, error) {
		for k := from; k < to; k++ {
			var n *big.Float
			if o.Exp {
				n = ctx.Ldexp(1, k+1)
			} else {
				n = ctx.NewInt(int64(k) + 1)
			}
			v, err := g(ctx.Add(n, ctx.NewInt(1)))
			if err != nil {
				return nil, err
			}
			partial = append(partial, v)
		}
		return partial, nil
	}

	so := o.SumOptions
	if so.Steps == nil {
		// growing batches do not pay off for limits
		so.Steps = []int{10}
	}
	return adaptiveExtrapolation(ctx, update, nil, &so)
}
