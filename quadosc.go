package mpcalc

import (
	"fmt"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
	"github.com/npillmayer/mpcalc/quad"
)

// QuadOsc integrates f over an interval with at least one infinite bound,
// where f(x) = g(x) cos(omega x + phi) for some slowly decreasing g. With
// proper input it also handles oscillations whose rate differs from a
// pure sine or cosine wave.
//
// The integral is split at consecutive zeros x_1, x_2, ... of f into
//
//	I = integral(a..x_1) + sum of integral(x_k..x_k+1)
//
// and the infinite series of segment integrals is fed to NSum, whose
// Shanks acceleration handles the alternating segment values well. The
// zeros are described by exactly one of the options: an angular
// frequency, a period, or an explicit zero distribution (needed for
// asymptotically periodic integrands like sin(exp(x)); see OscOptions).
// Deriving zeros from a frequency or period places them half a period
// apart, which turns the segment series alternating and typically makes
// the extrapolation much more efficient than full-period segments.
//
// Segment integration uses Gauss-Legendre quadrature, since the segments
// are smooth and their number is large. QuadOsc pays off for slowly
// decaying integrands; anything decaying exponentially or faster is
// handled better (and much faster) by Quad directly.
func QuadOsc(ctx *mpf.Context, f Func, iv Interval, opts *OscOptions) (*big.Float, error) {
	var o OscOptions
	if opts != nil {
		o = *opts
	}
	given := 0
	if o.Omega != nil {
		given++
	}
	if o.Period != nil {
		given++
	}
	if o.Zeros != nil {
		given++
	}
	if given != 1 {
		return nil, fmt.Errorf("%w: need exactly one of omega, period, zeros", ErrInvalidOption)
	}
	a, b := iv.A, iv.B
	assert(a != nil && b != nil, "integration interval with nil bound")
	if mpf.IsNegInf(a) && mpf.IsPosInf(b) {
		s1, err := QuadOsc(ctx, f, Interval{a, ctx.New()}, &o)
		if err != nil {
			return nil, err
		}
		s2, err := QuadOsc(ctx, f, Interval{ctx.New(), b}, &o)
		if err != nil {
			return nil, err
		}
		return ctx.Add(s1, s2), nil
	}
	if mpf.IsNegInf(a) {
		// mirror onto [-b, inf); the zeros of f(-x) are the negated
		// zeros of f on the negative axis
		ro := o
		if o.Zeros != nil {
			z := o.Zeros
			ro = OscOptions{Zeros: func(n int64) (*big.Float, error) {
				zn, err := z(-n)
				if err != nil {
					return nil, err
				}
				return ctx.Neg(zn), nil
			}}
		}
		return QuadOsc(ctx, func(x *big.Float) (*big.Float, error) {
			return f(ctx.Neg(x))
		}, Interval{ctx.Neg(b), ctx.Neg(a)}, &ro)
	}
	if !mpf.IsPosInf(b) {
		return nil, fmt.Errorf("%w: oscillatory quadrature needs an infinite interval", ErrInvalidOption)
	}

	zeros := o.Zeros
	if zeros == nil {
		period := o.Period
		if o.Omega != nil {
			p, err := ctx.Div(ctx.MulInt(ctx.Pi(), 2), o.Omega)
			if err != nil {
				return nil, fmt.Errorf("%w: zero frequency", ErrInvalidOption)
			}
			period = p
		}
		half := ctx.Half(period)
		zeros = func(n int64) (*big.Float, error) {
			return ctx.MulInt(half, n), nil
		}
	}

	g := func(xs ...*big.Float) (*big.Float, error) {
		return f(xs[0])
	}
	z1, err := zeros(1)
	if err != nil {
		return nil, err
	}
	s, _, err := quad.QuadGL(ctx, g, nil, []*big.Float{a, z1})
	if err != nil {
		return nil, err
	}
	tail, err := NSum(ctx, func(k *big.Float) (*big.Float, error) {
		kn, _ := k.Int64()
		zk, err := zeros(kn)
		if err != nil {
			return nil, err
		}
		zk1, err := zeros(kn + 1)
		if err != nil {
			return nil, err
		}
		v, _, err := quad.QuadGL(ctx, g, nil, []*big.Float{zk, zk1})
		return v, err
	}, Interval{ctx.NewInt(1), ctx.Inf(1)}, nil)
	if err != nil {
		return nil, err
	}
	return ctx.Add(s, tail), nil
}
