package mpcalc

import (
	"errors"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
	"github.com/npillmayer/mpcalc/quad"
)

// SumEM approximates the sum of f(k) over the given interval by the
// Euler-Maclaurin formula
//
//	S ~ integral(f, a..b) + (f(a)+f(b))/2
//	    + sum B(2k)/(2k)! (f^(2k-1)(b) - f^(2k-1)(a))
//
// where either bound may be infinite. It returns the approximation
// together with an error estimate accumulated from the correction series
// and the quadrature.
//
// The correction series is not generally convergent (a notable exception
// are polynomials, for which the formula is exact). Summation therefore
// stops as soon as the quotient of two consecutive terms falls below the
// reject threshold: by default, as long as each term still adds a
// decimal. Convergence to a given tolerance can nevertheless be forced
// for b = infinity by summing the head up to a+N directly and applying
// the formula to the range beyond; that is what NSum does.
//
// Integral and endpoint derivatives are computed numerically by default.
// When their symbolic values are known, passing them through the options
// is much faster.
func SumEM(ctx *mpf.Context, f Func, iv Interval, opts *EMOptions) (sum, errEst *big.Float, err error) {
	var o EMOptions
	if opts != nil {
		o = *opts
	}
	tol := o.Tol
	if tol == nil {
		tol = ctx.Eps()
	}
	reject := int64(o.Reject)
	if reject == 0 {
		reject = 10
	}
	logf := tracer().Debugf
	if o.Verbose {
		logf = tracer().Infof
	}
	a, b := iv.A, iv.B
	assert(a != nil && b != nil, "summation interval with nil bound")
	adiffs := o.ADiffs
	if mpf.IsNegInf(a) {
		adiffs = zeroDerivatives{ctx}
	} else if adiffs == nil {
		adiffs = Diffs(ctx, f, a, -1, nil)
	}
	bdiffs := o.BDiffs
	if mpf.IsPosInf(b) {
		bdiffs = zeroDerivatives{ctx}
	} else if bdiffs == nil {
		bdiffs = Diffs(ctx, f, b, -1, nil)
	}

	restore := ctx.Elevate(10)
	defer restore()
	s := ctx.New()
	errSum := ctx.New()
	prev := ctx.New()
	for k := 0; ; k++ {
		da, err := adiffs.Next()
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				break
			}
			return nil, nil, err
		}
		db, err := bdiffs.Next()
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				break
			}
			return nil, nil, err
		}
		if k&1 == 0 {
			continue
		}
		term := ctx.Sub(db, da)
		term.Mul(term, ctx.FromRat(mpf.Bernoulli(k+1)))
		term.Quo(term, ctx.FromInt(mpf.Factorial(k+1)))
		mag := ctx.Abs(term)
		logf("term %d magnitude %v", k, mag)
		if k > 4 && mag.Cmp(tol) < 0 {
			s.Add(s, term)
			break
		} else if k > 4 && ctx.New().Quo(ctx.Abs(prev), mag).Cmp(ctx.NewInt(reject)) < 0 {
			logf("correction series failed to converge")
			errSum.Add(errSum, mag)
			break
		}
		s.Add(s, term)
		prev = term
	}

	// endpoint correction
	if !mpf.IsNegInf(a) {
		fa, err := f(a)
		if err != nil {
			return nil, nil, err
		}
		s.Add(s, ctx.Half(fa))
	}
	if !mpf.IsPosInf(b) {
		fb, err := f(b)
		if err != nil {
			return nil, nil, err
		}
		s.Add(s, ctx.Half(fb))
	}

	// tail integral
	if o.Integral != nil {
		s.Add(s, o.Integral)
	} else {
		logf("integrating from %v to %v", a, b)
		I, ierr, err := quad.Quad(ctx, func(xs ...*big.Float) (*big.Float, error) {
			return f(xs[0])
		}, nil, []*big.Float{a, b})
		if err != nil {
			return nil, nil, err
		}
		s.Add(s, I)
		errSum.Add(errSum, ierr)
	}
	restore()
	return ctx.Round(s), ctx.Round(errSum), nil
}

// zeroDerivatives is the derivative sequence of a function flat at an
// infinite endpoint: all zeros, never exhausted.
type zeroDerivatives struct {
	ctx *mpf.Context
}

func (z zeroDerivatives) Next() (*big.Float, error) {
	return z.ctx.New(), nil
}
