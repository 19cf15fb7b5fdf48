package mpcalc

import (
	"errors"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
)

// DerivativeIterator yields the values of a derivative sequence
// f(x), f'(x), f''(x), ... one at a time, returning ErrExhausted after
// the final one. Infinite sequences never exhaust.
type DerivativeIterator interface {
	Next() (*big.Float, error)
}

// DerivativeSeq is a single-pass cursor over the derivatives of a
// function at a point, created by Diffs. Derivatives are produced from
// shared sample batches, so reading the first k derivatives costs O(k)
// function evaluations rather than the O(k^2) of k separate Diff calls.
//
// A batch of samples for differences up to order B serves all orders from
// the previous batch bound upward; batch bounds grow geometrically, so
// sample computation is amortized across the orders each batch covers.
type DerivativeSeq struct {
	ctx  *mpf.Context
	f    Func
	x    *big.Float
	n    int // highest order to produce, -1 for unbounded
	opts DiffOptions
	k    int // next order to deliver
	lo   int // current batch covers orders lo..hi-1
	hi   int
	y    []*big.Float // samples of the current batch
	norm *big.Float
	wp   uint
	done bool
}

// Diffs returns a cursor over the sequence of derivatives of f at x, up
// to order n; pass n = -1 for an unbounded sequence. Options are the same
// as for Diff. When the number of derivatives needed is known in advance,
// passing it as n sizes the sample batches exactly and is slightly
// cheaper.
func Diffs(ctx *mpf.Context, f Func, x *big.Float, n int, opts *DiffOptions) *DerivativeSeq {
	ds := &DerivativeSeq{ctx: ctx, f: f, x: x, n: n}
	if opts != nil {
		ds.opts = *opts
	}
	ds.lo = 1
	if n < 0 {
		ds.hi = 2
	} else {
		ds.hi = n + 1
	}
	return ds
}

// Next returns the next derivative of the sequence, or ErrExhausted once
// the order bound has been passed.
func (ds *DerivativeSeq) Next() (*big.Float, error) {
	ctx := ds.ctx
	if ds.done || (ds.n >= 0 && ds.k > ds.n) {
		ds.done = true
		return nil, ErrExhausted
	}
	if ds.opts.Method == DiffQuad {
		v, err := Diff(ctx, ds.f, ds.x, ds.k, &ds.opts)
		if err != nil {
			return nil, err
		}
		ds.k++
		return v, nil
	}
	if ds.k == 0 {
		ds.k = 1
		if ds.opts.Singular {
			return Diff(ctx, ds.f, ds.x, 0, &ds.opts)
		}
		v, err := ds.f(ds.x)
		if err != nil {
			return nil, err
		}
		return ctx.Round(v), nil
	}
	for ds.k >= ds.hi {
		ds.lo, ds.hi = ds.hi, int(float64(ds.lo)*1.4+1)
		if ds.n >= 0 && ds.hi > ds.n+1 {
			ds.hi = ds.n + 1
		}
		ds.y = nil
	}
	if ds.y == nil {
		y, norm, wp, err := hsteps(ctx, ds.f, ds.x, ds.hi, ctx.Prec(), &ds.opts)
		if err != nil {
			return nil, err
		}
		ds.y, ds.norm, ds.wp = y, norm, wp
	}
	restore := ctx.ElevateTo(ds.wp)
	d := Difference(ctx, ds.y, ds.k)
	d.Quo(d, powInt(ctx, ds.norm, ds.k))
	restore()
	ds.k++
	return ctx.Round(d), nil
}

// Collect reads up to max derivatives from the sequence into a slice.
// A shorter slice is returned if the sequence exhausts first.
func (ds *DerivativeSeq) Collect(max int) ([]*big.Float, error) {
	var out []*big.Float
	for len(out) < max {
		d, err := ds.Next()
		if errors.Is(err, ErrExhausted) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Taylor produces the coefficients of the degree-n Taylor polynomial of f
// around x, computed by high-order numerical differentiation through
// Diffs. To evaluate the polynomial as an approximation of f, sum
// coeff[k] (t-x)^k.
func Taylor(ctx *mpf.Context, f Func, x *big.Float, n int, opts *DiffOptions) ([]*big.Float, error) {
	assert(n >= 0, "taylor polynomial degree must be nonnegative")
	seq := Diffs(ctx, f, x, n, opts)
	coeffs := make([]*big.Float, 0, n+1)
	for i := 0; ; i++ {
		d, err := seq.Next()
		if errors.Is(err, ErrExhausted) {
			break
		}
		if err != nil {
			return nil, err
		}
		coeffs = append(coeffs, ctx.New().Quo(d, ctx.FromInt(mpf.Factorial(i))))
	}
	return coeffs, nil
}
