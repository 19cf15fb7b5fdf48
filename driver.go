package mpcalc

import (
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
)

// updateFunc extends a list of partial results with terms #from up to
// (excluding) #to and returns the extended list.
type updateFunc func(partial []*big.Float, from, to int) ([]*big.Float, error)

// emFunc sums the series tail beyond term #index by Euler-Maclaurin,
// returning the tail value and an error estimate.
type emFunc func(index int, tol *big.Float) (sum, errEst *big.Float, err error)

// adaptiveExtrapolation drives the summation behind NSum, NProd and
// Limit. It fetches sequence terms in batches and after each batch races
// the enabled estimates against each other: the direct difference of the
// last two partial results, Richardson extrapolation, the Shanks
// transformation and Euler-Maclaurin tail summation. The first estimate
// whose error measure drops below the tolerance wins.
//
// Extrapolation feeds on cancellation, so the working precision is raised
// to four times the target precision while terms are computed (plus a
// slight margin when only direct summation or Euler-Maclaurin are in
// play). A method that has used up even that margin, measured by its
// largest cancellation weight, is switched off for the remaining rounds.
// Euler-Maclaurin is switched off as soon as the partial results
// alternate in sign, since quadrature of an oscillating term function
// would most likely fail.
func adaptiveExtrapolation(ctx *mpf.Context, update updateFunc, emfun emFunc, opts *SumOptions) (*big.Float, error) {
	var o SumOptions
	if opts != nil {
		o = *opts
	}
	tol := o.Tol
	if tol == nil {
		tol = ctx.Ldexp(1, -int(ctx.Prec())-9)
	}
	method := o.Method
	if method == 0 {
		method = DefaultMethod
	}
	maxTerms := o.MaxTerms
	if maxTerms == 0 {
		maxTerms = ctx.Dps() * 10
	}
	logf := tracer().Debugf
	if o.Verbose {
		logf = tracer().Infof
	}

	tryRichardson := method&MethodRichardson != 0
	tryShanks := method&MethodShanks != 0
	tryEM := method&MethodEulerMaclaurin != 0
	if method&MethodDirect != 0 {
		tryRichardson, tryShanks, tryEM = false, false, false
	}
	if tryEM && emfun == nil {
		return nil, ErrInvalidMethod
	}

	var restore func()
	if tryRichardson || tryShanks {
		restore = ctx.ScalePrec(4, 1)
	} else {
		restore = ctx.Elevate(30)
	}
	defer restore()

	lastRichardson := ctx.New()
	var shanksTable [][]*big.Float
	var partial []*big.Float
	best := ctx.New()
	index := 0
	step := 10
	round := 0

	for index < maxTerms {
		if len(o.Steps) > 0 {
			if round < len(o.Steps) {
				step = o.Steps[round]
			}
		} else {
			step = 10 * (round + 1)
		}
		round++
		logf("adding terms #%d-#%d", index, index+step)
		var err error
		partial, err = update(partial, index, index+step)
		if err != nil {
			return nil, err
		}
		index += step
		if len(partial) < 2 {
			continue
		}

		best = partial[len(partial)-1]
		errEst := ctx.Abs(ctx.Sub(best, partial[len(partial)-2]))
		logf("direct error: %v", errEst)
		if errEst.Cmp(tol) <= 0 {
			restore()
			return ctx.Round(best), nil
		}

		if tryRichardson && len(partial) >= 3 {
			value, maxc, err := Richardson(ctx, partial)
			if err != nil {
				return nil, err
			}
			rErr := ctx.Abs(ctx.Sub(value, lastRichardson))
			logf("richardson error: %v", rErr)
			if rErr.Cmp(tol) <= 0 {
				restore()
				return ctx.Round(value), nil
			}
			lastRichardson = value
			if ctx.Mul(ctx.Eps(), maxc).Cmp(tol) > 0 {
				logf("ran out of precision for richardson extrapolation")
				tryRichardson = false
			}
			if rErr.Cmp(errEst) < 0 {
				errEst = rErr
				best = value
			}
		}

		if tryShanks {
			shanksTable, err = Shanks(ctx, partial, shanksTable, true)
			if err != nil {
				return nil, err
			}
			if len(shanksTable) > 0 {
				// a row of only 2 entries holds a single Aitken step; its
				// error proxy would be zero, which is no convergence signal
				row := shanksTable[len(shanksTable)-1]
				if len(row) >= 3 {
					est := row[len(row)-1]
					maxc := ctx.Abs(row[len(row)-2])
					sErr := ctx.Abs(ctx.Sub(est, row[len(row)-3]))
					logf("shanks error: %v", sErr)
					if sErr.Cmp(tol) <= 0 {
						restore()
						return ctx.Round(est), nil
					}
					if ctx.Mul(ctx.Eps(), maxc).Cmp(tol) > 0 {
						logf("ran out of precision for shanks transformation")
						tryShanks = false
					}
					if sErr.Cmp(errEst) < 0 {
						errEst = sErr
						best = est
					}
				}
			}
		}

		if tryEM {
			if partial[len(partial)-1].Sign()*partial[len(partial)-2].Sign() == -1 {
				logf("series appears to be alternating, not using euler-maclaurin")
				tryEM = false
			} else {
				value, emErr, err := emfun(index, tol)
				if err != nil {
					return nil, err
				}
				value = ctx.Add(value, partial[len(partial)-1])
				logf("euler-maclaurin error: %v", emErr)
				if emErr.Cmp(tol) <= 0 {
					restore()
					return ctx.Round(value), nil
				}
				if emErr.Cmp(errEst) < 0 {
					best = value
				}
			}
		}
	}
	restore()
	if o.Strict {
		return nil, ErrNoConvergence
	}
	logf("warning: failed to converge to target accuracy")
	return ctx.Round(best), nil
}
