/*
Package mpf provides the arbitrary-precision arithmetic kernel used by the
calculus routines of mpcalc.

Numbers are plain *math/big.Float values; mpf adds what the calculus layer
needs on top of them: a working-precision context with scoped elevation, a
rounding-aware operation set, elementary transcendental functions evaluable
at any bit precision, and memoized mathematical constants (pi, Bernoulli
numbers, factorials).

A Context carries the ambient working precision and rounding mode for one
logical thread of computation. It is an explicit parameter everywhere: no
package-global precision exists. Routines that need extra precision
elevate the context temporarily,

	restore := ctx.Elevate(10)
	defer restore()

and restore it on every exit path. Restore closures are idempotent, so it
is safe to both defer one and call it early before re-rounding a result.

A Context must not be shared between concurrently running computations.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package mpf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mpcalc.mpf'
func tracer() tracing.Trace {
	return tracing.Select("mpcalc.mpf")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
