/*
Package mpcalc provides arbitrary-precision numerical calculus: summation
of infinite series and products, limits of sequences, convergence
acceleration, high-order numerical differentiation and integration of
oscillatory functions.

Arbitrary precision

Floating-point values are big.Float numbers, and every computation runs
against an explicit mpf.Context carrying the working precision in bits.
Slowly convergent sequences surrender their limit only through
extrapolation, which trades cancellation for convergence speed; the
algorithms in this package therefore raise the context precision
internally, often to a multiple of the target precision. Client callbacks
receive their arguments at that elevated precision and should derive any
values they create from the same context, so that intermediate terms are
accurate enough for the extrapolation to work on.

Package layout

Package mpf holds the floating-point kernel: contexts, elementary
functions and cached constants. Package quad supplies adaptive tanh-sinh
and Gauss-Legendre quadrature, which this package uses for
Euler-Maclaurin tail integrals, contour differentiation and oscillatory
integrals.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package mpcalc

import (
	"math/big"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mpcalc'
func tracer() tracing.Trace {
	return tracing.Select("mpcalc")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// Func is a real function of one real variable, evaluated at whatever
// precision the ambient context currently has.
type Func func(x *big.Float) (*big.Float, error)

// Interval denotes a range [A, B] of summation, integration or limit
// reduction. Either bound may be infinite.
type Interval struct {
	A *big.Float
	B *big.Float
}
