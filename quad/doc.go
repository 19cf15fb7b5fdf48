/*
Package quad implements adaptive numerical integration at arbitrary
precision.

Two quadrature rules are provided: tanh-sinh (doubly exponential) and
Gauss-Legendre. Both share a degree-escalation driver: for each
subinterval the rule is evaluated at degree 1, 2, 3, ... until an error
extrapolation heuristic signals convergence, exploiting the property of
both rules that each degree increment roughly doubles the number of
correct digits.

Node computation is expensive at high precision, so nodes are memoized
process-wide, keyed by (rule, precision, degree), and never evicted.

Integration intervals may have infinite endpoints; integrands are mapped
onto the canonical interval [-1, 1] by variable substitution first.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package quad

import (
	"math/big"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mpcalc.quad'
func tracer() tracing.Trace {
	return tracing.Select("mpcalc.quad")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

func at(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

func ldexp(m int64, exp int, prec uint) *big.Float {
	z := at(prec).SetInt64(m)
	return z.SetMantExp(z, exp)
}
