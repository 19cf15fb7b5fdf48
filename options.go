package mpcalc

import (
	"fmt"
	"math/big"
	"strings"
)

// Method is a set of acceleration methods the adaptive summation driver
// may apply. Methods are flags and can be combined, except for
// MethodDirect, which switches all acceleration off.
type Method uint

const (
	// MethodRichardson enables Richardson extrapolation. O(N) work for N
	// terms, but only suited to sequences converging like sums of
	// rational polynomial terms.
	MethodRichardson Method = 1 << iota
	// MethodShanks enables the iterated Shanks transformation. O(N^2)
	// work, robust for oscillating sequences and many divergent series.
	MethodShanks
	// MethodEulerMaclaurin enables Euler-Maclaurin tail summation, which
	// trades terms for quadrature and endpoint derivatives.
	MethodEulerMaclaurin
	// MethodDirect disables acceleration entirely; terms are added until
	// the partial sums settle.
	MethodDirect
)

// DefaultMethod is what the driver applies when no method is selected.
const DefaultMethod = MethodRichardson | MethodShanks

func (m Method) String() string {
	var parts []string
	if m&MethodRichardson != 0 {
		parts = append(parts, "richardson")
	}
	if m&MethodShanks != 0 {
		parts = append(parts, "shanks")
	}
	if m&MethodEulerMaclaurin != 0 {
		parts = append(parts, "euler-maclaurin")
	}
	if m&MethodDirect != 0 {
		parts = append(parts, "direct")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// ParseMethod reads a method specification string of '+'-joined method
// names, e.g. "r+s" or "shanks+euler-maclaurin". Single letter
// abbreviations are accepted.
func ParseMethod(spec string) (Method, error) {
	var m Method
	for _, tok := range strings.Split(spec, "+") {
		switch strings.TrimSpace(tok) {
		case "r", "richardson":
			m |= MethodRichardson
		case "s", "shanks":
			m |= MethodShanks
		case "e", "euler-maclaurin":
			m |= MethodEulerMaclaurin
		case "d", "direct":
			m |= MethodDirect
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, tok)
		}
	}
	return m, nil
}

// SumOptions steers the adaptive extrapolation driver behind NSum, NProd
// and Limit. The zero value requests the defaults.
type SumOptions struct {
	// Tol is the target accuracy; nil selects 2^(-prec-9), slightly below
	// the unit roundoff of the calling context.
	Tol *big.Float
	// Method selects the acceleration methods to race against each other;
	// 0 selects DefaultMethod.
	Method Method
	// MaxTerms bounds the number of sequence terms evaluated;
	// 0 selects 10 terms per decimal digit of the target precision.
	MaxTerms int
	// Steps gives the batch sizes in which new terms are added. When the
	// list is exhausted, the last entry is repeated. An empty list selects
	// growing batches of 10, 20, 30, ...
	Steps []int
	// Strict makes failure to converge an error (ErrNoConvergence)
	// instead of returning the best estimate found.
	Strict bool
	// Verbose traces the progress of the driver at info level.
	Verbose bool
}

// LimitOptions steers Limit.
type LimitOptions struct {
	SumOptions
	// Direction of approach for a finite limit point: the function is
	// sampled at x + d/n for n = 1, 2, 3, ... with d = Direction.
	// 0 selects +1. Ignored for limits at infinity.
	Direction int
	// Exp samples at exponentially spaced points n = 2, 4, 8, ... instead
	// of linearly spaced ones. Helps for slow approach rates, but the
	// function must tolerate arguments extremely close to the limit point.
	Exp bool
}

// EMOptions steers Euler-Maclaurin summation.
type EMOptions struct {
	// Tol is the threshold below which the correction series is
	// considered converged; nil selects the context epsilon.
	Tol *big.Float
	// Reject stops the correction series as soon as the quotient of two
	// consecutive terms falls below it. 0 selects 10, continuing as long
	// as each term adds at least one decimal.
	Reject int
	// Integral optionally supplies the symbolically known value of the
	// tail integral, which is otherwise computed by quadrature.
	Integral *big.Float
	// ADiffs and BDiffs optionally supply the symbolically known endpoint
	// derivatives f(a), f'(a), ... (and for b), which are otherwise
	// computed by finite differences.
	ADiffs DerivativeIterator
	BDiffs DerivativeIterator
	// Verbose traces term magnitudes at info level.
	Verbose bool
}

// DiffMethod selects how derivatives are computed.
type DiffMethod int

const (
	// DiffStep computes derivatives by central (or directed) finite
	// differences with a tiny step. An n-th derivative costs n+1 function
	// evaluations at (n+1) times the target precision, so the function
	// must support fast evaluation at high precision.
	DiffStep DiffMethod = iota
	// DiffQuad computes derivatives by integrating along a circular
	// contour around the evaluation point. Many more function
	// evaluations, but hardly any extra precision; faster for high
	// orders when evaluation cost grows steeply with precision.
	DiffQuad
)

// ComplexFunc evaluates a function at the complex point re + i*im,
// returning real and imaginary part of the value. Required for contour
// differentiation, which samples the function off the real line.
type ComplexFunc func(re, im *big.Float) (vre, vim *big.Float, err error)

// DiffOptions steers numerical differentiation. The zero value selects a
// central finite difference with automatic step size.
type DiffOptions struct {
	// Method selects finite differences (default) or contour integration.
	Method DiffMethod
	// Direction of the finite difference: -1 for a left difference, 0 for
	// a central difference, +1 for a right difference.
	Direction int
	// AddPrec is extra precision for the step size, accounting for the
	// function's sensitivity to perturbations. 0 selects 10 bits.
	AddPrec int
	// Relative chooses the step size relative to the magnitude of x
	// rather than as an absolute value; useful for large or tiny x.
	Relative bool
	// H manually overrides the step size.
	H *big.Float
	// Singular avoids evaluating exactly at x by shifting all sample
	// points half a step; useful for removable singularities.
	Singular bool
	// Radius of the integration contour for DiffQuad. nil selects 1/4.
	// It must be small enough that f has no singularity within that
	// distance from the evaluation point.
	Radius *big.Float
	// Complex evaluates the function at complex arguments; required for
	// DiffQuad and ignored otherwise.
	Complex ComplexFunc
}

// OscOptions steers oscillatory integration. Exactly one of Omega, Period
// and Zeros must be set.
type OscOptions struct {
	// Omega is the angular frequency of the integrand's oscillation; its
	// zeros are assumed to lie half a period 2pi/omega apart.
	Omega *big.Float
	// Period of the integrand's oscillation; zeros are assumed to lie
	// half a period apart.
	Period *big.Float
	// Zeros returns the n-th zero (or other periodic reference point) of
	// the integrand, for arbitrary integration ranges or oscillations
	// with nonuniform zero spacing.
	Zeros func(n int64) (*big.Float, error)
}
