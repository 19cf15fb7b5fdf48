package mpcalc

import "errors"

// ErrNoConvergence is returned by strict-mode summation and limit
// evaluation when the target accuracy was not reached within the term
// budget. Without strict mode, the best estimate found is returned
// instead.
var ErrNoConvergence = errors.New("mpcalc: failed to converge to target accuracy")

// ErrFewTerms signals an input sequence with too few elements for the
// requested transformation.
var ErrFewTerms = errors.New("mpcalc: sequence has too few terms")

// ErrInvalidMethod signals an unknown acceleration method name or flag
// combination.
var ErrInvalidMethod = errors.New("mpcalc: unknown extrapolation method")

// ErrInvalidOption signals option values that contradict each other or the
// given interval.
var ErrInvalidOption = errors.New("mpcalc: invalid option value")

// ErrExhausted is returned by derivative sequences after the final
// derivative has been delivered.
var ErrExhausted = errors.New("mpcalc: derivative sequence exhausted")
