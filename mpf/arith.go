package mpf

import (
	"errors"
	"math/big"
)

// ErrDomain signals that a function argument lies outside the domain of a
// real-valued operation (log of a non-positive number, square root of a
// negative number, division of zero by zero).
var ErrDomain = errors.New("mpf: argument outside function domain")

// Add returns x + y rounded to context precision.
func (c *Context) Add(x, y *big.Float) *big.Float {
	return c.New().Add(x, y)
}

// Sub returns x - y rounded to context precision.
func (c *Context) Sub(x, y *big.Float) *big.Float {
	return c.New().Sub(x, y)
}

// Mul returns x * y rounded to context precision.
func (c *Context) Mul(x, y *big.Float) *big.Float {
	return c.New().Mul(x, y)
}

// Div returns x / y rounded to context precision. Returns ErrDomain when
// both operands are zero or both are infinite.
func (c *Context) Div(x, y *big.Float) (*big.Float, error) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return nil, ErrDomain
	}
	if x.IsInf() && y.IsInf() {
		return nil, ErrDomain
	}
	return c.New().Quo(x, y), nil
}

// Neg returns -x rounded to context precision.
func (c *Context) Neg(x *big.Float) *big.Float {
	return c.New().Neg(x)
}

// Abs returns |x| rounded to context precision.
func (c *Context) Abs(x *big.Float) *big.Float {
	return c.New().Abs(x)
}

// MulInt returns x * m rounded to context precision.
func (c *Context) MulInt(x *big.Float, m int64) *big.Float {
	return c.Mul(x, c.NewInt(m))
}

// DivInt returns x / m rounded to context precision. m must not be 0.
func (c *Context) DivInt(x *big.Float, m int64) *big.Float {
	assert(m != 0, "division by integer zero")
	return c.New().Quo(x, c.NewInt(m))
}

// Half returns x / 2 rounded to context precision.
func (c *Context) Half(x *big.Float) *big.Float {
	return c.DivInt(x, 2)
}

// Mag returns the binary magnitude of x: the unique e with
// 2^(e-1) <= |x| < 2^e. Mag(0) is 0 by convention.
func Mag(x *big.Float) int {
	if x.Sign() == 0 {
		return 0
	}
	return x.MantExp(nil)
}

// IsPosInf reports whether x is +Inf.
func IsPosInf(x *big.Float) bool {
	return x.IsInf() && x.Sign() > 0
}

// IsNegInf reports whether x is -Inf.
func IsNegInf(x *big.Float) bool {
	return x.IsInf() && x.Sign() < 0
}
