package mpf

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// guardBits is the internal precision headroom for elementary functions.
const guardBits = 10

func at(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// Exp returns e^x rounded to context precision.
func (c *Context) Exp(x *big.Float) *big.Float {
	z := at(c.prec + guardBits).Set(x)
	return c.Round(bigfloat.Exp(z))
}

// Log returns the natural logarithm of x rounded to context precision.
// Log(0) is -Inf; negative arguments return ErrDomain.
func (c *Context) Log(x *big.Float) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: log of negative value", ErrDomain)
	}
	if x.Sign() == 0 {
		return c.Inf(-1), nil
	}
	z := at(c.prec + guardBits).Set(x)
	return c.Round(bigfloat.Log(z)), nil
}

// Pow returns x^y rounded to context precision. Negative bases return
// ErrDomain.
func (c *Context) Pow(x, y *big.Float) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: power of negative base", ErrDomain)
	}
	wp := c.prec + guardBits
	return c.Round(bigfloat.Pow(at(wp).Set(x), at(wp).Set(y))), nil
}

// Sqrt returns the square root of x rounded to context precision.
// Negative arguments return ErrDomain.
func (c *Context) Sqrt(x *big.Float) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: square root of negative value", ErrDomain)
	}
	return c.New().Sqrt(x), nil
}

// Pi returns pi rounded to context precision.
func (c *Context) Pi() *big.Float {
	return c.Round(Pi(c.prec + 2))
}

// Sin returns sin(x) rounded to context precision. x must be finite.
func (c *Context) Sin(x *big.Float) *big.Float {
	s, _ := sincosAt(x, c.prec)
	return c.Round(s)
}

// Cos returns cos(x) rounded to context precision. x must be finite.
func (c *Context) Cos(x *big.Float) *big.Float {
	_, co := sincosAt(x, c.prec)
	return c.Round(co)
}

// sincosAt evaluates sine and cosine at target precision prec, using
// argument reduction modulo 2*pi followed by Taylor summation on [-pi, pi].
// The working precision absorbs both the reduction cancellation (one bit
// per binary magnitude of x) and the mild term growth of the series.
func sincosAt(x *big.Float, prec uint) (sin, cos *big.Float) {
	assert(!x.IsInf(), "sine/cosine of infinite argument")
	mag := Mag(x)
	if mag < 0 {
		mag = 0
	}
	wp := prec + guardBits + uint(mag) + 10
	r := at(wp).Set(x)
	twopi := at(wp).Add(Pi(wp+2), Pi(wp+2))
	if x.Sign() != 0 {
		q := at(wp).Quo(r, twopi)
		n, _ := q.Int(nil)
		r.Sub(r, at(wp).Mul(twopi, at(wp).SetInt(n)))
		pi := Pi(wp)
		negpi := at(wp).Neg(pi)
		for r.Cmp(pi) > 0 {
			r.Sub(r, twopi)
		}
		for r.Cmp(negpi) < 0 {
			r.Add(r, twopi)
		}
	}
	r2 := at(wp).Mul(r, r)

	sin = at(wp).Set(r)
	term := at(wp).Set(r)
	for k := int64(1); ; k++ {
		term.Mul(term, r2)
		term.Quo(term, at(wp).SetInt64(2*k*(2*k+1)))
		term.Neg(term)
		sin.Add(sin, term)
		if term.Sign() == 0 || Mag(term) < -int(wp) {
			break
		}
	}

	cos = at(wp).SetInt64(1)
	term = at(wp).SetInt64(1)
	for k := int64(1); ; k++ {
		term.Mul(term, r2)
		term.Quo(term, at(wp).SetInt64((2*k-1)*(2*k)))
		term.Neg(term)
		cos.Add(cos, term)
		if term.Sign() == 0 || Mag(term) < -int(wp) {
			break
		}
	}
	return sin, cos
}

// Sinh returns the hyperbolic sine of x rounded to context precision.
func (c *Context) Sinh(x *big.Float) *big.Float {
	if x.IsInf() {
		return c.Round(x)
	}
	wp := c.prec + guardBits + smallGuard(x)
	e := bigfloat.Exp(at(wp).Set(x))
	ei := at(wp).Quo(at(wp).SetInt64(1), e)
	s := at(wp).Sub(e, ei)
	return c.Round(s.Quo(s, at(wp).SetInt64(2)))
}

// Cosh returns the hyperbolic cosine of x rounded to context precision.
func (c *Context) Cosh(x *big.Float) *big.Float {
	if x.IsInf() {
		return c.Inf(1)
	}
	wp := c.prec + guardBits
	e := bigfloat.Exp(at(wp).Set(x))
	ei := at(wp).Quo(at(wp).SetInt64(1), e)
	s := at(wp).Add(e, ei)
	return c.Round(s.Quo(s, at(wp).SetInt64(2)))
}

// Tanh returns the hyperbolic tangent of x rounded to context precision.
func (c *Context) Tanh(x *big.Float) *big.Float {
	if x.IsInf() {
		return c.NewInt(int64(x.Sign()))
	}
	wp := c.prec + guardBits + smallGuard(x)
	e := bigfloat.Exp(at(wp).Set(x))
	ei := at(wp).Quo(at(wp).SetInt64(1), e)
	num := at(wp).Sub(e, ei)
	den := at(wp).Add(e, ei)
	return c.Round(num.Quo(num, den))
}

// smallGuard counters the subtractive cancellation of exp(x)-exp(-x)
// for arguments near zero.
func smallGuard(x *big.Float) uint {
	if x.Sign() == 0 {
		return 0
	}
	if m := Mag(x); m < 0 {
		return uint(-m)
	}
	return 0
}
