package mpf

import (
	"math"
	"math/big"
)

// DefaultPrec is the working precision of a zero-configured context,
// comparable to IEEE double precision.
const DefaultPrec = 53

// Context holds the ambient working precision (in bits) and rounding mode
// used by all arithmetic of one computation. Every operation derived from a
// context rounds its result to the context's current precision.
//
// Contexts are mutable and not safe for concurrent use; give each logical
// thread of computation its own context.
type Context struct {
	prec uint
	mode big.RoundingMode
}

// NewContext creates a context with the given precision in bits and
// round-to-nearest-even mode. A precision of 0 selects DefaultPrec.
func NewContext(prec uint) *Context {
	if prec == 0 {
		prec = DefaultPrec
	}
	return &Context{prec: prec, mode: big.ToNearestEven}
}

// NewContextDigits creates a context from a decimal digit count.
func NewContextDigits(dps int) *Context {
	return NewContext(DigitsToBits(dps))
}

// DigitsToBits converts a decimal digit count to an equivalent bit
// precision, with one digit of headroom.
func DigitsToBits(dps int) uint {
	if dps < 1 {
		dps = 1
	}
	return uint(math.Round(float64(dps+1) * 3.3219280948873626))
}

// Prec returns the current working precision in bits.
func (c *Context) Prec() uint {
	return c.prec
}

// SetPrec sets the working precision in bits.
func (c *Context) SetPrec(prec uint) {
	assert(prec > 0, "context precision must be positive")
	c.prec = prec
}

// Dps returns the number of decimal digits representable at the current
// working precision.
func (c *Context) Dps() int {
	d := int(float64(c.prec)/3.3219280948873626) - 1
	if d < 1 {
		d = 1
	}
	return d
}

// Mode returns the current rounding mode.
func (c *Context) Mode() big.RoundingMode {
	return c.mode
}

// SetMode sets the rounding mode for subsequent operations.
func (c *Context) SetMode(mode big.RoundingMode) {
	c.mode = mode
}

// Elevate raises the working precision by extra bits and returns a restore
// closure. The closure is idempotent; callers usually defer it and may in
// addition invoke it early to re-round results at the original precision.
func (c *Context) Elevate(extra uint) (restore func()) {
	return c.ElevateTo(c.prec + extra)
}

// ElevateTo sets the working precision to an absolute value and returns an
// idempotent restore closure. The new precision may be lower than the
// current one.
func (c *Context) ElevateTo(prec uint) (restore func()) {
	assert(prec > 0, "context precision must be positive")
	saved := c.prec
	c.prec = prec
	restored := false
	return func() {
		if !restored {
			c.prec = saved
			restored = true
		}
	}
}

// ScalePrec multiplies the working precision by num/den and returns an
// idempotent restore closure.
func (c *Context) ScalePrec(num, den uint) (restore func()) {
	assert(den > 0, "precision scale denominator must be positive")
	return c.ElevateTo(c.prec * num / den)
}

// New returns a zero value at the context's precision and rounding mode.
func (c *Context) New() *big.Float {
	return new(big.Float).SetPrec(c.prec).SetMode(c.mode)
}

// NewInt returns v as a value at context precision.
func (c *Context) NewInt(v int64) *big.Float {
	return c.New().SetInt64(v)
}

// NewFloat returns v as a value at context precision. v must not be NaN.
func (c *Context) NewFloat(v float64) *big.Float {
	return c.New().SetFloat64(v)
}

// FromInt converts a big integer to a value at context precision.
func (c *Context) FromInt(v *big.Int) *big.Float {
	return c.New().SetInt(v)
}

// FromRat converts a big rational to a value at context precision.
func (c *Context) FromRat(v *big.Rat) *big.Float {
	return c.New().SetRat(v)
}

// Inf returns an infinity with the given sign.
func (c *Context) Inf(sign int) *big.Float {
	return c.New().SetInf(sign < 0)
}

// Round re-rounds x to the context's current precision and mode.
func (c *Context) Round(x *big.Float) *big.Float {
	return c.New().Set(x)
}

// Eps returns the unit roundoff 2^(1-prec) of the current precision.
func (c *Context) Eps() *big.Float {
	return c.Ldexp(1, 1-int(c.prec))
}

// Ldexp returns m * 2^exp at context precision.
func (c *Context) Ldexp(m int64, exp int) *big.Float {
	z := c.NewInt(m)
	return z.SetMantExp(z, exp)
}
