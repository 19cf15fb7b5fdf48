package mpf

import (
	"math/big"
	"sync"
)

// Constants and integer sequences are memoized process-wide: recomputation
// cost dominates memory cost at high precision, so nothing is ever evicted.

var piCache struct {
	sync.Mutex
	prec uint
	val  *big.Float
}

// Pi computes pi to prec bits using the Machin formula
//
//	pi = 16 atan(1/5) - 4 atan(1/239)
//
// The best value computed so far is cached; lower-precision requests are
// served by rounding it down.
func Pi(prec uint) *big.Float {
	piCache.Lock()
	defer piCache.Unlock()
	if piCache.val == nil || piCache.prec < prec {
		wp := prec + 2*guardBits
		v := at(wp).SetInt64(16)
		v.Mul(v, atanInv(5, wp))
		w := at(wp).SetInt64(4)
		w.Mul(w, atanInv(239, wp))
		v.Sub(v, w)
		piCache.prec = prec
		piCache.val = at(prec).Set(v)
	}
	return at(prec).Set(piCache.val)
}

// atanInv computes atan(1/m) at precision prec by direct Taylor summation,
//
//	atan(1/m) = sum (-1)^k / ((2k+1) m^(2k+1)).
func atanInv(m int64, prec uint) *big.Float {
	wp := prec + guardBits
	mf := at(wp).SetInt64(m)
	m2 := at(wp).Mul(mf, mf)
	pow := at(wp).Quo(at(wp).SetInt64(1), mf)
	s := at(wp).Set(pow)
	term := at(wp)
	for k := int64(1); ; k++ {
		pow.Quo(pow, m2)
		term.Quo(pow, at(wp).SetInt64(2*k+1))
		if k&1 == 1 {
			s.Sub(s, term)
		} else {
			s.Add(s, term)
		}
		if term.Sign() == 0 || Mag(term) < -int(wp) {
			break
		}
	}
	return s
}

var bernCache struct {
	sync.Mutex
	vals []*big.Rat // vals[n] = B_n, with B_1 = -1/2
}

// Bernoulli returns the Bernoulli number B_n as an exact rational.
// Values are computed by the defining recurrence
//
//	B_m = -1/(m+1) * sum_{k=0}^{m-1} C(m+1,k) B_k
//
// and memoized.
func Bernoulli(n int) *big.Rat {
	assert(n >= 0, "Bernoulli index must be nonnegative")
	bernCache.Lock()
	defer bernCache.Unlock()
	if len(bernCache.vals) == 0 {
		bernCache.vals = []*big.Rat{big.NewRat(1, 1)}
	}
	for m := len(bernCache.vals); m <= n; m++ {
		sum := new(big.Rat)
		for k := 0; k < m; k++ {
			c := new(big.Int).Binomial(int64(m+1), int64(k))
			t := new(big.Rat).SetInt(c)
			sum.Add(sum, t.Mul(t, bernCache.vals[k]))
		}
		sum.Mul(sum, big.NewRat(-1, int64(m+1)))
		bernCache.vals = append(bernCache.vals, sum)
	}
	return new(big.Rat).Set(bernCache.vals[n])
}

// Factorial returns n! as a big integer.
func Factorial(n int) *big.Int {
	assert(n >= 0, "factorial of negative number")
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}
