package mpcalc

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/npillmayer/mpcalc/mpf"
)

// Richardson computes the N-term Richardson extrapolate for the limit of a
// slowly convergent sequence, given its first elements. It returns the
// estimated limit together with the magnitude of the largest weight used;
// the weight tells how much precision was lost to cancellation, so the
// sequence must typically be computed at a much higher precision than the
// target accuracy.
//
// Richardson extrapolation works for sequences converging like partial
// sums of P(1)/Q(1) + P(2)/Q(2) + ... with polynomials P and Q, and
// produces garbage otherwise. It costs O(N) operations and usually yields
// O(N) accurate digits. There is no error estimate; compare two runs with
// slightly different N instead.
//
// Oscillating sequences defeat the scheme. As a workaround, when the last
// three elements do not differ monotonically, extrapolation is applied to
// the even-index elements only.
func Richardson(ctx *mpf.Context, seq []*big.Float) (v, maxc *big.Float, err error) {
	if len(seq) < 3 {
		return nil, nil, fmt.Errorf("%w: richardson extrapolation needs 3", ErrFewTerms)
	}
	d1 := ctx.Sub(seq[len(seq)-1], seq[len(seq)-2])
	d2 := ctx.Sub(seq[len(seq)-2], seq[len(seq)-3])
	if d1.Sign() != d2.Sign() {
		even := make([]*big.Float, 0, (len(seq)+1)/2)
		for i := 0; i < len(seq); i += 2 {
			even = append(even, seq[i])
		}
		seq = even
	}
	N := len(seq)/2 - 1
	s := ctx.New()
	// The general weight is c[k] = (N+k)^N (-1)^(k+N) / k! / (N-k)!.
	// The quotient of successive weights simplifies to a recurrence,
	// avoiding repeated factorials.
	c := ctx.FromInt(new(big.Int).Exp(big.NewInt(int64(N)), big.NewInt(int64(N)), nil))
	c.Quo(c, ctx.FromInt(mpf.Factorial(N)))
	if N&1 == 1 {
		c.Neg(c)
	}
	maxc = ctx.NewInt(1)
	for k := 0; k <= N; k++ {
		s.Add(s, ctx.Mul(c, seq[N+k]))
		if a := ctx.Abs(c); a.Cmp(maxc) > 0 {
			maxc = a
		}
		num := new(big.Int).Exp(big.NewInt(int64(k+N+1)), big.NewInt(int64(N)), nil)
		c.Mul(c, ctx.MulInt(ctx.FromInt(num), int64(k-N)))
		den := new(big.Int).Exp(big.NewInt(int64(k+N)), big.NewInt(int64(N)), nil)
		c.Quo(c, ctx.MulInt(ctx.FromInt(den), int64(k+1)))
	}
	return s, maxc, nil
}

// Shanks computes the iterated Shanks transformation S(A), S(S(A)), ...
// of a slowly convergent sequence, using Wynn's epsilon algorithm. The
// Shanks transformation often provides strong convergence acceleration,
// especially for oscillating sequences, and sums the tail of a geometric
// series in a single step.
//
// The returned epsilon table is a lower triangular matrix read as
// follows:
//
//   - columns with odd index hold the actual extrapolates; columns with
//     even index hold dummy entries required by the recurrence,
//   - the last element of the last row is typically the most accurate
//     estimate of the limit,
//   - its difference to the third last element of that row estimates the
//     approximation error, and the magnitude of the second last element
//     estimates the precision lost to cancellation.
//
// Rows are only generated up to an even sequence index, so the last row
// always ends in an extrapolate. Passing the table of a previous run
// extends it in place with the newly appended sequence elements, which is
// much cheaper than starting over.
//
// A division by zero occurs in the recurrence if the transformation hits
// the limit exactly. By default the table generated so far is returned in
// that case; with randomized set, the zero is replaced by a pseudorandom
// number close to zero and the iteration continues.
//
// The cancellation warning of Richardson applies here just as well.
func Shanks(ctx *mpf.Context, seq []*big.Float, table [][]*big.Float, randomized bool) ([][]*big.Float, error) {
	if len(seq) < 2 {
		return nil, fmt.Errorf("%w: shanks transformation needs 2", ErrFewTerms)
	}
	start := len(table)
	stop := len(seq) - 1
	if stop&1 == 1 {
		stop--
	}
	one := ctx.NewInt(1)
	eps := ctx.Eps()
	var rnd *rand.Rand
	if randomized {
		// seeded by the start row, so extending a table stays deterministic
		rnd = rand.New(rand.NewSource(int64(start)))
	}
	for i := start; i < stop; i++ {
		row := make([]*big.Float, 0, i+1)
		for j := 0; j <= i; j++ {
			var a, b *big.Float
			if j == 0 {
				a = ctx.New()
				b = ctx.Sub(seq[i+1], seq[i])
			} else {
				if j == 1 {
					a = seq[i]
				} else {
					a = table[i-1][j-2]
				}
				b = ctx.Sub(row[j-1], table[i-1][j-1])
			}
			if b.Sign() == 0 {
				if !randomized {
					if i&1 == 1 {
						return table[:len(table)-1], nil
					}
					return table, nil
				}
				b = ctx.Mul(ctx.NewInt(1+rnd.Int63n(1023)), eps)
			}
			row = append(row, ctx.Add(a, ctx.New().Quo(one, b)))
		}
		table = append(table, row)
	}
	return table, nil
}
