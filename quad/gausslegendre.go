package quad

import (
	"math"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
)

// gaussLegendreRule implements Gauss-Legendre quadrature, which is
// exceptionally efficient for polynomial-like (very smooth) integrands.
// A rule of degree m uses the 3*2^(m-1) roots of the Legendre polynomial
// of that order as abscissas, so that incrementing the degree doubles the
// convergence order rather than adding to it.
type gaussLegendreRule struct{}

// calcNodes computes abscissas and weights by Newton iteration on the
// Legendre polynomial P_n, starting from the asymptotic root estimate
//
//	r_j ~ cos(pi (j - 1/4) / (n + 1/2)).
//
// Root refinement is done at 1.5x the target precision; the Newton
// tolerance sits below the real epsilon so that the final correction step
// is fully converged. Only the positive half of the symmetric node list
// is produced.
func (gaussLegendreRule) calcNodes(prec uint, degree int) []Node {
	assert(degree >= 1 && degree < 30, "gauss-legendre degree out of range")
	wp := prec * 3 / 2
	epsilon := ldexp(1, -int(prec)-8, wp)
	one := at(wp).SetInt64(1)
	n := 3 << uint(degree-1)

	var nodes []Node
	for j := 1; j <= n/2; j++ {
		r := at(wp).SetFloat64(math.Cos(math.Pi * (float64(j) - 0.25) / (float64(n) + 0.5)))
		var t4 *big.Float
		for {
			// P_n(r) and neighbors by the defining recurrence
			t1 := at(wp).SetInt64(1)
			t2 := at(wp)
			for j1 := int64(1); j1 <= int64(n); j1++ {
				t := at(wp).Mul(r, t1)
				t.Mul(t, at(wp).SetInt64(2*j1-1))
				t.Sub(t, at(wp).Mul(at(wp).SetInt64(j1-1), t2))
				t.Quo(t, at(wp).SetInt64(j1))
				t2, t1 = t1, t
			}
			// t4 = P_n'(r) = n (r P_n(r) - P_(n-1)(r)) / (r^2 - 1)
			t4 = at(wp).Mul(r, t1)
			t4.Sub(t4, t2)
			t4.Mul(t4, at(wp).SetInt64(int64(n)))
			den := at(wp).Mul(r, r)
			den.Sub(den, one)
			t4.Quo(t4, den)
			a := at(wp).Quo(t1, t4)
			r.Sub(r, a)
			if a.Abs(a).Cmp(epsilon) < 0 {
				break
			}
		}
		// w = 2 / ((1 - r^2) P_n'(r)^2)
		w := at(wp).Mul(r, r)
		w.Sub(one, w)
		w.Mul(w, at(wp).Mul(t4, t4))
		w.Quo(at(wp).SetInt64(2), w)
		nodes = append(nodes, Node{X: at(wp).Set(r), W: w})
	}
	return nodes
}

// sumNext is a plain node sum exploiting the symmetry of the weights.
// Nothing is reused between degrees; the node sets are disjoint.
func (gaussLegendreRule) sumNext(ctx *mpf.Context, reg *Registry, f integrand1, prec uint, degree int, previous []*big.Float) (*big.Float, error) {
	nodes, err := reg.Nodes(GaussLegendre, prec, degree)
	if err != nil {
		return nil, err
	}
	S := ctx.New()
	for _, nd := range nodes {
		fpos, err := f(nd.X)
		if err != nil {
			return nil, err
		}
		fneg, err := f(ctx.Neg(nd.X))
		if err != nil {
			return nil, err
		}
		S.Add(S, ctx.Mul(nd.W, ctx.Add(fneg, fpos)))
	}
	return S, nil
}
