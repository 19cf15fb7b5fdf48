package quad

import (
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/npillmayer/mpcalc/mpf"
)

// tanhSinhRule implements doubly exponential quadrature. The substitution
//
//	x = tanh(pi/2 sinh(t))
//
// makes all derivatives of the transformed integrand vanish rapidly at the
// endpoints, so the plain trapezoidal step sum over t converges at a
// doubly exponential rate. The scheme follows Borwein, Bailey & Girgensohn,
// "Experimentation in Mathematics", pages 312-313.
type tanhSinhRule struct{}

// calcNodes produces the abscissa-weight pairs
//
//	x_k = tanh(pi/2 sinh(t_k))
//	w_k = pi/2 cosh(t_k) / cosh(pi/2 sinh(t_k))^2
//
// for t_k = t0 + kh with step h ~ 2^(-degree). Successive exponentials are
// obtained by multiplying with exp(h), so only one full exp evaluation per
// node remains. The node list is infinite in principle, but the weights die
// off so rapidly that generation stops once x_k is within eps of 1.
func (tanhSinhRule) calcNodes(prec uint, degree int) []Node {
	assert(degree >= 1 && degree < 60, "tanh-sinh degree out of range")
	wp := prec + 20
	eps := ldexp(1, -int(prec)-10, wp)
	pi4 := at(wp).Quo(mpf.Pi(wp), at(wp).SetInt64(4))
	one := at(wp).SetInt64(1)
	two := at(wp).SetInt64(2)

	// Degree 1 carries the "degree 0" steps, including the point x = 0.
	// Higher degrees interleave: their t_k are the odd multiples of the
	// step, so the even-multiple sums can be reused from degree-1 levels.
	var nodes []Node
	t0 := ldexp(1, -degree, wp)
	h := at(wp)
	if degree == 1 {
		nodes = append(nodes, Node{X: at(wp), W: at(wp).Set(pi4)})
		h.Set(t0)
	} else {
		h.Add(t0, t0)
	}
	expt0 := bigfloat.Exp(at(wp).Set(t0))
	a := at(wp).Mul(pi4, expt0)
	b := at(wp).Quo(pi4, expt0)
	udelta := bigfloat.Exp(at(wp).Set(h))
	urdelta := at(wp).Quo(one, udelta)

	for k := 0; k <= 20*(1<<uint(degree)); k++ {
		// c = exp(pi/2 sinh(t)), so cosh and sinh of the inner argument
		// come out of one exponential.
		c := bigfloat.Exp(at(wp).Sub(a, b))
		d := at(wp).Quo(one, c)
		co := at(wp).Add(c, d)
		co.Quo(co, two)
		si := at(wp).Sub(c, d)
		si.Quo(si, two)
		x := at(wp).Quo(si, co)
		w := at(wp).Add(a, b)
		w.Quo(w, at(wp).Mul(co, co))
		diff := at(wp).Sub(x, one)
		if diff.Abs(diff).Cmp(eps) <= 0 {
			break
		}
		nodes = append(nodes, Node{X: x, W: w})
		a.Mul(a, udelta)
		b.Mul(b, urdelta)
	}
	return nodes
}

// sumNext performs the step sum of the given degree. Half of the abscissas
// of degree m are precisely the abscissas of degree m-1, so the previous
// result is rescaled and only the new nodes are evaluated.
func (tanhSinhRule) sumNext(ctx *mpf.Context, reg *Registry, f integrand1, prec uint, degree int, previous []*big.Float) (*big.Float, error) {
	h := ctx.Ldexp(1, -degree)
	S := ctx.New()
	if len(previous) > 0 {
		S.Quo(previous[len(previous)-1], ctx.Ldexp(1, 1-degree))
	}
	nodes, err := reg.Nodes(TanhSinh, prec, degree)
	if err != nil {
		return nil, err
	}
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
	return S.Mul(S, h), nil
}
