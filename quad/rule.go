package quad

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/npillmayer/mpcalc/mpf"
)

// Kind selects a quadrature rule.
type Kind int

// Quadrature rules known to this package. TanhSinh is the default: it
// tolerates endpoint singularities and its nodes are cheap to compute.
// GaussLegendre needs fewer function evaluations for smooth integrands but
// node computation is much slower.
const (
	TanhSinh Kind = iota
	GaussLegendre
)

// ErrUnknownRule signals a Kind value this package has no rule for, or a
// rule name ParseKind does not recognize.
var ErrUnknownRule = errors.New("quad: unknown quadrature rule")

func (k Kind) String() string {
	switch k {
	case TanhSinh:
		return "tanh-sinh"
	case GaussLegendre:
		return "gauss-legendre"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a rule name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "tanh-sinh":
		return TanhSinh, nil
	case "gauss-legendre":
		return GaussLegendre, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// Node is a single abscissa-weight pair of a quadrature rule on [-1, 1].
// Only nodes with non-negative X are stored; rules exploit the symmetry
// w(-x) = w(x).
type Node struct {
	X *big.Float
	W *big.Float
}

// integrand1 is the one-dimensional closure the summation loop evaluates.
type integrand1 func(x *big.Float) (*big.Float, error)

// rule is the contract a quadrature rule fulfills. calcNodes must be a pure
// function of its arguments so that results can be shared between
// goroutines through a Registry.
type rule interface {
	// calcNodes computes the nodes of the given degree for a target
	// precision of prec bits.
	calcNodes(prec uint, degree int) []Node

	// sumNext evaluates the rule at the given degree, reusing the sums of
	// all lower degrees passed in previous (ordered by degree, starting
	// at 1).
	sumNext(ctx *mpf.Context, reg *Registry, f integrand1, prec uint, degree int, previous []*big.Float) (*big.Float, error)
}

var rules = map[Kind]rule{
	TanhSinh:      tanhSinhRule{},
	GaussLegendre: gaussLegendreRule{},
}
