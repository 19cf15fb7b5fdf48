package quad

import (
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Registry memoizes quadrature nodes, keyed by (rule, precision, degree).
// Entries are never evicted. A Registry is safe for concurrent use, and it
// guarantees that the nodes for a given key are computed at most once.
type Registry struct {
	store *gocache.Cache
	mu    sync.Mutex // serializes node computation
	calcs map[Kind]int
}

// NewRegistry creates an empty node registry.
func NewRegistry() *Registry {
	return &Registry{
		store: gocache.New(gocache.NoExpiration, 0),
		calcs: make(map[Kind]int),
	}
}

// DefaultRegistry is the process-wide registry used when no explicit one is
// configured.
var DefaultRegistry = NewRegistry()

// Nodes returns the quadrature nodes of the given rule and degree for a
// target precision of prec bits, computing and caching them on first
// request.
func (r *Registry) Nodes(kind Kind, prec uint, degree int) ([]Node, error) {
	rl, ok := rules[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(kind))
	}
	assert(degree >= 1, "quadrature degree must be at least 1")
	key := fmt.Sprintf("%s/%d/%d", kind, prec, degree)
	if v, found := r.store.Get(key); found {
		return v.([]Node), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, found := r.store.Get(key); found {
		return v.([]Node), nil
	}
	tracer().Debugf("computing %s nodes, degree %d, %d bits", kind, degree, prec)
	nodes := rl.calcNodes(prec, degree)
	r.calcs[kind]++
	r.store.Set(key, nodes, gocache.NoExpiration)
	return nodes, nil
}

// CalcCount returns how many node sets have been computed (not served from
// the cache) for the given rule.
func (r *Registry) CalcCount(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calcs[kind]
}

// Nodes returns nodes from the process-wide DefaultRegistry.
func Nodes(kind Kind, prec uint, degree int) ([]Node, error) {
	return DefaultRegistry.Nodes(kind, prec, degree)
}
