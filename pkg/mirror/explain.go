package mirror

import (
	"github.com/mesh-intelligence/mirror/internal/detail"
	"github.com/mesh-intelligence/mirror/pkg/types"
)

// Hop is one edge followed when reading a value as another type.
type Hop struct {
	Kind string `json:"kind" yaml:"kind"` // "base" or "conversion"
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Explainer reports how values of one type are read as another. Results are
// cached and recomputed after any registration.
type Explainer struct {
	cache *detail.PathCache
}

// NewExplainer returns an Explainer caching up to size paths.
func NewExplainer(size int) (*Explainer, error) {
	if size <= 0 {
		size = types.DefaultCacheSize
	}
	c, err := detail.NewPathCache(size)
	if err != nil {
		return nil, err
	}
	return &Explainer{cache: c}, nil
}

// Explain returns the hops a copy of a from value read as to would follow,
// and false when no path exists. Qualifiers are ignored.
func (e *Explainer) Explain(from, to Type) ([]Hop, bool) {
	path, ok := e.cache.Explain(from.info, to.info)
	if !ok {
		return nil, false
	}
	hops := make([]Hop, len(path))
	for i, h := range path {
		hops[i] = Hop{Kind: h.Kind.String(), From: h.From.Name(), To: h.To.Name()}
	}
	return hops, true
}

// Cached returns the number of cached paths.
func (e *Explainer) Cached() int {
	return e.cache.Len()
}
