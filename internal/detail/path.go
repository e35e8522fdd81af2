package detail

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// HopKind distinguishes the edges of a conversion path.
type HopKind int

const (
	HopBase HopKind = iota
	HopConversion
)

func (k HopKind) String() string {
	switch k {
	case HopBase:
		return "base"
	case HopConversion:
		return "conversion"
	default:
		return fmt.Sprintf("HopKind(%d)", int(k))
	}
}

// Hop is one edge taken by the conversion search.
type Hop struct {
	Kind HopKind
	From *TypeInfo
	To   *TypeInfo
}

// Explain returns the edges a by-value retrieval of a source value as
// target would follow: base hops in registration order, then at most one
// conversion. It reports false when the retrieval would fail.
func Explain(source, target *TypeInfo) ([]Hop, bool) {
	if source == target {
		return nil, true
	}
	return explain(source, target, nil)
}

func explain(from, target *TypeInfo, path []Hop) ([]Hop, bool) {
	for _, c := range from.Conversions() {
		if c.typeInfo == target {
			return append(path, Hop{Kind: HopConversion, From: from, To: target}), true
		}
	}
	for _, b := range from.Bases() {
		next := append(path[:len(path):len(path)], Hop{Kind: HopBase, From: from, To: b.typeInfo})
		if b.typeInfo == target {
			return next, true
		}
		if found, ok := explain(b.typeInfo, target, next); ok {
			return found, true
		}
	}
	return nil, false
}

// PathCache memoizes Explain. Entries computed before the latest
// registration are recomputed on access.
type PathCache struct {
	cache *lru.Cache
}

type pathKey struct {
	source, target *TypeInfo
}

type pathEntry struct {
	generation uint64
	path       []Hop
	ok         bool
}

// NewPathCache returns a cache holding up to size paths.
func NewPathCache(size int) (*PathCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create path cache: %w", err)
	}
	return &PathCache{cache: c}, nil
}

// Explain returns the cached result of Explain(source, target).
func (c *PathCache) Explain(source, target *TypeInfo) ([]Hop, bool) {
	key := pathKey{source: source, target: target}
	current := Generation()
	if v, ok := c.cache.Get(key); ok {
		if e := v.(pathEntry); e.generation == current {
			return e.path, e.ok
		}
	}
	path, ok := Explain(source, target)
	c.cache.Add(key, pathEntry{generation: current, path: path, ok: ok})
	return path, ok
}

// Len returns the number of cached paths.
func (c *PathCache) Len() int {
	return c.cache.Len()
}
