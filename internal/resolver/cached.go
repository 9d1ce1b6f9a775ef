package resolver

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/inodb/vibe-serve/internal/datamodel"
)

type cachedResult struct {
	variants []datamodel.Variant
	err      error
}

// Cached memoizes a ProteinResolver. The same protein change is often
// reported by several entries and knowledgebases.
type Cached struct {
	next  ProteinResolver
	cache *lru.Cache[string, cachedResult]
}

// NewCached wraps next with an LRU cache holding up to size results.
func NewCached(next ProteinResolver, size int) (*Cached, error) {
	c, err := lru.New[string, cachedResult](size)
	if err != nil {
		return nil, fmt.Errorf("create resolver cache: %w", err)
	}
	return &Cached{next: next, cache: c}, nil
}

// Resolve returns a cached result or delegates to the wrapped resolver.
// Errors are cached as well.
func (c *Cached) Resolve(gene, transcript, protein string) ([]datamodel.Variant, error) {
	key := gene + "\x1f" + transcript + "\x1f" + protein
	if r, ok := c.cache.Get(key); ok {
		return r.variants, r.err
	}
	variants, err := c.next.Resolve(gene, transcript, protein)
	c.cache.Add(key, cachedResult{variants: variants, err: err})
	return variants, err
}

// Len returns the number of cached results.
func (c *Cached) Len() int {
	return c.cache.Len()
}
