package catcache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
)

// Loader fetches and parses one company's catalog. A missing slug returns
// (nil, nil).
type Loader func(ctx context.Context, slug string) (*catalog.Catalog, error)

// Cache memoizes parsed catalogs by company slug. Concurrent requests for
// the same slug share a single load via singleflight, so a burst of booking
// sessions hitting one company issues one database fetch. Entries expire on
// TTL and on explicit invalidation from the catalog-updated consumer.
type Cache struct {
	loader Loader
	ttl    time.Duration

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	cat      *catalog.Catalog
	loadedAt time.Time
}

func New(loader Loader, ttl time.Duration) *Cache {
	return &Cache{
		loader:  loader,
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

// Get returns the cached catalog for the slug, loading it on miss. Unknown
// slugs are cached as nil so repeated requests for a bad slug do not hammer
// the store.
func (c *Cache) Get(ctx context.Context, slug string) (*catalog.Catalog, error) {
	c.mu.Lock()
	e, ok := c.entries[slug]
	c.mu.Unlock()
	if ok && time.Since(e.loadedAt) < c.ttl {
		return e.cat, nil
	}

	v, err, _ := c.group.Do(slug, func() (any, error) {
		cat, err := c.loader(ctx, slug)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[slug] = cacheEntry{cat: cat, loadedAt: time.Now()}
		c.mu.Unlock()
		return cat, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.Catalog), nil
}

// Invalidate drops the slug's entry. Forgetting the in-flight singleflight
// key as well ensures a load started before the invalidation cannot
// re-satisfy callers that arrive after it.
func (c *Cache) Invalidate(slug string) {
	c.group.Forget(slug)
	c.mu.Lock()
	delete(c.entries, slug)
	c.mu.Unlock()
}
