package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/store"
)

type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
	ClearCache() error
}

// CachedProvider memoizes catalog responses for cacheTTL.
type CachedProvider struct {
	provider Provider
	cache    Cache
	cacheTTL time.Duration
}

func NewCachedProvider(provider Provider, cache Cache, cacheTTL time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (c *CachedProvider) Search(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	return cached(c, "search:"+query, func() ([]domain.CatalogItem, error) {
		return c.provider.Search(ctx, query)
	})
}

func (c *CachedProvider) Suggest(ctx context.Context, query string) ([]string, error) {
	return cached(c, "suggest:"+query, func() ([]string, error) {
		return c.provider.Suggest(ctx, query)
	})
}

func (c *CachedProvider) ClearCache() error {
	return c.cache.ClearCache()
}

// cached serves key from the cache or fills it from fetch. Cache read errors
// fall through to the provider; write errors are ignored.
func cached[T any](c *CachedProvider, key string, fetch func() (T, error)) (T, error) {
	if data, err := c.cache.GetCache(key); err == nil && data != nil {
		var hit T
		if err := json.Unmarshal(data, &hit); err == nil {
			return hit, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return result, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = c.cache.SetCache(key, data, c.cacheTTL)
	}
	return result, nil
}

var _ Provider = (*CachedProvider)(nil)

type storeCache struct {
	store *store.DB
}

// NewStoreCache exposes the database's catalog_cache table as a Cache.
func NewStoreCache(db *store.DB) Cache {
	return &storeCache{store: db}
}

func (s *storeCache) GetCache(key string) ([]byte, error) {
	return s.store.GetCache(key)
}

func (s *storeCache) SetCache(key string, data []byte, ttl time.Duration) error {
	return s.store.SetCache(key, data, ttl)
}

func (s *storeCache) ClearCache() error {
	return s.store.ClearCache()
}

var _ Cache = (*storeCache)(nil)
