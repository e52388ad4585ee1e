package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/store"
)

type mockCache struct {
	data map[string][]byte
	err  error
}

func (m *mockCache) GetCache(key string) ([]byte, error) {
	return m.data[key], m.err
}

func (m *mockCache) SetCache(key string, data []byte, ttl time.Duration) error {
	m.data[key] = data
	return m.err
}

func (m *mockCache) ClearCache() error {
	m.data = make(map[string][]byte)
	return m.err
}

func TestCachedProvider_Search(t *testing.T) {
	inner := &mockProvider{items: []domain.CatalogItem{{Type: "SONG", VideoID: "r1", Name: "Result"}}}
	cache := &mockCache{data: make(map[string][]byte)}
	cp := NewCachedProvider(inner, cache, time.Hour)

	ctx := context.Background()

	// 1. First call - should call inner provider
	res, err := cp.Search(ctx, "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res) != 1 || res[0].Name != "Result" {
		t.Errorf("Unexpected result %+v", res)
	}
	if inner.searchCalled != 1 {
		t.Errorf("Expected inner provider to be called once, got %d", inner.searchCalled)
	}

	// 2. Second call - should hit cache
	res2, err := cp.Search(ctx, "query")
	if err != nil {
		t.Fatalf("Second Search failed: %v", err)
	}
	if len(res2) != 1 || res2[0].VideoID != "r1" {
		t.Errorf("Unexpected cached result %+v", res2)
	}
	if inner.searchCalled != 1 {
		t.Errorf("Expected inner provider to STILL be called once (cache hit), got %d", inner.searchCalled)
	}

	// 3. Clear cache - should call inner again
	_ = cp.ClearCache()
	_, _ = cp.Search(ctx, "query")
	if inner.searchCalled != 2 {
		t.Errorf("Expected inner provider to be called again after clear, got %d", inner.searchCalled)
	}
}

func TestCachedProvider_SuggestKeyedSeparately(t *testing.T) {
	inner := &mockProvider{
		items:       []domain.CatalogItem{{Type: "SONG", VideoID: "r1"}},
		suggestions: []string{"a", "b"},
	}
	cp := NewCachedProvider(inner, &mockCache{data: make(map[string][]byte)}, time.Hour)
	ctx := context.Background()

	_, _ = cp.Search(ctx, "q")
	got, err := cp.Suggest(ctx, "q")
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected suggestions, got %v", got)
	}
	_, _ = cp.Suggest(ctx, "q")
	if inner.suggestCalls != 1 {
		t.Errorf("Expected one suggest call, got %d", inner.suggestCalls)
	}
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &mockProvider{err: errors.New("boom")}
	cache := &mockCache{data: make(map[string][]byte)}
	cp := NewCachedProvider(inner, cache, time.Hour)

	if _, err := cp.Search(context.Background(), "q"); err == nil {
		t.Fatal("Expected error")
	}
	if len(cache.data) != 0 {
		t.Errorf("Failed responses must not be cached: %v", cache.data)
	}
}

func TestCachedProvider_CacheReadErrorFallsThrough(t *testing.T) {
	inner := &mockProvider{suggestions: []string{"x"}}
	cache := &mockCache{data: make(map[string][]byte), err: errors.New("db locked")}
	cp := NewCachedProvider(inner, cache, time.Hour)

	got, err := cp.Suggest(context.Background(), "q")
	if err != nil {
		t.Fatalf("Cache failure must not fail the request: %v", err)
	}
	if len(got) != 1 || inner.suggestCalls != 1 {
		t.Errorf("Expected provider result, got %v", got)
	}
}

func TestCachedProvider_WithStore(t *testing.T) {
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close()

	inner := &mockProvider{items: []domain.CatalogItem{
		{Type: "SONG", VideoID: "v2", Name: "Song", Artist: domain.Artist{Name: "Band"}, Album: &domain.Album{Name: "LP"}, Duration: 200},
	}}
	cp := NewCachedProvider(inner, NewStoreCache(db), time.Hour)

	first, err := cp.Search(context.Background(), "band")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	second, err := cp.Search(context.Background(), "band")
	if err != nil {
		t.Fatalf("Cached Search failed: %v", err)
	}
	if inner.searchCalled != 1 {
		t.Errorf("Expected store-backed cache hit, provider called %d times", inner.searchCalled)
	}
	if second[0].Album == nil || second[0].Album.Name != first[0].Album.Name || second[0].Artist.Name != "Band" {
		t.Errorf("Cached item differs: %+v vs %+v", second[0], first[0])
	}
}
