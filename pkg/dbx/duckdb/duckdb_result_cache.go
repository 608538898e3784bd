package duckdb

import (
	"context"
	"sync"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/marcodd23/go-duckdb-core/pkg/utilx/jsonx"
)

// resultCache maps the literal Query arguments to the result they produced.
// Entries never expire; the whole cache is dropped by DeactivateSelectCache.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]*dbx.TabularResult
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[string]*dbx.TabularResult)}
}

func (c *resultCache) get(key string) (*dbx.TabularResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.entries[key]

	return res, ok
}

func (c *resultCache) put(key string, res *dbx.TabularResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = res
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// cacheKey is the statement followed by its bind arguments, each tagged with its Go type. The text is not normalised,
// so "SELECT 1" and "SELECT  1" are different keys.
func cacheKey(query string, args []any) (string, error) {
	return jsonx.CompositeKey(append([]any{query}, args...)...)
}

// ActivateSelectCache turns on memoization of Query.
// Entries cached by an earlier activation are kept until DeactivateSelectCache is called.
func (m *DuckDB) ActivateSelectCache() {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	if m.cache == nil {
		m.cache = newResultCache()
	}
	m.cachingEnabled = true
}

// DeactivateSelectCache restores uncached Query and discards every cached result.
func (m *DuckDB) DeactivateSelectCache() {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	m.cachingEnabled = false
	m.cache = nil
}

// IsSelectCacheActive reports whether Query is currently memoized.
func (m *DuckDB) IsSelectCacheActive() bool {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	return m.cachingEnabled
}

func (m *DuckDB) activeCache() *resultCache {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	if !m.cachingEnabled {
		return nil
	}

	return m.cache
}

func (m *DuckDB) cachedQuery(ctx context.Context, cache *resultCache, query string, args []any) (*dbx.TabularResult, error) {
	key, err := cacheKey(query, args)
	if err != nil {
		m.logger.LogDebug(ctx, "query arguments cannot be encoded, bypassing select cache")
		return m.query(ctx, query, args...)
	}

	if res, ok := cache.get(key); ok {
		m.logger.LogInfo(ctx, "served from cache")
		return res, nil
	}

	res, err := m.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	cache.put(key, res)

	return res, nil
}
