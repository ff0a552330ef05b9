package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/genelingua/pgs-server/internal/domain"
)

// MemoryCache is the hot tier: an in-process LRU of assembled reports.
type MemoryCache struct {
	lru *lru.Cache[string, *domain.Report]
}

// NewMemoryCache creates an LRU report cache holding at most size entries.
func NewMemoryCache(size int) (*MemoryCache, error) {
	c, err := lru.New[string, *domain.Report](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: c}, nil
}

// Get returns the cached report for the key, if present.
func (m *MemoryCache) Get(_ context.Context, key string) (*domain.Report, bool) {
	return m.lru.Get(key)
}

// Set stores a report under the key, evicting the least recently used
// entry when full.
func (m *MemoryCache) Set(_ context.Context, key string, report *domain.Report) {
	m.lru.Add(key, report)
}

// Close implements ReportCache; the memory tier has nothing to release.
func (m *MemoryCache) Close() error {
	return nil
}
