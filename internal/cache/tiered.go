package cache

import (
	"context"

	"github.com/genelingua/pgs-server/internal/domain"
)

// TieredCache checks the memory tier first, then falls through to an
// optional second tier, promoting hits back into memory.
type TieredCache struct {
	hot  ReportCache
	warm ReportCache // may be nil
}

// NewTiered combines a memory cache with an optional second tier.
func NewTiered(hot ReportCache, warm ReportCache) *TieredCache {
	return &TieredCache{hot: hot, warm: warm}
}

// Get looks the key up in each tier in order.
func (t *TieredCache) Get(ctx context.Context, key string) (*domain.Report, bool) {
	if report, ok := t.hot.Get(ctx, key); ok {
		return report, true
	}
	if t.warm == nil {
		return nil, false
	}
	report, ok := t.warm.Get(ctx, key)
	if ok {
		t.hot.Set(ctx, key, report)
	}
	return report, ok
}

// Set writes the report to every tier.
func (t *TieredCache) Set(ctx context.Context, key string, report *domain.Report) {
	t.hot.Set(ctx, key, report)
	if t.warm != nil {
		t.warm.Set(ctx, key, report)
	}
}

// Close releases both tiers.
func (t *TieredCache) Close() error {
	err := t.hot.Close()
	if t.warm != nil {
		if werr := t.warm.Close(); err == nil {
			err = werr
		}
	}
	return err
}
