// Package cache stores generated reports keyed by genotype-file hash and
// ancestry. A report is a pure function of those two inputs plus the
// static database, so cached entries never go stale; eviction is purely a
// memory concern.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/genelingua/pgs-server/internal/domain"
)

// ReportCache is the lookup interface shared by the in-memory and Redis
// tiers.
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.Report, bool)
	Set(ctx context.Context, key string, report *domain.Report)
	Close() error
}

// Key builds the cache key for a genotype blob and ancestry.
func Key(data []byte, ancestry domain.Ancestry) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("report:%s:%x", ancestry, hash)
}
