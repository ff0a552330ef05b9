// Package history persists generated reports so they can be retrieved by
// id later. Two backends implement the same interface: SQLite for
// standalone operation and PostgreSQL for shared deployments.
package history

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/genelingua/pgs-server/internal/domain"
)

// Record is one stored analysis run: identity, the cache key inputs, the
// headline numbers for listing, and the full report JSON.
type Record struct {
	ID         string          `json:"id"`
	FileHash   string          `json:"file_hash"`
	Ancestry   domain.Ancestry `json:"ancestry"`
	Category   domain.Category `json:"category"`
	Percentile float64         `json:"percentile"`
	Report     json.RawMessage `json:"report"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewRecord builds a Record from an assembled report.
func NewRecord(report *domain.Report, fileHash string) (*Record, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:         report.Metadata.ReportID,
		FileHash:   fileHash,
		Ancestry:   report.Metadata.Ancestry,
		Category:   report.PGSResults.Category,
		Percentile: report.PGSResults.Percentile,
		Report:     payload,
		CreatedAt:  report.Metadata.Generated,
	}, nil
}

// Store is the persistence interface for report history.
type Store interface {
	Save(ctx context.Context, record *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit, offset int) ([]*Record, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
	ExportJSON(ctx context.Context, w io.Writer) error
	Close() error
}

// Export is the envelope written by ExportJSON.
type Export struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Count      int       `json:"count"`
	Reports    []*Record `json:"reports"`
}
