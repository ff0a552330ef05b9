package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/genelingua/pgs-server/internal/domain"
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over an existing connection.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return store, nil
}

// NewPostgresStoreFromURL creates a store from a connection URL.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		file_hash TEXT NOT NULL,
		ancestry TEXT NOT NULL,
		category TEXT NOT NULL,
		percentile DOUBLE PRECISION NOT NULL,
		report JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_reports_file_hash ON reports(file_hash);
	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save stores a report record; saving the same id twice replaces it.
func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO reports (
			id, file_hash, ancestry, category, percentile, report, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			file_hash = EXCLUDED.file_hash,
			ancestry = EXCLUDED.ancestry,
			category = EXCLUDED.category,
			percentile = EXCLUDED.percentile,
			report = EXCLUDED.report,
			created_at = EXCLUDED.created_at
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.FileHash,
		string(record.Ancestry),
		string(record.Category),
		record.Percentile,
		[]byte(record.Report),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get retrieves a stored report by id. Returns nil when not found.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	query := `
		SELECT id, file_hash, ancestry, category, percentile, report, created_at
		FROM reports
		WHERE id = $1
		LIMIT 1
	`

	rec := &Record{}
	var ancestry, category string
	var report []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.FileHash, &ancestry, &category,
		&rec.Percentile, &report, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	rec.Ancestry = domain.Ancestry(ancestry)
	rec.Category = domain.Category(category)
	rec.Report = json.RawMessage(report)
	return rec, nil
}

// List returns stored reports, newest first, with pagination.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	query := `
		SELECT id, file_hash, ancestry, category, percentile, report, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var result []*Record
	for rows.Next() {
		rec := &Record{}
		var ancestry, category string
		var report []byte

		err := rows.Scan(
			&rec.ID, &rec.FileHash, &ancestry, &category,
			&rec.Percentile, &report, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec.Ancestry = domain.Ancestry(ancestry)
		rec.Category = domain.Category(category)
		rec.Report = json.RawMessage(report)
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Count returns the total number of stored reports.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&count)
	return count, err
}

// Delete removes a stored report by id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = $1", id)
	return err
}

// ExportJSON writes the full history to w as one JSON document.
func (s *PostgresStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	all, err := s.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	export := &Export{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Count:      len(all),
		Reports:    all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// Close closes the store and releases resources.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
