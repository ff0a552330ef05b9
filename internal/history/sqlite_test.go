package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genelingua/pgs-server/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	return store
}

func testRecord(id string, createdAt time.Time) *Record {
	return &Record{
		ID:         id,
		FileHash:   "abc123",
		Ancestry:   domain.EUR,
		Category:   domain.Average,
		Percentile: 52.3,
		Report:     json.RawMessage(`{"metadata":{"report_id":"` + id + `"}}`),
		CreatedAt:  createdAt,
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "history.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestSQLiteStoreSaveAndGet(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	rec := testRecord("report-1", time.Now())
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "report-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.FileHash, got.FileHash)
	assert.Equal(t, domain.EUR, got.Ancestry)
	assert.Equal(t, domain.Average, got.Category)
	assert.Equal(t, rec.Percentile, got.Percentile)
	assert.JSONEq(t, string(rec.Report), string(got.Report))
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	rec := testRecord("report-1", time.Now())
	require.NoError(t, store.Save(ctx, rec))

	rec.Percentile = 99.9
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "report-1")
	require.NoError(t, err)
	assert.Equal(t, 99.9, got.Percentile)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteStoreListOrder(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		rec := testRecord(fmt.Sprintf("report-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Save(ctx, rec))
	}

	records, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "report-2", records[0].ID, "newest first")
	assert.Equal(t, "report-0", records[2].ID)

	page, err := store.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "report-1", page[0].ID)
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("report-1", time.Now())))
	require.NoError(t, store.Delete(ctx, "report-1"))

	got, err := store.Get(ctx, "report-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStoreExportJSON(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("report-1", time.Now())))
	require.NoError(t, store.Save(ctx, testRecord("report-2", time.Now())))

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))

	var export Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &export))
	assert.Equal(t, "1.0", export.Version)
	assert.Equal(t, 2, export.Count)
	assert.Len(t, export.Reports, 2)
}

func TestNewRecord(t *testing.T) {
	report := &domain.Report{
		Metadata: domain.ReportMetadata{
			ReportID:  "report-1",
			Generated: time.Now().UTC(),
			Ancestry:  domain.EAS,
		},
		PGSResults: domain.PGSResults{
			Category:   domain.AboveAverage,
			Percentile: 81.2,
		},
	}

	rec, err := NewRecord(report, "deadbeef")
	require.NoError(t, err)

	assert.Equal(t, "report-1", rec.ID)
	assert.Equal(t, "deadbeef", rec.FileHash)
	assert.Equal(t, domain.EAS, rec.Ancestry)
	assert.Equal(t, domain.AboveAverage, rec.Category)
	assert.Equal(t, 81.2, rec.Percentile)
	assert.NotEmpty(t, rec.Report)
}
