package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genelingua/pgs-server/internal/cache"
	"github.com/genelingua/pgs-server/internal/config"
	"github.com/genelingua/pgs-server/internal/domain"
	"github.com/genelingua/pgs-server/internal/engine"
	"github.com/genelingua/pgs-server/internal/history"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	manager, err := config.NewManager()
	require.NoError(t, err)
	manager.GetConfig().RateLimit.Enabled = false
	manager.GetConfig().Logging.Level = "error"

	memCache, err := cache.NewMemoryCache(16)
	require.NoError(t, err)

	store, err := history.NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return NewServer(manager, engine.New(logger), memCache, store, logger)
}

func uploadRequest(t *testing.T, content, ancestry string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("file", "genome.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)

	if ancestry != "" {
		require.NoError(t, w.WriteField("ancestry", ancestry))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

const rawGenome = "# header\nrs4680\t22\t19963748\tAA\nrs1800497\t11\t113400106\tCT\n"

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["database_version"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, rawGenome, "EUR"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, domain.EUR, report.Metadata.Ancestry)
	assert.Equal(t, 2, report.PGSResults.NValidSNPs)
	assert.NotEmpty(t, report.Metadata.ReportID)
}

func TestAnalyzeCacheHit(t *testing.T) {
	srv := newTestServer(t)

	first := httptest.NewRecorder()
	srv.Router().ServeHTTP(first, uploadRequest(t, rawGenome, "EUR"))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	srv.Router().ServeHTTP(second, uploadRequest(t, rawGenome, "EUR"))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))

	// Same file under a different ancestry is a distinct cache entry.
	third := httptest.NewRecorder()
	srv.Router().ServeHTTP(third, uploadRequest(t, rawGenome, "EAS"))
	require.Equal(t, http.StatusOK, third.Code)
	assert.Empty(t, third.Header().Get("X-Cache"))
}

func TestAnalyzeDefaultsToEUR(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, rawGenome, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, domain.EUR, report.Metadata.Ancestry)
}

func TestAnalyzeInvalidAncestry(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, rawGenome, "XYZ"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeMissingFile(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("ancestry", "EUR"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportRetrieval(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, rawGenome, "EUR"))
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	get := httptest.NewRecorder()
	srv.Router().ServeHTTP(get, httptest.NewRequest(
		http.MethodGet, "/api/v1/report/"+report.Metadata.ReportID, nil))
	require.Equal(t, http.StatusOK, get.Code)

	var stored domain.Report
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &stored))
	assert.Equal(t, report.Metadata.ReportID, stored.Metadata.ReportID)
	assert.Equal(t, report.PGSResults, stored.PGSResults)
}

func TestReportNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReports(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, rawGenome, "EUR"))
	require.Equal(t, http.StatusOK, rec.Code)

	list := httptest.NewRecorder()
	srv.Router().ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))
	require.Equal(t, http.StatusOK, list.Code)

	var body struct {
		Total   int64 `json:"total"`
		Reports []struct {
			ID       string `json:"id"`
			Ancestry string `json:"ancestry"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Total)
	require.Len(t, body.Reports, 1)
	assert.Equal(t, "EUR", body.Reports[0].Ancestry)
}

func TestScenarioEndpoint(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"daily_minutes":120,"method":"Good","consistency":"High","genetic_percentile":50}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenario", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var projection domain.ScenarioProjection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projection))
	assert.Equal(t, 760.0, projection.TotalHours)
	assert.Equal(t, 12.7, projection.MonthsToB2)
}

func TestScenarioEndpointRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{`},
		{"zero minutes", `{"daily_minutes":0,"method":"Good","consistency":"High","genetic_percentile":50}`},
		{"percentile out of range", `{"daily_minutes":60,"method":"Good","consistency":"High","genetic_percentile":150}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scenario", bytes.NewBufferString(tt.payload))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAncestriesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ancestries", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Ancestries []struct {
			Code  string `json:"code"`
			Label string `json:"label"`
		} `json:"ancestries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Ancestries, 7)
	assert.Equal(t, "EUR", body.Ancestries[0].Code)
	assert.NotEmpty(t, body.Ancestries[0].Label)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/analyze", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiting(t *testing.T) {
	manager, err := config.NewManager()
	require.NoError(t, err)
	manager.GetConfig().RateLimit.Enabled = true
	manager.GetConfig().RateLimit.RequestsPerSecond = 1
	manager.GetConfig().RateLimit.Burst = 2

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	srv := NewServer(manager, engine.New(logger), nil, nil, logger)

	seen429 := false
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code == http.StatusTooManyRequests {
			seen429 = true
		}
	}
	assert.True(t, seen429, "burst of 2 should not survive 5 immediate requests")
}
