package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/genelingua/pgs-server/internal/cache"
	"github.com/genelingua/pgs-server/internal/domain"
	"github.com/genelingua/pgs-server/internal/engine"
	"github.com/genelingua/pgs-server/internal/history"
)

// handleAnalyze accepts a raw genotype file and returns a full report.
// The file is sent as multipart form field "file"; the ancestry code as
// form field "ancestry" (defaults to EUR).
func (s *Server) handleAnalyze(c *gin.Context) {
	ancestry := domain.Ancestry(c.DefaultPostForm("ancestry", string(domain.EUR)))
	if !ancestry.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("invalid ancestry: %s", ancestry),
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if fileHeader.Size > s.configManager.GetServerConfig().MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	// Serve from cache when the same file and ancestry were seen before.
	key := cache.Key(data, ancestry)
	if s.cache != nil {
		if report, ok := s.cache.Get(c.Request.Context(), key); ok {
			c.Header("X-Cache", "hit")
			c.JSON(http.StatusOK, report)
			return
		}
	}

	report, err := s.engine.GenerateReportFromBytes(data, fileHeader.Filename, ancestry)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		s.log.WithError(err).Error("analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	if s.cache != nil {
		s.cache.Set(c.Request.Context(), key, report)
	}

	if s.store != nil {
		record, err := history.NewRecord(report, fmt.Sprintf("%x", sha256.Sum256(data)))
		if err == nil {
			err = s.store.Save(c.Request.Context(), record)
		}
		if err != nil {
			s.log.WithError(err).WithField("report_id", report.Metadata.ReportID).
				Warn("failed to persist report")
		}
	}

	c.JSON(http.StatusOK, report)
}

// handleGetReport returns a previously generated report by id.
func (s *Server) handleGetReport(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "history is disabled"})
		return
	}

	record, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.log.WithError(err).Error("failed to load report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.Data(http.StatusOK, "application/json", record.Report)
}

// listEntry is one row of the report listing, without the full payload.
type listEntry struct {
	ID         string          `json:"id"`
	Ancestry   domain.Ancestry `json:"ancestry"`
	Category   domain.Category `json:"category"`
	Percentile float64         `json:"percentile"`
	CreatedAt  string          `json:"created_at"`
}

// handleListReports returns stored reports, newest first.
func (s *Server) handleListReports(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "history is disabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, err := s.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.log.WithError(err).Error("failed to list reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	total, err := s.store.Count(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to count reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	entries := make([]listEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, listEntry{
			ID:         r.ID,
			Ancestry:   r.Ancestry,
			Category:   r.Category,
			Percentile: r.Percentile,
			CreatedAt:  r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"limit":   limit,
		"offset":  offset,
		"reports": entries,
	})
}

// scenarioRequest is the body of POST /api/v1/scenario.
type scenarioRequest struct {
	DailyMinutes int                     `json:"daily_minutes"`
	Method       domain.MethodQuality    `json:"method"`
	Consistency  domain.ConsistencyLevel `json:"consistency"`
	Percentile   float64                 `json:"genetic_percentile"`
}

// handleScenario projects study time for one custom scenario.
func (s *Server) handleScenario(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Percentile < 0 || req.Percentile > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "genetic_percentile must be between 0 and 100"})
		return
	}

	projection, err := engine.ProjectScenario(req.DailyMinutes, req.Method, req.Consistency, req.Percentile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, projection)
}

// handleAncestries lists the supported ancestry codes and labels.
func (s *Server) handleAncestries(c *gin.Context) {
	type entry struct {
		Code  domain.Ancestry `json:"code"`
		Label string          `json:"label"`
	}
	entries := make([]entry, 0, len(domain.Ancestries))
	for _, a := range domain.Ancestries {
		entries = append(entries, entry{Code: a, Label: a.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"ancestries": entries})
}

// loggingMiddleware logs one structured line per request.
func loggingMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(requestIDKey),
		}).Info("request handled")
	}
}
