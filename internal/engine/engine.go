// Package engine implements the polygenic score pipeline: effect-allele
// dosage counting, the weighted score, the analytic population model, the
// percentile transform, interpretation, scenario projection and report
// assembly. Every step is a pure function of its inputs plus the static
// variant database, so runs are deterministic and safe to execute
// concurrently without locking.
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/genelingua/pgs-server/internal/domain"
	"github.com/genelingua/pgs-server/internal/genotype"
	"github.com/genelingua/pgs-server/internal/snpdb"
)

// Engine bundles the immutable variant database with a logger. It holds no
// mutable state; one instance serves any number of concurrent requests.
type Engine struct {
	db  *snpdb.Database
	log *logrus.Logger
}

// New creates an engine backed by the built-in variant database.
func New(logger *logrus.Logger) *Engine {
	return NewWithDatabase(snpdb.Default(), logger)
}

// NewWithDatabase creates an engine over a specific database. Tests use
// this to inject contrived tables.
func NewWithDatabase(db *snpdb.Database, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{db: db, log: logger}
}

// Database returns the engine's variant database.
func (e *Engine) Database() *snpdb.Database {
	return e.db
}

// GenerateReport runs the full analysis for a genotype file on disk.
func (e *Engine) GenerateReport(path string, ancestry domain.Ancestry) (*domain.Report, error) {
	if !ancestry.IsValid() {
		return nil, domain.NewInvalidAncestryError(string(ancestry))
	}
	snps, err := genotype.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return e.GenerateReportFromMap(snps, ancestry)
}

// GenerateReportFromBytes runs the full analysis for an in-memory genotype
// blob, as handed over by an upload handler. The filename selects archive
// handling for .zip inputs.
func (e *Engine) GenerateReportFromBytes(data []byte, filename string, ancestry domain.Ancestry) (*domain.Report, error) {
	if !ancestry.IsValid() {
		return nil, domain.NewInvalidAncestryError(string(ancestry))
	}
	snps, err := genotype.Parse(data, filename)
	if err != nil {
		return nil, err
	}
	return e.GenerateReportFromMap(snps, ancestry)
}

// GenerateReportFromMap runs the numeric pipeline over an already-parsed
// genotype map and assembles the report.
func (e *Engine) GenerateReportFromMap(snps domain.GenotypeMap, ancestry domain.Ancestry) (*domain.Report, error) {
	score, err := e.ComputeScore(snps, ancestry)
	if err != nil {
		return nil, err
	}

	normalized := e.Normalize(score.RawScore, ancestry, score.NValid)
	interpretation := Interpret(normalized.ZScore, normalized.Percentile, normalized.VarianceExplained, score.NValid)
	report := e.assembleReport(ancestry, score, normalized, interpretation)

	e.log.WithFields(logrus.Fields{
		"report_id":  report.Metadata.ReportID,
		"ancestry":   ancestry,
		"n_valid":    score.NValid,
		"n_total":    e.db.Size(),
		"category":   interpretation.Category,
		"percentile": report.PGSResults.Percentile,
	}).Info("Polygenic score report generated")

	return report, nil
}
