package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/genelingua/pgs-server/internal/domain"
	"github.com/genelingua/pgs-server/internal/snpdb"
)

// topContributorCount caps the ranked contributor list.
const topContributorCount = 5

// disclaimer accompanies every report.
const disclaimer = "Educational tool only. Not diagnostic or predictive of individual success."

// assembleReport composes the final report from the pipeline outputs. It
// performs no computation of its own beyond the contributor ranking and the
// fixed scenario table.
func (e *Engine) assembleReport(ancestry domain.Ancestry, score *domain.ScoreResult, normalized domain.NormalizedResult, interpretation domain.Interpretation) *domain.Report {
	return &domain.Report{
		Metadata: domain.ReportMetadata{
			ReportID:        uuid.NewString(),
			Generated:       time.Now().UTC(),
			Version:         snpdb.Version,
			Ancestry:        ancestry,
			DatabaseVersion: snpdb.Version,
			Disclaimer:      disclaimer,
		},
		PGSResults: domain.PGSResults{
			RawScore:           round(score.RawScore, 5),
			ZScore:             round(normalized.ZScore, 3),
			Percentile:         round(normalized.Percentile, 1),
			Category:           interpretation.Category,
			EstimatedR2Percent: round(normalized.VarianceExplained*100, 2),
			NValidSNPs:         score.NValid,
			NTotalSNPs:         e.db.Size(),
		},
		Contributions:   score.Contributions,
		Interpretation:  interpretation,
		TopContributors: topContributors(score.Contributions),
		Scenarios:       e.scenarioTable(normalized.Percentile),
		Warnings:        warnings(normalized.VarianceExplained),
		References:      e.db.References(),
	}
}

// topContributors ranks variants with defined contributions by descending
// absolute weighted contribution and keeps the top five. Ties are broken by
// variant id for deterministic output.
func topContributors(contributions map[string]domain.Contribution) []domain.TopContributor {
	ranked := make([]domain.TopContributor, 0, len(contributions))
	for id, c := range contributions {
		if c.Defined() {
			ranked = append(ranked, domain.TopContributor{ID: id, Contribution: c})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		a := math.Abs(*ranked[i].WeightedContribution)
		b := math.Abs(*ranked[j].WeightedContribution)
		if a != b {
			return a > b
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > topContributorCount {
		ranked = ranked[:topContributorCount]
	}
	return ranked
}

// scenarioTable computes the six illustrative projection rows, feeding the
// run's own percentile into the rows marked for it.
func (e *Engine) scenarioTable(percentile float64) []domain.ScenarioRow {
	rows := make([]domain.ScenarioRow, 0, len(reportScenarios))
	for _, spec := range reportScenarios {
		pct := spec.percentile
		if spec.usesOwnPercentile {
			pct = percentile
		}
		projection, err := ProjectScenario(spec.dailyMinutes, spec.method, spec.consistency, pct)
		if err != nil {
			// The fixed table never has zero daily minutes.
			e.log.WithError(err).Warn("Skipping scenario row")
			continue
		}
		rows = append(rows, domain.ScenarioRow{
			Scenario:     spec.name,
			Genetics:     fmt.Sprintf("%.0fth %%ile", pct),
			Method:       spec.method,
			DailyMinutes: spec.dailyMinutes,
			Consistency:  spec.consistency,
			TotalHours:   projection.TotalHours,
			MonthsToB2:   projection.MonthsToB2,
		})
	}
	return rows
}

// warnings returns the fixed disclaimer block with the variance estimate
// interpolated.
func warnings(r2 float64) []string {
	return []string{
		"No validated PGS for language learning exists",
		fmt.Sprintf("These variants explain only ~%.1f%% of variance", r2*100),
		"Environmental factors are 20-50x more important",
		"Effect sizes are ancestry-specific; most data is from European populations",
		"Cross-trait inference: using reading/memory/hearing genetics as proxy",
		"For educational/research purposes only",
	}
}

// round rounds x to the given number of decimal places.
func round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
