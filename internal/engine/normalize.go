package engine

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/genelingua/pgs-server/internal/domain"
)

// Variance-explained heuristic constants. The estimate grows with variant
// coverage and with the number of genome-wide-significant database entries,
// clamped at an absolute ceiling.
const (
	r2PerValidSNP       = 0.001
	r2PerSignificantSNP = 0.005
	r2Ceiling           = 0.05
)

// stdNormal is the standard normal distribution used for the percentile
// transform.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Normalize converts a raw score to a z-score against the modeled
// population distribution, then to a percentile via the standard normal
// CDF, and derives the bounded variance-explained estimate from the run's
// valid-variant count.
func (e *Engine) Normalize(rawScore float64, ancestry domain.Ancestry, nValid int) domain.NormalizedResult {
	pop := e.PopulationParameters(ancestry)

	zScore := 0.0
	if pop.SD > 0 {
		zScore = (rawScore - pop.Mean) / pop.SD
	}

	// The significant-variant count is a database-wide constant: it spans
	// all entries below the genome-wide threshold, not just the ones with
	// known dosage in this run.
	nSig := e.db.GenomeWideSignificantCount()
	r2 := r2PerValidSNP*float64(nValid) + r2PerSignificantSNP*float64(nSig)
	if r2 > r2Ceiling {
		r2 = r2Ceiling
	}

	return domain.NormalizedResult{
		ZScore:            zScore,
		Percentile:        100 * stdNormal.CDF(zScore),
		VarianceExplained: r2,
	}
}
