package engine

import (
	"math"

	"github.com/genelingua/pgs-server/internal/domain"
)

// DefaultAlleleFrequency is the fixed minor-allele frequency applied
// uniformly to every variant when deriving the population distribution.
// Applying one frequency to all variants regardless of their true
// frequencies is an acknowledged simplification of the model.
const DefaultAlleleFrequency = 0.25

// PopulationParameters derives the expected mean and standard deviation of
// the raw score under a Hardy-Weinberg-style assumption, using the same
// ancestry-conditional betas as the score calculator. It is a pure function
// of the ancestry and the static database.
func (e *Engine) PopulationParameters(ancestry domain.Ancestry) domain.PopulationParameters {
	return e.populationParameters(ancestry, DefaultAlleleFrequency)
}

func (e *Engine) populationParameters(ancestry domain.Ancestry, maf float64) domain.PopulationParameters {
	var mean, variance float64
	for i := range e.db.Variants() {
		beta := e.db.Variants()[i].BetaFor(ancestry)
		mean += 2 * maf * beta
		variance += 2 * maf * (1 - maf) * beta * beta
	}
	return domain.PopulationParameters{
		Mean: mean,
		SD:   math.Sqrt(variance),
	}
}
