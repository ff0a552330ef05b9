package engine

import (
	"math"
	"strings"

	"github.com/genelingua/pgs-server/internal/domain"
)

// CountEffectAlleles returns the dosage (0, 1 or 2) of the effect allele in
// a genotype string, or nil when the genotype is a no-call sentinel. With
// two-character genotypes the count naturally caps at 2.
func CountEffectAlleles(genotype, effectAllele string) *int {
	if domain.IsNoCall(genotype) {
		return nil
	}
	gt := strings.ToUpper(strings.TrimSpace(genotype))
	effect := strings.ToUpper(effectAllele)
	dosage := 0
	for _, c := range gt {
		if string(c) == effect {
			dosage++
		}
	}
	return &dosage
}

// ComputeScore walks the variant database in order and accumulates the
// weighted sum of effect-allele dosages. Variants missing from the genotype
// map, or with no-call genotypes, contribute unknown dosage: they are
// excluded from the raw score, from NValid and from TotalWeight, but still
// appear in the contribution table.
func (e *Engine) ComputeScore(snps domain.GenotypeMap, ancestry domain.Ancestry) (*domain.ScoreResult, error) {
	if !ancestry.IsValid() {
		return nil, domain.NewInvalidAncestryError(string(ancestry))
	}

	result := &domain.ScoreResult{
		Contributions: make(map[string]domain.Contribution, e.db.Size()),
	}

	for i := range e.db.Variants() {
		variant := &e.db.Variants()[i]

		genotype := snps[variant.ID]
		display := genotype
		if display == "" {
			display = missingGenotype
		}

		dosage := CountEffectAlleles(genotype, variant.EffectAllele)
		beta := variant.BetaFor(ancestry)

		var contrib *float64
		if dosage != nil {
			weighted := float64(*dosage) * beta
			contrib = &weighted
		}

		result.Contributions[variant.ID] = domain.Contribution{
			Genotype:             display,
			Dosage:               dosage,
			Beta:                 beta,
			WeightedContribution: contrib,
			Gene:                 variant.Gene,
			Evidence:             variant.Evidence,
			Phenotype:            variant.Phenotype,
		}

		if contrib != nil {
			result.RawScore += *contrib
			result.NValid++
			result.TotalWeight += math.Abs(beta)
		}
	}

	return result, nil
}

// missingGenotype is the display placeholder for variants absent from the
// input file entirely.
const missingGenotype = "—"
