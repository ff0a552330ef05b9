package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genelingua/pgs-server/internal/domain"
)

func TestCountEffectAlleles(t *testing.T) {
	tests := []struct {
		name     string
		genotype string
		effect   string
		want     int
	}{
		{"homozygous effect", "AA", "A", 2},
		{"heterozygous", "AG", "A", 1},
		{"homozygous other", "GG", "A", 0},
		{"lowercase genotype", "ag", "A", 1},
		{"lowercase effect allele", "AG", "a", 1},
		{"single call", "A", "A", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dosage := CountEffectAlleles(tt.genotype, tt.effect)
			require.NotNil(t, dosage)
			assert.Equal(t, tt.want, *dosage)
		})
	}
}

func TestCountEffectAllelesNoCall(t *testing.T) {
	for _, genotype := range []string{"--", "NN", "0", "", "DI", "ID"} {
		assert.Nil(t, CountEffectAlleles(genotype, "A"), "genotype %q", genotype)
	}
}

func TestComputeScoreInvalidAncestry(t *testing.T) {
	eng := New(nil)

	_, err := eng.ComputeScore(domain.GenotypeMap{}, domain.Ancestry("XYZ"))
	require.Error(t, err)

	var ancestryErr *domain.InvalidAncestryError
	assert.ErrorAs(t, err, &ancestryErr)
	assert.ErrorIs(t, err, domain.ErrInvalidAncestry)
}

func TestComputeScoreEmptyMap(t *testing.T) {
	eng := New(nil)

	result, err := eng.ComputeScore(domain.GenotypeMap{}, domain.EUR)
	require.NoError(t, err)

	assert.Zero(t, result.RawScore)
	assert.Zero(t, result.NValid)
	assert.Zero(t, result.TotalWeight)
	assert.Len(t, result.Contributions, eng.Database().Size())

	for id, c := range result.Contributions {
		assert.False(t, c.Defined(), "%s should have unknown dosage", id)
		assert.Equal(t, "—", c.Genotype, "%s display genotype", id)
	}
}

func TestComputeScoreContributionLinearity(t *testing.T) {
	eng := New(nil)

	snps := make(domain.GenotypeMap)
	for _, v := range eng.Database().Variants() {
		snps[v.ID] = v.EffectAllele + v.EffectAllele
	}

	result, err := eng.ComputeScore(snps, domain.EUR)
	require.NoError(t, err)

	assert.Equal(t, eng.Database().Size(), result.NValid)

	sum := 0.0
	for _, c := range result.Contributions {
		require.True(t, c.Defined())
		assert.Equal(t, 2, *c.Dosage)
		assert.InDelta(t, 2*c.Beta, *c.WeightedContribution, 1e-12)
		sum += *c.WeightedContribution
	}
	assert.InDelta(t, sum, result.RawScore, 1e-12)
}

func TestComputeScoreDosageBounds(t *testing.T) {
	eng := New(nil)

	snps := domain.GenotypeMap{
		"rs4680":   "AG",
		"rs737865": "--",
	}

	result, err := eng.ComputeScore(snps, domain.EUR)
	require.NoError(t, err)

	for id, c := range result.Contributions {
		if !c.Defined() {
			continue
		}
		assert.GreaterOrEqual(t, *c.Dosage, 0, "dosage lower bound for %s", id)
		assert.LessOrEqual(t, *c.Dosage, 2, "dosage upper bound for %s", id)
	}
}

func TestComputeScoreAncestryChangesWeighting(t *testing.T) {
	eng := New(nil)
	snps := domain.GenotypeMap{"rs4680": "AA"}

	eur, err := eng.ComputeScore(snps, domain.EUR)
	require.NoError(t, err)
	eas, err := eng.ComputeScore(snps, domain.EAS)
	require.NoError(t, err)

	// rs4680 carries opposite effect directions in these two populations.
	assert.InDelta(t, 2*0.042, eur.RawScore, 1e-12)
	assert.InDelta(t, 2*-0.042, eas.RawScore, 1e-12)
	assert.InDelta(t, eur.TotalWeight, eas.TotalWeight, 1e-12,
		"total weight uses absolute effect sizes")
}

func TestComputeScoreDeterministic(t *testing.T) {
	eng := New(nil)
	snps := domain.GenotypeMap{"rs4680": "AG", "rs1800497": "CT"}

	first, err := eng.ComputeScore(snps, domain.EUR)
	require.NoError(t, err)
	second, err := eng.ComputeScore(snps, domain.EUR)
	require.NoError(t, err)

	assert.Equal(t, first.RawScore, second.RawScore)
	assert.Equal(t, first.NValid, second.NValid)
	assert.True(t, math.Abs(first.TotalWeight-second.TotalWeight) < 1e-15)
}
