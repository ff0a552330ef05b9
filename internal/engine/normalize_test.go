package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genelingua/pgs-server/internal/domain"
	"github.com/genelingua/pgs-server/internal/snpdb"
)

func TestNormalizeZScore(t *testing.T) {
	eng := New(nil)
	pop := eng.PopulationParameters(domain.EUR)

	// A raw score sitting exactly one SD above the mean.
	result := eng.Normalize(pop.Mean+pop.SD, domain.EUR, 10)
	assert.InDelta(t, 1.0, result.ZScore, 1e-9)
	assert.InDelta(t, 84.13, result.Percentile, 0.01)

	// At the mean the z-score is zero and the percentile is 50.
	result = eng.Normalize(pop.Mean, domain.EUR, 10)
	assert.InDelta(t, 0.0, result.ZScore, 1e-9)
	assert.InDelta(t, 50.0, result.Percentile, 1e-6)
}

func TestNormalizeMonotonicInRawScore(t *testing.T) {
	eng := New(nil)

	prevZ := -1e9
	prevPct := -1.0
	for _, raw := range []float64{-0.5, -0.1, 0.0, 0.1, 0.135, 0.2, 0.5} {
		result := eng.Normalize(raw, domain.EUR, 15)
		assert.Greater(t, result.ZScore, prevZ)
		assert.Greater(t, result.Percentile, prevPct)
		prevZ = result.ZScore
		prevPct = result.Percentile
	}
}

func TestNormalizeZeroVariancePanel(t *testing.T) {
	// A panel with no effect anywhere has SD 0; the z-score must not blow
	// up on the division.
	db := snpdb.New([]domain.Variant{
		{ID: "rs1", EffectAllele: "A", BetaDefault: 0, PValue: 0.5},
	}, nil)
	eng := NewWithDatabase(db, nil)

	result := eng.Normalize(0.3, domain.EUR, 1)
	assert.Zero(t, result.ZScore)
	assert.InDelta(t, 50.0, result.Percentile, 1e-9)
}

func TestVarianceExplained(t *testing.T) {
	eng := New(nil)
	nSig := eng.Database().GenomeWideSignificantCount()

	tests := []struct {
		nValid int
		want   float64
	}{
		{0, 0.005 * float64(nSig)},
		{5, 0.001*5 + 0.005*float64(nSig)},
		{15, 0.001*15 + 0.005*float64(nSig)},
	}

	for _, tt := range tests {
		result := eng.Normalize(0, domain.EUR, tt.nValid)
		want := tt.want
		if want > 0.05 {
			want = 0.05
		}
		assert.InDelta(t, want, result.VarianceExplained, 1e-12, "n_valid=%d", tt.nValid)
	}
}

func TestVarianceExplainedCeiling(t *testing.T) {
	eng := New(nil)

	// 15 valid variants plus 5 significant entries would give 0.040; a
	// hypothetical larger run is clamped at the ceiling.
	result := eng.Normalize(0, domain.EUR, 1000)
	assert.Equal(t, 0.05, result.VarianceExplained)
}
