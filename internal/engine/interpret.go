package engine

import (
	"fmt"

	"github.com/genelingua/pgs-server/internal/domain"
)

// Category color codes used by downstream renderers.
var categoryColors = map[domain.Category]string{
	domain.WellBelowAverage: "#c0392b",
	domain.BelowAverage:     "#e67e22",
	domain.Average:          "#3498db",
	domain.AboveAverage:     "#27ae60",
	domain.WellAboveAverage: "#16a085",
}

// Categorize maps a z-score into one of the five ordered bands.
func Categorize(z float64) domain.Category {
	switch {
	case z < -1.5:
		return domain.WellBelowAverage
	case z < -0.5:
		return domain.BelowAverage
	case z < 0.5:
		return domain.Average
	case z < 1.5:
		return domain.AboveAverage
	default:
		return domain.WellAboveAverage
	}
}

// Interpret builds the interpretation record for a normalized result. The
// five-way category band and the three-way advice split both key on z; the
// advice split is intentionally coarser and independent of the band, so the
// two must not be collapsed into one switch.
func Interpret(z, percentile, r2 float64, nValid int) domain.Interpretation {
	category := Categorize(z)

	var mainText string
	var advice []string
	switch {
	case z < -1:
		mainText = fmt.Sprintf(
			"Your polygenic score is in the bottom %.0f%% of the population for these language-related genetic variants.",
			100-percentile)
		advice = []string{
			"Focus on systematic phonics and pronunciation drills",
			"Use spaced repetition aggressively (Anki/SRS daily)",
			"Consider 10-15% more time on explicit grammar study",
			"Consistency beats genetics: 2h/day > 90th percentile + 30min",
		}
	case z > 1:
		mainText = fmt.Sprintf(
			"Your polygenic score is in the top %.0f%% for these variants. Slight efficiency advantage.",
			percentile)
		advice = []string{
			"You may acquire phonological patterns slightly faster",
			"You can likely handle more immersion-heavy approaches",
			"Don't skip fundamentals - genetics ≠ automatic fluency",
			"Your advantage is learning rate, not ultimate attainment",
		}
	default:
		mainText = "Your polygenic score is average (around the 50th percentile). This is where most successful learners are."
		advice = []string{
			"Use evidence-based methods: input + SRS + production",
			"Balance immersion (60%) with explicit study (25%) and speaking (15%)",
			"Consistency matters far more than genetics",
			"Track your hours - aim for 600-1200 hours for B2-level",
		}
	}

	varianceText := fmt.Sprintf(
		"These %d variants explain ~%.1f%% of variance in related traits. The rest comes from study method, hours, motivation, and environment.",
		nValid, r2*100)

	return domain.Interpretation{
		Category:     category,
		Color:        categoryColors[category],
		MainText:     mainText,
		Advice:       advice,
		VarianceText: varianceText,
	}
}
