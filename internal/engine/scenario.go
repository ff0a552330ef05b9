package engine

import (
	"errors"

	"github.com/genelingua/pgs-server/internal/domain"
)

// BaseHours is the fixed study-hour target for reaching B2-level
// proficiency before any adjustment.
const BaseHours = 800

// ErrZeroDailyMinutes is returned when a projection is requested with no
// study time per day; the months-to-target division is undefined then.
var ErrZeroDailyMinutes = errors.New("daily minutes must be positive")

var methodMultipliers = map[domain.MethodQuality]float64{
	domain.MethodOptimal:  0.85,
	domain.MethodGood:     1.0,
	domain.MethodPoor:     1.5,
	domain.MethodTerrible: 2.0,
}

var consistencyMultipliers = map[domain.ConsistencyLevel]float64{
	domain.ConsistencyHigh:   0.95,
	domain.ConsistencyMedium: 1.05,
	domain.ConsistencyLow:    1.25,
}

// geneticMultiplier is a step function of the genetic percentile. The
// branches are evaluated high-to-low then low-to-high, so a percentile of
// exactly 60 takes the >=60 branch rather than the <=40 one. This ordering
// is part of the contract.
func geneticMultiplier(percentile float64) float64 {
	switch {
	case percentile >= 80:
		return 0.97
	case percentile >= 60:
		return 0.99
	case percentile <= 20:
		return 1.05
	case percentile <= 40:
		return 1.02
	default:
		return 1.0
	}
}

// ProjectScenario estimates total study hours and months to the B2 target
// for a given daily budget, method quality, consistency and genetic
// percentile. It is independent of the scoring pipeline: any percentile can
// be fed in for what-if comparisons. Unrecognized method or consistency
// values use a neutral multiplier of 1.0.
func ProjectScenario(dailyMinutes int, method domain.MethodQuality, consistency domain.ConsistencyLevel, geneticPercentile float64) (domain.ScenarioProjection, error) {
	if dailyMinutes <= 0 {
		return domain.ScenarioProjection{}, ErrZeroDailyMinutes
	}

	methodMult, ok := methodMultipliers[method]
	if !ok {
		methodMult = 1.0
	}
	consistMult, ok := consistencyMultipliers[consistency]
	if !ok {
		consistMult = 1.0
	}

	adjustedHours := BaseHours * methodMult * consistMult * geneticMultiplier(geneticPercentile)
	months := (adjustedHours / (float64(dailyMinutes) / 60)) / 30

	return domain.ScenarioProjection{
		TotalHours: round(adjustedHours, 0),
		MonthsToB2: round(months, 1),
	}, nil
}

// scenarioSpec describes one row of the report's fixed scenario table.
type scenarioSpec struct {
	name         string
	percentile   float64
	method       domain.MethodQuality
	dailyMinutes int
	consistency  domain.ConsistencyLevel
	// usesOwnPercentile substitutes the run's computed percentile.
	usesOwnPercentile bool
}

// reportScenarios are the six illustrative rows attached to every report.
var reportScenarios = []scenarioSpec{
	{name: "Your scenario", method: domain.MethodGood, dailyMinutes: 120, consistency: domain.ConsistencyHigh, usesOwnPercentile: true},
	{name: "Poor method", method: domain.MethodPoor, dailyMinutes: 120, consistency: domain.ConsistencyHigh, usesOwnPercentile: true},
	{name: "Low consistency", method: domain.MethodGood, dailyMinutes: 120, consistency: domain.ConsistencyLow, usesOwnPercentile: true},
	{name: "Top 10% genetics, poor method", percentile: 95, method: domain.MethodPoor, dailyMinutes: 120, consistency: domain.ConsistencyHigh},
	{name: "Bottom 10% genetics, optimal method", percentile: 5, method: domain.MethodOptimal, dailyMinutes: 120, consistency: domain.ConsistencyHigh},
	{name: "Average genetics, 30 min/day", percentile: 50, method: domain.MethodGood, dailyMinutes: 30, consistency: domain.ConsistencyMedium},
}
