package scoring

import (
	"math"

	"go-lifeline/types"
)

// Weights mirror the dashboard's priority model. Unknown severities fall back
// to the medium weight and unknown action types to a neutral multiplier; the
// scorer is total and never fails.
const (
	maxScore          = 100
	populationDivisor = 100.0
	populationCap     = 50.0
	fallbackBase      = 50.0
)

var severityWeights = map[types.Severity]float64{
	types.Critical: 100,
	types.High:     75,
	types.Medium:   50,
	types.Low:      25,
}

var actionTypeMultipliers = map[types.ActionType]float64{
	types.Rescue:        1.20,
	types.Medical:       1.15,
	types.Logistics:     0.90,
	types.Communication: 0.85,
}

// Score computes the priority score for taking actionType against a disaster
// of the given severity and affected population. Deterministic, clamped to
// [0, 100]. The population term saturates at 50 so very large populations
// cannot dominate the range.
func Score(severity types.Severity, affectedPopulation int, actionType types.ActionType) int {
	base, ok := severityWeights[severity]
	if !ok {
		base = fallbackBase
	}

	populationTerm := math.Min(float64(affectedPopulation)/populationDivisor, populationCap)

	multiplier, ok := actionTypeMultipliers[actionType]
	if !ok {
		multiplier = 1.0
	}

	score := int(math.Round((base + populationTerm) * multiplier))
	if score > maxScore {
		score = maxScore
	}
	return score
}

// ScoreDisaster is a convenience wrapper over Score for a stored disaster.
func ScoreDisaster(d types.Disaster, actionType types.ActionType) int {
	return Score(d.Severity, d.AffectedPopulation, actionType)
}
