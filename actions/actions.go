package actions

import (
	"fmt"
	"time"

	"go-lifeline/scoring"
	"go-lifeline/types"
)

// Deadline offsets per action type, relative to generation time.
const (
	rescueDeadline        = 2 * time.Hour
	medicalDeadline       = 4 * time.Hour
	communicationDeadline = 6 * time.Hour
	logisticsDeadline     = 8 * time.Hour
)

// Generate produces the ordered candidate actions for a disaster. The policy
// is fixed: rescue and medical only for critical/high severity, logistics and
// communication always. Output is never empty and its content depends only on
// the disaster fields; `now` only shifts the absolute deadlines. Storage
// order is this generation order; callers may re-sort by score for display.
func Generate(d types.Disaster, now time.Time) []types.ActionCandidate {
	var candidates []types.ActionCandidate

	if d.Severity == types.Critical || d.Severity == types.High {
		candidates = append(candidates, types.ActionCandidate{
			ActionType:      types.Rescue,
			Description:     fmt.Sprintf("Deploy search and rescue teams to %s location immediately", d.Title),
			EstimatedImpact: int(float64(d.AffectedPopulation) * 0.3),
			Deadline:        now.Add(rescueDeadline),
		})
		candidates = append(candidates, types.ActionCandidate{
			ActionType:      types.Medical,
			Description:     "Establish emergency medical triage and treatment facilities",
			EstimatedImpact: int(float64(d.AffectedPopulation) * 0.4),
			Deadline:        now.Add(medicalDeadline),
		})
	}

	candidates = append(candidates, types.ActionCandidate{
		ActionType:      types.Logistics,
		Description:     "Set up supply distribution points for food, water, and shelter materials",
		EstimatedImpact: int(float64(d.AffectedPopulation) * 0.6),
		Deadline:        now.Add(logisticsDeadline),
	})

	candidates = append(candidates, types.ActionCandidate{
		ActionType:      types.Communication,
		Description:     "Establish emergency communication network and information hotline",
		EstimatedImpact: d.AffectedPopulation,
		Deadline:        now.Add(communicationDeadline),
	})

	for i := range candidates {
		candidates[i].PriorityScore = scoring.ScoreDisaster(d, candidates[i].ActionType)
	}

	return candidates
}
