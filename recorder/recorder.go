package recorder

import (
	"context"
	"time"

	"go-lifeline/db"
	"go-lifeline/types"
)

const modelVersion = "oumi-rl-v1.0"

// rewardScale is the fixed linear scaling from priority score to reward.
const rewardScale = 0.1

// Recorder persists the scoring audit trail: a decision snapshot at
// generation time and a training sample at completion time. Both paths are
// append-only; retries produce duplicate rows, never corrupted state.
type Recorder struct {
	store db.Store
}

func New(store db.Store) *Recorder {
	return &Recorder{store: store}
}

// RecordDecision snapshots the disaster state and the actions a scoring run
// generated.
func (r *Recorder) RecordDecision(ctx context.Context, d types.Disaster, generated []types.PriorityAction) (types.DecisionRecord, error) {
	actionTypes := make([]types.ActionType, 0, len(generated))
	scores := make([]int, 0, len(generated))
	for _, a := range generated {
		actionTypes = append(actionTypes, a.ActionType)
		scores = append(scores, a.PriorityScore)
	}

	record := types.DecisionRecord{
		DisasterID: d.ID,
		StateSnapshot: types.StateSnapshot{
			DisasterSeverity:   d.Severity,
			AffectedPopulation: d.AffectedPopulation,
			DisasterType:       d.DisasterType,
			Timestamp:          time.Now().UTC(),
		},
		ActionTaken: types.ActionTaken{
			ActionsGenerated: len(generated),
			ActionTypes:      actionTypes,
			PriorityScores:   scores,
		},
		Reward:       0.0,
		ModelVersion: modelVersion,
	}

	return r.store.CreateDecisionRecord(ctx, record)
}

// RecordOutcome captures a completed action as a training sample. Initial and
// final priority scores are identical because nothing re-scores an action
// between generation and completion; actual impact likewise mirrors the
// estimate since no ground truth is measured.
func (r *Recorder) RecordOutcome(ctx context.Context, a types.PriorityAction) (types.TrainingSample, error) {
	completion := time.Now().UTC()
	if a.CompletedAt != nil {
		completion = *a.CompletedAt
	}

	sample := types.TrainingSample{
		ActionID:             a.ID,
		DisasterID:           a.DisasterID,
		ActionType:           a.ActionType,
		Success:              true,
		CompletionTime:       completion,
		InitialPriorityScore: a.PriorityScore,
		FinalPriorityScore:   a.PriorityScore,
		EstimatedImpact:      a.EstimatedImpact,
		ActualImpact:         a.EstimatedImpact,
		RewardScore:          float64(a.PriorityScore) * rewardScale,
		Metadata: map[string]interface{}{
			"status":    string(a.Status),
			"deadline":  a.Deadline,
			"resources": a.AssignedResources,
		},
	}

	return r.store.CreateTrainingSample(ctx, sample)
}
