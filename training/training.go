package training

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go-lifeline/db"
	"go-lifeline/types"
)

// Trigger runs the mock training endpoint. The returned metrics are
// synthetic: no model is trained and nothing here feeds back into scoring.
// Kept because the dashboard's learning page expects the shape.
type Trigger struct {
	store db.Store
}

func NewTrigger(store db.Store) *Trigger {
	return &Trigger{store: store}
}

// Result mirrors the mock training response of the dashboard API.
type Result struct {
	Success          bool               `json:"success"`
	TrainingID       string             `json:"training_id"`
	Episodes         int                `json:"episodes"`
	AvgReward        float64            `json:"avg_reward"`
	FinalPerformance map[string]float64 `json:"final_performance"`
	Message          string             `json:"message"`
}

// Run records a training session row and returns synthetic metrics.
func (t *Trigger) Run(ctx context.Context, episodes int) (Result, error) {
	if episodes <= 0 {
		episodes = 1000
	}

	started := time.Now().UTC()
	session, err := t.store.CreateTrainingSession(ctx, types.TrainingSession{
		Episodes: episodes,
		Status:   "training",
		Metadata: map[string]interface{}{
			"model_version": fmt.Sprintf("oumi-rl-v%d", started.UnixMilli()),
		},
		StartedAt: started,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Success:    true,
		TrainingID: session.ID,
		Episodes:   episodes,
		AvgReward:  65.5 + rand.Float64()*10,
		FinalPerformance: map[string]float64{
			"fast_response_rate":        0.78 + rand.Float64()*0.15,
			"resource_efficiency":       0.85 + rand.Float64()*0.10,
			"people_helped_per_episode": 1200 + rand.Float64()*300,
		},
		Message: "RL training completed successfully",
	}, nil
}

// Sessions returns the most recent training sessions.
func (t *Trigger) Sessions(ctx context.Context, limit int) ([]types.TrainingSession, error) {
	if limit <= 0 {
		limit = 10
	}
	return t.store.ListTrainingSessions(ctx, limit)
}
