package types

import "time"

// StateSnapshot captures the disaster state that fed a scoring run.
type StateSnapshot struct {
	DisasterSeverity   Severity  `firestore:"disasterSeverity" json:"disaster_severity"`
	AffectedPopulation int       `firestore:"affectedPopulation" json:"affected_population"`
	DisasterType       string    `firestore:"disasterType" json:"disaster_type"`
	Timestamp          time.Time `firestore:"timestamp" json:"timestamp"`
}

// ActionTaken summarizes the set of actions a scoring run produced.
type ActionTaken struct {
	ActionsGenerated int          `firestore:"actionsGenerated" json:"actions_generated"`
	ActionTypes      []ActionType `firestore:"actionTypes" json:"action_types"`
	PriorityScores   []int        `firestore:"priorityScores" json:"priority_scores"`
}

// DecisionRecord is an append-only audit snapshot written at generation time.
type DecisionRecord struct {
	ID            string        `firestore:"-" json:"id"`
	DisasterID    string        `firestore:"disasterId" json:"disaster_id"`
	StateSnapshot StateSnapshot `firestore:"stateSnapshot" json:"state_snapshot"`
	ActionTaken   ActionTaken   `firestore:"actionTaken" json:"action_taken"`
	Reward        float64       `firestore:"reward" json:"reward"`
	ModelVersion  string        `firestore:"modelVersion" json:"model_version"`
	CreatedAt     time.Time     `firestore:"createdAt" json:"created_at"`
}

// TrainingSample is an append-only outcome record captured when an action
// completes. Initial and final priority scores are always equal: nothing
// re-scores an action between generation and completion, so the reward is a
// deterministic function of the original score.
type TrainingSample struct {
	ID                   string                 `firestore:"-" json:"id"`
	ActionID             string                 `firestore:"actionId" json:"action_id"`
	DisasterID           string                 `firestore:"disasterId" json:"disaster_id"`
	ActionType           ActionType             `firestore:"actionType" json:"action_type"`
	Success              bool                   `firestore:"success" json:"success"`
	CompletionTime       time.Time              `firestore:"completionTime" json:"completion_time"`
	InitialPriorityScore int                    `firestore:"initialPriorityScore" json:"initial_priority_score"`
	FinalPriorityScore   int                    `firestore:"finalPriorityScore" json:"final_priority_score"`
	EstimatedImpact      int                    `firestore:"estimatedImpact" json:"estimated_impact"`
	ActualImpact         int                    `firestore:"actualImpact" json:"actual_impact"`
	RewardScore          float64                `firestore:"rewardScore" json:"reward_score"`
	Metadata             map[string]interface{} `firestore:"metadata" json:"metadata"`
	CreatedAt            time.Time              `firestore:"createdAt" json:"created_at"`
}

// TrainingSession records a mock training run. The metrics are synthetic;
// there is no real learning step behind them.
type TrainingSession struct {
	ID        string                 `firestore:"-" json:"id"`
	Episodes  int                    `firestore:"episodes" json:"episodes"`
	Status    string                 `firestore:"status" json:"status"`
	Metadata  map[string]interface{} `firestore:"metadata" json:"metadata"`
	StartedAt time.Time              `firestore:"startedAt" json:"started_at"`
	CreatedAt time.Time              `firestore:"createdAt" json:"created_at"`
}
