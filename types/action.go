package types

import "time"

type ActionType string

const (
	Rescue        ActionType = "rescue"
	Medical       ActionType = "medical"
	Logistics     ActionType = "logistics"
	Communication ActionType = "communication"
)

type ActionStatus string

const (
	ActionPending    ActionStatus = "pending"
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
	ActionCancelled  ActionStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s ActionStatus) Terminal() bool {
	return s == ActionCompleted || s == ActionCancelled
}

// ActionCandidate is a generated response task before persistence.
type ActionCandidate struct {
	ActionType      ActionType `json:"action_type"`
	Description     string     `json:"description"`
	EstimatedImpact int        `json:"estimated_impact"`
	Deadline        time.Time  `json:"deadline"`
	PriorityScore   int        `json:"priority_score"`
}

// PriorityAction is a persisted ActionCandidate with lifecycle state.
// CompletedAt is non-nil iff Status == completed. Actions are never deleted;
// cancellation is a terminal status.
type PriorityAction struct {
	ID                string       `firestore:"-" json:"id"`
	DisasterID        string       `firestore:"disasterId" json:"disaster_id"`
	ActionType        ActionType   `firestore:"actionType" json:"action_type"`
	Description       string       `firestore:"description" json:"description"`
	PriorityScore     int          `firestore:"priorityScore" json:"priority_score"`
	Status            ActionStatus `firestore:"status" json:"status"`
	EstimatedImpact   int          `firestore:"estimatedImpact" json:"estimated_impact"`
	Deadline          time.Time    `firestore:"deadline" json:"deadline"`
	CompletedAt       *time.Time   `firestore:"completedAt" json:"completed_at"`
	AllocationScore   *float64     `firestore:"allocationScore" json:"allocation_score,omitempty"`
	AssignedResources []string     `firestore:"assignedResources" json:"assigned_resources"`
	CreatedAt         time.Time    `firestore:"createdAt" json:"created_at"`
	UpdatedAt         time.Time    `firestore:"updatedAt" json:"updated_at"`
}
