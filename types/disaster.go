package types

import "time"

type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// SeverityRank orders severities for display sorting; higher is more urgent.
func SeverityRank(s Severity) int {
	switch s {
	case Critical:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

type DisasterStatus string

const (
	DisasterActive     DisasterStatus = "active"
	DisasterResponding DisasterStatus = "responding"
	DisasterResolved   DisasterStatus = "resolved"
)

// Disaster is a stored, normalized emergency report. Immutable once created
// except for Status and UpdatedAt, which operators may advance later.
type Disaster struct {
	ID                 string                 `firestore:"-" json:"id"`
	Title              string                 `firestore:"title" json:"title"`
	Description        string                 `firestore:"description" json:"description"`
	DisasterType       string                 `firestore:"disasterType" json:"disaster_type"`
	Severity           Severity               `firestore:"severity" json:"severity"`
	Latitude           float64                `firestore:"latitude" json:"latitude"`
	Longitude          float64                `firestore:"longitude" json:"longitude"`
	AffectedPopulation int                    `firestore:"affectedPopulation" json:"affected_population"`
	Status             DisasterStatus         `firestore:"status" json:"status"`
	Metadata           map[string]interface{} `firestore:"metadata" json:"metadata"`
	CreatedAt          time.Time              `firestore:"createdAt" json:"created_at"`
	UpdatedAt          time.Time              `firestore:"updatedAt" json:"updated_at"`
}

// AISummary is the enrichment artifact produced alongside action generation.
// The "AI" here is a deterministic template over disaster fields unless an
// OpenAI summarizer is configured.
type AISummary struct {
	ID                 string    `firestore:"-" json:"id"`
	DisasterID         string    `firestore:"disasterId" json:"disaster_id"`
	Summary            string    `firestore:"summary" json:"summary"`
	KeyInsights        []string  `firestore:"keyInsights" json:"key_insights"`
	RecommendedActions []string  `firestore:"recommendedActions" json:"recommended_actions"`
	ConfidenceScore    float64   `firestore:"confidenceScore" json:"confidence_score"`
	ModelUsed          string    `firestore:"modelUsed" json:"model_used"`
	CreatedAt          time.Time `firestore:"createdAt" json:"created_at"`
}
