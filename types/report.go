package types

import "time"

// DisasterWebhookPayload is the inbound report shape accepted by the webhook.
// Severity defaults to medium and AffectedPopulation to 0 when omitted.
type DisasterWebhookPayload struct {
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	DisasterType       string                 `json:"disaster_type"`
	Severity           string                 `json:"severity"`
	Latitude           float64                `json:"latitude"`
	Longitude          float64                `json:"longitude"`
	AffectedPopulation *int                   `json:"affected_population,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

// MockDisaster is the raw report shape of the mock data files.
type MockDisaster struct {
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Location  struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Severity           string                 `json:"severity"`
	DisasterType       string                 `json:"disaster_type"`
	Message            string                 `json:"message"`
	AffectedPopulation int                    `json:"affected_population"`
	Metadata           map[string]interface{} `json:"metadata"`
}

// IngestResult carries whatever the orchestrator managed to produce for one
// report. Summary and Actions may be missing independently; Warnings explains
// which enrichment steps failed and why.
type IngestResult struct {
	Disaster Disaster         `json:"disaster"`
	Summary  *AISummary       `json:"summary,omitempty"`
	Actions  []PriorityAction `json:"actions,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// BatchItemResult is the per-report outcome of a batch run.
type BatchItemResult struct {
	Success    bool   `json:"success"`
	DisasterID string `json:"disaster_id,omitempty"`
	Location   string `json:"location"`
	Error      string `json:"error,omitempty"`
}

// BatchSummary is the roll-up returned by the batch ingestion driver.
type BatchSummary struct {
	Total       int               `json:"total"`
	Successful  int               `json:"successful"`
	Failed      int               `json:"failed"`
	SuccessRate string            `json:"success_rate"`
	Results     []BatchItemResult `json:"results"`
}

// ChangeEvent is published on create/update of disasters and priority
// actions. Subscribers (the dashboard) interpret it; this pipeline only
// emits it.
type ChangeEvent struct {
	ID         string      `json:"id"`
	Collection string      `json:"collection"`
	Kind       string      `json:"kind"` // "create", "update" or "overdue"
	Row        interface{} `json:"row"`
	EmittedAt  time.Time   `json:"emitted_at"`
}
