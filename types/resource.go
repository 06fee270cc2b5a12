package types

import "time"

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceDeployed    ResourceStatus = "deployed"
	ResourceUnavailable ResourceStatus = "unavailable"
)

// Resource is an externally owned response asset. The allocation engine only
// reads availability and flips available -> deployed.
type Resource struct {
	ID           string         `firestore:"-" json:"id"`
	ResourceType string         `firestore:"resourceType" json:"resource_type"`
	Name         string         `firestore:"name" json:"name"`
	Capacity     int            `firestore:"capacity" json:"capacity"`
	Latitude     float64        `firestore:"latitude" json:"latitude"`
	Longitude    float64        `firestore:"longitude" json:"longitude"`
	Address      string         `firestore:"address" json:"address"`
	Status       ResourceStatus `firestore:"status" json:"status"`
	Capabilities []string       `firestore:"capabilities" json:"capabilities"`
	CreatedAt    time.Time      `firestore:"createdAt" json:"created_at"`
}

// ResourceAllocation binds one Resource to one PriorityAction.
type ResourceAllocation struct {
	ID               string    `firestore:"-" json:"id"`
	ActionID         string    `firestore:"actionId" json:"action_id"`
	ResourceID       string    `firestore:"resourceId" json:"resource_id"`
	AllocationScore  float64   `firestore:"allocationScore" json:"allocation_score"`
	EstimatedArrival time.Time `firestore:"estimatedArrival" json:"estimated_arrival"`
	Status           string    `firestore:"status" json:"status"`
	CreatedAt        time.Time `firestore:"createdAt" json:"created_at"`
}
