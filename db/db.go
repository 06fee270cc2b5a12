package db

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"go-lifeline/types"
)

// Collection names. Any store honoring the Store contract suffices; no query
// dialect leaks out of this package.
const (
	disastersCollection        = "disasters"
	actionsCollection          = "priority_actions"
	resourcesCollection        = "resources"
	allocationsCollection      = "resource_allocations"
	summariesCollection        = "ai_summaries"
	decisionsCollection        = "rl_decisions"
	trainingDataCollection     = "rl_training_data"
	trainingSessionsCollection = "rl_training_sessions"
)

// Store is the narrow CRUD+query surface the pipeline consumes. Disaster and
// action writes publish change events through the injected Notifier.
type Store interface {
	CreateDisaster(ctx context.Context, d types.Disaster) (types.Disaster, error)
	GetDisaster(ctx context.Context, id string) (types.Disaster, error)
	ListDisasters(ctx context.Context, limit int) ([]types.Disaster, error)
	UpdateDisasterStatus(ctx context.Context, id string, status types.DisasterStatus) (types.Disaster, error)

	CreateAction(ctx context.Context, a types.PriorityAction) (types.PriorityAction, error)
	GetAction(ctx context.Context, id string) (types.PriorityAction, error)
	UpdateAction(ctx context.Context, a types.PriorityAction) (types.PriorityAction, error)
	ListActionsByDisaster(ctx context.Context, disasterID string) ([]types.PriorityAction, error)
	ListActionsByStatus(ctx context.Context, status types.ActionStatus) ([]types.PriorityAction, error)

	CreateResource(ctx context.Context, r types.Resource) (types.Resource, error)
	GetResource(ctx context.Context, id string) (types.Resource, error)
	ListResources(ctx context.Context, status types.ResourceStatus) ([]types.Resource, error)

	// AllocateResource atomically re-checks that the resource is available,
	// creates the allocation row, flips the resource to deployed and records
	// the allocation on the action. Returns ErrResourceUnavailable when the
	// availability precondition fails.
	AllocateResource(ctx context.Context, alloc types.ResourceAllocation) (types.ResourceAllocation, error)

	CreateSummary(ctx context.Context, s types.AISummary) (types.AISummary, error)
	CreateDecisionRecord(ctx context.Context, r types.DecisionRecord) (types.DecisionRecord, error)
	CreateTrainingSample(ctx context.Context, s types.TrainingSample) (types.TrainingSample, error)
	CreateTrainingSession(ctx context.Context, s types.TrainingSession) (types.TrainingSession, error)
	ListTrainingSessions(ctx context.Context, limit int) ([]types.TrainingSession, error)
}

// NewFirestoreClient builds a Firestore client from base64-encoded service
// account credentials. The caller owns the client lifecycle and must Close it.
func NewFirestoreClient(ctx context.Context, encodedCreds string) (*firestore.Client, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Firestore credentials: %w", err)
	}

	opt := option.WithCredentialsJSON(creds)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}
	return client, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// isDomainErr distinguishes pipeline-taxonomy failures from raw backend
// errors so the latter can be wrapped as StorageError.
func isDomainErr(err error) bool {
	return errors.Is(err, types.ErrResourceUnavailable) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrValidation)
}
