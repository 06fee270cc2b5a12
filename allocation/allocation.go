package allocation

import (
	"context"
	"fmt"
	"time"

	"go-lifeline/db"
	"go-lifeline/types"
)

const (
	allocationAssigned = "assigned"
	arrivalLeadTime    = 2 * time.Hour
)

// ScorePolicy rates the match between an action's requirements and a
// resource's capabilities. It is a named, replaceable hook: the shipped
// policy returns a constant, matching the dashboard's behavior, and callers
// may swap in a real matching function without touching the engine.
type ScorePolicy func(action types.PriorityAction, resource types.Resource) float64

// FixedScore is the default policy: every match scores 0.85.
func FixedScore(types.PriorityAction, types.Resource) float64 {
	return 0.85
}

// Engine assigns available resources to priority actions.
type Engine struct {
	store  db.Store
	policy ScorePolicy
}

func NewEngine(store db.Store, policy ScorePolicy) *Engine {
	if policy == nil {
		policy = FixedScore
	}
	return &Engine{store: store, policy: policy}
}

// Allocate binds the resource to the action. The resource must be available;
// the availability check is re-run transactionally inside the store so that
// two concurrent allocations of the same resource cannot both succeed.
func (e *Engine) Allocate(ctx context.Context, actionID, resourceID string) (types.ResourceAllocation, error) {
	action, err := e.store.GetAction(ctx, actionID)
	if err != nil {
		return types.ResourceAllocation{}, err
	}
	if action.Status.Terminal() {
		return types.ResourceAllocation{}, types.ValidationError("cannot allocate to %s action %s", action.Status, actionID)
	}

	resource, err := e.store.GetResource(ctx, resourceID)
	if err != nil {
		return types.ResourceAllocation{}, err
	}
	if resource.Status != types.ResourceAvailable {
		return types.ResourceAllocation{}, fmt.Errorf("resource %s is %s: %w", resourceID, resource.Status, types.ErrResourceUnavailable)
	}

	alloc := types.ResourceAllocation{
		ActionID:         actionID,
		ResourceID:       resourceID,
		AllocationScore:  e.policy(action, resource),
		EstimatedArrival: time.Now().UTC().Add(arrivalLeadTime),
		Status:           allocationAssigned,
	}

	return e.store.AllocateResource(ctx, alloc)
}
