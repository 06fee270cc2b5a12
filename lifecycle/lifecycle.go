package lifecycle

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-lifeline/db"
	"go-lifeline/recorder"
	"go-lifeline/types"
)

const defaultOutcomeTimeout = 10 * time.Second

// Manager owns the status state machine of a PriorityAction.
//
//	pending -> in_progress | completed | cancelled
//	in_progress -> completed | cancelled
//	completed, cancelled -> (terminal)
//
// Entering completed stamps CompletedAt and records a training sample through
// the recorder. The recording is fire-and-record: it runs in the background
// and its failure never rolls back or blocks the status update, since an
// audit-log gap is preferable to losing a real-world completion event.
type Manager struct {
	store          db.Store
	recorder       *recorder.Recorder
	outcomeTimeout time.Duration
}

func NewManager(store db.Store, rec *recorder.Recorder) *Manager {
	return &Manager{
		store:          store,
		recorder:       rec,
		outcomeTimeout: defaultOutcomeTimeout,
	}
}

// Transition moves an action to newStatus, enforcing the state machine.
func (m *Manager) Transition(ctx context.Context, actionID string, newStatus types.ActionStatus) (types.PriorityAction, error) {
	action, err := m.store.GetAction(ctx, actionID)
	if err != nil {
		return types.PriorityAction{}, err
	}

	if err := validateTransition(action.Status, newStatus); err != nil {
		return types.PriorityAction{}, err
	}

	action.Status = newStatus
	if newStatus == types.ActionCompleted {
		now := time.Now().UTC()
		action.CompletedAt = &now
	}

	updated, err := m.store.UpdateAction(ctx, action)
	if err != nil {
		return types.PriorityAction{}, err
	}

	if newStatus == types.ActionCompleted && m.recorder != nil {
		go m.recordOutcome(updated)
	}

	return updated, nil
}

func (m *Manager) recordOutcome(action types.PriorityAction) {
	// Detached from the request context: the completion is already committed
	// and the audit write should not die with the request.
	ctx, cancel := context.WithTimeout(context.Background(), m.outcomeTimeout)
	defer cancel()

	if _, err := m.recorder.RecordOutcome(ctx, action); err != nil {
		log.Printf("Failed to record outcome for action %s: %v", action.ID, err)
	}
}

func validateTransition(from, to types.ActionStatus) error {
	if from.Terminal() {
		return fmt.Errorf("action is already %s: %w", from, types.ErrInvalidTransition)
	}

	switch to {
	case types.ActionInProgress:
		if from != types.ActionPending {
			return fmt.Errorf("cannot move %s to %s: %w", from, to, types.ErrInvalidTransition)
		}
	case types.ActionCompleted, types.ActionCancelled:
		// allowed from any non-terminal state
	default:
		return fmt.Errorf("unknown status %q: %w", to, types.ErrInvalidTransition)
	}
	return nil
}
