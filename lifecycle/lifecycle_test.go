package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lifeline/db"
	"go-lifeline/recorder"
	"go-lifeline/types"
)

func newFixture(t *testing.T) (*Manager, *db.MemoryStore, types.PriorityAction) {
	t.Helper()
	store := db.NewMemoryStore(nil)
	mgr := NewManager(store, recorder.New(store))

	action, err := store.CreateAction(context.Background(), types.PriorityAction{
		DisasterID:      "d-1",
		ActionType:      types.Rescue,
		Description:     "Deploy search and rescue teams",
		PriorityScore:   90,
		EstimatedImpact: 500,
		Deadline:        time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, types.ActionPending, action.Status)
	return mgr, store, action
}

func TestTransitionPendingToInProgress(t *testing.T) {
	mgr, _, action := newFixture(t)

	updated, err := mgr.Transition(context.Background(), action.ID, types.ActionInProgress)
	require.NoError(t, err)
	assert.Equal(t, types.ActionInProgress, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestCompletionSetsCompletedAt(t *testing.T) {
	mgr, store, action := newFixture(t)

	updated, err := mgr.Transition(context.Background(), action.ID, types.ActionCompleted)
	require.NoError(t, err)
	assert.Equal(t, types.ActionCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// completion records a training sample in the background
	assert.Eventually(t, func() bool {
		return len(store.TrainingSamples()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	sample := store.TrainingSamples()[0]
	assert.Equal(t, action.ID, sample.ActionID)
	assert.InDelta(t, 9.0, sample.RewardScore, 1e-9)
}

func TestOnlyCompletionSetsCompletedAt(t *testing.T) {
	mgr, _, action := newFixture(t)

	updated, err := mgr.Transition(context.Background(), action.ID, types.ActionInProgress)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	updated, err = mgr.Transition(context.Background(), updated.ID, types.ActionCancelled)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	targets := []types.ActionStatus{
		types.ActionPending, types.ActionInProgress, types.ActionCompleted, types.ActionCancelled,
	}

	for _, terminal := range []types.ActionStatus{types.ActionCompleted, types.ActionCancelled} {
		mgr, _, action := newFixture(t)
		_, err := mgr.Transition(context.Background(), action.ID, terminal)
		require.NoError(t, err)

		for _, target := range targets {
			_, err := mgr.Transition(context.Background(), action.ID, target)
			assert.ErrorIs(t, err, types.ErrInvalidTransition, "%s -> %s must fail", terminal, target)
		}
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	mgr, _, action := newFixture(t)

	_, err := mgr.Transition(context.Background(), action.ID, types.ActionStatus("archived"))
	assert.ErrorIs(t, err, types.ErrInvalidTransition)
}

func TestInProgressCannotRestart(t *testing.T) {
	mgr, _, action := newFixture(t)

	_, err := mgr.Transition(context.Background(), action.ID, types.ActionInProgress)
	require.NoError(t, err)

	_, err = mgr.Transition(context.Background(), action.ID, types.ActionInProgress)
	assert.ErrorIs(t, err, types.ErrInvalidTransition)
}

// failingSampleStore rejects training sample writes to simulate a broken
// audit path.
type failingSampleStore struct {
	*db.MemoryStore
}

func (f *failingSampleStore) CreateTrainingSample(context.Context, types.TrainingSample) (types.TrainingSample, error) {
	return types.TrainingSample{}, errors.New("training store down")
}

func TestCompletionSurvivesRecorderFailure(t *testing.T) {
	mem := db.NewMemoryStore(nil)
	store := &failingSampleStore{MemoryStore: mem}
	mgr := NewManager(store, recorder.New(store))

	action, err := mem.CreateAction(context.Background(), types.PriorityAction{
		DisasterID: "d-1", ActionType: types.Medical, PriorityScore: 70,
	})
	require.NoError(t, err)

	updated, err := mgr.Transition(context.Background(), action.ID, types.ActionCompleted)
	require.NoError(t, err, "a recorder failure must not fail the completion")
	assert.Equal(t, types.ActionCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// status stuck even though the sample write keeps failing
	stored, err := mem.GetAction(context.Background(), action.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ActionCompleted, stored.Status)
}
