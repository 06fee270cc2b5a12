package db

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"go-lifeline/notify"
	"go-lifeline/types"
)

// MemoryStore is an in-memory Store used by tests and local runs without
// Firestore credentials. A single mutex serializes every operation, which
// also gives AllocateResource its check-then-act atomicity.
type MemoryStore struct {
	mu       sync.Mutex
	notifier notify.Notifier

	disasters   map[string]types.Disaster
	actions     map[string]types.PriorityAction
	resources   map[string]types.Resource
	allocations map[string]types.ResourceAllocation
	summaries   map[string]types.AISummary
	decisions   map[string]types.DecisionRecord
	samples     map[string]types.TrainingSample
	sessions    map[string]types.TrainingSession

	// insertion counters give a stable created-order tiebreak
	seq     int
	created map[string]int
}

func NewMemoryStore(notifier notify.Notifier) *MemoryStore {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &MemoryStore{
		notifier:    notifier,
		disasters:   make(map[string]types.Disaster),
		actions:     make(map[string]types.PriorityAction),
		resources:   make(map[string]types.Resource),
		allocations: make(map[string]types.ResourceAllocation),
		summaries:   make(map[string]types.AISummary),
		decisions:   make(map[string]types.DecisionRecord),
		samples:     make(map[string]types.TrainingSample),
		sessions:    make(map[string]types.TrainingSession),
		created:     make(map[string]int),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) publish(ctx context.Context, collection, kind string, row interface{}) {
	if err := s.notifier.Publish(ctx, notify.NewEvent(collection, kind, row)); err != nil {
		log.Printf("Failed to publish %s event for %s: %v", kind, collection, err)
	}
}

func (s *MemoryStore) CreateDisaster(ctx context.Context, d types.Disaster) (types.Disaster, error) {
	s.mu.Lock()
	if d.ID == "" {
		d.ID = newDocID()
	}
	now := nowUTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.seq++
	s.created[d.ID] = s.seq
	s.disasters[d.ID] = d
	s.mu.Unlock()

	s.publish(ctx, disastersCollection, "create", d)
	return d, nil
}

func (s *MemoryStore) GetDisaster(_ context.Context, id string) (types.Disaster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.disasters[id]
	if !ok {
		return types.Disaster{}, fmt.Errorf("disaster %s: %w", id, types.ErrNotFound)
	}
	return d, nil
}

func (s *MemoryStore) ListDisasters(_ context.Context, limit int) ([]types.Disaster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Disaster, 0, len(s.disasters))
	for _, d := range s.disasters {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.created[out[i].ID] > s.created[out[j].ID]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) UpdateDisasterStatus(ctx context.Context, id string, newStatus types.DisasterStatus) (types.Disaster, error) {
	s.mu.Lock()
	d, ok := s.disasters[id]
	if !ok {
		s.mu.Unlock()
		return types.Disaster{}, fmt.Errorf("disaster %s: %w", id, types.ErrNotFound)
	}
	d.Status = newStatus
	d.UpdatedAt = nowUTC()
	s.disasters[id] = d
	s.mu.Unlock()

	s.publish(ctx, disastersCollection, "update", d)
	return d, nil
}

func (s *MemoryStore) CreateAction(ctx context.Context, a types.PriorityAction) (types.PriorityAction, error) {
	s.mu.Lock()
	if a.ID == "" {
		a.ID = newDocID()
	}
	now := nowUTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = types.ActionPending
	}
	if a.AssignedResources == nil {
		a.AssignedResources = []string{}
	}
	s.seq++
	s.created[a.ID] = s.seq
	s.actions[a.ID] = a
	s.mu.Unlock()

	s.publish(ctx, actionsCollection, "create", a)
	return a, nil
}

func (s *MemoryStore) GetAction(_ context.Context, id string) (types.PriorityAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.actions[id]
	if !ok {
		return types.PriorityAction{}, fmt.Errorf("action %s: %w", id, types.ErrNotFound)
	}
	return a, nil
}

func (s *MemoryStore) UpdateAction(ctx context.Context, a types.PriorityAction) (types.PriorityAction, error) {
	s.mu.Lock()
	if _, ok := s.actions[a.ID]; !ok {
		s.mu.Unlock()
		return types.PriorityAction{}, fmt.Errorf("action %s: %w", a.ID, types.ErrNotFound)
	}
	a.UpdatedAt = nowUTC()
	s.actions[a.ID] = a
	s.mu.Unlock()

	s.publish(ctx, actionsCollection, "update", a)
	return a, nil
}

func (s *MemoryStore) ListActionsByDisaster(_ context.Context, disasterID string) ([]types.PriorityAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.PriorityAction
	for _, a := range s.actions {
		if a.DisasterID == disasterID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PriorityScore != out[j].PriorityScore {
			return out[i].PriorityScore > out[j].PriorityScore
		}
		return s.created[out[i].ID] < s.created[out[j].ID]
	})
	return out, nil
}

func (s *MemoryStore) ListActionsByStatus(_ context.Context, status types.ActionStatus) ([]types.PriorityAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.PriorityAction
	for _, a := range s.actions {
		if a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.created[out[i].ID] < s.created[out[j].ID]
	})
	return out, nil
}

func (s *MemoryStore) CreateResource(_ context.Context, r types.Resource) (types.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = newDocID()
	}
	r.CreatedAt = nowUTC()
	if r.Status == "" {
		r.Status = types.ResourceAvailable
	}
	s.resources[r.ID] = r
	return r, nil
}

func (s *MemoryStore) GetResource(_ context.Context, id string) (types.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return types.Resource{}, fmt.Errorf("resource %s: %w", id, types.ErrNotFound)
	}
	return r, nil
}

func (s *MemoryStore) ListResources(_ context.Context, status types.ResourceStatus) ([]types.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.Resource
	for _, r := range s.resources {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) AllocateResource(ctx context.Context, alloc types.ResourceAllocation) (types.ResourceAllocation, error) {
	s.mu.Lock()

	resource, ok := s.resources[alloc.ResourceID]
	if !ok {
		s.mu.Unlock()
		return types.ResourceAllocation{}, fmt.Errorf("resource %s: %w", alloc.ResourceID, types.ErrNotFound)
	}
	if resource.Status != types.ResourceAvailable {
		s.mu.Unlock()
		return types.ResourceAllocation{}, fmt.Errorf("resource %s is %s: %w", alloc.ResourceID, resource.Status, types.ErrResourceUnavailable)
	}
	action, ok := s.actions[alloc.ActionID]
	if !ok {
		s.mu.Unlock()
		return types.ResourceAllocation{}, fmt.Errorf("action %s: %w", alloc.ActionID, types.ErrNotFound)
	}

	if alloc.ID == "" {
		alloc.ID = newDocID()
	}
	alloc.CreatedAt = nowUTC()
	s.allocations[alloc.ID] = alloc

	resource.Status = types.ResourceDeployed
	s.resources[resource.ID] = resource

	action.AssignedResources = append(action.AssignedResources, alloc.ResourceID)
	score := alloc.AllocationScore
	action.AllocationScore = &score
	action.UpdatedAt = nowUTC()
	s.actions[action.ID] = action
	s.mu.Unlock()

	s.publish(ctx, actionsCollection, "update", action)
	return alloc, nil
}

func (s *MemoryStore) CreateSummary(_ context.Context, sum types.AISummary) (types.AISummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sum.ID == "" {
		sum.ID = newDocID()
	}
	sum.CreatedAt = nowUTC()
	s.summaries[sum.ID] = sum
	return sum, nil
}

func (s *MemoryStore) CreateDecisionRecord(_ context.Context, r types.DecisionRecord) (types.DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = newDocID()
	}
	r.CreatedAt = nowUTC()
	s.decisions[r.ID] = r
	return r, nil
}

func (s *MemoryStore) CreateTrainingSample(_ context.Context, sample types.TrainingSample) (types.TrainingSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sample.ID == "" {
		sample.ID = newDocID()
	}
	sample.CreatedAt = nowUTC()
	s.samples[sample.ID] = sample
	return sample, nil
}

func (s *MemoryStore) CreateTrainingSession(_ context.Context, session types.TrainingSession) (types.TrainingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID == "" {
		session.ID = newDocID()
	}
	session.CreatedAt = nowUTC()
	s.seq++
	s.created[session.ID] = s.seq
	s.sessions[session.ID] = session
	return session, nil
}

func (s *MemoryStore) ListTrainingSessions(_ context.Context, limit int) ([]types.TrainingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.TrainingSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.created[out[i].ID] > s.created[out[j].ID]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Allocations returns every allocation row. Test/inspection helper; the
// pipeline itself never reads allocations back.
func (s *MemoryStore) Allocations() []types.ResourceAllocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ResourceAllocation, 0, len(s.allocations))
	for _, a := range s.allocations {
		out = append(out, a)
	}
	return out
}

// DecisionRecords returns every decision record. Test/inspection helper.
func (s *MemoryStore) DecisionRecords() []types.DecisionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.DecisionRecord, 0, len(s.decisions))
	for _, r := range s.decisions {
		out = append(out, r)
	}
	return out
}

// TrainingSamples returns every training sample. Test/inspection helper.
func (s *MemoryStore) TrainingSamples() []types.TrainingSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.TrainingSample, 0, len(s.samples))
	for _, sample := range s.samples {
		out = append(out, sample)
	}
	return out
}

// Summaries returns every stored summary. Test/inspection helper.
func (s *MemoryStore) Summaries() []types.AISummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.AISummary, 0, len(s.summaries))
	for _, sum := range s.summaries {
		out = append(out, sum)
	}
	return out
}
