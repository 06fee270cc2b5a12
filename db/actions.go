package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-lifeline/types"
)

func (s *FirestoreStore) CreateAction(ctx context.Context, a types.PriorityAction) (types.PriorityAction, error) {
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

	_, err := s.client.Collection(actionsCollection).Doc(a.ID).Set(ctx, a)
	if err != nil {
		return types.PriorityAction{}, types.StorageError("create action", err)
	}

	s.publish(ctx, actionsCollection, "create", a)
	return a, nil
}

func (s *FirestoreStore) GetAction(ctx context.Context, id string) (types.PriorityAction, error) {
	docSnap, err := s.client.Collection(actionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.PriorityAction{}, fmt.Errorf("action %s: %w", id, types.ErrNotFound)
		}
		return types.PriorityAction{}, types.StorageError("get action", err)
	}

	var a types.PriorityAction
	if err := docSnap.DataTo(&a); err != nil {
		return types.PriorityAction{}, types.StorageError("decode action", err)
	}
	a.ID = docSnap.Ref.ID
	return a, nil
}

func (s *FirestoreStore) UpdateAction(ctx context.Context, a types.PriorityAction) (types.PriorityAction, error) {
	if a.ID == "" {
		return types.PriorityAction{}, types.ValidationError("action ID required for update")
	}
	a.UpdatedAt = nowUTC()

	_, err := s.client.Collection(actionsCollection).Doc(a.ID).Set(ctx, a)
	if err != nil {
		return types.PriorityAction{}, types.StorageError("update action", err)
	}

	s.publish(ctx, actionsCollection, "update", a)
	return a, nil
}

// ListActionsByDisaster returns the disaster's actions, highest priority first.
func (s *FirestoreStore) ListActionsByDisaster(ctx context.Context, disasterID string) ([]types.PriorityAction, error) {
	iter := s.client.Collection(actionsCollection).
		Where("disasterId", "==", disasterID).
		OrderBy("priorityScore", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectActions(iter)
}

func (s *FirestoreStore) ListActionsByStatus(ctx context.Context, actionStatus types.ActionStatus) ([]types.PriorityAction, error) {
	iter := s.client.Collection(actionsCollection).
		Where("status", "==", actionStatus).
		Documents(ctx)
	defer iter.Stop()

	return collectActions(iter)
}

func collectActions(iter *firestore.DocumentIterator) ([]types.PriorityAction, error) {
	var out []types.PriorityAction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, types.StorageError("list actions", err)
		}

		var a types.PriorityAction
		if err := doc.DataTo(&a); err != nil {
			return nil, types.StorageError("decode action", err)
		}
		a.ID = doc.Ref.ID
		out = append(out, a)
	}
	return out, nil
}
