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

func (s *FirestoreStore) CreateResource(ctx context.Context, r types.Resource) (types.Resource, error) {
	if r.ID == "" {
		r.ID = newDocID()
	}
	r.CreatedAt = nowUTC()
	if r.Status == "" {
		r.Status = types.ResourceAvailable
	}

	_, err := s.client.Collection(resourcesCollection).Doc(r.ID).Set(ctx, r)
	if err != nil {
		return types.Resource{}, types.StorageError("create resource", err)
	}
	return r, nil
}

func (s *FirestoreStore) GetResource(ctx context.Context, id string) (types.Resource, error) {
	docSnap, err := s.client.Collection(resourcesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Resource{}, fmt.Errorf("resource %s: %w", id, types.ErrNotFound)
		}
		return types.Resource{}, types.StorageError("get resource", err)
	}

	var r types.Resource
	if err := docSnap.DataTo(&r); err != nil {
		return types.Resource{}, types.StorageError("decode resource", err)
	}
	r.ID = docSnap.Ref.ID
	return r, nil
}

// ListResources filters by status; an empty status returns everything.
func (s *FirestoreStore) ListResources(ctx context.Context, resourceStatus types.ResourceStatus) ([]types.Resource, error) {
	q := s.client.Collection(resourcesCollection).Query
	if resourceStatus != "" {
		q = q.Where("status", "==", resourceStatus)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []types.Resource
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, types.StorageError("list resources", err)
		}

		var r types.Resource
		if err := doc.DataTo(&r); err != nil {
			return nil, types.StorageError("decode resource", err)
		}
		r.ID = doc.Ref.ID
		out = append(out, r)
	}
	return out, nil
}

// AllocateResource runs the whole assignment as one transaction so that the
// availability check and the deployed flip cannot interleave with a
// concurrent allocation of the same resource.
func (s *FirestoreStore) AllocateResource(ctx context.Context, alloc types.ResourceAllocation) (types.ResourceAllocation, error) {
	if alloc.ID == "" {
		alloc.ID = newDocID()
	}
	alloc.CreatedAt = nowUTC()

	resourceRef := s.client.Collection(resourcesCollection).Doc(alloc.ResourceID)
	actionRef := s.client.Collection(actionsCollection).Doc(alloc.ActionID)
	allocRef := s.client.Collection(allocationsCollection).Doc(alloc.ID)

	var updatedAction types.PriorityAction

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		resourceDoc, err := tx.Get(resourceRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("resource %s: %w", alloc.ResourceID, types.ErrNotFound)
			}
			return err
		}
		var resource types.Resource
		if err := resourceDoc.DataTo(&resource); err != nil {
			return err
		}
		if resource.Status != types.ResourceAvailable {
			return fmt.Errorf("resource %s is %s: %w", alloc.ResourceID, resource.Status, types.ErrResourceUnavailable)
		}

		actionDoc, err := tx.Get(actionRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("action %s: %w", alloc.ActionID, types.ErrNotFound)
			}
			return err
		}
		var action types.PriorityAction
		if err := actionDoc.DataTo(&action); err != nil {
			return err
		}
		action.ID = actionDoc.Ref.ID

		if err := tx.Set(allocRef, alloc); err != nil {
			return err
		}
		if err := tx.Update(resourceRef, []firestore.Update{
			{Path: "status", Value: types.ResourceDeployed},
		}); err != nil {
			return err
		}

		action.AssignedResources = append(action.AssignedResources, alloc.ResourceID)
		score := alloc.AllocationScore
		action.AllocationScore = &score
		action.UpdatedAt = nowUTC()
		updatedAction = action

		return tx.Set(actionRef, action)
	})
	if err != nil {
		if isDomainErr(err) {
			return types.ResourceAllocation{}, err
		}
		return types.ResourceAllocation{}, types.StorageError("allocate resource", err)
	}

	s.publish(ctx, actionsCollection, "update", updatedAction)
	return alloc, nil
}
