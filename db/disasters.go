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

func (s *FirestoreStore) CreateDisaster(ctx context.Context, d types.Disaster) (types.Disaster, error) {
	if d.ID == "" {
		d.ID = newDocID()
	}
	now := nowUTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := s.client.Collection(disastersCollection).Doc(d.ID).Set(ctx, d)
	if err != nil {
		return types.Disaster{}, types.StorageError("create disaster", err)
	}

	s.publish(ctx, disastersCollection, "create", d)
	return d, nil
}

func (s *FirestoreStore) GetDisaster(ctx context.Context, id string) (types.Disaster, error) {
	docSnap, err := s.client.Collection(disastersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Disaster{}, fmt.Errorf("disaster %s: %w", id, types.ErrNotFound)
		}
		return types.Disaster{}, types.StorageError("get disaster", err)
	}

	var d types.Disaster
	if err := docSnap.DataTo(&d); err != nil {
		return types.Disaster{}, types.StorageError("decode disaster", err)
	}
	d.ID = docSnap.Ref.ID
	return d, nil
}

// ListDisasters returns disasters newest first. limit <= 0 means no limit.
func (s *FirestoreStore) ListDisasters(ctx context.Context, limit int) ([]types.Disaster, error) {
	q := s.client.Collection(disastersCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var disasters []types.Disaster
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, types.StorageError("list disasters", err)
		}

		var d types.Disaster
		if err := doc.DataTo(&d); err != nil {
			return nil, types.StorageError("decode disaster", err)
		}
		d.ID = doc.Ref.ID
		disasters = append(disasters, d)
	}
	return disasters, nil
}

func (s *FirestoreStore) UpdateDisasterStatus(ctx context.Context, id string, newStatus types.DisasterStatus) (types.Disaster, error) {
	docRef := s.client.Collection(disastersCollection).Doc(id)
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: nowUTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Disaster{}, fmt.Errorf("disaster %s: %w", id, types.ErrNotFound)
		}
		return types.Disaster{}, types.StorageError("update disaster status", err)
	}

	updated, err := s.GetDisaster(ctx, id)
	if err != nil {
		return types.Disaster{}, err
	}

	s.publish(ctx, disastersCollection, "update", updated)
	return updated, nil
}
