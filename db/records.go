package db

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go-lifeline/types"
)

func (s *FirestoreStore) CreateSummary(ctx context.Context, sum types.AISummary) (types.AISummary, error) {
	if sum.ID == "" {
		sum.ID = newDocID()
	}
	sum.CreatedAt = nowUTC()

	_, err := s.client.Collection(summariesCollection).Doc(sum.ID).Set(ctx, sum)
	if err != nil {
		return types.AISummary{}, types.StorageError("create summary", err)
	}
	return sum, nil
}

func (s *FirestoreStore) CreateDecisionRecord(ctx context.Context, r types.DecisionRecord) (types.DecisionRecord, error) {
	if r.ID == "" {
		r.ID = newDocID()
	}
	r.CreatedAt = nowUTC()

	_, err := s.client.Collection(decisionsCollection).Doc(r.ID).Set(ctx, r)
	if err != nil {
		return types.DecisionRecord{}, types.StorageError("create decision record", err)
	}
	return r, nil
}

func (s *FirestoreStore) CreateTrainingSample(ctx context.Context, sample types.TrainingSample) (types.TrainingSample, error) {
	if sample.ID == "" {
		sample.ID = newDocID()
	}
	sample.CreatedAt = nowUTC()

	_, err := s.client.Collection(trainingDataCollection).Doc(sample.ID).Set(ctx, sample)
	if err != nil {
		return types.TrainingSample{}, types.StorageError("create training sample", err)
	}
	return sample, nil
}

func (s *FirestoreStore) CreateTrainingSession(ctx context.Context, session types.TrainingSession) (types.TrainingSession, error) {
	if session.ID == "" {
		session.ID = newDocID()
	}
	session.CreatedAt = nowUTC()

	_, err := s.client.Collection(trainingSessionsCollection).Doc(session.ID).Set(ctx, session)
	if err != nil {
		return types.TrainingSession{}, types.StorageError("create training session", err)
	}
	return session, nil
}

func (s *FirestoreStore) ListTrainingSessions(ctx context.Context, limit int) ([]types.TrainingSession, error) {
	q := s.client.Collection(trainingSessionsCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []types.TrainingSession
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, types.StorageError("list training sessions", err)
		}

		var session types.TrainingSession
		if err := doc.DataTo(&session); err != nil {
			return nil, types.StorageError("decode training session", err)
		}
		session.ID = doc.Ref.ID
		out = append(out, session)
	}
	return out, nil
}
