package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"go-lifeline/notify"
)

// FirestoreStore implements Store on top of Firestore. The client and the
// notifier are injected; the store owns neither.
type FirestoreStore struct {
	client   *firestore.Client
	notifier notify.Notifier
}

func NewFirestoreStore(client *firestore.Client, notifier notify.Notifier) *FirestoreStore {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &FirestoreStore{client: client, notifier: notifier}
}

var _ Store = (*FirestoreStore)(nil)

// publish emits a change event. Notification failures are logged and
// swallowed; they never surface to the write that triggered them.
func (s *FirestoreStore) publish(ctx context.Context, collection, kind string, row interface{}) {
	if err := s.notifier.Publish(ctx, notify.NewEvent(collection, kind, row)); err != nil {
		log.Printf("Failed to publish %s event for %s: %v", kind, collection, err)
	}
}

func newDocID() string {
	return uuid.NewString()
}
