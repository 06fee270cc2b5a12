package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"go-lifeline/types"
)

// Notifier publishes change events for dashboard subscribers. Publishing is
// best-effort: callers log failures but never fail the originating write.
type Notifier interface {
	Publish(ctx context.Context, event types.ChangeEvent) error
}

// NewEvent builds a change event for a row in the given collection.
func NewEvent(collection, kind string, row interface{}) types.ChangeEvent {
	return types.ChangeEvent{
		ID:         uuid.NewString(),
		Collection: collection,
		Kind:       kind,
		Row:        row,
		EmittedAt:  time.Now().UTC(),
	}
}

// RedisNotifier publishes change events on a Redis pub/sub channel per
// collection ("changes:<collection>").
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Publish(ctx context.Context, event types.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}

	channel := "changes:" + event.Collection
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// Nop discards all events. Used when no Redis endpoint is configured.
type Nop struct{}

func (Nop) Publish(context.Context, types.ChangeEvent) error { return nil }

// Capture records events in memory. Test helper and local-run inspector.
type Capture struct {
	mu     sync.Mutex
	events []types.ChangeEvent
}

func (c *Capture) Publish(_ context.Context, event types.ChangeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *Capture) Events() []types.ChangeEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.ChangeEvent, len(c.events))
	copy(out, c.events)
	return out
}
