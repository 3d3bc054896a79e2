// Package events publishes domain change notifications to a Redis stream
// for downstream consumers (dispatchers, dashboards). Publishing is best
// effort and feature-flagged: a nil publisher drops everything.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/steadycalls/opsbrain/internal/logger"
)

// StreamName is the Redis stream domain events are appended to.
const StreamName = "opsbrain:events"

const publishTimeout = 5 * time.Second

// Event is one domain change notification.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	AccountID  *int64      `json:"account_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher appends events to the stream.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher over an established Redis client. A nil
// client yields a publisher that drops every event, which is how the
// service runs with Redis disabled.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// Publish appends one event to the stream. The event id and timestamp are
// filled in when absent.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]interface{}{
			"id":   event.ID,
			"type": event.Type,
			"data": string(payload),
		},
	}).Err()
}

// PublishAsync publishes without blocking the caller. Failures are logged
// and dropped.
func (p *Publisher) PublishAsync(event Event) {
	if p == nil || p.client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.Publish(ctx, event); err != nil {
			p.log.Warn("failed to publish event",
				logger.String("type", event.Type),
				logger.Error(err))
		}
	}()
}
