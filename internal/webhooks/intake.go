// Package webhooks implements inbound webhook intake: hashing, dedup and
// receipt storage.
package webhooks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/steadycalls/opsbrain/internal/events"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
)

// Intake accepts raw webhook deliveries and stores them exactly once. The
// content hash covers source, event type and payload, so a provider
// redelivering the same event is recorded a single time.
type Intake struct {
	events    *repository.WebhookEvents
	publisher *events.Publisher
	log       logger.Logger
}

// NewIntake creates the intake service.
func NewIntake(repo *repository.WebhookEvents, publisher *events.Publisher, log logger.Logger) *Intake {
	return &Intake{events: repo, publisher: publisher, log: log}
}

// Result reports what intake did with a delivery.
type Result struct {
	// Stored is the receipt when this delivery was new; nil for a duplicate
	// or when the store is unavailable.
	Stored *models.WebhookEvent
	// Duplicate is true when an identical delivery was already recorded. A
	// delivery dropped because the store is down is NOT a duplicate: the
	// provider must keep retrying it.
	Duplicate bool
}

// Receive hashes and stores one delivery. Duplicates are acknowledged, not
// errored, so providers stop retrying. A store that cannot accept the
// delivery yields a zero Result so the caller can refuse the delivery
// instead of acknowledging it.
func (i *Intake) Receive(ctx context.Context, source, eventType string, payload []byte, accountID *int64) (Result, error) {
	hash := PayloadHash(source, eventType, payload)

	stored, duplicate, err := i.events.Insert(ctx, &models.WebhookEvent{
		AccountID:   accountID,
		Source:      source,
		EventType:   eventType,
		PayloadJSON: string(payload),
		Hash:        hash,
	})
	if err != nil {
		return Result{}, err
	}
	if duplicate {
		i.log.Debug("duplicate webhook delivery dropped",
			logger.String("source", source),
			logger.String("event_type", eventType))
		return Result{Duplicate: true}, nil
	}
	if stored == nil {
		i.log.Warn("webhook delivery refused, store unavailable",
			logger.String("source", source),
			logger.String("event_type", eventType))
		return Result{}, nil
	}

	i.publisher.PublishAsync(events.Event{
		Type:      "webhook.received",
		AccountID: accountID,
		Payload: map[string]interface{}{
			"event_id":   stored.ID,
			"source":     source,
			"event_type": eventType,
		},
	})
	return Result{Stored: stored}, nil
}

// PayloadHash is the content digest used for dedup. Source, event type and
// payload are NUL-separated so distinct inputs cannot collide by
// concatenation.
func PayloadHash(source, eventType string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte{0})
	h.Write([]byte(eventType))
	h.Write([]byte{0})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
