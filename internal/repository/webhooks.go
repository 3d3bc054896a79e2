package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const webhookEventColumns = `id, account_id, source, event_type, payload_json, hash, received_at,
	processed_at, status, attempts, error`

const webhookSubscriptionColumns = `id, account_id, event, target_url, secret, headers, filter_expr,
	retry_max, is_enabled, created_at, updated_at`

const webhookDeliveryLogColumns = `id, subscription_id, event_id, status_code, latency_ms, attempts,
	response_snippet, delivered_at`

// WebhookEvents persists inbound event receipts, deduplicated by content
// hash.
type WebhookEvents struct {
	store *database.Store
	log   logger.Logger
}

// NewWebhookEvents creates the webhook event repository.
func NewWebhookEvents(store *database.Store, log logger.Logger) *WebhookEvents {
	return &WebhookEvents{store: store, log: log}
}

// ListByAccount returns the account's events, newest receipt first, bounded
// by limit (defaults to DefaultWebhookEventLimit).
func (r *WebhookEvents) ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.WebhookEvent, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.WebhookEvent{}, nil
	}

	events := []models.WebhookEvent{}
	query := "SELECT " + webhookEventColumns + ` FROM webhook_events
		WHERE account_id = $1 ORDER BY received_at DESC LIMIT $2`
	if err := db.SelectContext(ctx, &events, query, accountID, limitOrDefault(limit, DefaultWebhookEventLimit)); err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	return events, nil
}

// Insert stores an event receipt. A receipt whose hash already exists is
// dropped and reported as a duplicate, which keeps intake exactly-once under
// redelivery. An unavailable store returns nil, false, nil: nothing was kept
// and the delivery is not a duplicate, so callers must not acknowledge it.
func (r *WebhookEvents) Insert(ctx context.Context, e *models.WebhookEvent) (*models.WebhookEvent, bool, error) {
	if e.Status != "" && !e.Status.Valid() {
		return nil, false, fmt.Errorf("invalid webhook event status %q: %w", e.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, false, nil
	}
	if e.Status == "" {
		e.Status = models.WebhookPending
	}

	var stored models.WebhookEvent
	query := `INSERT INTO webhook_events (account_id, source, event_type, payload_json, hash, status, attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hash) DO NOTHING
		RETURNING ` + webhookEventColumns
	err := db.GetContext(ctx, &stored, query,
		e.AccountID, e.Source, e.EventType, e.PayloadJSON, e.Hash, e.Status, e.Attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("insert webhook event: %w", err)
	}
	return &stored, false, nil
}

// WebhookSubscriptions persists outbound subscription configurations.
type WebhookSubscriptions struct {
	store *database.Store
	log   logger.Logger
}

// NewWebhookSubscriptions creates the subscription repository.
func NewWebhookSubscriptions(store *database.Store, log logger.Logger) *WebhookSubscriptions {
	return &WebhookSubscriptions{store: store, log: log}
}

// ListByAccount returns the account's subscriptions, newest first.
func (r *WebhookSubscriptions) ListByAccount(ctx context.Context, accountID int64) ([]models.WebhookSubscription, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.WebhookSubscription{}, nil
	}

	subs := []models.WebhookSubscription{}
	query := "SELECT " + webhookSubscriptionColumns + ` FROM webhook_subscriptions
		WHERE account_id = $1 ORDER BY created_at DESC`
	if err := db.SelectContext(ctx, &subs, query, accountID); err != nil {
		return nil, fmt.Errorf("list webhook subscriptions: %w", err)
	}
	return subs, nil
}

// Create inserts a subscription and returns the stored row. Returns nil when
// the store is unavailable.
func (r *WebhookSubscriptions) Create(ctx context.Context, s *models.WebhookSubscription) (*models.WebhookSubscription, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if s.RetryMax == 0 {
		s.RetryMax = 5
	}

	var stored models.WebhookSubscription
	query := `INSERT INTO webhook_subscriptions (account_id, event, target_url, secret, headers,
		filter_expr, retry_max, is_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + webhookSubscriptionColumns
	err := db.GetContext(ctx, &stored, query,
		s.AccountID, s.Event, s.TargetURL, s.Secret, s.Headers,
		s.FilterExpr, s.RetryMax, s.IsEnabled)
	if err != nil {
		return nil, fmt.Errorf("create webhook subscription: %w", err)
	}
	return &stored, nil
}

// WebhookDeliveryLogs records outbound delivery attempts. Append-only.
type WebhookDeliveryLogs struct {
	store *database.Store
	log   logger.Logger
}

// NewWebhookDeliveryLogs creates the delivery log repository.
func NewWebhookDeliveryLogs(store *database.Store, log logger.Logger) *WebhookDeliveryLogs {
	return &WebhookDeliveryLogs{store: store, log: log}
}

// Append records one delivery attempt. Returns nil when the store is
// unavailable.
func (r *WebhookDeliveryLogs) Append(ctx context.Context, l *models.WebhookDeliveryLog) (*models.WebhookDeliveryLog, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if l.Attempts == 0 {
		l.Attempts = 1
	}

	var stored models.WebhookDeliveryLog
	query := `INSERT INTO webhook_delivery_logs (subscription_id, event_id, status_code, latency_ms,
		attempts, response_snippet)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + webhookDeliveryLogColumns
	err := db.GetContext(ctx, &stored, query,
		l.SubscriptionID, l.EventID, l.StatusCode, l.LatencyMs,
		l.Attempts, l.ResponseSnippet)
	if err != nil {
		return nil, fmt.Errorf("append delivery log: %w", err)
	}
	return &stored, nil
}

// ListBySubscription returns a subscription's delivery attempts, newest
// first.
func (r *WebhookDeliveryLogs) ListBySubscription(ctx context.Context, subscriptionID int64) ([]models.WebhookDeliveryLog, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.WebhookDeliveryLog{}, nil
	}

	logs := []models.WebhookDeliveryLog{}
	query := "SELECT " + webhookDeliveryLogColumns + ` FROM webhook_delivery_logs
		WHERE subscription_id = $1 ORDER BY delivered_at DESC`
	if err := db.SelectContext(ctx, &logs, query, subscriptionID); err != nil {
		return nil, fmt.Errorf("list delivery logs: %w", err)
	}
	return logs, nil
}
