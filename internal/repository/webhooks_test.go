package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

func webhookEventRows(hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "account_id", "source", "event_type", "payload_json", "hash", "received_at",
		"processed_at", "status", "attempts", "error",
	}).AddRow(int64(1), nil, "stripe", "invoice.paid", `{"id":"in_1"}`, hash,
		time.Now().UTC(), nil, string(models.WebhookPending), 0, nil)
}

func TestInsertWebhookEvent(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewWebhookEvents(store, logger.NewNop())

	mock.ExpectQuery(`INSERT INTO webhook_events .+ ON CONFLICT \(hash\) DO NOTHING`).
		WithArgs(nil, "stripe", "invoice.paid", `{"id":"in_1"}`, "abc123",
			string(models.WebhookPending), 0).
		WillReturnRows(webhookEventRows("abc123"))

	event, duplicate, err := repo.Insert(context.Background(), &models.WebhookEvent{
		Source:      "stripe",
		EventType:   "invoice.paid",
		PayloadJSON: `{"id":"in_1"}`,
		Hash:        "abc123",
	})
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.False(t, duplicate)
	assert.Equal(t, models.WebhookPending, event.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWebhookEventDuplicateHashIsDropped(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewWebhookEvents(store, logger.NewNop())

	// DO NOTHING on a conflicting hash returns no row.
	mock.ExpectQuery(`INSERT INTO webhook_events .+ ON CONFLICT \(hash\) DO NOTHING`).
		WithArgs(nil, "stripe", "invoice.paid", `{"id":"in_1"}`, "abc123",
			string(models.WebhookPending), 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	event, duplicate, err := repo.Insert(context.Background(), &models.WebhookEvent{
		Source:      "stripe",
		EventType:   "invoice.paid",
		PayloadJSON: `{"id":"in_1"}`,
		Hash:        "abc123",
	})
	assert.NoError(t, err)
	assert.Nil(t, event)
	assert.True(t, duplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWebhookEventUnavailableStoreIsNotDuplicate(t *testing.T) {
	repo := NewWebhookEvents(unavailableStore(), logger.NewNop())

	event, duplicate, err := repo.Insert(context.Background(), &models.WebhookEvent{
		Source:      "stripe",
		EventType:   "invoice.paid",
		PayloadJSON: `{"id":"in_1"}`,
		Hash:        "abc123",
	})
	assert.NoError(t, err)
	assert.Nil(t, event)
	assert.False(t, duplicate)
}

func TestListWebhookEventsAppliesDefaultLimit(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewWebhookEvents(store, logger.NewNop())

	mock.ExpectQuery(`SELECT .+ FROM webhook_events\s+WHERE account_id = \$1 ORDER BY received_at DESC LIMIT \$2`).
		WithArgs(int64(5), DefaultWebhookEventLimit).
		WillReturnRows(webhookEventRows("abc123"))

	events, err := repo.ListByAccount(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendDeliveryLogDefaultsAttempts(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewWebhookDeliveryLogs(store, logger.NewNop())

	rows := sqlmock.NewRows([]string{
		"id", "subscription_id", "event_id", "status_code", "latency_ms", "attempts",
		"response_snippet", "delivered_at",
	}).AddRow(int64(1), int64(2), nil, 200, 45, 1, nil, time.Now().UTC())

	mock.ExpectQuery(`INSERT INTO webhook_delivery_logs`).
		WithArgs(int64(2), nil, 200, 45, 1, nil).
		WillReturnRows(rows)

	code := 200
	latency := 45
	logEntry, err := repo.Append(context.Background(), &models.WebhookDeliveryLog{
		SubscriptionID: 2,
		StatusCode:     &code,
		LatencyMs:      &latency,
	})
	require.NoError(t, err)
	require.NotNil(t, logEntry)
	assert.Equal(t, 1, logEntry.Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
