package webhooks

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/events"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
)

func newIntake(t *testing.T) (*Intake, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := database.NewWithDB(db, logger.NewNop())
	repo := repository.NewWebhookEvents(store, logger.NewNop())
	publisher := events.NewPublisher(nil, logger.NewNop())
	return NewIntake(repo, publisher, logger.NewNop()), mock
}

func TestPayloadHashDeterministic(t *testing.T) {
	a := PayloadHash("stripe", "invoice.paid", []byte(`{"id":"in_1"}`))
	b := PayloadHash("stripe", "invoice.paid", []byte(`{"id":"in_1"}`))
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestPayloadHashSeparatesFields(t *testing.T) {
	// Moving bytes between source and event type must change the digest.
	a := PayloadHash("stripeinvoice", ".paid", []byte("{}"))
	b := PayloadHash("stripe", "invoice.paid", []byte("{}"))
	assert.NotEqual(t, a, b)

	c := PayloadHash("stripe", "invoice.paid", []byte(`{"a":1}`))
	assert.NotEqual(t, b, c)
}

func TestReceiveStoresNewDelivery(t *testing.T) {
	intake, mock := newIntake(t)

	hash := PayloadHash("stripe", "invoice.paid", []byte(`{"id":"in_1"}`))
	rows := sqlmock.NewRows([]string{
		"id", "account_id", "source", "event_type", "payload_json", "hash", "received_at",
		"processed_at", "status", "attempts", "error",
	}).AddRow(int64(1), nil, "stripe", "invoice.paid", `{"id":"in_1"}`, hash,
		time.Now().UTC(), nil, string(models.WebhookPending), 0, nil)

	mock.ExpectQuery(`INSERT INTO webhook_events`).
		WithArgs(nil, "stripe", "invoice.paid", `{"id":"in_1"}`, hash,
			string(models.WebhookPending), 0).
		WillReturnRows(rows)

	result, err := intake.Receive(context.Background(), "stripe", "invoice.paid", []byte(`{"id":"in_1"}`), nil)
	require.NoError(t, err)
	require.NotNil(t, result.Stored)
	assert.False(t, result.Duplicate)
	assert.Equal(t, hash, result.Stored.Hash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiveAcknowledgesDuplicate(t *testing.T) {
	intake, mock := newIntake(t)

	mock.ExpectQuery(`INSERT INTO webhook_events`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := intake.Receive(context.Background(), "stripe", "invoice.paid", []byte(`{"id":"in_1"}`), nil)
	require.NoError(t, err)
	assert.Nil(t, result.Stored)
	assert.True(t, result.Duplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiveUnavailableStoreIsNotDuplicate(t *testing.T) {
	store := database.NewUnavailable(logger.NewNop())
	repo := repository.NewWebhookEvents(store, logger.NewNop())
	publisher := events.NewPublisher(nil, logger.NewNop())
	intake := NewIntake(repo, publisher, logger.NewNop())

	// A first-ever delivery dropped by a down store must not be reported
	// as a duplicate, or the provider would stop retrying it.
	result, err := intake.Receive(context.Background(), "stripe", "invoice.paid", []byte(`{"id":"in_1"}`), nil)
	require.NoError(t, err)
	assert.Nil(t, result.Stored)
	assert.False(t, result.Duplicate)
}
