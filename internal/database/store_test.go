package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/logger"
)

func TestAcquireWithoutURL(t *testing.T) {
	store := New("", logger.NewNop())

	db, ok := store.Acquire(context.Background())
	assert.Nil(t, db)
	assert.False(t, ok)

	// Subsequent calls stay unavailable and do not panic.
	db, ok = store.Acquire(context.Background())
	assert.Nil(t, db)
	assert.False(t, ok)
	assert.False(t, store.Available(context.Background()))
}

func TestNewUnavailable(t *testing.T) {
	store := NewUnavailable(logger.NewNop())
	assert.False(t, store.Available(context.Background()))
	assert.NoError(t, store.Close())
}

func TestNewWithDB(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	store := NewWithDB(mockDB, logger.NewNop())

	db, ok := store.Acquire(context.Background())
	require.True(t, ok)
	require.NotNil(t, db)

	// The injected handle is cached and returned as-is.
	again, ok := store.Acquire(context.Background())
	assert.True(t, ok)
	assert.Same(t, db, again)

	assert.NoError(t, store.Close())
}

func TestMigrateUnavailableIsNoOp(t *testing.T) {
	store := NewUnavailable(logger.NewNop())
	assert.NoError(t, Migrate(context.Background(), store))
}

func TestMigrateAppliesSchema(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mockDB.Close()

	for range schema {
		mock.ExpectExec("CREATE (TABLE|INDEX) IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	store := NewWithDB(mockDB, logger.NewNop())
	require.NoError(t, Migrate(context.Background(), store))
	assert.NoError(t, mock.ExpectationsWereMet())
}
