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

func userRows(openID string, role models.Role) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "open_id", "name", "email", "login_method", "role",
		"created_at", "updated_at", "last_signed_in",
	}).AddRow(int64(1), openID, nil, nil, nil, string(role), now, now, now)
}

func TestUpsertRequiresOpenID(t *testing.T) {
	// Validation happens before any store access, so even an unavailable
	// store sees the error rather than a silent no-op.
	repo := NewUsers(unavailableStore(), logger.NewNop(), "")

	user, err := repo.Upsert(context.Background(), models.UpsertUserParams{})
	assert.ErrorIs(t, err, ErrOpenIDRequired)
	assert.Nil(t, user)
}

func TestUpsertInsertsSuppliedFieldsOnly(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewUsers(store, logger.NewNop(), "")

	name := "Dana"
	mock.ExpectQuery(`INSERT INTO users \(open_id, name, last_signed_in\)`).
		WithArgs("oid-1", name, sqlmock.AnyArg()).
		WillReturnRows(userRows("oid-1", models.RoleOperator))

	user, err := repo.Upsert(context.Background(), models.UpsertUserParams{
		OpenID: "oid-1",
		Name:   &name,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "oid-1", user.OpenID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertForcesOwnerRoleForConfiguredIdentity(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewUsers(store, logger.NewNop(), "owner-oid")

	mock.ExpectQuery(`INSERT INTO users \(open_id, role, last_signed_in\)`).
		WithArgs("owner-oid", string(models.RoleOwner), sqlmock.AnyArg()).
		WillReturnRows(userRows("owner-oid", models.RoleOwner))

	user, err := repo.Upsert(context.Background(), models.UpsertUserParams{OpenID: "owner-oid"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleOwner, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertExplicitRoleWinsOverOwnerRule(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewUsers(store, logger.NewNop(), "owner-oid")

	viewer := models.RoleClientViewer
	mock.ExpectQuery(`INSERT INTO users \(open_id, role, last_signed_in\)`).
		WithArgs("owner-oid", string(viewer), sqlmock.AnyArg()).
		WillReturnRows(userRows("owner-oid", viewer))

	user, err := repo.Upsert(context.Background(), models.UpsertUserParams{
		OpenID: "owner-oid",
		Role:   &viewer,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRejectsUnknownRole(t *testing.T) {
	repo := NewUsers(unavailableStore(), logger.NewNop(), "")

	bad := models.Role("superuser")
	user, err := repo.Upsert(context.Background(), models.UpsertUserParams{
		OpenID: "oid-1",
		Role:   &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, user)
}

func TestUpsertUnavailableStoreIsNoOp(t *testing.T) {
	repo := NewUsers(unavailableStore(), logger.NewNop(), "")

	user, err := repo.Upsert(context.Background(), models.UpsertUserParams{OpenID: "oid-1"})
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetByOpenID(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewUsers(store, logger.NewNop(), "")

	mock.ExpectQuery(`SELECT .+ FROM users WHERE open_id = \$1`).
		WithArgs("oid-1").
		WillReturnRows(userRows("oid-1", models.RoleOperator))

	user, err := repo.GetByOpenID(context.Background(), "oid-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleOperator, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByOpenIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewUsers(store, logger.NewNop(), "")

	mock.ExpectQuery(`SELECT .+ FROM users WHERE open_id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.GetByOpenID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, user)
}
