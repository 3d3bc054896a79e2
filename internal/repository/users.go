package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const userColumns = "id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in"

// Users persists user identities keyed by external open_id.
type Users struct {
	store *database.Store
	log   logger.Logger

	// ownerOpenID, when set, is granted the owner role on sign-in unless an
	// explicit role is supplied.
	ownerOpenID string
}

// NewUsers creates the user repository.
func NewUsers(store *database.Store, log logger.Logger, ownerOpenID string) *Users {
	return &Users{store: store, log: log, ownerOpenID: ownerOpenID}
}

// GetByOpenID returns the user with the given external identity, or nil when
// no such user exists or the store is unavailable.
func (r *Users) GetByOpenID(ctx context.Context, openID string) (*models.User, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}

	var user models.User
	query := "SELECT " + userColumns + " FROM users WHERE open_id = $1"
	if err := db.GetContext(ctx, &user, query, openID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by open_id: %w", err)
	}
	return &user, nil
}

// Upsert inserts or updates a user by open_id. Only supplied fields are
// merged into an existing row; last_signed_in is always refreshed. When the
// identity matches the configured owner and no explicit role is supplied,
// the owner role is applied on both paths. Returns nil when the store is
// unavailable.
func (r *Users) Upsert(ctx context.Context, p models.UpsertUserParams) (*models.User, error) {
	if p.OpenID == "" {
		return nil, ErrOpenIDRequired
	}

	role := p.Role
	if role == nil && r.ownerOpenID != "" && p.OpenID == r.ownerOpenID {
		owner := models.RoleOwner
		role = &owner
	}
	if role != nil && !role.Valid() {
		return nil, fmt.Errorf("invalid role %q: %w", *role, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}

	cols := []string{"open_id"}
	vals := []string{"$1"}
	args := []interface{}{p.OpenID}
	var set []string

	add := func(col string, v interface{}) {
		args = append(args, v)
		ph := fmt.Sprintf("$%d", len(args))
		cols = append(cols, col)
		vals = append(vals, ph)
		set = append(set, col+" = "+ph)
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.LoginMethod != nil {
		add("login_method", *p.LoginMethod)
	}
	if role != nil {
		add("role", *role)
	}

	signedIn := time.Now().UTC()
	if p.LastSignedIn != nil {
		signedIn = *p.LastSignedIn
	}
	add("last_signed_in", signedIn)
	set = append(set, "updated_at = now()")

	query := fmt.Sprintf(
		"INSERT INTO users (%s) VALUES (%s) ON CONFLICT (open_id) DO UPDATE SET %s RETURNING %s",
		strings.Join(cols, ", "), strings.Join(vals, ", "), strings.Join(set, ", "), userColumns,
	)

	var user models.User
	if err := db.GetContext(ctx, &user, query, args...); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &user, nil
}
