// Package models defines the entities persisted by the opsbrain backend and
// their closed enum value sets. Enum membership is validated here and
// enforced again by CHECK constraints in the schema; values outside the
// declared sets are rejected, never normalized.
package models

import "time"

// Role is a user's permission level.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleManager      Role = "manager"
	RoleOperator     Role = "operator"
	RoleVA           Role = "va"
	RoleClientViewer Role = "client_viewer"
)

// Valid reports whether the role is one of the declared values.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleOperator, RoleVA, RoleClientViewer:
		return true
	}
	return false
}

// User represents a human operator or viewer, keyed by an external identity.
type User struct {
	ID           int64     `json:"id" db:"id"`
	OpenID       string    `json:"open_id" db:"open_id"`
	Name         *string   `json:"name,omitempty" db:"name"`
	Email        *string   `json:"email,omitempty" db:"email"`
	LoginMethod  *string   `json:"login_method,omitempty" db:"login_method"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	LastSignedIn time.Time `json:"last_signed_in" db:"last_signed_in"`
}

// UpsertUserParams carries the fields supplied for a user upsert. Pointer
// fields distinguish "supplied" from "absent": on conflict only supplied
// fields are merged into the existing row.
type UpsertUserParams struct {
	OpenID       string     `json:"open_id"`
	Name         *string    `json:"name,omitempty"`
	Email        *string    `json:"email,omitempty"`
	LoginMethod  *string    `json:"login_method,omitempty"`
	Role         *Role      `json:"role,omitempty"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`
}
