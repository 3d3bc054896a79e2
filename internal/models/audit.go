package models

import "time"

// AuditLog is an immutable action record, optionally tied to a user and an
// account. Never mutated or deleted.
type AuditLog struct {
	ID         int64     `json:"id" db:"id"`
	UserID     *int64    `json:"user_id,omitempty" db:"user_id"`
	AccountID  *int64    `json:"account_id,omitempty" db:"account_id"`
	Action     string    `json:"action" db:"action"`
	EntityType *string   `json:"entity_type,omitempty" db:"entity_type"`
	EntityID   *int64    `json:"entity_id,omitempty" db:"entity_id"`
	Details    *string   `json:"details,omitempty" db:"details"`
	IPAddress  *string   `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  *string   `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
