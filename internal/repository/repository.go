// Package repository implements the data access layer. Each repository
// holds the shared store handle and degrades with it: when the store is
// unavailable, reads return empty results and writes report nothing written,
// so callers never branch on connectivity.
//
// Queries are hand-written SQL. List queries order newest-first unless the
// entity has a more natural event timestamp, and every account-scoped query
// filters by account_id so tenants never see each other's rows.
package repository

import (
	"errors"
	"fmt"
)

// Default page sizes for bounded list queries.
const (
	DefaultPageLimit         = 100
	DefaultWebhookEventLimit = 50
	DefaultAuditLogLimit     = 100
)

// ErrInvalidInput marks a write rejected before any store access: an enum
// value outside its pipeline, a malformed reference, a missing identity.
// Callers translating errors to HTTP check for it with errors.Is; everything
// not wrapping it is a store failure.
var ErrInvalidInput = errors.New("invalid input")

// ErrOpenIDRequired is returned when a user upsert is attempted without an
// external identity. Checked before any store access.
var ErrOpenIDRequired = fmt.Errorf("open_id is required: %w", ErrInvalidInput)

func limitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
