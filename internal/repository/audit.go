package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const auditLogColumns = `id, user_id, account_id, action, entity_type, entity_id, details,
	ip_address, user_agent, created_at`

// AuditLogs records actions immutably. There is no update or delete path.
type AuditLogs struct {
	store *database.Store
	log   logger.Logger
}

// NewAuditLogs creates the audit log repository.
func NewAuditLogs(store *database.Store, log logger.Logger) *AuditLogs {
	return &AuditLogs{store: store, log: log}
}

// Append stores an audit record. Returns nil when the store is unavailable.
func (r *AuditLogs) Append(ctx context.Context, a *models.AuditLog) (*models.AuditLog, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}

	var stored models.AuditLog
	query := `INSERT INTO audit_logs (user_id, account_id, action, entity_type, entity_id, details,
		ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + auditLogColumns
	err := db.GetContext(ctx, &stored, query,
		a.UserID, a.AccountID, a.Action, a.EntityType, a.EntityID, a.Details,
		a.IPAddress, a.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("append audit log: %w", err)
	}
	return &stored, nil
}

// ListByAccount returns the account's audit trail, newest first, bounded by
// limit (defaults to DefaultAuditLogLimit).
func (r *AuditLogs) ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.AuditLog, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.AuditLog{}, nil
	}

	entries := []models.AuditLog{}
	query := "SELECT " + auditLogColumns + ` FROM audit_logs
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2`
	if err := db.SelectContext(ctx, &entries, query, accountID, limitOrDefault(limit, DefaultAuditLogLimit)); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}
