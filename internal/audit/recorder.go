// Package audit records operator actions to the append-only audit trail.
package audit

import (
	"context"
	"encoding/json"

	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
)

// Recorder writes audit entries alongside mutations. Recording failures are
// logged and swallowed so audit trouble never fails the underlying action.
type Recorder struct {
	repo *repository.AuditLogs
	log  logger.Logger
}

// NewRecorder creates a Recorder over the audit log repository.
func NewRecorder(repo *repository.AuditLogs, log logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Entry describes one recorded action.
type Entry struct {
	UserID    *int64
	AccountID *int64
	Action    string
	Entity    *models.EntityRef
	Details   interface{}
	IPAddress string
	UserAgent string
}

// Record appends an audit entry. Never returns an error.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	row := models.AuditLog{
		UserID:    e.UserID,
		AccountID: e.AccountID,
		Action:    e.Action,
	}
	if e.Entity != nil {
		kind := string(e.Entity.Kind)
		id := e.Entity.ID
		row.EntityType = &kind
		row.EntityID = &id
	}
	if e.Details != nil {
		if raw, err := json.Marshal(e.Details); err == nil {
			details := string(raw)
			row.Details = &details
		} else {
			r.log.Warn("failed to encode audit details", logger.Error(err))
		}
	}
	if e.IPAddress != "" {
		row.IPAddress = &e.IPAddress
	}
	if e.UserAgent != "" {
		row.UserAgent = &e.UserAgent
	}

	if _, err := r.repo.Append(ctx, &row); err != nil {
		r.log.Error("failed to record audit entry",
			logger.String("action", e.Action),
			logger.Error(err))
	}
}
