package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const issueColumns = `id, domain_id, page_id, severity, rule_id, rule_name, description, status,
	auto_fixable, first_seen, last_seen, fixed_at, assigned_task_id, created_at, updated_at`

// Issues persists detected technical problems on domains.
type Issues struct {
	store *database.Store
	log   logger.Logger
}

// NewIssues creates the issue repository.
func NewIssues(store *database.Store, log logger.Logger) *Issues {
	return &Issues{store: store, log: log}
}

// ListByDomain returns the domain's issues, newest sighting first.
func (r *Issues) ListByDomain(ctx context.Context, domainID int64) ([]models.Issue, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Issue{}, nil
	}

	issues := []models.Issue{}
	query := "SELECT " + issueColumns + " FROM issues WHERE domain_id = $1 ORDER BY first_seen DESC"
	if err := db.SelectContext(ctx, &issues, query, domainID); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return issues, nil
}

// ListCriticalOpen returns all open critical issues across domains, newest
// sighting first. Feeds the triage view.
func (r *Issues) ListCriticalOpen(ctx context.Context) ([]models.Issue, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Issue{}, nil
	}

	issues := []models.Issue{}
	query := "SELECT " + issueColumns + " FROM issues WHERE severity = $1 AND status = $2 ORDER BY first_seen DESC"
	if err := db.SelectContext(ctx, &issues, query, models.SeverityCritical, models.IssueOpen); err != nil {
		return nil, fmt.Errorf("list critical open issues: %w", err)
	}
	return issues, nil
}

// Insert stores a new issue sighting and returns the stored row. Returns nil
// when the store is unavailable.
func (r *Issues) Insert(ctx context.Context, i *models.Issue) (*models.Issue, error) {
	if i.Severity != "" && !i.Severity.Valid() {
		return nil, fmt.Errorf("invalid issue severity %q: %w", i.Severity, ErrInvalidInput)
	}
	if i.Status != "" && !i.Status.Valid() {
		return nil, fmt.Errorf("invalid issue status %q: %w", i.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if i.Severity == "" {
		i.Severity = models.SeverityMedium
	}
	if i.Status == "" {
		i.Status = models.IssueOpen
	}

	var stored models.Issue
	query := `INSERT INTO issues (domain_id, page_id, severity, rule_id, rule_name, description,
		status, auto_fixable, assigned_task_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + issueColumns
	err := db.GetContext(ctx, &stored, query,
		i.DomainID, i.PageID, i.Severity, i.RuleID, i.RuleName, i.Description,
		i.Status, i.AutoFixable, i.AssignedTaskID)
	if err != nil {
		return nil, fmt.Errorf("insert issue: %w", err)
	}
	return &stored, nil
}
