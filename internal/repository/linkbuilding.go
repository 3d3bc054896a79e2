package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const prospectColumns = `id, account_id, project_id, domain, url, dr, traffic, topic_relevance,
	contact_email, contact_name, status, outreach_template, last_contacted_at, created_at, updated_at`

const linkColumns = `id, account_id, project_id, prospect_id, source_url, target_url, dr, anchor,
	status, link_type, verified_at, last_checked_at, created_at, updated_at`

const emailColumns = `id, account_id, prospect_id, subject, body, from_email, to_email, status,
	sent_at, opened_at, replied_at, created_at, updated_at`

// Prospects persists link-building targets.
type Prospects struct {
	store *database.Store
	log   logger.Logger
}

// NewProspects creates the prospect repository.
func NewProspects(store *database.Store, log logger.Logger) *Prospects {
	return &Prospects{store: store, log: log}
}

// ListByAccount returns the account's prospects, newest first.
func (r *Prospects) ListByAccount(ctx context.Context, accountID int64) ([]models.Prospect, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Prospect{}, nil
	}

	prospects := []models.Prospect{}
	query := "SELECT " + prospectColumns + " FROM prospects WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &prospects, query, accountID); err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	return prospects, nil
}

// Create inserts a prospect and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Prospects) Create(ctx context.Context, p *models.Prospect) (*models.Prospect, error) {
	if p.Status != "" && !p.Status.Valid() {
		return nil, fmt.Errorf("invalid prospect status %q: %w", p.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if p.Status == "" {
		p.Status = models.ProspectIdentified
	}

	var stored models.Prospect
	query := `INSERT INTO prospects (account_id, project_id, domain, url, dr, traffic,
		topic_relevance, contact_email, contact_name, status, outreach_template, last_contacted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + prospectColumns
	err := db.GetContext(ctx, &stored, query,
		p.AccountID, p.ProjectID, p.Domain, p.URL, p.DR, p.Traffic,
		p.TopicRelevance, p.ContactEmail, p.ContactName, p.Status, p.OutreachTemplate, p.LastContactedAt)
	if err != nil {
		return nil, fmt.Errorf("create prospect: %w", err)
	}
	return &stored, nil
}

// Links persists acquired backlinks.
type Links struct {
	store *database.Store
	log   logger.Logger
}

// NewLinks creates the link repository.
func NewLinks(store *database.Store, log logger.Logger) *Links {
	return &Links{store: store, log: log}
}

// ListByAccount returns the account's links, newest first.
func (r *Links) ListByAccount(ctx context.Context, accountID int64) ([]models.Link, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Link{}, nil
	}

	links := []models.Link{}
	query := "SELECT " + linkColumns + " FROM links WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &links, query, accountID); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// ListVerified returns the account's live, verified links ordered by most
// recent verification.
func (r *Links) ListVerified(ctx context.Context, accountID int64) ([]models.Link, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Link{}, nil
	}

	links := []models.Link{}
	query := "SELECT " + linkColumns + ` FROM links
		WHERE account_id = $1 AND status = $2 AND verified_at IS NOT NULL
		ORDER BY verified_at DESC`
	if err := db.SelectContext(ctx, &links, query, accountID, models.LinkLive); err != nil {
		return nil, fmt.Errorf("list verified links: %w", err)
	}
	return links, nil
}

// Create inserts a link and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Links) Create(ctx context.Context, l *models.Link) (*models.Link, error) {
	if l.Status != "" && !l.Status.Valid() {
		return nil, fmt.Errorf("invalid link status %q: %w", l.Status, ErrInvalidInput)
	}
	if l.LinkType != nil && !l.LinkType.Valid() {
		return nil, fmt.Errorf("invalid link type %q: %w", *l.LinkType, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if l.Status == "" {
		l.Status = models.LinkPending
	}

	var stored models.Link
	query := `INSERT INTO links (account_id, project_id, prospect_id, source_url, target_url, dr,
		anchor, status, link_type, verified_at, last_checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + linkColumns
	err := db.GetContext(ctx, &stored, query,
		l.AccountID, l.ProjectID, l.ProspectID, l.SourceURL, l.TargetURL, l.DR,
		l.Anchor, l.Status, l.LinkType, l.VerifiedAt, l.LastCheckedAt)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return &stored, nil
}

// Emails persists outreach emails tied to prospects.
type Emails struct {
	store *database.Store
	log   logger.Logger
}

// NewEmails creates the email repository.
func NewEmails(store *database.Store, log logger.Logger) *Emails {
	return &Emails{store: store, log: log}
}

// ListByProspect returns a prospect's emails, newest first.
func (r *Emails) ListByProspect(ctx context.Context, prospectID int64) ([]models.Email, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Email{}, nil
	}

	emails := []models.Email{}
	query := "SELECT " + emailColumns + " FROM emails WHERE prospect_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &emails, query, prospectID); err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	return emails, nil
}

// Create inserts an email and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Emails) Create(ctx context.Context, e *models.Email) (*models.Email, error) {
	if e.Status != "" && !e.Status.Valid() {
		return nil, fmt.Errorf("invalid email status %q: %w", e.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if e.Status == "" {
		e.Status = models.EmailDraft
	}

	var stored models.Email
	query := `INSERT INTO emails (account_id, prospect_id, subject, body, from_email, to_email,
		status, sent_at, opened_at, replied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + emailColumns
	err := db.GetContext(ctx, &stored, query,
		e.AccountID, e.ProspectID, e.Subject, e.Body, e.FromEmail, e.ToEmail,
		e.Status, e.SentAt, e.OpenedAt, e.RepliedAt)
	if err != nil {
		return nil, fmt.Errorf("create email: %w", err)
	}
	return &stored, nil
}
