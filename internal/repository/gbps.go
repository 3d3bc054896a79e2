package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const gbpColumns = `id, account_id, project_id, state, city, category, business_name, status,
	phone, gmail, gmail_password, gbp_url, verification_method, verified_at, created_at, updated_at`

const callColumns = `id, account_id, gbp_id, caller_phone, receiver_phone, duration, status,
	recording_url, transcription, lead_quality, called_at, created_at`

// GBPs persists managed business-listing profiles.
type GBPs struct {
	store *database.Store
	log   logger.Logger
}

// NewGBPs creates the business-profile repository.
func NewGBPs(store *database.Store, log logger.Logger) *GBPs {
	return &GBPs{store: store, log: log}
}

// ListByAccount returns the account's profiles, newest first.
func (r *GBPs) ListByAccount(ctx context.Context, accountID int64) ([]models.GBP, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.GBP{}, nil
	}

	gbps := []models.GBP{}
	query := "SELECT " + gbpColumns + " FROM gbps WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &gbps, query, accountID); err != nil {
		return nil, fmt.Errorf("list gbps: %w", err)
	}
	return gbps, nil
}

// Create inserts a profile and returns the stored row. Returns nil when the
// store is unavailable.
func (r *GBPs) Create(ctx context.Context, g *models.GBP) (*models.GBP, error) {
	if g.Status != "" && !g.Status.Valid() {
		return nil, fmt.Errorf("invalid gbp status %q: %w", g.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if g.Status == "" {
		g.Status = models.GBPPending
	}

	var stored models.GBP
	query := `INSERT INTO gbps (account_id, project_id, state, city, category, business_name,
		status, phone, gmail, gmail_password, gbp_url, verification_method, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + gbpColumns
	err := db.GetContext(ctx, &stored, query,
		g.AccountID, g.ProjectID, g.State, g.City, g.Category, g.BusinessName,
		g.Status, g.Phone, g.Gmail, g.GmailPassword, g.GBPURL, g.VerificationMethod, g.VerifiedAt)
	if err != nil {
		return nil, fmt.Errorf("create gbp: %w", err)
	}
	return &stored, nil
}

// Calls persists inbound call records.
type Calls struct {
	store *database.Store
	log   logger.Logger
}

// NewCalls creates the call repository.
func NewCalls(store *database.Store, log logger.Logger) *Calls {
	return &Calls{store: store, log: log}
}

// ListByGBP returns a profile's calls ordered by call time, newest first.
func (r *Calls) ListByGBP(ctx context.Context, gbpID int64) ([]models.Call, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Call{}, nil
	}

	calls := []models.Call{}
	query := "SELECT " + callColumns + " FROM calls WHERE gbp_id = $1 ORDER BY called_at DESC"
	if err := db.SelectContext(ctx, &calls, query, gbpID); err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	return calls, nil
}

// Insert stores a call record and returns the stored row. Returns nil when
// the store is unavailable.
func (r *Calls) Insert(ctx context.Context, c *models.Call) (*models.Call, error) {
	if c.Status != nil && !c.Status.Valid() {
		return nil, fmt.Errorf("invalid call status %q: %w", *c.Status, ErrInvalidInput)
	}
	if c.LeadQuality != nil && !c.LeadQuality.Valid() {
		return nil, fmt.Errorf("invalid lead quality %q: %w", *c.LeadQuality, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}

	var stored models.Call
	query := `INSERT INTO calls (account_id, gbp_id, caller_phone, receiver_phone, duration,
		status, recording_url, transcription, lead_quality, called_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + callColumns
	err := db.GetContext(ctx, &stored, query,
		c.AccountID, c.GBPID, c.CallerPhone, c.ReceiverPhone, c.Duration,
		c.Status, c.RecordingURL, c.Transcription, c.LeadQuality, c.CalledAt)
	if err != nil {
		return nil, fmt.Errorf("insert call: %w", err)
	}
	return &stored, nil
}
