package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const accountColumns = `id, name, company_name, status, tier, owner_id, billing_email,
	monthly_retainer, gross_margin, settings, created_at, updated_at`

const projectColumns = `id, account_id, name, description, status, start_date, end_date,
	budget, spent_amount, manager_id, settings, created_at, updated_at`

// Accounts persists client accounts.
type Accounts struct {
	store *database.Store
	log   logger.Logger
}

// NewAccounts creates the account repository.
func NewAccounts(store *database.Store, log logger.Logger) *Accounts {
	return &Accounts{store: store, log: log}
}

// List returns all accounts, newest first.
func (r *Accounts) List(ctx context.Context) ([]models.Account, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Account{}, nil
	}

	accounts := []models.Account{}
	query := "SELECT " + accountColumns + " FROM accounts ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// GetByID returns the account with the given id, or nil when it does not
// exist or the store is unavailable.
func (r *Accounts) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}

	var account models.Account
	query := "SELECT " + accountColumns + " FROM accounts WHERE id = $1"
	if err := db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// Create inserts an account and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Accounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if a.Status != "" && !a.Status.Valid() {
		return nil, fmt.Errorf("invalid account status %q: %w", a.Status, ErrInvalidInput)
	}
	if a.Tier != "" && !a.Tier.Valid() {
		return nil, fmt.Errorf("invalid account tier %q: %w", a.Tier, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if a.Status == "" {
		a.Status = models.AccountActive
	}
	if a.Tier == "" {
		a.Tier = models.TierBasic
	}

	var stored models.Account
	query := `INSERT INTO accounts (name, company_name, status, tier, owner_id, billing_email,
		monthly_retainer, gross_margin, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + accountColumns
	err := db.GetContext(ctx, &stored, query,
		a.Name, a.CompanyName, a.Status, a.Tier, a.OwnerID, a.BillingEmail,
		a.MonthlyRetainer, a.GrossMargin, a.Settings)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &stored, nil
}

// Projects persists engagements under accounts.
type Projects struct {
	store *database.Store
	log   logger.Logger
}

// NewProjects creates the project repository.
func NewProjects(store *database.Store, log logger.Logger) *Projects {
	return &Projects{store: store, log: log}
}

// ListByAccount returns the account's projects, newest first.
func (r *Projects) ListByAccount(ctx context.Context, accountID int64) ([]models.Project, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Project{}, nil
	}

	projects := []models.Project{}
	query := "SELECT " + projectColumns + " FROM projects WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &projects, query, accountID); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Create inserts a project and returns the stored row. Returns nil when the
// store is unavailable.
func (r *Projects) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if p.Status != "" && !p.Status.Valid() {
		return nil, fmt.Errorf("invalid project status %q: %w", p.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if p.Status == "" {
		p.Status = models.ProjectPlanning
	}

	var stored models.Project
	query := `INSERT INTO projects (account_id, name, description, status, start_date, end_date,
		budget, spent_amount, manager_id, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + projectColumns
	err := db.GetContext(ctx, &stored, query,
		p.AccountID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
		p.Budget, p.SpentAmount, p.ManagerID, p.Settings)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &stored, nil
}
