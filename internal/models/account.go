package models

import "time"

// AccountStatus is the client lifecycle state. Accounts are never
// hard-deleted at this layer; they move between these states.
type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountPaused  AccountStatus = "paused"
	AccountChurned AccountStatus = "churned"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountActive, AccountPaused, AccountChurned:
		return true
	}
	return false
}

// AccountTier is the service tier for a client account.
type AccountTier string

const (
	TierBasic      AccountTier = "basic"
	TierPro        AccountTier = "pro"
	TierEnterprise AccountTier = "enterprise"
)

func (t AccountTier) Valid() bool {
	switch t {
	case TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}

// Account represents a client. Monetary amounts are integer cents.
type Account struct {
	ID              int64         `json:"id" db:"id"`
	Name            string        `json:"name" db:"name"`
	CompanyName     *string       `json:"company_name,omitempty" db:"company_name"`
	Status          AccountStatus `json:"status" db:"status"`
	Tier            AccountTier   `json:"tier" db:"tier"`
	OwnerID         *int64        `json:"owner_id,omitempty" db:"owner_id"`
	BillingEmail    *string       `json:"billing_email,omitempty" db:"billing_email"`
	MonthlyRetainer int64         `json:"monthly_retainer" db:"monthly_retainer"`
	GrossMargin     *int          `json:"gross_margin,omitempty" db:"gross_margin"`
	Settings        *string       `json:"settings,omitempty" db:"settings"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// ProjectStatus is the engagement state. Advances forward in normal flow but
// transitions are not enforced at this layer.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectPaused, ProjectCompleted:
		return true
	}
	return false
}

// Project is a scoped engagement under an account.
type Project struct {
	ID          int64         `json:"id" db:"id"`
	AccountID   int64         `json:"account_id" db:"account_id"`
	Name        string        `json:"name" db:"name"`
	Description *string       `json:"description,omitempty" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	StartDate   *time.Time    `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty" db:"end_date"`
	Budget      *int64        `json:"budget,omitempty" db:"budget"`
	SpentAmount int64         `json:"spent_amount" db:"spent_amount"`
	ManagerID   *int64        `json:"manager_id,omitempty" db:"manager_id"`
	Settings    *string       `json:"settings,omitempty" db:"settings"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}
