package models

import "time"

// GBPStatus is the business-profile pipeline state
// (pending -> created -> warming -> active/suspended).
type GBPStatus string

const (
	GBPPending   GBPStatus = "pending"
	GBPCreated   GBPStatus = "created"
	GBPWarming   GBPStatus = "warming"
	GBPActive    GBPStatus = "active"
	GBPSuspended GBPStatus = "suspended"
)

func (s GBPStatus) Valid() bool {
	switch s {
	case GBPPending, GBPCreated, GBPWarming, GBPActive, GBPSuspended:
		return true
	}
	return false
}

// GBP is a managed business-listing profile. VerifiedAt is set once.
type GBP struct {
	ID                 int64      `json:"id" db:"id"`
	AccountID          int64      `json:"account_id" db:"account_id"`
	ProjectID          *int64     `json:"project_id,omitempty" db:"project_id"`
	State              *string    `json:"state,omitempty" db:"state"`
	City               *string    `json:"city,omitempty" db:"city"`
	Category           *string    `json:"category,omitempty" db:"category"`
	BusinessName       *string    `json:"business_name,omitempty" db:"business_name"`
	Status             GBPStatus  `json:"status" db:"status"`
	Phone              *string    `json:"phone,omitempty" db:"phone"`
	Gmail              *string    `json:"gmail,omitempty" db:"gmail"`
	GmailPassword      *string    `json:"-" db:"gmail_password"`
	GBPURL             *string    `json:"gbp_url,omitempty" db:"gbp_url"`
	VerificationMethod *string    `json:"verification_method,omitempty" db:"verification_method"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty" db:"verified_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
