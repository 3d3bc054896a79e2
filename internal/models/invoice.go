package models

import "time"

// InvoiceStatus is the billing document state
// (draft -> sent -> paid/overdue/cancelled).
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice is a billing document per period. Amount is integer cents and
// InvoiceNumber is globally unique.
type Invoice struct {
	ID                 int64         `json:"id" db:"id"`
	AccountID          int64         `json:"account_id" db:"account_id"`
	InvoiceNumber      string        `json:"invoice_number" db:"invoice_number"`
	Status             InvoiceStatus `json:"status" db:"status"`
	Amount             int64         `json:"amount" db:"amount"`
	Currency           string        `json:"currency" db:"currency"`
	BillingPeriodStart *time.Time    `json:"billing_period_start,omitempty" db:"billing_period_start"`
	BillingPeriodEnd   *time.Time    `json:"billing_period_end,omitempty" db:"billing_period_end"`
	DueDate            *time.Time    `json:"due_date,omitempty" db:"due_date"`
	PaidAt             *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	LineItems          *string       `json:"line_items,omitempty" db:"line_items"`
	Notes              *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}
