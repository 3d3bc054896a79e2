package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const invoiceColumns = `id, account_id, invoice_number, status, amount, currency,
	billing_period_start, billing_period_end, due_date, paid_at, line_items, notes,
	created_at, updated_at`

// Invoices persists billing documents.
type Invoices struct {
	store *database.Store
	log   logger.Logger
}

// NewInvoices creates the invoice repository.
func NewInvoices(store *database.Store, log logger.Logger) *Invoices {
	return &Invoices{store: store, log: log}
}

// ListByAccount returns the account's invoices, newest first.
func (r *Invoices) ListByAccount(ctx context.Context, accountID int64) ([]models.Invoice, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Invoice{}, nil
	}

	invoices := []models.Invoice{}
	query := "SELECT " + invoiceColumns + " FROM invoices WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &invoices, query, accountID); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// Create inserts an invoice and returns the stored row. The invoice number
// is globally unique; a duplicate surfaces as an error from the store.
// Returns nil when the store is unavailable.
func (r *Invoices) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	if inv.Status != "" && !inv.Status.Valid() {
		return nil, fmt.Errorf("invalid invoice status %q: %w", inv.Status, ErrInvalidInput)
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceDraft
	}
	if inv.Currency == "" {
		inv.Currency = "USD"
	}

	var stored models.Invoice
	query := `INSERT INTO invoices (account_id, invoice_number, status, amount, currency,
		billing_period_start, billing_period_end, due_date, paid_at, line_items, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + invoiceColumns
	err := db.GetContext(ctx, &stored, query,
		inv.AccountID, inv.InvoiceNumber, inv.Status, inv.Amount, inv.Currency,
		inv.BillingPeriodStart, inv.BillingPeriodEnd, inv.DueDate, inv.PaidAt, inv.LineItems, inv.Notes)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return &stored, nil
}
