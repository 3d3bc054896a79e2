package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steadycalls/opsbrain/internal/audit"
	"github.com/steadycalls/opsbrain/internal/events"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
)

// BillingHandler serves invoices.
type BillingHandler struct {
	invoices  *repository.Invoices
	mutations mutationRecorder
	log       logger.Logger
}

// NewBillingHandler creates the billing handler.
func NewBillingHandler(invoices *repository.Invoices, recorder *audit.Recorder,
	publisher *events.Publisher, log logger.Logger) *BillingHandler {
	return &BillingHandler{
		invoices:  invoices,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// ListByAccount returns the account's invoices.
func (h *BillingHandler) ListByAccount(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoices, err := h.invoices.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list invoices", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// Create stores an invoice under the account in the path.
func (h *BillingHandler) Create(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		badRequest(c, err)
		return
	}
	if invoice.InvoiceNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invoice_number is required"})
		return
	}
	invoice.AccountID = accountID

	stored, err := h.invoices.Create(c.Request.Context(), &invoice)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "invoice.create",
		&models.EntityRef{Kind: models.KindInvoice, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}
