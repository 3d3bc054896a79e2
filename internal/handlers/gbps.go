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

// GBPsHandler serves managed business profiles and their inbound calls.
type GBPsHandler struct {
	gbps      *repository.GBPs
	calls     *repository.Calls
	mutations mutationRecorder
	log       logger.Logger
}

// NewGBPsHandler creates the business-profile handler.
func NewGBPsHandler(gbps *repository.GBPs, calls *repository.Calls,
	recorder *audit.Recorder, publisher *events.Publisher, log logger.Logger) *GBPsHandler {
	return &GBPsHandler{
		gbps:      gbps,
		calls:     calls,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// ListByAccount returns the account's profiles.
func (h *GBPsHandler) ListByAccount(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	gbps, err := h.gbps.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list gbps", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gbps)
}

// Create stores a profile under the account in the path.
func (h *GBPsHandler) Create(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var gbp models.GBP
	if err := c.ShouldBindJSON(&gbp); err != nil {
		badRequest(c, err)
		return
	}
	gbp.AccountID = accountID

	stored, err := h.gbps.Create(c.Request.Context(), &gbp)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "gbp.create",
		&models.EntityRef{Kind: models.KindGBP, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}

// ListCalls returns the profile's inbound calls, newest call first.
func (h *GBPsHandler) ListCalls(c *gin.Context) {
	gbpID, ok := pathID(c, "id")
	if !ok {
		return
	}

	calls, err := h.calls.ListByGBP(c.Request.Context(), gbpID)
	if err != nil {
		h.log.Error("failed to list calls", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, calls)
}

// CreateCall records an inbound call against the profile in the path.
func (h *GBPsHandler) CreateCall(c *gin.Context) {
	gbpID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var call models.Call
	if err := c.ShouldBindJSON(&call); err != nil {
		badRequest(c, err)
		return
	}
	if call.AccountID == 0 || call.CalledAt.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id and called_at are required"})
		return
	}
	call.GBPID = &gbpID

	stored, err := h.calls.Insert(c.Request.Context(), &call)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}
	c.JSON(http.StatusCreated, stored)
}
