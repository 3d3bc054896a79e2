package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/metrics"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
	"github.com/steadycalls/opsbrain/internal/webhooks"
)

// maxWebhookBody caps inbound payloads at 1 MiB.
const maxWebhookBody = 1 << 20

// WebhooksHandler serves inbound webhook intake and the outbound
// subscription surface.
type WebhooksHandler struct {
	intake        *webhooks.Intake
	events        *repository.WebhookEvents
	subscriptions *repository.WebhookSubscriptions
	deliveries    *repository.WebhookDeliveryLogs
	metrics       *metrics.Metrics
	log           logger.Logger
}

// NewWebhooksHandler creates the webhooks handler.
func NewWebhooksHandler(intake *webhooks.Intake, events *repository.WebhookEvents,
	subscriptions *repository.WebhookSubscriptions, deliveries *repository.WebhookDeliveryLogs,
	m *metrics.Metrics, log logger.Logger) *WebhooksHandler {
	return &WebhooksHandler{
		intake:        intake,
		events:        events,
		subscriptions: subscriptions,
		deliveries:    deliveries,
		metrics:       m,
		log:           log,
	}
}

// Receive accepts one delivery from an external provider. The source comes
// from the path, the event type from the X-Event-Type header (falling back
// to "unknown"), and an optional account scope from the account_id query
// param. Duplicates are acknowledged with 200 so providers stop retrying.
func (h *WebhooksHandler) Receive(c *gin.Context) {
	source := c.Param("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source is required"})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil || len(payload) == 0 {
		h.metrics.ObserveWebhook(source, "error")
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload is required"})
		return
	}

	eventType := c.GetHeader("X-Event-Type")
	if eventType == "" {
		eventType = "unknown"
	}

	var accountID *int64
	if raw := c.Query("account_id"); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account_id"})
			return
		}
		accountID = &id
	}

	result, err := h.intake.Receive(c.Request.Context(), source, eventType, payload, accountID)
	if err != nil {
		h.metrics.ObserveWebhook(source, "error")
		h.log.Error("webhook intake failed",
			logger.String("source", source),
			logger.Error(err))
		internalError(c)
		return
	}

	if result.Duplicate {
		h.metrics.ObserveWebhook(source, "duplicate")
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}
	if result.Stored == nil {
		// Store down: refuse the delivery so the provider retries.
		h.metrics.ObserveWebhook(source, "dropped")
		storeUnavailable(c)
		return
	}

	h.metrics.ObserveWebhook(source, "stored")
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "event_id": result.Stored.ID})
}

// ListEvents returns the account's received events, bounded by the limit
// query param.
func (h *WebhooksHandler) ListEvents(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	events, err := h.events.ListByAccount(c.Request.Context(), accountID, queryLimit(c))
	if err != nil {
		h.log.Error("failed to list webhook events", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ListSubscriptions returns the account's outbound subscriptions.
func (h *WebhooksHandler) ListSubscriptions(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	subs, err := h.subscriptions.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list webhook subscriptions", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, subs)
}

type createSubscriptionRequest struct {
	Event      string  `json:"event" binding:"required"`
	TargetURL  string  `json:"target_url" binding:"required"`
	Secret     string  `json:"secret" binding:"required"`
	Headers    *string `json:"headers"`
	FilterExpr *string `json:"filter_expr"`
	RetryMax   int     `json:"retry_max"`
	IsEnabled  *bool   `json:"is_enabled"`
}

// CreateSubscription stores an outbound subscription under the account in
// the path. The secret is accepted on create but never echoed back in
// responses.
func (h *WebhooksHandler) CreateSubscription(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sub := models.WebhookSubscription{
		AccountID:  accountID,
		Event:      req.Event,
		TargetURL:  req.TargetURL,
		Secret:     req.Secret,
		Headers:    req.Headers,
		FilterExpr: req.FilterExpr,
		RetryMax:   req.RetryMax,
		IsEnabled:  req.IsEnabled == nil || *req.IsEnabled,
	}

	stored, err := h.subscriptions.Create(c.Request.Context(), &sub)
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

// ListDeliveries returns the subscription's delivery attempts.
func (h *WebhooksHandler) ListDeliveries(c *gin.Context) {
	subscriptionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	deliveries, err := h.deliveries.ListBySubscription(c.Request.Context(), subscriptionID)
	if err != nil {
		h.log.Error("failed to list delivery logs", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}
