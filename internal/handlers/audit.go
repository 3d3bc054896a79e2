package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/repository"
)

// AuditHandler serves the read side of the audit trail. There is no write
// endpoint; entries are appended internally alongside mutations.
type AuditHandler struct {
	logs *repository.AuditLogs
	log  logger.Logger
}

// NewAuditHandler creates the audit handler.
func NewAuditHandler(logs *repository.AuditLogs, log logger.Logger) *AuditHandler {
	return &AuditHandler{logs: logs, log: log}
}

// ListByAccount returns the account's audit trail, newest first, bounded by
// the limit query param.
func (h *AuditHandler) ListByAccount(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.logs.ListByAccount(c.Request.Context(), accountID, queryLimit(c))
	if err != nil {
		h.log.Error("failed to list audit logs", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, entries)
}
