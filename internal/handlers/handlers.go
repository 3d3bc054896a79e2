// Package handlers implements the HTTP API over the repositories. Handlers
// stay thin: bind, call the repository, shape the response. Degraded-store
// reads surface as empty collections; degraded writes surface as 503 so
// clients know nothing was persisted.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/steadycalls/opsbrain/internal/audit"
	"github.com/steadycalls/opsbrain/internal/auth"
	"github.com/steadycalls/opsbrain/internal/events"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
	"github.com/steadycalls/opsbrain/internal/repository"
)

// mutationRecorder does the bookkeeping shared by every write path: an
// audit entry and an async domain event.
type mutationRecorder struct {
	recorder  *audit.Recorder
	publisher *events.Publisher
}

func (m mutationRecorder) record(c *gin.Context, action string, ref *models.EntityRef, accountID *int64) {
	entry := audit.Entry{
		AccountID: accountID,
		Action:    action,
		Entity:    ref,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if claims, ok := auth.ClaimsFrom(c); ok {
		entry.UserID = &claims.UserID
	}
	m.recorder.Record(c.Request.Context(), entry)

	event := events.Event{Type: action, AccountID: accountID}
	if ref != nil {
		event.Payload = map[string]interface{}{"kind": ref.Kind, "id": ref.ID}
	}
	m.publisher.PublishAsync(event)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// repoError translates a repository failure. Validation rejections are the
// caller's fault and echo back as 400; anything else is a store failure that
// gets logged and hidden behind a generic 500.
func repoError(c *gin.Context, log logger.Logger, err error) {
	if errors.Is(err, repository.ErrInvalidInput) || errors.Is(err, models.ErrInvalidEntityRef) {
		badRequest(c, err)
		return
	}
	log.Error("repository call failed", logger.Error(err))
	internalError(c)
}

// storeUnavailable is the write-path response when the data store is down:
// nothing was persisted and the client should retry later.
func storeUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data store unavailable"})
}
