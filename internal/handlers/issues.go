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

// IssuesHandler serves technical SEO issues.
type IssuesHandler struct {
	issues    *repository.Issues
	mutations mutationRecorder
	log       logger.Logger
}

// NewIssuesHandler creates the issues handler.
func NewIssuesHandler(issues *repository.Issues, recorder *audit.Recorder, publisher *events.Publisher, log logger.Logger) *IssuesHandler {
	return &IssuesHandler{
		issues:    issues,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// ListByDomain returns the domain's issues.
func (h *IssuesHandler) ListByDomain(c *gin.Context) {
	domainID, ok := pathID(c, "id")
	if !ok {
		return
	}

	issues, err := h.issues.ListByDomain(c.Request.Context(), domainID)
	if err != nil {
		h.log.Error("failed to list issues", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// ListCritical returns open critical issues across all domains.
func (h *IssuesHandler) ListCritical(c *gin.Context) {
	issues, err := h.issues.ListCriticalOpen(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list critical issues", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// Create stores a new issue sighting under the domain in the path.
func (h *IssuesHandler) Create(c *gin.Context) {
	domainID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var issue models.Issue
	if err := c.ShouldBindJSON(&issue); err != nil {
		badRequest(c, err)
		return
	}
	if issue.RuleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rule_id is required"})
		return
	}
	issue.DomainID = domainID

	stored, err := h.issues.Insert(c.Request.Context(), &issue)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "issue.create",
		&models.EntityRef{Kind: models.KindIssue, ID: stored.ID}, nil)
	c.JSON(http.StatusCreated, stored)
}
