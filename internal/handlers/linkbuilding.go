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

// LinkBuildingHandler serves prospects, backlinks and outreach emails.
type LinkBuildingHandler struct {
	prospects *repository.Prospects
	links     *repository.Links
	emails    *repository.Emails
	mutations mutationRecorder
	log       logger.Logger
}

// NewLinkBuildingHandler creates the link-building handler.
func NewLinkBuildingHandler(prospects *repository.Prospects, links *repository.Links, emails *repository.Emails,
	recorder *audit.Recorder, publisher *events.Publisher, log logger.Logger) *LinkBuildingHandler {
	return &LinkBuildingHandler{
		prospects: prospects,
		links:     links,
		emails:    emails,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// ListProspects returns the account's prospects.
func (h *LinkBuildingHandler) ListProspects(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	prospects, err := h.prospects.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list prospects", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, prospects)
}

// CreateProspect stores a prospect under the account in the path.
func (h *LinkBuildingHandler) CreateProspect(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var prospect models.Prospect
	if err := c.ShouldBindJSON(&prospect); err != nil {
		badRequest(c, err)
		return
	}
	if prospect.Domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain is required"})
		return
	}
	prospect.AccountID = accountID

	stored, err := h.prospects.Create(c.Request.Context(), &prospect)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "prospect.create",
		&models.EntityRef{Kind: models.KindProspect, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}

// ListLinks returns the account's links; ?verified=true narrows to live,
// verified links ordered by verification time.
func (h *LinkBuildingHandler) ListLinks(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if c.Query("verified") == "true" {
		links, err := h.links.ListVerified(ctx, accountID)
		if err != nil {
			h.log.Error("failed to list verified links", logger.Error(err))
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, links)
		return
	}

	links, err := h.links.ListByAccount(ctx, accountID)
	if err != nil {
		h.log.Error("failed to list links", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, links)
}

// CreateLink stores a backlink under the account in the path.
func (h *LinkBuildingHandler) CreateLink(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var link models.Link
	if err := c.ShouldBindJSON(&link); err != nil {
		badRequest(c, err)
		return
	}
	if link.SourceURL == "" || link.TargetURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_url and target_url are required"})
		return
	}
	link.AccountID = accountID

	stored, err := h.links.Create(c.Request.Context(), &link)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "link.create",
		&models.EntityRef{Kind: models.KindLink, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}

// ListEmails returns the prospect's outreach emails.
func (h *LinkBuildingHandler) ListEmails(c *gin.Context) {
	prospectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	emails, err := h.emails.ListByProspect(c.Request.Context(), prospectID)
	if err != nil {
		h.log.Error("failed to list emails", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, emails)
}

// CreateEmail stores an outreach email under the prospect in the path.
func (h *LinkBuildingHandler) CreateEmail(c *gin.Context) {
	prospectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var email models.Email
	if err := c.ShouldBindJSON(&email); err != nil {
		badRequest(c, err)
		return
	}
	if email.AccountID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}
	email.ProspectID = &prospectID

	stored, err := h.emails.Create(c.Request.Context(), &email)
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
