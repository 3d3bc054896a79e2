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

// DomainsHandler serves monitored domains and their crawled pages.
type DomainsHandler struct {
	domains   *repository.Domains
	pages     *repository.Pages
	mutations mutationRecorder
	log       logger.Logger
}

// NewDomainsHandler creates the domains handler.
func NewDomainsHandler(domains *repository.Domains, pages *repository.Pages,
	recorder *audit.Recorder, publisher *events.Publisher, log logger.Logger) *DomainsHandler {
	return &DomainsHandler{
		domains:   domains,
		pages:     pages,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// List returns all domains.
func (h *DomainsHandler) List(c *gin.Context) {
	domains, err := h.domains.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list domains", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, domains)
}

// ListByAccount returns the account's domains.
func (h *DomainsHandler) ListByAccount(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	domains, err := h.domains.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list domains by account", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, domains)
}

// Upsert creates or updates a domain by name.
func (h *DomainsHandler) Upsert(c *gin.Context) {
	var domain models.Domain
	if err := c.ShouldBindJSON(&domain); err != nil {
		badRequest(c, err)
		return
	}
	if domain.Domain == "" || domain.AccountID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain and account_id are required"})
		return
	}

	stored, err := h.domains.Upsert(c.Request.Context(), &domain)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "domain.upsert",
		&models.EntityRef{Kind: models.KindDomain, ID: stored.ID}, &stored.AccountID)
	c.JSON(http.StatusOK, stored)
}

// ListPages returns the domain's pages, bounded by the limit query param.
func (h *DomainsHandler) ListPages(c *gin.Context) {
	domainID, ok := pathID(c, "id")
	if !ok {
		return
	}

	pages, err := h.pages.ListByDomain(c.Request.Context(), domainID, queryLimit(c))
	if err != nil {
		h.log.Error("failed to list pages", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, pages)
}

// UpsertPage creates or updates a page by url_hash under the domain in the
// path.
func (h *DomainsHandler) UpsertPage(c *gin.Context) {
	domainID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var page models.Page
	if err := c.ShouldBindJSON(&page); err != nil {
		badRequest(c, err)
		return
	}
	if page.URL == "" || page.URLHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and url_hash are required"})
		return
	}
	page.DomainID = domainID

	stored, err := h.pages.UpsertByURLHash(c.Request.Context(), &page)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, stored)
}
