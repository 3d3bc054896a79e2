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

// ContentHandler serves the keyword/brief/post production pipeline.
type ContentHandler struct {
	keywords  *repository.Keywords
	briefs    *repository.Briefs
	posts     *repository.Posts
	mutations mutationRecorder
	log       logger.Logger
}

// NewContentHandler creates the content handler.
func NewContentHandler(keywords *repository.Keywords, briefs *repository.Briefs, posts *repository.Posts,
	recorder *audit.Recorder, publisher *events.Publisher, log logger.Logger) *ContentHandler {
	return &ContentHandler{
		keywords:  keywords,
		briefs:    briefs,
		posts:     posts,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// ListKeywords returns the account's keywords.
func (h *ContentHandler) ListKeywords(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	keywords, err := h.keywords.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list keywords", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, keywords)
}

// CreateKeyword stores a keyword under the account in the path.
func (h *ContentHandler) CreateKeyword(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var keyword models.Keyword
	if err := c.ShouldBindJSON(&keyword); err != nil {
		badRequest(c, err)
		return
	}
	if keyword.Keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}
	keyword.AccountID = accountID

	stored, err := h.keywords.Create(c.Request.Context(), &keyword)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "keyword.create",
		&models.EntityRef{Kind: models.KindKeyword, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}

// ListBriefs returns the account's briefs.
func (h *ContentHandler) ListBriefs(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	briefs, err := h.briefs.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list briefs", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, briefs)
}

// CreateBrief stores a brief under the account in the path.
func (h *ContentHandler) CreateBrief(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var brief models.Brief
	if err := c.ShouldBindJSON(&brief); err != nil {
		badRequest(c, err)
		return
	}
	if brief.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	brief.AccountID = accountID

	stored, err := h.briefs.Create(c.Request.Context(), &brief)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "brief.create",
		&models.EntityRef{Kind: models.KindBrief, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}

// ListPosts returns the account's posts, optionally filtered by the status
// query param.
func (h *ContentHandler) ListPosts(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if raw := c.Query("status"); raw != "" {
		posts, err := h.posts.ListByStatus(ctx, accountID, models.PostStatus(raw))
		if err != nil {
			repoError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	posts, err := h.posts.ListByAccount(ctx, accountID)
	if err != nil {
		h.log.Error("failed to list posts", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost stores a post under the account in the path.
func (h *ContentHandler) CreatePost(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var post models.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		badRequest(c, err)
		return
	}
	post.AccountID = accountID

	stored, err := h.posts.Create(c.Request.Context(), &post)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "post.create",
		&models.EntityRef{Kind: models.KindPost, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}
