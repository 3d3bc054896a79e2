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

// AccountsHandler serves accounts and their projects.
type AccountsHandler struct {
	accounts  *repository.Accounts
	projects  *repository.Projects
	mutations mutationRecorder
	log       logger.Logger
}

// NewAccountsHandler creates the accounts handler.
func NewAccountsHandler(accounts *repository.Accounts, projects *repository.Projects,
	recorder *audit.Recorder, publisher *events.Publisher, log logger.Logger) *AccountsHandler {
	return &AccountsHandler{
		accounts:  accounts,
		projects:  projects,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// List returns all accounts.
func (h *AccountsHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list accounts", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// Get returns one account by id.
func (h *AccountsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	account, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("failed to get account", logger.Error(err))
		internalError(c)
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, account)
}

// Create stores a new account.
func (h *AccountsHandler) Create(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		badRequest(c, err)
		return
	}
	if account.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	stored, err := h.accounts.Create(c.Request.Context(), &account)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "account.create",
		&models.EntityRef{Kind: models.KindAccount, ID: stored.ID}, &stored.ID)
	c.JSON(http.StatusCreated, stored)
}

// ListProjects returns the account's projects.
func (h *AccountsHandler) ListProjects(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	projects, err := h.projects.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list projects", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject stores a new project under the account in the path.
func (h *AccountsHandler) CreateProject(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		badRequest(c, err)
		return
	}
	if project.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	project.AccountID = accountID

	stored, err := h.projects.Create(c.Request.Context(), &project)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "project.create",
		&models.EntityRef{Kind: models.KindProject, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}
