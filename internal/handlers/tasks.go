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

// TasksHandler serves work items.
type TasksHandler struct {
	tasks     *repository.Tasks
	mutations mutationRecorder
	log       logger.Logger
}

// NewTasksHandler creates the tasks handler.
func NewTasksHandler(tasks *repository.Tasks, recorder *audit.Recorder,
	publisher *events.Publisher, log logger.Logger) *TasksHandler {
	return &TasksHandler{
		tasks:     tasks,
		mutations: mutationRecorder{recorder: recorder, publisher: publisher},
		log:       log,
	}
}

// ListByAccount returns the account's tasks.
func (h *TasksHandler) ListByAccount(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("failed to list tasks", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListByUser returns the tasks assigned to the user in the path.
func (h *TasksHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("failed to list tasks by user", logger.Error(err))
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Create stores a task under the account in the path. A related entity
// reference, when supplied, is validated against the closed kind set.
func (h *TasksHandler) Create(c *gin.Context) {
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		badRequest(c, err)
		return
	}
	if task.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	task.AccountID = accountID

	stored, err := h.tasks.Create(c.Request.Context(), &task)
	if err != nil {
		repoError(c, h.log, err)
		return
	}
	if stored == nil {
		storeUnavailable(c)
		return
	}

	h.mutations.record(c, "task.create",
		&models.EntityRef{Kind: models.KindTask, ID: stored.ID}, &accountID)
	c.JSON(http.StatusCreated, stored)
}
