package repository

import (
	"context"
	"fmt"

	"github.com/steadycalls/opsbrain/internal/database"
	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

const taskColumns = `id, account_id, project_id, type, title, description, status, priority,
	owner_id, assigned_to, eta, effort, cost_code, related_entity_type, related_entity_id,
	completed_at, created_at, updated_at`

// Tasks persists units of work. The typed Related reference is flattened to
// the related_entity columns on write and resolved back on read.
type Tasks struct {
	store *database.Store
	log   logger.Logger
}

// NewTasks creates the task repository.
func NewTasks(store *database.Store, log logger.Logger) *Tasks {
	return &Tasks{store: store, log: log}
}

// ListByAccount returns the account's tasks, newest first.
func (r *Tasks) ListByAccount(ctx context.Context, accountID int64) ([]models.Task, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Task{}, nil
	}

	tasks := []models.Task{}
	query := "SELECT " + taskColumns + " FROM tasks WHERE account_id = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &tasks, query, accountID); err != nil {
		return nil, fmt.Errorf("list tasks by account: %w", err)
	}
	resolveRelated(tasks)
	return tasks, nil
}

// ListByUser returns the tasks assigned to a user, newest first.
func (r *Tasks) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	db, ok := r.store.Acquire(ctx)
	if !ok {
		return []models.Task{}, nil
	}

	tasks := []models.Task{}
	query := "SELECT " + taskColumns + " FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC"
	if err := db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list tasks by user: %w", err)
	}
	resolveRelated(tasks)
	return tasks, nil
}

// Create inserts a task and returns the stored row. A supplied Related
// reference is validated before any store access. Returns nil when the
// store is unavailable.
func (r *Tasks) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	if !t.Type.Valid() {
		return nil, fmt.Errorf("invalid task type %q: %w", t.Type, ErrInvalidInput)
	}
	if t.Status != "" && !t.Status.Valid() {
		return nil, fmt.Errorf("invalid task status %q: %w", t.Status, ErrInvalidInput)
	}
	if t.Priority != "" && !t.Priority.Valid() {
		return nil, fmt.Errorf("invalid task priority %q: %w", t.Priority, ErrInvalidInput)
	}
	if err := t.FlattenRelated(); err != nil {
		return nil, err
	}

	db, ok := r.store.Acquire(ctx)
	if !ok {
		return nil, nil
	}
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	var stored models.Task
	query := `INSERT INTO tasks (account_id, project_id, type, title, description, status, priority,
		owner_id, assigned_to, eta, effort, cost_code, related_entity_type, related_entity_id,
		completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + taskColumns
	err := db.GetContext(ctx, &stored, query,
		t.AccountID, t.ProjectID, t.Type, t.Title, t.Description, t.Status, t.Priority,
		t.OwnerID, t.AssignedTo, t.ETA, t.Effort, t.CostCode, t.RelatedEntityType, t.RelatedEntityID,
		t.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	stored.ResolveRelated()
	return &stored, nil
}

func resolveRelated(tasks []models.Task) {
	for i := range tasks {
		tasks[i].ResolveRelated()
	}
}
