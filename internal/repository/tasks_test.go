package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steadycalls/opsbrain/internal/logger"
	"github.com/steadycalls/opsbrain/internal/models"
)

func taskRows(relatedType *string, relatedID *int64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "account_id", "project_id", "type", "title", "description", "status", "priority",
		"owner_id", "assigned_to", "eta", "effort", "cost_code", "related_entity_type",
		"related_entity_id", "completed_at", "created_at", "updated_at",
	}).AddRow(int64(1), int64(4), nil, string(models.TaskContent), "Write draft", nil,
		string(models.TaskTodo), string(models.PriorityMedium),
		nil, int64(9), nil, nil, nil, relatedType, relatedID, nil, now, now)
}

func TestListTasksByUserResolvesRelated(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewTasks(store, logger.NewNop())

	kind := "post"
	postID := int64(42)
	mock.ExpectQuery(`SELECT .+ FROM tasks WHERE assigned_to = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(9)).
		WillReturnRows(taskRows(&kind, &postID))

	tasks, err := repo.ListByUser(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].Related)
	assert.Equal(t, models.KindPost, tasks[0].Related.Kind)
	assert.Equal(t, int64(42), tasks[0].Related.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasksByAccountWithoutRelated(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewTasks(store, logger.NewNop())

	mock.ExpectQuery(`SELECT .+ FROM tasks WHERE account_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(4)).
		WillReturnRows(taskRows(nil, nil))

	tasks, err := repo.ListByAccount(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].Related)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTaskRejectsInvalidRelatedKind(t *testing.T) {
	// Reference validation happens before any store access.
	repo := NewTasks(unavailableStore(), logger.NewNop())

	task, err := repo.Create(context.Background(), &models.Task{
		AccountID: 4,
		Type:      models.TaskContent,
		Title:     "Write draft",
		Related:   &models.EntityRef{Kind: "widget", ID: 1},
	})
	assert.ErrorIs(t, err, models.ErrInvalidEntityRef)
	assert.Nil(t, task)
}

func TestCreateTaskFlattensRelated(t *testing.T) {
	store, mock := newMockStore(t)
	repo := NewTasks(store, logger.NewNop())

	kind := "post"
	postID := int64(42)
	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs(int64(4), nil, string(models.TaskContent), "Write draft", nil,
			string(models.TaskTodo), string(models.PriorityMedium),
			nil, nil, nil, nil, nil, "post", int64(42), nil).
		WillReturnRows(taskRows(&kind, &postID))

	task, err := repo.Create(context.Background(), &models.Task{
		AccountID: 4,
		Type:      models.TaskContent,
		Title:     "Write draft",
		Related:   &models.EntityRef{Kind: models.KindPost, ID: 42},
	})
	require.NoError(t, err)
	require.NotNil(t, task)
	require.NotNil(t, task.Related)
	assert.Equal(t, models.KindPost, task.Related.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTaskRejectsUnknownType(t *testing.T) {
	repo := NewTasks(unavailableStore(), logger.NewNop())

	task, err := repo.Create(context.Background(), &models.Task{
		AccountID: 4,
		Type:      models.TaskType("paperwork"),
		Title:     "File things",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, task)
}
