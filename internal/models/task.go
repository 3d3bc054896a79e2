package models

import "time"

// TaskType categorizes a unit of work.
type TaskType string

const (
	TaskContent      TaskType = "content"
	TaskTechnical    TaskType = "technical"
	TaskLinkBuilding TaskType = "link_building"
	TaskClient       TaskType = "client"
	TaskAdmin        TaskType = "admin"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskContent, TaskTechnical, TaskLinkBuilding, TaskClient, TaskAdmin:
		return true
	}
	return false
}

// TaskStatus is the work state of a task. CompletedAt is set on the terminal
// transition.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskBlocked    TaskStatus = "blocked"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskBlocked, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority ranks task urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work under an account, optionally linked to any other
// entity through the related_entity columns. Effort is hours.
type Task struct {
	ID                int64        `json:"id" db:"id"`
	AccountID         int64        `json:"account_id" db:"account_id"`
	ProjectID         *int64       `json:"project_id,omitempty" db:"project_id"`
	Type              TaskType     `json:"type" db:"type"`
	Title             string       `json:"title" db:"title"`
	Description       *string      `json:"description,omitempty" db:"description"`
	Status            TaskStatus   `json:"status" db:"status"`
	Priority          TaskPriority `json:"priority" db:"priority"`
	OwnerID           *int64       `json:"owner_id,omitempty" db:"owner_id"`
	AssignedTo        *int64       `json:"assigned_to,omitempty" db:"assigned_to"`
	ETA               *time.Time   `json:"eta,omitempty" db:"eta"`
	Effort            *int         `json:"effort,omitempty" db:"effort"`
	CostCode          *string      `json:"cost_code,omitempty" db:"cost_code"`
	RelatedEntityType *string      `json:"-" db:"related_entity_type"`
	RelatedEntityID   *int64       `json:"-" db:"related_entity_id"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`

	// Related is the typed view of the related_entity columns. Populated on
	// reads, validated and flattened on writes.
	Related *EntityRef `json:"related,omitempty" db:"-"`
}

// ResolveRelated fills Related from the raw columns after a read.
func (t *Task) ResolveRelated() {
	if t.RelatedEntityType == nil || t.RelatedEntityID == nil {
		t.Related = nil
		return
	}
	t.Related = &EntityRef{Kind: EntityKind(*t.RelatedEntityType), ID: *t.RelatedEntityID}
}

// FlattenRelated validates Related and writes it into the raw columns before
// a write. A nil Related clears both columns.
func (t *Task) FlattenRelated() error {
	if t.Related == nil {
		t.RelatedEntityType = nil
		t.RelatedEntityID = nil
		return nil
	}
	if err := t.Related.Validate(); err != nil {
		return err
	}
	kind := string(t.Related.Kind)
	id := t.Related.ID
	t.RelatedEntityType = &kind
	t.RelatedEntityID = &id
	return nil
}
