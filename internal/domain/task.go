package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	StatusID    uuid.UUID
	AssigneeID  *uuid.UUID // nullable
	Title       string
	Description string
	DueDate     *time.Time // nullable
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskWithContext is a Task joined with display fields for cross-project
// listings ("my tasks").
type TaskWithContext struct {
	Task
	ProjectName string
	StatusName  string
}

// TaskFilter narrows ListByProject. Zero values mean no filtering.
type TaskFilter struct {
	StatusID   uuid.UUID
	AssigneeID uuid.UUID
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, filter TaskFilter) ([]*Task, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*TaskWithContext, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
