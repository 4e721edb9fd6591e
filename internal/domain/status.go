package domain

import (
	"context"

	"github.com/google/uuid"
)

// Status is a kanban column within a project.
type Status struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Position  int
}

// DefaultStatusNames are seeded in order when a project is created.
var DefaultStatusNames = []string{"To Do", "In Progress", "Done"}

type StatusRepository interface {
	Create(ctx context.Context, s *Status) error
	GetByID(ctx context.Context, id uuid.UUID) (*Status, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Status, error)
	Update(ctx context.Context, s *Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}
