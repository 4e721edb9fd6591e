package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	Color       string // hex, default "#3b82f6"
	OwnerID     uuid.UUID
	Archived    bool
	CreatedAt   time.Time
}

// NewProject creates a Project with validated required fields and defaults.
func NewProject(ownerID uuid.UUID, name, description, color string) (*Project, error) {
	if ownerID == uuid.Nil {
		return nil, errors.New("project: owner ID is required")
	}
	if name == "" {
		return nil, errors.New("project: name is required")
	}
	if color == "" {
		color = "#3b82f6"
	}
	return &Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Color:       color,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}, nil
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	Update(ctx context.Context, p *Project) error
	// ListByUser returns projects the user is a member of.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
