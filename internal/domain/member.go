package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Member roles. There is no hierarchy beyond owner > member.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Member is the (project, user, role) authorization fact gating all
// project access. Unique per (ProjectID, UserID) pair.
type Member struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string // RoleOwner or RoleMember
	CreatedAt time.Time
}

// MemberWithUser is a Member joined with display fields of its user.
type MemberWithUser struct {
	Member
	UserName  string
	UserEmail string
}

type MemberRepository interface {
	Create(ctx context.Context, m *Member) error
	// GetByUserAndProject is the membership oracle: ErrNotFound means the
	// user has no access to the project.
	GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*Member, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*MemberWithUser, error)
	DeleteByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) error
}
