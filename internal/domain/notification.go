package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationProjectInvite  = "project_invite"
	NotificationTaskAssigned   = "task_assigned"
	NotificationCommentCreated = "comment_created"
)

// Notification is a durable per-user inbox entry. Append-only except for
// the read flag, which only transitions false to true.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Message   string
	Data      json.RawMessage // opaque context, e.g. {"projectId": ...}
	Read      bool
	CreatedAt time.Time
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
