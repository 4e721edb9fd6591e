package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/taskboard/internal/auth"
	"github.com/gosuda/taskboard/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Users() domain.UserRepository
	Projects() domain.ProjectRepository
	Members() domain.MemberRepository
	Statuses() domain.StatusRepository
	Tasks() domain.TaskRepository
	Comments() domain.CommentRepository
	Notifications() domain.NotificationRepository
	Webhooks() domain.WebhookRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, provider string, cred auth.Credential) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// EventFanout fans a committed mutation out to the live channel and
// webhook subscribers, best-effort. *fanout.Fanout satisfies this
// interface.
type EventFanout interface {
	Event(ctx context.Context, projectID uuid.UUID, event domain.EventType, payload any)
}

// NotificationSink writes durable per-user inbox entries.
// *notify.Sink satisfies this interface.
type NotificationSink interface {
	Create(ctx context.Context, userID uuid.UUID, ntype, message string, contextData any) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, requestingUserID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
