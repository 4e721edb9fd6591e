package domain

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// WebhookWildcard in a subscription's event list matches every event type.
const WebhookWildcard = "*"

// Webhook is an externally registered HTTP subscriber for a project's
// events. Inactive webhooks are skipped, never deleted automatically.
type Webhook struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	URL       string
	Events    []string // event types, or the "*" wildcard
	Active    bool
	CreatedAt time.Time
}

// Matches reports whether the subscription wants the given event type.
func (w *Webhook) Matches(event EventType) bool {
	return slices.Contains(w.Events, WebhookWildcard) || slices.Contains(w.Events, string(event))
}

type WebhookRepository interface {
	Create(ctx context.Context, w *Webhook) error
	GetByID(ctx context.Context, id uuid.UUID) (*Webhook, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Webhook, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
