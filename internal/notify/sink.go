package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"

	"github.com/gosuda/taskboard/internal/domain"
)

// Sink writes durable per-user inbox entries. Unlike the webhook and
// live-channel paths, Create surfaces store errors to its caller: the
// write either persisted or it did not. When a Slack incoming webhook is
// configured, each new notification is also mirrored there, best-effort.
type Sink struct {
	notifications domain.NotificationRepository
	slackURL      string
	post          func(ctx context.Context, url string, msg *slack.WebhookMessage) error
}

func NewSink(notifications domain.NotificationRepository, slackWebhookURL string) *Sink {
	return &Sink{
		notifications: notifications,
		slackURL:      slackWebhookURL,
		post:          slack.PostWebhookContext,
	}
}

// Create persists a notification for the user. contextData may be nil.
func (s *Sink) Create(ctx context.Context, userID uuid.UUID, ntype, message string, contextData any) (*domain.Notification, error) {
	var data json.RawMessage
	if contextData != nil {
		encoded, err := json.Marshal(contextData)
		if err != nil {
			return nil, fmt.Errorf("notify.Sink.Create: marshal context: %w", err)
		}
		data = encoded
	}

	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      ntype,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("notify.Sink.Create: %w", err)
	}

	if s.slackURL != "" {
		go s.mirror(context.WithoutCancel(ctx), n)
	}

	return n, nil
}

// List returns the user's notifications, newest first.
func (s *Sink) List(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("notify.Sink.List: %w", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag of a single notification. Fails with
// domain.ErrForbidden when the requesting user does not own it.
func (s *Sink) MarkRead(ctx context.Context, id, requestingUserID uuid.UUID) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("notify.Sink.MarkRead: %w", err)
	}

	if n.UserID != requestingUserID {
		return fmt.Errorf("notify.Sink.MarkRead: %w", domain.ErrForbidden)
	}

	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("notify.Sink.MarkRead: %w", err)
	}

	return nil
}

// MarkAllRead flips the read flag on all of the user's notifications.
// Idempotent: a second call affects nothing and errors on nothing.
func (s *Sink) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("notify.Sink.MarkAllRead: %w", err)
	}
	return nil
}

func (s *Sink) mirror(ctx context.Context, n *domain.Notification) {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("[%s] %s", n.Type, n.Message),
	}
	if err := s.post(ctx, s.slackURL, msg); err != nil {
		log.Debug().Err(err).Str("notification_id", n.ID.String()).Msg("notify: slack mirror failed")
	}
}
