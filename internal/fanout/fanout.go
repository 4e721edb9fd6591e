package fanout

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/taskboard/internal/domain"
	redisstore "github.com/gosuda/taskboard/internal/store/redis"
)

// Publisher pushes a payload onto a channel. *redisstore.PubSub satisfies
// this interface.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// WebhookTrigger fans an event out to external HTTP subscribers.
// *Dispatcher satisfies this interface.
type WebhookTrigger interface {
	Trigger(ctx context.Context, projectID uuid.UUID, event domain.EventType, payload any)
}

// Fanout turns one committed mutation into the live-channel and webhook
// delivery attempts. Both are best-effort: a failure here never fails the
// business operation that produced the event. The per-user notification
// sink is separate (see internal/notify) because its recipients are
// event-specific, not project-wide.
type Fanout struct {
	pubsub   Publisher
	webhooks WebhookTrigger
}

func New(pubsub Publisher, webhooks WebhookTrigger) *Fanout {
	return &Fanout{pubsub: pubsub, webhooks: webhooks}
}

// Event publishes {type, payload} to the project's channel (feeding every
// node's hub for that project) and triggers webhook delivery. Subscriber
// sets are read fresh per event; nothing is cached across emissions.
func (f *Fanout) Event(ctx context.Context, projectID uuid.UUID, event domain.EventType, payload any) {
	data, err := json.Marshal(Envelope{Type: event, Payload: payload})
	if err != nil {
		log.Warn().Err(err).Str("event", string(event)).Msg("fanout: marshaling envelope failed")
		return
	}

	if err := f.pubsub.Publish(ctx, redisstore.ProjectChannel(projectID), data); err != nil {
		log.Warn().Err(err).Str("project_id", projectID.String()).Str("event", string(event)).
			Msg("fanout: publishing to live channel failed")
	}

	f.webhooks.Trigger(ctx, projectID, event, payload)
}
