package fanout

import (
	"github.com/gosuda/taskboard/internal/domain"
)

// Envelope is the wire shape pushed to live sessions: the event type and
// the post-mutation entity (or, for deletions, the deleted ID).
type Envelope struct {
	Type    domain.EventType `json:"type"`
	Payload any              `json:"payload"`
}

// WebhookDelivery is the body POSTed to external subscribers.
type WebhookDelivery struct {
	Event     domain.EventType `json:"event"`
	Payload   any              `json:"payload"`
	Timestamp string           `json:"timestamp"`
}
