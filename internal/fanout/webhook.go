package fanout

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/taskboard/internal/domain"
)

// Dispatcher delivers events to a project's registered webhooks.
// Delivery is fire-and-forget: one attempt per subscription, failures
// logged and swallowed, subscriptions never deactivated automatically.
// Deliveries run on their own goroutines behind a bounded semaphore so a
// slow endpoint never blocks a request handler or a sibling delivery.
type Dispatcher struct {
	webhooks domain.WebhookRepository
	client   *http.Client
	sem      chan struct{}
	wg       sync.WaitGroup
}

func NewDispatcher(webhooks domain.WebhookRepository, timeout time.Duration, maxConcurrent int) *Dispatcher {
	return &Dispatcher{
		webhooks: webhooks,
		client:   &http.Client{Timeout: timeout},
		sem:      make(chan struct{}, maxConcurrent),
	}
}

// Trigger loads the project's subscriptions fresh, filters to active ones
// subscribed to the event type (or the wildcard), and spawns one delivery
// per match. It returns without waiting for deliveries to finish and
// never returns an error to its caller.
func (d *Dispatcher) Trigger(ctx context.Context, projectID uuid.UUID, event domain.EventType, payload any) {
	subs, err := d.webhooks.ListByProject(ctx, projectID)
	if err != nil {
		log.Warn().Err(err).Str("project_id", projectID.String()).Msg("webhook: loading subscriptions failed")
		return
	}

	body, err := json.Marshal(WebhookDelivery{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Warn().Err(err).Str("event", string(event)).Msg("webhook: marshaling delivery failed")
		return
	}

	// Deliveries outlive the originating request; there is no cancellation
	// of in-flight attempts beyond the client timeout.
	dctx := context.WithoutCancel(ctx)

	for _, sub := range subs {
		if !sub.Active || !sub.Matches(event) {
			continue
		}

		d.wg.Add(1)
		go d.deliver(dctx, sub.URL, event, body)
	}
}

// Wait blocks until all in-flight deliveries have completed. Used during
// shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, url string, event domain.EventType, body []byte) {
	defer d.wg.Done()

	d.sem <- struct{}{}
	defer func() { <-d.sem }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("webhook: building request failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Str("event", string(event)).Msg("webhook: delivery failed")
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Str("url", url).Str("event", string(event)).Msg("webhook: non-2xx response")
	}
}
