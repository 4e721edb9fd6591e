package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	redisstore "github.com/gosuda/taskboard/internal/store/redis"
)

// Subscriber delivers published event payloads for a channel.
// *redisstore.PubSub satisfies this interface.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// Registry maps project IDs to hub instances, creating them on demand
// behind a single lock so concurrent attaches cannot race duplicate hubs
// into existence. A hub lives as long as at least one session is
// attached; when the last session detaches the instance is discarded.
//
// Each live hub holds one subscription to its project's Redis channel;
// events published there (by this process or any other node) are fed
// into the hub's broadcast.
type Registry struct {
	pubsub       Subscriber // nil disables the bridge
	writeTimeout time.Duration

	mu   sync.Mutex
	hubs map[uuid.UUID]*hubEntry
}

type hubEntry struct {
	hub    *Hub
	cancel context.CancelFunc
}

func NewRegistry(pubsub Subscriber, writeTimeout time.Duration) *Registry {
	return &Registry{
		pubsub:       pubsub,
		writeTimeout: writeTimeout,
		hubs:         make(map[uuid.UUID]*hubEntry),
	}
}

// Attach resolves the project's hub, creating it if needed, and attaches
// the session. Resolution and attach happen under the registry lock so a
// concurrent last-session detach cannot discard the hub in between.
func (r *Registry) Attach(projectID uuid.UUID, s *Session) *Hub {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.hubs[projectID]
	if !ok {
		h := newHub(projectID, r.writeTimeout)
		ctx, cancel := context.WithCancel(context.Background())
		entry = &hubEntry{hub: h, cancel: cancel}
		r.hubs[projectID] = entry
		go r.bridge(ctx, h)
	}

	entry.hub.Attach(s)
	return entry.hub
}

// Detach removes the session from the project's hub and discards the hub
// (canceling its bridge subscription) when no sessions remain. Safe to
// call more than once.
func (r *Registry) Detach(projectID uuid.UUID, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.hubs[projectID]
	if !ok {
		return
	}

	if entry.hub.Detach(s) == 0 {
		entry.cancel()
		delete(r.hubs, projectID)
	}
}

// Lookup returns the project's hub if one is live. It never creates:
// broadcasting to a project with no attached sessions has nothing to
// deliver.
func (r *Registry) Lookup(projectID uuid.UUID) (*Hub, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.hubs[projectID]
	if !ok {
		return nil, false
	}
	return entry.hub, true
}

// bridge pumps the project's Redis channel into the hub until the hub is
// discarded. Without a subscriber the hub is node-local only.
func (r *Registry) bridge(ctx context.Context, h *Hub) {
	if r.pubsub == nil {
		return
	}

	channel := redisstore.ProjectChannel(h.ProjectID())
	messages, cleanup, err := r.pubsub.Subscribe(ctx, channel)
	if err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("hub: bridge subscribe failed, hub is node-local")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			h.Broadcast(ctx, msg, nil)
		}
	}
}
