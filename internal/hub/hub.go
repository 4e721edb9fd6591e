package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Hub fans events out to the live sessions of one project. All attach,
// detach and broadcast operations are serialized behind a single mutex,
// so one broadcast's per-session write loop never interleaves with
// another's.
type Hub struct {
	projectID    uuid.UUID
	writeTimeout time.Duration

	mu       sync.Mutex
	sessions map[*Session]struct{}
}

func newHub(projectID uuid.UUID, writeTimeout time.Duration) *Hub {
	return &Hub{
		projectID:    projectID,
		writeTimeout: writeTimeout,
		sessions:     make(map[*Session]struct{}),
	}
}

// ProjectID returns the project this hub serves.
func (h *Hub) ProjectID() uuid.UUID {
	return h.projectID
}

// Attach registers a session. Membership must be verified by the caller
// before attaching; the hub trusts it.
func (h *Hub) Attach(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s] = struct{}{}
}

// Detach removes a session. Idempotent: detaching an unknown or
// already-removed session is a no-op. Returns the number of sessions
// remaining.
func (h *Hub) Detach(s *Session) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s)
	return len(h.sessions)
}

// Len returns the number of attached sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Broadcast writes data to every attached session except exclude. A
// failed write prunes that session and delivery continues to the rest;
// dead peers are cleaned up here, lazily, not proactively. Each write is
// bounded by the hub write timeout so a slow peer cannot stall the rest.
func (h *Hub) Broadcast(ctx context.Context, data []byte, exclude *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.sessions {
		if s == exclude {
			continue
		}

		wctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
		err := s.write(wctx, data)
		cancel()
		if err != nil {
			delete(h.sessions, s)
			log.Debug().Err(err).
				Str("project_id", h.projectID.String()).
				Msg("hub: pruned session after write failure")
		}
	}
}
