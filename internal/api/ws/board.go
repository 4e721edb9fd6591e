// Package ws serves the live board channel. One websocket connection is
// one hub session; membership is checked once at connect time, before
// the upgrade.
package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/taskboard/internal/domain"
	"github.com/gosuda/taskboard/internal/fanout"
	"github.com/gosuda/taskboard/internal/hub"
	"github.com/gosuda/taskboard/internal/server/middleware"
)

// Handler upgrades board connections and relays client frames.
type Handler struct {
	members  domain.MemberRepository
	registry *hub.Registry
}

func NewHandler(members domain.MemberRepository, registry *hub.Registry) *Handler {
	return &Handler{members: members, registry: registry}
}

// Serve handles GET /ws/projects/{projectID}. Authentication has already
// run; membership is verified here before the websocket upgrade, so a
// non-member is rejected with a plain 403 and never attaches.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Debug().Err(err).Msg("ws: accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	session := hub.NewSession(conn)
	boardHub := h.registry.Attach(projectID, session)
	defer h.registry.Detach(projectID, session)

	// Read loop. Valid JSON frames are relayed to every other session on
	// this hub; malformed frames are dropped without closing the
	// connection. The loop ends when the peer goes away.
	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			return
		}

		if !json.Valid(data) {
			log.Debug().Str("project_id", projectID.String()).Msg("ws: dropped malformed frame")
			continue
		}

		boardHub.Broadcast(r.Context(), data, session)
	}
}

type broadcastRequest struct {
	Type    domain.EventType `json:"type"`
	Payload json.RawMessage  `json:"payload"`
}

// Broadcast handles POST /ws/projects/{projectID}/broadcast: a
// server-side push into the project's live channel. Unlike client
// frames, the sender gets the message too. With no live hub there is
// nobody to deliver to and the request still succeeds.
func (h *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty type")
		return
	}

	data, err := json.Marshal(fanout.Envelope{Type: req.Type, Payload: req.Payload})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode event")
		return
	}

	if boardHub, live := h.registry.Lookup(projectID); live {
		boardHub.Broadcast(r.Context(), data, nil)
	}

	w.WriteHeader(http.StatusAccepted)
}

// authorize resolves the project from the URL and checks membership.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project ID")
		return uuid.Nil, false
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return uuid.Nil, false
	}

	if _, err := h.members.GetByUserAndProject(r.Context(), userID, projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusForbidden, "not a member of this project")
			return uuid.Nil, false
		}
		writeError(w, http.StatusInternalServerError, "failed to check membership")
		return uuid.Nil, false
	}

	return projectID, true
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"title":%q,"status":%d,"detail":%q}`, http.StatusText(status), status, detail)
}
