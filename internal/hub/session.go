package hub

import (
	"context"

	"github.com/coder/websocket"
)

// Conn is the subset of *websocket.Conn a Session needs.
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
}

// Session is one live bidirectional connection attached to a Hub. It has
// no identity beyond hub membership and is discarded on transport close
// or on a failed write during broadcast.
type Session struct {
	conn Conn
}

// NewSession wraps an accepted websocket connection.
func NewSession(conn Conn) *Session {
	return &Session{conn: conn}
}

func (s *Session) write(ctx context.Context, data []byte) error {
	return s.conn.Write(ctx, websocket.MessageText, data)
}
