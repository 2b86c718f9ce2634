package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login record keyed by an opaque token. The
// token is the only thing the client holds; identity is never read
// from client-supplied claims.
type Session struct {
	Token     string    `json:"-"`
	AdminID   uuid.UUID `json:"adminID"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"-"`
}
