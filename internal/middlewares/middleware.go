package middlewares

import (
	"context"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "sessionToken"

type sessionValidator interface {
	Validate(ctx context.Context, token string) (uuid.UUID, error)
}

type middleware struct {
	sessions sessionValidator
}

func NewMiddleware(sessions sessionValidator) *middleware {
	return &middleware{
		sessions: sessions,
	}
}
