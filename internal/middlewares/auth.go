package middlewares

import (
	"context"
	"net/http"

	"github.com/TherealJvJ/TelMoz-2.0/internal/handlerutils"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/google/uuid"
)

type contextKey struct{}

var adminIDKey contextKey = contextKey{}

// AuthWithContext gates a handler behind a valid admin session. The
// check runs before the wrapped handler touches anything; no session,
// no store access.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		sessionCookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoSessionCookie.Error(),
				nil,
			)
		}

		adminID, err := mw.sessions.Validate(r.Context(), sessionCookie.Value)
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			adminIDKey,
			adminID,
		)

		return h(w, r.WithContext(ctx))
	}
}

// GetAdminIDFromContext returns the authenticated admin's id placed in
// the context by [middleware.AuthWithContext], or [uuid.Nil] outside
// an authenticated request.
func GetAdminIDFromContext(ctx context.Context) uuid.UUID {
	adminID, ok := ctx.Value(adminIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return adminID
}
