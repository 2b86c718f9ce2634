package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	adminID uuid.UUID
	token   string
}

func (s *stubValidator) Validate(_ context.Context, token string) (uuid.UUID, error) {
	if token != s.token {
		return uuid.Nil, servererrors.ErrUnauthorized
	}
	return s.adminID, nil
}

func TestAuthWithContextRejectsMissingCookie(t *testing.T) {
	mw := NewMiddleware(&stubValidator{token: "valid"})

	called := false
	handler := mw.AuthWithContext(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		return nil
	})

	err := handler(
		httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/", nil),
	)

	require.Error(t, err)
	assert.False(t, called, "handler must not run without a session")

	var serverError *servererrors.ServerError
	require.ErrorAs(t, err, &serverError)
	assert.Equal(t, http.StatusUnauthorized, serverError.StatusCode)
}

func TestAuthWithContextRejectsInvalidSession(t *testing.T) {
	mw := NewMiddleware(&stubValidator{token: "valid"})

	called := false
	handler := mw.AuthWithContext(func(w http.ResponseWriter, r *http.Request) error {
		called = true
		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})

	err := handler(httptest.NewRecorder(), req)
	require.Error(t, err)
	assert.False(t, called)
}

func TestAuthWithContextInjectsAdminID(t *testing.T) {
	adminID := uuid.New()
	mw := NewMiddleware(&stubValidator{token: "valid", adminID: adminID})

	var gotAdminID uuid.UUID
	handler := mw.AuthWithContext(func(w http.ResponseWriter, r *http.Request) error {
		gotAdminID = GetAdminIDFromContext(r.Context())
		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "valid"})

	require.NoError(t, handler(httptest.NewRecorder(), req))
	assert.Equal(t, adminID, gotAdminID)
}

func TestGetAdminIDFromContextOutsideAuth(t *testing.T) {
	assert.Equal(t, uuid.Nil, GetAdminIDFromContext(context.Background()))
}
