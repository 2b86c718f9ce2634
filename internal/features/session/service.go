package session

import (
	"context"
	"time"

	"github.com/TherealJvJ/TelMoz-2.0/internal/auth"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/google/uuid"
)

type storer interface {
	createOne(ctx context.Context, session *Session) error
	findByToken(ctx context.Context, token string) (*Session, error)
	deleteOne(ctx context.Context, token string) error
}

type Service struct {
	store storer
	ttl   time.Duration
	now   func() time.Time
}

func NewService(store storer, ttl time.Duration) *Service {
	return &Service{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create starts an authenticated session for an admin and returns it
// with the freshly generated opaque token.
func (s *Service) Create(ctx context.Context, adminID uuid.UUID) (*Session, error) {
	token, err := auth.NewToken()
	if err != nil {
		return nil, err
	}

	session := &Session{
		Token:     token,
		AdminID:   adminID,
		ExpiresAt: s.now().Add(s.ttl),
	}

	if err := s.store.createOne(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate resolves a session token to the admin it belongs to.
// Expired sessions are deleted on sight and rejected the same way as
// unknown tokens.
func (s *Service) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, servererrors.ErrUnauthorized
	}

	session, err := s.store.findByToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}

	if !s.now().Before(session.ExpiresAt) {
		if err := s.store.deleteOne(ctx, token); err != nil {
			return uuid.Nil, err
		}

		return uuid.Nil, servererrors.ErrUnauthorized
	}

	return session.AdminID, nil
}

// Delete ends a session. Deleting an unknown token is a no-op so
// logout stays idempotent.
func (s *Service) Delete(ctx context.Context, token string) error {
	return s.store.deleteOne(ctx, token)
}
