package admin

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/TherealJvJ/TelMoz-2.0/internal/auth"
	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine"
	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine/event"
	"github.com/TherealJvJ/TelMoz-2.0/internal/features/session"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/google/uuid"
)

// resetTokenTTL is how long a password reset token stays valid.
const resetTokenTTL = time.Hour

type storer interface {
	createOne(ctx context.Context, username, email, passwordHash string) error
	findByUsername(ctx context.Context, username string) (*Admin, error)
	findByEmail(ctx context.Context, email string) (*Admin, error)
	findByResetToken(ctx context.Context, token string) (*Admin, error)
	countAll(ctx context.Context) (int, error)
	setResetToken(ctx context.Context, adminID uuid.UUID, token string, expiresAt time.Time) error
	setPasswordAndClearResetToken(ctx context.Context, adminID uuid.UUID, passwordHash string) error
}

type sessionServicer interface {
	Create(ctx context.Context, adminID uuid.UUID) (*session.Session, error)
	Delete(ctx context.Context, token string) error
}

type service struct {
	store       storer
	sessions    sessionServicer
	eventEngine eventengine.RegisterPublisher
	now         func() time.Time
}

func NewService(store storer, sessions sessionServicer, eventEngine eventengine.RegisterPublisher) *service {
	// Register eventNames the admin service will emit
	eventEngine.RegisterEvents(
		event.ResetTokenIssuedEventName,
	)

	return &service{
		store:       store,
		sessions:    sessions,
		eventEngine: eventEngine,
		now:         time.Now,
	}
}

// login verifies credentials and starts a session. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *service) login(ctx context.Context, req *LoginRequest) (*session.Session, error) {
	admin, err := s.store.findByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, servererrors.ErrAdminNotFound) {
			return nil, servererrors.ErrInvalidCredentials
		}

		return nil, err
	}

	if !auth.VerifyPassword(req.Password, admin.PasswordHash) {
		return nil, servererrors.ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, admin.AdminID)
}

func (s *service) logout(ctx context.Context, sessionToken string) error {
	return s.sessions.Delete(ctx, sessionToken)
}

func (s *service) createAdmin(ctx context.Context, req *CreateAdminRequest) error {
	if req.Password != req.ConfirmPassword {
		return servererrors.ErrPasswordMismatch
	}

	if _, err := s.store.findByUsername(ctx, req.Username); err == nil {
		return servererrors.ErrUsernameTaken
	} else if !errors.Is(err, servererrors.ErrAdminNotFound) {
		return err
	}

	if _, err := s.store.findByEmail(ctx, req.Email); err == nil {
		return servererrors.ErrEmailTaken
	} else if !errors.Is(err, servererrors.ErrAdminNotFound) {
		return err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.store.createOne(ctx, req.Username, req.Email, passwordHash)
}

// requestPasswordReset issues a fresh one-time reset token valid for
// [resetTokenTTL]. Any previously outstanding token is overwritten and
// therefore invalidated.
func (s *service) requestPasswordReset(ctx context.Context, req *ForgotPasswordRequest) (string, error) {
	admin, err := s.store.findByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, servererrors.ErrAdminNotFound) {
			return "", servererrors.ErrEmailNotFound
		}

		return "", err
	}

	token, err := auth.NewToken()
	if err != nil {
		return "", err
	}

	err = s.store.setResetToken(
		ctx,
		admin.AdminID,
		token,
		s.now().Add(resetTokenTTL),
	)
	if err != nil {
		return "", err
	}

	issuedEvent := &event.ResetTokenIssuedEvent{
		Username: admin.Username,
		Email:    admin.Email,
		Token:    token,
	}

	err = s.eventEngine.Publish(
		&event.Event{
			Name:    issuedEvent.GetEventName(),
			Payload: issuedEvent,
		},
	)
	if err != nil {
		log.Println("failed to publish reset token event:", err)
	}

	return token, nil
}

// resetPassword consumes a reset token: exact-match lookup, expiry
// check, then a password update that clears the token fields so the
// token works exactly once.
func (s *service) resetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	admin, err := s.store.findByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, servererrors.ErrAdminNotFound) {
			return servererrors.ErrInvalidResetToken
		}

		return err
	}

	if admin.ResetTokenExpiresAt == nil || !s.now().Before(*admin.ResetTokenExpiresAt) {
		return servererrors.ErrExpiredResetToken
	}

	if req.Password != req.ConfirmPassword {
		return servererrors.ErrPasswordMismatch
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.store.setPasswordAndClearResetToken(
		ctx,
		admin.AdminID,
		passwordHash,
	)
}

// EnsureDefaultAdmin creates the bootstrap account when the admins
// table is empty, so a fresh deployment is reachable.
func (s *service) EnsureDefaultAdmin(ctx context.Context, username, email, password string) error {
	count, err := s.store.countAll(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.store.createOne(ctx, username, email, passwordHash); err != nil {
		return err
	}

	log.Printf("bootstrap admin created: username=%s", username)

	return nil
}
