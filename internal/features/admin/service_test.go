package admin

import (
	"context"
	"testing"
	"time"

	"github.com/TherealJvJ/TelMoz-2.0/internal/auth"
	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine/event"
	"github.com/TherealJvJ/TelMoz-2.0/internal/features/session"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	admins map[uuid.UUID]*Admin
}

func newStubStore() *stubStore {
	return &stubStore{admins: make(map[uuid.UUID]*Admin)}
}

func (s *stubStore) seed(username, email, password string) *Admin {
	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}

	admin := &Admin{
		AdminID:      uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	s.admins[admin.AdminID] = admin

	return admin
}

func (s *stubStore) createOne(_ context.Context, username, email, passwordHash string) error {
	admin := &Admin{
		AdminID:      uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.admins[admin.AdminID] = admin
	return nil
}

func (s *stubStore) findByUsername(_ context.Context, username string) (*Admin, error) {
	for _, admin := range s.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return nil, servererrors.ErrAdminNotFound
}

func (s *stubStore) findByEmail(_ context.Context, email string) (*Admin, error) {
	for _, admin := range s.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, servererrors.ErrAdminNotFound
}

func (s *stubStore) findByResetToken(_ context.Context, token string) (*Admin, error) {
	for _, admin := range s.admins {
		if admin.ResetToken != nil && *admin.ResetToken == token {
			return admin, nil
		}
	}
	return nil, servererrors.ErrAdminNotFound
}

func (s *stubStore) countAll(_ context.Context) (int, error) {
	return len(s.admins), nil
}

func (s *stubStore) setResetToken(_ context.Context, adminID uuid.UUID, token string, expiresAt time.Time) error {
	admin := s.admins[adminID]
	admin.ResetToken = &token
	admin.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (s *stubStore) setPasswordAndClearResetToken(_ context.Context, adminID uuid.UUID, passwordHash string) error {
	admin := s.admins[adminID]
	admin.PasswordHash = passwordHash
	admin.ResetToken = nil
	admin.ResetTokenExpiresAt = nil
	return nil
}

type stubSessions struct {
	created []uuid.UUID
	deleted []string
}

func (s *stubSessions) Create(_ context.Context, adminID uuid.UUID) (*session.Session, error) {
	s.created = append(s.created, adminID)
	return &session.Session{
		Token:     "stub-session-token",
		AdminID:   adminID,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (s *stubSessions) Delete(_ context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	return nil
}

type stubEventEngine struct {
	published []*event.Event
}

func (s *stubEventEngine) RegisterEvents(_ ...event.EventName) {}

func (s *stubEventEngine) Publish(e *event.Event) error {
	s.published = append(s.published, e)
	return nil
}

func newTestService() (*service, *stubStore, *stubSessions, *stubEventEngine) {
	store := newStubStore()
	sessions := &stubSessions{}
	engine := &stubEventEngine{}

	return NewService(store, sessions, engine), store, sessions, engine
}

func TestLogin(t *testing.T) {
	svc, store, sessions, _ := newTestService()
	admin := store.seed("telma", "telma@telmoz.com", "hunter22")

	created, err := svc.login(context.Background(), &LoginRequest{
		Username: "telma",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, admin.AdminID, created.AdminID)
	assert.Equal(t, []uuid.UUID{admin.AdminID}, sessions.created)
}

func TestLoginWrongPasswordNeverCreatesSession(t *testing.T) {
	svc, store, sessions, _ := newTestService()
	store.seed("telma", "telma@telmoz.com", "hunter22")

	for n := 0; n < 3; n++ {
		_, err := svc.login(context.Background(), &LoginRequest{
			Username: "telma",
			Password: "wrong password",
		})
		assert.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
	}

	assert.Empty(t, sessions.created)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, sessions, _ := newTestService()

	_, err := svc.login(context.Background(), &LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
	assert.Empty(t, sessions.created)
}

func TestRequestPasswordReset(t *testing.T) {
	svc, store, _, engine := newTestService()
	admin := store.seed("telma", "telma@telmoz.com", "hunter22")

	token, err := svc.requestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "telma@telmoz.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NotNil(t, admin.ResetToken)
	assert.Equal(t, token, *admin.ResetToken)
	require.NotNil(t, admin.ResetTokenExpiresAt)
	assert.WithinDuration(
		t,
		time.Now().Add(time.Hour),
		*admin.ResetTokenExpiresAt,
		(5 * time.Second),
	)

	require.Len(t, engine.published, 1)
	payload, ok := engine.published[0].Payload.(*event.ResetTokenIssuedEvent)
	require.True(t, ok)
	assert.Equal(t, token, payload.Token)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _, engine := newTestService()

	_, err := svc.requestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "nobody@telmoz.com",
	})
	assert.ErrorIs(t, err, servererrors.ErrEmailNotFound)
	assert.Empty(t, engine.published)
}

func TestRequestPasswordResetInvalidatesPriorToken(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.seed("telma", "telma@telmoz.com", "hunter22")

	first, err := svc.requestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "telma@telmoz.com",
	})
	require.NoError(t, err)

	second, err := svc.requestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "telma@telmoz.com",
	})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	err = svc.resetPassword(context.Background(), &ResetPasswordRequest{
		Token:           first,
		Password:        "new password",
		ConfirmPassword: "new password",
	})
	assert.ErrorIs(t, err, servererrors.ErrInvalidResetToken)
}

func TestResetPasswordConsumesTokenExactlyOnce(t *testing.T) {
	svc, store, _, _ := newTestService()
	admin := store.seed("telma", "telma@telmoz.com", "hunter22")

	token, err := svc.requestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "telma@telmoz.com",
	})
	require.NoError(t, err)

	req := &ResetPasswordRequest{
		Token:           token,
		Password:        "new password",
		ConfirmPassword: "new password",
	}

	require.NoError(t, svc.resetPassword(context.Background(), req))
	assert.True(t, auth.VerifyPassword("new password", admin.PasswordHash))
	assert.Nil(t, admin.ResetToken)
	assert.Nil(t, admin.ResetTokenExpiresAt)

	// second consumption of the same token must fail
	err = svc.resetPassword(context.Background(), req)
	assert.ErrorIs(t, err, servererrors.ErrInvalidResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, store, _, _ := newTestService()
	admin := store.seed("telma", "telma@telmoz.com", "hunter22")

	token, err := svc.requestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "telma@telmoz.com",
	})
	require.NoError(t, err)

	svc.now = func() time.Time {
		return admin.ResetTokenExpiresAt.Add(time.Second)
	}

	err = svc.resetPassword(context.Background(), &ResetPasswordRequest{
		Token:           token,
		Password:        "new password",
		ConfirmPassword: "new password",
	})
	assert.ErrorIs(t, err, servererrors.ErrExpiredResetToken)
}

func TestResetPasswordValidation(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.seed("telma", "telma@telmoz.com", "hunter22")

	token, err := svc.requestPasswordReset(context.Background(), &ForgotPasswordRequest{
		Email: "telma@telmoz.com",
	})
	require.NoError(t, err)

	err = svc.resetPassword(context.Background(), &ResetPasswordRequest{
		Token:           token,
		Password:        "new password",
		ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, servererrors.ErrPasswordMismatch)

	err = svc.resetPassword(context.Background(), &ResetPasswordRequest{
		Token:           token,
		Password:        "short",
		ConfirmPassword: "short",
	})
	assert.ErrorIs(t, err, servererrors.ErrPasswordTooShort)
}

func TestCreateAdmin(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.seed("telma", "telma@telmoz.com", "hunter22")

	err := svc.createAdmin(context.Background(), &CreateAdminRequest{
		Username:        "telma",
		Email:           "other@telmoz.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	assert.ErrorIs(t, err, servererrors.ErrUsernameTaken)

	err = svc.createAdmin(context.Background(), &CreateAdminRequest{
		Username:        "other",
		Email:           "telma@telmoz.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	assert.ErrorIs(t, err, servererrors.ErrEmailTaken)

	err = svc.createAdmin(context.Background(), &CreateAdminRequest{
		Username:        "other",
		Email:           "other@telmoz.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	require.NoError(t, err)

	created, err := store.findByUsername(context.Background(), "other")
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("hunter22", created.PasswordHash))
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc, store, _, _ := newTestService()

	require.NoError(t, svc.EnsureDefaultAdmin(
		context.Background(),
		"admin", "admin@telmoz.com", "admin123",
	))
	assert.Len(t, store.admins, 1)

	// second call must not create another account
	require.NoError(t, svc.EnsureDefaultAdmin(
		context.Background(),
		"admin", "admin@telmoz.com", "admin123",
	))
	assert.Len(t, store.admins, 1)
}
