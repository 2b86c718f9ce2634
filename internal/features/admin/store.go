package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

const adminColumns = `admin_id, username, email, password_hash, reset_token, reset_token_expires_at, created_at`

func (s *Store) createOne(ctx context.Context, username, email, passwordHash string) error {
	query := `INSERT INTO admins(username, email, password_hash) VALUES($1, $2, $3)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		username,
		email,
		passwordHash,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to insert new admin in admin store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) findByUsername(ctx context.Context, username string) (*Admin, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM admins WHERE username = $1`,
		adminColumns,
	)

	return s.scanOne(
		s.db.QueryRowContext(ctx, query, username),
	)
}

func (s *Store) findByEmail(ctx context.Context, email string) (*Admin, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM admins WHERE email = $1`,
		adminColumns,
	)

	return s.scanOne(
		s.db.QueryRowContext(ctx, query, email),
	)
}

func (s *Store) findByResetToken(ctx context.Context, token string) (*Admin, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM admins WHERE reset_token = $1`,
		adminColumns,
	)

	return s.scanOne(
		s.db.QueryRowContext(ctx, query, token),
	)
}

func (s *Store) countAll(ctx context.Context) (int, error) {
	var count int

	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM admins`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf(
			"failed to count admins in admin store: %w",
			err,
		)
	}

	return count, nil
}

// setResetToken overwrites any outstanding reset token, invalidating
// it.
func (s *Store) setResetToken(ctx context.Context, adminID uuid.UUID, token string, expiresAt time.Time) error {
	query := `UPDATE admins SET reset_token = $1, reset_token_expires_at = $2 WHERE admin_id = $3`

	_, err := s.db.ExecContext(
		ctx,
		query,
		token,
		expiresAt,
		adminID,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to set reset token in admin store: %w",
			err,
		)
	}

	return nil
}

// setPasswordAndClearResetToken updates the password hash and clears
// both reset fields in one statement, so a consumed token can never be
// replayed.
func (s *Store) setPasswordAndClearResetToken(ctx context.Context, adminID uuid.UUID, passwordHash string) error {
	query := `UPDATE admins SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL WHERE admin_id = $2`

	_, err := s.db.ExecContext(
		ctx,
		query,
		passwordHash,
		adminID,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to update password in admin store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) scanOne(row *sql.Row) (*Admin, error) {
	var admin Admin

	err := row.Scan(
		&admin.AdminID,
		&admin.Username,
		&admin.Email,
		&admin.PasswordHash,
		&admin.ResetToken,
		&admin.ResetTokenExpiresAt,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrAdminNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan admin from admin store: %w",
			err,
		)
	}

	return &admin, nil
}
