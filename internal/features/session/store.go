package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, session *Session) error {
	query := `INSERT INTO sessions(session_token, admin_id, expires_at) VALUES($1, $2, $3)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.Token,
		session.AdminID,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to insert session in session store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) findByToken(ctx context.Context, token string) (*Session, error) {
	query := `SELECT session_token, admin_id, expires_at, created_at FROM sessions WHERE session_token = $1`

	var session Session
	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&session.AdminID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUnauthorized
		}

		return nil, fmt.Errorf(
			"failed to scan session from session store: %w",
			err,
		)
	}

	return &session, nil
}

func (s *Store) deleteOne(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE session_token = $1`

	_, err := s.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf(
			"failed to delete session in session store: %w",
			err,
		)
	}

	return nil
}
