package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
)

// NewPostgresDB opens and pings a Postgres connection pool.
func NewPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(
		context.Background(),
		(10 * time.Second),
	)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the storefront tables when they do not exist
// yet. Proper migration tooling is out of scope; this keeps a fresh
// database usable, the same way the previous deployment bootstrapped
// itself.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins(
			admin_id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			username text UNIQUE NOT NULL,
			email text UNIQUE NOT NULL,
			password_hash text NOT NULL,
			reset_token text,
			reset_token_expires_at timestamptz,
			created_at timestamptz NOT NULL DEFAULT now(),
			CHECK ((reset_token IS NULL) = (reset_token_expires_at IS NULL))
		)`,
		`CREATE TABLE IF NOT EXISTS sessions(
			session_token text PRIMARY KEY,
			admin_id uuid NOT NULL REFERENCES admins(admin_id) ON DELETE CASCADE,
			expires_at timestamptz NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS categories(
			category_id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products(
			product_id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			category_id uuid NOT NULL REFERENCES categories(category_id),
			name text NOT NULL,
			description text NOT NULL DEFAULT '',
			price double precision NOT NULL CHECK (price >= 0),
			discount_percent double precision NOT NULL DEFAULT 0 CHECK (discount_percent >= 0 AND discount_percent <= 100),
			quantity integer NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			image_url text,
			custom_message text,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_admin_id ON sessions(admin_id)`,
	}

	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}
