package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (s *Store) createOne(ctx context.Context, name string) (*Category, error) {
	query := `INSERT INTO categories(name) VALUES($1) RETURNING category_id, name, created_at`

	var category Category
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&category.CategoryID,
		&category.Name,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new category in category store: %w",
			err,
		)
	}

	return &category, nil
}

func (s *Store) findAll(ctx context.Context) ([]*Category, error) {
	query := `SELECT category_id, name, created_at FROM categories ORDER BY created_at ASC, category_id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all categories from category store: %w",
			err,
		)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var category Category
		err := rows.Scan(
			&category.CategoryID,
			&category.Name,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan category from category store: %w",
				err,
			)
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

func (s *Store) findByID(ctx context.Context, categoryID uuid.UUID) (*Category, error) {
	query := `SELECT category_id, name, created_at FROM categories WHERE category_id = $1`

	var category Category
	err := s.db.QueryRowContext(ctx, query, categoryID).Scan(
		&category.CategoryID,
		&category.Name,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrCategoryNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan category from category store: %w",
			err,
		)
	}

	return &category, nil
}

func (s *Store) updateOne(ctx context.Context, categoryID uuid.UUID, name string) error {
	query := `UPDATE categories SET name = $1 WHERE category_id = $2`

	result, err := s.db.ExecContext(ctx, query, name, categoryID)
	if err != nil {
		return fmt.Errorf(
			"failed to update category in category store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}

// deleteOne removes a category unless it still owns products. The
// ownership check and the delete run in one transaction, so a product
// inserted between check and delete cannot orphan itself.
func (s *Store) deleteOne(ctx context.Context, categoryID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var productCount int
	err = tx.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`,
		categoryID,
	).Scan(&productCount)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to count products for category in category store: %w",
			err,
		)
	}

	if productCount > 0 {
		tx.Rollback()
		return servererrors.ErrCategoryNotEmpty
	}

	result, err := tx.ExecContext(
		ctx,
		`DELETE FROM categories WHERE category_id = $1`,
		categoryID,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to delete category in category store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}

	if affected == 0 {
		tx.Rollback()
		return servererrors.ErrCategoryNotFound
	}

	return tx.Commit()
}
