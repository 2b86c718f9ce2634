package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const productColumns = `product_id, category_id, name, description, price, discount_percent, quantity, COALESCE(image_url, ''), COALESCE(custom_message, ''), created_at, updated_at`

// createOne inserts a product after checking, in the same transaction,
// that the referenced category exists.
func (s *Store) createOne(ctx context.Context, req *UpsertProductRequest) (*Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if err := categoryExists(ctx, tx, req.CategoryID); err != nil {
		tx.Rollback()
		return nil, err
	}

	query := fmt.Sprintf(
		`INSERT INTO products(category_id, name, description, price, discount_percent, quantity, image_url, custom_message)
		 VALUES($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
		 RETURNING %s`,
		productColumns,
	)

	var created Product
	err = scanProduct(
		tx.QueryRowContext(
			ctx,
			query,
			req.CategoryID,
			req.Name,
			req.Description,
			req.Price,
			req.DiscountPercent,
			req.Quantity,
			req.ImageURL,
			req.CustomMessage,
		),
		&created,
	)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Store) findAll(ctx context.Context, filter *FilterOpts) ([]*Product, error) {
	query, queryParams := buildListQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var product Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (s *Store) findByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE product_id = $1`,
		productColumns,
	)

	var product Product
	err := scanProduct(
		s.db.QueryRowContext(ctx, query, productID),
		&product,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrProductNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return &product, nil
}

// updateOne overwrites all editable fields, checking the target
// category inside the same transaction as the write.
func (s *Store) updateOne(ctx context.Context, productID uuid.UUID, req *UpsertProductRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := categoryExists(ctx, tx, req.CategoryID); err != nil {
		tx.Rollback()
		return err
	}

	query := `UPDATE products
		 SET category_id = $1, name = $2, description = $3, price = $4, discount_percent = $5,
		     quantity = $6, image_url = NULLIF($7, ''), custom_message = NULLIF($8, ''), updated_at = now()
		 WHERE product_id = $9`

	result, err := tx.ExecContext(
		ctx,
		query,
		req.CategoryID,
		req.Name,
		req.Description,
		req.Price,
		req.DiscountPercent,
		req.Quantity,
		req.ImageURL,
		req.CustomMessage,
		productID,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to update product in product store: %w",
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
		return servererrors.ErrProductNotFound
	}

	return tx.Commit()
}

// setQuantity overwrites the stock counter, last writer wins, and
// returns the product name for the published event.
func (s *Store) setQuantity(ctx context.Context, productID uuid.UUID, quantity uint) (string, error) {
	query := `UPDATE products SET quantity = $1, updated_at = now() WHERE product_id = $2 RETURNING name`

	var name string
	err := s.db.QueryRowContext(ctx, query, quantity, productID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", servererrors.ErrProductNotFound
		}

		return "", fmt.Errorf(
			"failed to update product quantity in product store: %w",
			err,
		)
	}

	return name, nil
}

func (s *Store) deleteOne(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM products WHERE product_id = $1`

	result, err := s.db.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf(
			"failed to delete product in product store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return servererrors.ErrProductNotFound
	}

	return nil
}

func categoryExists(ctx context.Context, tx *sql.Tx, categoryID uuid.UUID) error {
	var exists bool

	err := tx.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE category_id = $1)`,
		categoryID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf(
			"failed to check category in product store: %w",
			err,
		)
	}

	if !exists {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, product *Product) error {
	return row.Scan(
		&product.ProductID,
		&product.CategoryID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.DiscountPercent,
		&product.Quantity,
		&product.ImageURL,
		&product.CustomMessage,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
}

// buildListQuery composes the catalog listing query. All supplied
// filters apply conjunctively; the result order is fixed so the same
// store state always lists the same way.
func buildListQuery(filter *FilterOpts) (string, []any) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)

	whereClauses := []string{}
	queryParams := []any{}

	if filter.CategoryID != nil {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("category_id = $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *filter.CategoryID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(`name ILIKE $%d ESCAPE '\'`, len(queryParams)+1),
		)
		queryParams = append(
			queryParams,
			"%"+escapeLikePattern(search)+"%",
		)
	}

	if filter.MinPrice != nil {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("price >= $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("price <= $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *filter.MaxPrice)
	}

	if len(whereClauses) > 0 {
		query += fmt.Sprintf(
			" WHERE %s",
			strings.Join(whereClauses, " AND "),
		)
	}

	query += " ORDER BY created_at ASC, product_id ASC"

	return query, queryParams
}

// escapeLikePattern neutralizes LIKE metacharacters so the search text
// matches as a literal substring.
func escapeLikePattern(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)

	return replacer.Replace(text)
}
