package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type storer interface {
	createOne(ctx context.Context, name string) (*Category, error)
	findAll(ctx context.Context) ([]*Category, error)
	findByID(ctx context.Context, categoryID uuid.UUID) (*Category, error)
	updateOne(ctx context.Context, categoryID uuid.UUID, name string) error
	deleteOne(ctx context.Context, categoryID uuid.UUID) error
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

// CategoryExists resolves a category id, for other features guarding
// against dangling references. Returns
// [servererrors.ErrCategoryNotFound] when the id is not live.
func (s *service) CategoryExists(ctx context.Context, categoryID uuid.UUID) error {
	_, err := s.store.findByID(ctx, categoryID)

	return err
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	return s.store.findAll(ctx)
}

func (s *service) getCategory(ctx context.Context, categoryID uuid.UUID) (*Category, error) {
	return s.store.findByID(ctx, categoryID)
}

func (s *service) createCategory(ctx context.Context, req *UpsertCategoryRequest) (*Category, error) {
	return s.store.createOne(ctx, strings.TrimSpace(req.Name))
}

func (s *service) updateCategory(ctx context.Context, categoryID uuid.UUID, req *UpsertCategoryRequest) error {
	return s.store.updateOne(ctx, categoryID, strings.TrimSpace(req.Name))
}

func (s *service) deleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	return s.store.deleteOne(ctx, categoryID)
}
