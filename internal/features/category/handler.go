package category

import (
	"context"
	"errors"
	"net/http"

	"github.com/TherealJvJ/TelMoz-2.0/internal/handlerutils"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/TherealJvJ/TelMoz-2.0/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	getAllCategories(ctx context.Context) ([]*Category, error)
	getCategory(ctx context.Context, categoryID uuid.UUID) (*Category, error)
	createCategory(ctx context.Context, req *UpsertCategoryRequest) (*Category, error)
	updateCategory(ctx context.Context, categoryID uuid.UUID, req *UpsertCategoryRequest) error
	deleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(categoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    categoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/categories",
		handlerutils.MakeHandler(
			h.getAllCategoriesHandler,
		),
	)

	// protected routes
	router.Post(
		"/admin/categories",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createCategoryHandler,
			),
		),
	)

	router.Put(
		"/admin/categories/{categoryID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateCategoryHandler,
			),
		),
	)

	router.Delete(
		"/admin/categories/{categoryID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteCategoryHandler,
			),
		),
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.service.getAllCategories(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all categories retrieved",
		categories,
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	payload, err := parseUpsertPayload(r)
	if err != nil {
		return err
	}

	category, err := h.service.createCategory(r.Context(), payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"category created",
		category,
	)
}

func (h *handler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrCategoryNotFound.Error(),
			nil,
		)
	}

	payload, err := parseUpsertPayload(r)
	if err != nil {
		return err
	}

	if err := h.service.updateCategory(r.Context(), categoryID, payload); err != nil {
		if errors.Is(err, servererrors.ErrCategoryNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category updated",
		nil,
	)
}

func (h *handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrCategoryNotFound.Error(),
			nil,
		)
	}

	if err := h.service.deleteCategory(r.Context(), categoryID); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCategoryNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrCategoryNotEmpty):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrCategoryNotEmpty.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category deleted",
		nil,
	)
}

func parseUpsertPayload(r *http.Request) (*UpsertCategoryRequest, error) {
	if err := r.ParseForm(); err != nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload := &UpsertCategoryRequest{
		Name: handlerutils.FormValue(r, "name"),
	}

	if fieldErrs := validate.StructFields(payload); fieldErrs != nil {
		return nil, servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrs,
		)
	}

	return payload, nil
}
