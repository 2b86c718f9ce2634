package product

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/TherealJvJ/TelMoz-2.0/internal/handlerutils"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/TherealJvJ/TelMoz-2.0/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	getCatalog(ctx context.Context, filter *FilterOpts) ([]*ProductDTO, error)
	getProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	createProduct(ctx context.Context, req *UpsertProductRequest) (*Product, error)
	updateProduct(ctx context.Context, productID uuid.UUID, req *UpsertProductRequest) error
	setProductQuantity(ctx context.Context, productID uuid.UUID, quantity uint) error
	deleteProduct(ctx context.Context, productID uuid.UUID) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getCatalogHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	// protected routes
	router.Post(
		"/admin/products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createProductHandler,
			),
		),
	)

	router.Put(
		"/admin/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateProductHandler,
			),
		),
	)

	router.Put(
		"/admin/products/{productID}/quantity",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.setQuantityHandler,
			),
		),
	)

	router.Delete(
		"/admin/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteProductHandler,
			),
		),
	)
}

func (h *handler) getCatalogHandler(w http.ResponseWriter, r *http.Request) error {
	filter, err := getFilterOpts(r.URL.Query())
	if err != nil {
		return err
	}

	products, err := h.service.getCatalog(r.Context(), filter)
	if err != nil {
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
		"all products retrieved",
		products,
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	payload, err := parseUpsertPayload(r)
	if err != nil {
		return err
	}

	product, err := h.service.createProduct(r.Context(), payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrCategoryNotFound) {
			return categoryReferenceError()
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"product created",
		product,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	payload, err := parseUpsertPayload(r)
	if err != nil {
		return err
	}

	if err := h.service.updateProduct(r.Context(), productID, payload); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrCategoryNotFound):
			return categoryReferenceError()

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		nil,
	)
}

func (h *handler) setQuantityHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	if err := r.ParseForm(); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	// quantity is strict here, unlike product create/update: the whole
	// point of the request is the number
	quantity, err := strconv.ParseUint(
		handlerutils.FormValue(r, "quantity"),
		10,
		0,
	)
	if err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			map[string]string{"quantity": "must be a non-negative integer"},
		)
	}

	if err := h.service.setProductQuantity(r.Context(), productID, uint(quantity)); err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product quantity updated",
		nil,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	if err := h.service.deleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product deleted",
		nil,
	)
}

// parseUpsertPayload reads a product form. Name, price and category
// are strict; discount_percent and quantity coerce leniently to 0 so a
// garbled optional field never sinks the submission.
func parseUpsertPayload(r *http.Request) (*UpsertProductRequest, error) {
	if err := r.ParseForm(); err != nil {
		return nil, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	price, err := strconv.ParseFloat(
		handlerutils.FormValue(r, "price"),
		64,
	)
	if err != nil || price < 0 {
		return nil, servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			map[string]string{"price": "must be a non-negative number"},
		)
	}

	categoryID, err := uuid.Parse(
		handlerutils.FormValue(r, "category_id"),
	)
	if err != nil {
		return nil, categoryReferenceError()
	}

	payload := &UpsertProductRequest{
		Name:        handlerutils.FormValue(r, "name"),
		Description: handlerutils.FormValue(r, "description"),
		Price:       price,
		DiscountPercent: handlerutils.ParseFloatOrDefault(
			0,
			handlerutils.FormValue(r, "discount_percent"),
		),
		Quantity: handlerutils.ParseUintOrDefault(
			0,
			handlerutils.FormValue(r, "quantity"),
		),
		CategoryID:    categoryID,
		ImageURL:      handlerutils.FormValue(r, "image_url"),
		CustomMessage: handlerutils.FormValue(r, "custom_message"),
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

func categoryReferenceError() error {
	return servererrors.New(
		http.StatusUnprocessableEntity,
		servererrors.ErrValidationFailed.Error(),
		map[string]string{"category_id": "must reference an existing category"},
	)
}

func getFilterOpts(queryParams url.Values) (*FilterOpts, error) {
	filter := new(FilterOpts)

	if raw := queryParams.Get("categoryID"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return nil, servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)
		}
		filter.CategoryID = &categoryID
	}

	filter.Search = queryParams.Get("search")

	// unparseable price bounds behave like absent ones
	if raw := queryParams.Get("minPrice"); raw != "" {
		if minPrice, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &minPrice
		}
	}

	if raw := queryParams.Get("maxPrice"); raw != "" {
		if maxPrice, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &maxPrice
		}
	}

	return filter, nil
}
