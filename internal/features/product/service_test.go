package product

import (
	"context"
	"strings"
	"testing"

	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine/event"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContactNumber = "+258847749499"

type stubStore struct {
	products   map[uuid.UUID]*Product
	categories map[uuid.UUID]bool
	lastFilter *FilterOpts
}

func newStubStore() *stubStore {
	return &stubStore{
		products:   make(map[uuid.UUID]*Product),
		categories: make(map[uuid.UUID]bool),
	}
}

func (s *stubStore) createOne(_ context.Context, req *UpsertProductRequest) (*Product, error) {
	if !s.categories[req.CategoryID] {
		return nil, servererrors.ErrCategoryNotFound
	}

	product := &Product{
		ProductID:       uuid.New(),
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		Quantity:        req.Quantity,
		ImageURL:        req.ImageURL,
		CustomMessage:   req.CustomMessage,
	}
	s.products[product.ProductID] = product
	return product, nil
}

func (s *stubStore) findAll(_ context.Context, filter *FilterOpts) ([]*Product, error) {
	s.lastFilter = filter
	all := make([]*Product, 0, len(s.products))
	for _, product := range s.products {
		all = append(all, product)
	}
	return all, nil
}

func (s *stubStore) findByID(_ context.Context, productID uuid.UUID) (*Product, error) {
	product, ok := s.products[productID]
	if !ok {
		return nil, servererrors.ErrProductNotFound
	}
	return product, nil
}

func (s *stubStore) updateOne(_ context.Context, productID uuid.UUID, req *UpsertProductRequest) error {
	if !s.categories[req.CategoryID] {
		return servererrors.ErrCategoryNotFound
	}
	product, ok := s.products[productID]
	if !ok {
		return servererrors.ErrProductNotFound
	}
	product.Name = req.Name
	product.Price = req.Price
	product.DiscountPercent = req.DiscountPercent
	product.Quantity = req.Quantity
	product.CategoryID = req.CategoryID
	return nil
}

func (s *stubStore) setQuantity(_ context.Context, productID uuid.UUID, quantity uint) (string, error) {
	product, ok := s.products[productID]
	if !ok {
		return "", servererrors.ErrProductNotFound
	}
	product.Quantity = quantity
	return product.Name, nil
}

func (s *stubStore) deleteOne(_ context.Context, productID uuid.UUID) error {
	if _, ok := s.products[productID]; !ok {
		return servererrors.ErrProductNotFound
	}
	delete(s.products, productID)
	return nil
}

type stubCategories struct {
	existing map[uuid.UUID]bool
}

func (s *stubCategories) CategoryExists(_ context.Context, categoryID uuid.UUID) error {
	if !s.existing[categoryID] {
		return servererrors.ErrCategoryNotFound
	}
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

func newTestService() (*service, *stubStore, *stubCategories, *stubEventEngine) {
	store := newStubStore()
	categories := &stubCategories{existing: make(map[uuid.UUID]bool)}
	engine := &stubEventEngine{}

	return NewService(store, categories, engine, testContactNumber), store, categories, engine
}

func seedCategory(store *stubStore, categories *stubCategories) uuid.UUID {
	categoryID := uuid.New()
	store.categories[categoryID] = true
	categories.existing[categoryID] = true
	return categoryID
}

func TestGetCatalogRejectsUnknownCategory(t *testing.T) {
	svc, _, _, _ := newTestService()

	missing := uuid.New()
	_, err := svc.getCatalog(context.Background(), &FilterOpts{
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, servererrors.ErrCategoryNotFound)
}

func TestGetCatalogPassesFilterThrough(t *testing.T) {
	svc, store, categories, _ := newTestService()
	categoryID := seedCategory(store, categories)

	minPrice := 10.0
	filter := &FilterOpts{
		CategoryID: &categoryID,
		Search:     "chair",
		MinPrice:   &minPrice,
	}

	_, err := svc.getCatalog(context.Background(), filter)
	require.NoError(t, err)
	assert.Same(t, filter, store.lastFilter)
}

func TestGetCatalogComputesListingFields(t *testing.T) {
	svc, store, categories, _ := newTestService()
	categoryID := seedCategory(store, categories)

	_, err := svc.createProduct(context.Background(), &UpsertProductRequest{
		Name:            "Chair",
		Price:           1000,
		DiscountPercent: 10,
		CategoryID:      categoryID,
	})
	require.NoError(t, err)

	listings, err := svc.getCatalog(context.Background(), &FilterOpts{})
	require.NoError(t, err)
	require.Len(t, listings, 1)

	listing := listings[0]
	assert.Equal(t, 900.00, listing.FinalPrice)
	assert.Equal(t, "MT 900.00 (10% discount)", listing.PriceLabel)
	assert.Equal(
		t,
		"https://wa.me/258847749499?text=requesting+order%3A+%2AChair%2A+-+MT+900.00+%2810%25+discount%29",
		listing.WhatsAppURL,
	)
}

func TestGetCatalogUndiscountedProduct(t *testing.T) {
	svc, store, categories, _ := newTestService()
	categoryID := seedCategory(store, categories)

	_, err := svc.createProduct(context.Background(), &UpsertProductRequest{
		Name:       "Table",
		Price:      150,
		CategoryID: categoryID,
	})
	require.NoError(t, err)

	listings, err := svc.getCatalog(context.Background(), &FilterOpts{})
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, 150.00, listings[0].FinalPrice)
	assert.Equal(t, "MT 150.00", listings[0].PriceLabel)
	assert.NotContains(t, listings[0].PriceLabel, "discount")
}

func TestCreateProductTrimsFields(t *testing.T) {
	svc, store, categories, _ := newTestService()
	categoryID := seedCategory(store, categories)

	product, err := svc.createProduct(context.Background(), &UpsertProductRequest{
		Name:       "  Chair  ",
		CategoryID: categoryID,
		Price:      100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chair", product.Name)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.createProduct(context.Background(), &UpsertProductRequest{
		Name:       "Chair",
		CategoryID: uuid.New(),
		Price:      100,
	})
	assert.ErrorIs(t, err, servererrors.ErrCategoryNotFound)
}

func TestSetProductQuantityPublishesEvent(t *testing.T) {
	svc, store, categories, engine := newTestService()
	categoryID := seedCategory(store, categories)

	product, err := svc.createProduct(context.Background(), &UpsertProductRequest{
		Name:       "Chair",
		CategoryID: categoryID,
		Price:      100,
		Quantity:   5,
	})
	require.NoError(t, err)

	require.NoError(t, svc.setProductQuantity(context.Background(), product.ProductID, 0))
	assert.Equal(t, uint(0), store.products[product.ProductID].Quantity)

	require.Len(t, engine.published, 1)
	payload, ok := engine.published[0].Payload.(*event.ProductQuantityUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, product.ProductID, payload.ProductID)
	assert.Equal(t, "Chair", payload.Name)
	assert.Equal(t, uint(0), payload.Quantity)
}

func TestSetProductQuantityNotFound(t *testing.T) {
	svc, _, _, engine := newTestService()

	err := svc.setProductQuantity(context.Background(), uuid.New(), 3)
	assert.ErrorIs(t, err, servererrors.ErrProductNotFound)
	assert.Empty(t, engine.published)
}

func TestDeleteProduct(t *testing.T) {
	svc, store, categories, _ := newTestService()
	categoryID := seedCategory(store, categories)

	product, err := svc.createProduct(context.Background(), &UpsertProductRequest{
		Name:       "Chair",
		CategoryID: categoryID,
		Price:      100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.deleteProduct(context.Background(), product.ProductID))
	assert.NotContains(t, store.products, product.ProductID)

	err = svc.deleteProduct(context.Background(), product.ProductID)
	assert.ErrorIs(t, err, servererrors.ErrProductNotFound)
}

func TestCustomMessageOverridesWhatsAppText(t *testing.T) {
	svc, store, categories, _ := newTestService()
	categoryID := seedCategory(store, categories)

	_, err := svc.createProduct(context.Background(), &UpsertProductRequest{
		Name:          "Chair",
		CategoryID:    categoryID,
		Price:         100,
		CustomMessage: "Good day, is the chair available?",
	})
	require.NoError(t, err)

	listings, err := svc.getCatalog(context.Background(), &FilterOpts{})
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.True(
		t,
		strings.HasPrefix(listings[0].WhatsAppURL, "https://wa.me/258847749499?text="),
	)
	assert.Contains(t, listings[0].WhatsAppURL, "available")
	assert.NotContains(t, listings[0].WhatsAppURL, "requesting")
}
