package product

import (
	"context"
	"log"
	"strings"

	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine"
	"github.com/TherealJvJ/TelMoz-2.0/internal/eventengine/event"
	"github.com/TherealJvJ/TelMoz-2.0/internal/whatsapp"
	"github.com/google/uuid"
)

type storer interface {
	createOne(ctx context.Context, req *UpsertProductRequest) (*Product, error)
	findAll(ctx context.Context, filter *FilterOpts) ([]*Product, error)
	findByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	updateOne(ctx context.Context, productID uuid.UUID, req *UpsertProductRequest) error
	setQuantity(ctx context.Context, productID uuid.UUID, quantity uint) (string, error)
	deleteOne(ctx context.Context, productID uuid.UUID) error
}

type categoryChecker interface {
	CategoryExists(ctx context.Context, categoryID uuid.UUID) error
}

type service struct {
	store         storer
	categories    categoryChecker
	eventEngine   eventengine.RegisterPublisher
	contactNumber string
}

func NewService(store storer, categories categoryChecker, eventEngine eventengine.RegisterPublisher, contactNumber string) *service {
	// Register eventNames the product service will emit
	eventEngine.RegisterEvents(
		event.ProductQuantityUpdatedEventName,
	)

	return &service{
		store:         store,
		categories:    categories,
		eventEngine:   eventEngine,
		contactNumber: contactNumber,
	}
}

// getCatalog lists products for public browsing. A supplied category
// filter must reference an existing category.
func (s *service) getCatalog(ctx context.Context, filter *FilterOpts) ([]*ProductDTO, error) {
	if filter.CategoryID != nil {
		if err := s.categories.CategoryExists(ctx, *filter.CategoryID); err != nil {
			return nil, err
		}
	}

	products, err := s.store.findAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	listings := make([]*ProductDTO, 0, len(products))
	for _, product := range products {
		listings = append(listings, s.toDTO(product))
	}

	return listings, nil
}

func (s *service) getProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.store.findByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.toDTO(product), nil
}

func (s *service) createProduct(ctx context.Context, req *UpsertProductRequest) (*Product, error) {
	trimRequest(req)

	return s.store.createOne(ctx, req)
}

func (s *service) updateProduct(ctx context.Context, productID uuid.UUID, req *UpsertProductRequest) error {
	trimRequest(req)

	return s.store.updateOne(ctx, productID, req)
}

// setProductQuantity overwrites the stock counter (last writer wins)
// and announces the new quantity.
func (s *service) setProductQuantity(ctx context.Context, productID uuid.UUID, quantity uint) error {
	name, err := s.store.setQuantity(ctx, productID, quantity)
	if err != nil {
		return err
	}

	updatedEvent := &event.ProductQuantityUpdatedEvent{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
	}

	err = s.eventEngine.Publish(
		&event.Event{
			Name:    updatedEvent.GetEventName(),
			Payload: updatedEvent,
		},
	)
	if err != nil {
		log.Println("failed to publish quantity update event:", err)
	}

	return nil
}

func (s *service) deleteProduct(ctx context.Context, productID uuid.UUID) error {
	return s.store.deleteOne(ctx, productID)
}

func (s *service) toDTO(product *Product) *ProductDTO {
	order := whatsapp.Order{
		Name:            product.Name,
		Price:           product.Price,
		DiscountPercent: product.DiscountPercent,
		CustomMessage:   product.CustomMessage,
	}

	return &ProductDTO{
		Product:     *product,
		FinalPrice:  whatsapp.FinalPrice(product.Price, product.DiscountPercent),
		PriceLabel:  whatsapp.PriceLabel(product.Price, product.DiscountPercent),
		WhatsAppURL: whatsapp.Link(s.contactNumber, order),
	}
}

func trimRequest(req *UpsertProductRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	req.CustomMessage = strings.TrimSpace(req.CustomMessage)
}
