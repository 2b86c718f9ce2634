package product

import (
	"github.com/google/uuid"
)

// Requests

type UpsertProductRequest struct {
	Name            string    `json:"name" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	Price           float64   `json:"price" validate:"gte=0"`
	DiscountPercent float64   `json:"discountPercent" validate:"gte=0,lte=100"`
	Quantity        uint      `json:"quantity"`
	CategoryID      uuid.UUID `json:"categoryID" validate:"required"`
	ImageURL        string    `json:"imageURL" validate:"max=500"`
	CustomMessage   string    `json:"customMessage" validate:"max=500"`
}

// FilterOpts are the catalog listing filters. Nil fields impose no
// constraint; a set bound filters inclusively even when it is zero.
type FilterOpts struct {
	CategoryID *uuid.UUID
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
}

// Responses

// ProductDTO is a product as the public catalog renders it, with the
// derived price fields and the pre-built WhatsApp order link.
type ProductDTO struct {
	Product
	FinalPrice  float64 `json:"finalPrice"`
	PriceLabel  string  `json:"priceLabel"`
	WhatsAppURL string  `json:"whatsappURL"`
}
