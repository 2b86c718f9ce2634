package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ProductID       uuid.UUID `json:"productID"`
	CategoryID      uuid.UUID `json:"categoryID"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DiscountPercent float64   `json:"discountPercent"`
	Quantity        uint      `json:"quantity"`
	ImageURL        string    `json:"imageURL,omitempty"`
	CustomMessage   string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"-"`
}
