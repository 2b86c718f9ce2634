package event

import "github.com/google/uuid"

const (
	ProductQuantityUpdatedEventName EventName = "product.quantity.updated"
)

// ProductQuantityUpdatedEvent is published after an admin overwrites a
// product's stock quantity.
type ProductQuantityUpdatedEvent struct {
	ProductID uuid.UUID
	Name      string
	Quantity  uint
}

func (e *ProductQuantityUpdatedEvent) GetEventName() EventName {
	return ProductQuantityUpdatedEventName
}
