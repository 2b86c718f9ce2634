package category

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	CategoryID uuid.UUID `json:"categoryID"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"-"`
}
