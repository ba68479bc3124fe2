package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetItemRequest puts a line in the cart or changes its quantity.
type SetItemRequest struct {
	BookID   uuid.UUID `json:"bookId" validate:"required"`
	Format   string    `json:"format" validate:"required,oneof=audio standard electronic"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// RemoveItemRequest drops one line from the cart.
type RemoveItemRequest struct {
	BookID uuid.UUID `json:"bookId" validate:"required"`
	Format string    `json:"format" validate:"required,oneof=audio standard electronic"`
}

// ItemResponse is one cart line with its computed total.
type ItemResponse struct {
	BookID    uuid.UUID       `json:"bookId"`
	Title     string          `json:"title"`
	Format    string          `json:"format"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartResponse is the whole cart with its grand total.
type CartResponse struct {
	Items []ItemResponse  `json:"items"`
	Total decimal.Decimal `json:"total"`
}
