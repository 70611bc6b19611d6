package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is the model for the 'cart_items' table. At most one row exists
// per (user_id, product_id); repeated adds merge by quantity increment.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CartLine is a cart item joined with its product summary for responses.
// Product is nil when the catalog lookup failed; the line is still returned
// so the user can see (and remove) it.
type CartLine struct {
	CartItem
	Product   *ProductSummary `json:"product,omitempty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}
