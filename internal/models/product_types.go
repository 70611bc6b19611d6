package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product status values in the 'products' table. Only active products are
// visible to the cart and checkout paths.
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// ProductSummary is the denormalized slice of catalog data attached to cart
// lines at read time. The price here is informational; the authoritative
// price for an order is snapshotted inside the checkout transaction.
type ProductSummary struct {
	ID       int64           `json:"id"`
	SellerID int64           `json:"sellerId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"imageUrl,omitempty"`
}

// Product is the model for the 'products' table. Catalog management itself
// lives outside this service; rows are read-only here.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	SellerID  int64           `json:"sellerId" db:"seller_id"`
	Title     string          `json:"title" db:"title"`
	Price     decimal.Decimal `json:"price" db:"price"`
	ImageURL  *string         `json:"imageUrl,omitempty" db:"image_url"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
