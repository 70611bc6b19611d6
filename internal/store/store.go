// Package store owns persistence for carts and orders. The MySQL
// implementations live here behind small interfaces so the service layer
// can be exercised without a database.
package store

import (
	"context"

	"github.com/dstrelka/marketcart/internal/models"
)

// CartStore holds each user's mutable pre-purchase line items.
type CartStore interface {
	// AddItem merges quantity into the (userID, productID) row, inserting
	// it if absent, and returns the resulting item.
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error)

	// ItemsByUser returns all cart items for a user.
	ItemsByUser(ctx context.Context, userID int64) ([]models.CartItem, error)

	// UpdateQuantity replaces the quantity on an item owned by userID.
	// Returns apperrors.ErrNotFound when no such item exists.
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error)

	// RemoveItem deletes one item owned by userID. Removing an absent item
	// is not an error.
	RemoveItem(ctx context.Context, userID, itemID int64) error

	// Clear deletes every cart item for a user.
	Clear(ctx context.Context, userID int64) error
}

// Checkout carries the order-level fields supplied at creation time. The
// payment method is recorded as an opaque string; nothing is charged.
type Checkout struct {
	ShippingAddress string
	ShippingMethod  string
	PaymentMethod   string
}

// OrderStore persists immutable orders and their status transitions.
type OrderStore interface {
	// CreateFromCart turns the user's cart into a pending order inside one
	// transaction: read cart, snapshot prices, insert order and items,
	// clear the cart. Returns apperrors.ErrEmptyCart for an empty cart and
	// apperrors.ErrCatalogUnavailable when any line cannot be priced.
	CreateFromCart(ctx context.Context, userID int64, info Checkout) (*models.Order, error)

	// GetByID returns the order with its items, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, orderID int64) (*models.Order, error)

	// ByUser returns the user's orders newest first, items populated.
	ByUser(ctx context.Context, userID int64) ([]models.Order, error)

	// UpdateStatus moves an order from one status to another as a
	// compare-and-set. Returns apperrors.ErrConflict when the order is no
	// longer in the expected status.
	UpdateStatus(ctx context.Context, orderID int64, from, to models.OrderStatus) error
}
