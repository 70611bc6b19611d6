package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/catalog"
	"github.com/dstrelka/marketcart/internal/models"
	"github.com/dstrelka/marketcart/internal/store"
	"github.com/shopspring/decimal"
)

// CartView is the response shape for a cart read. TotalAmount is computed
// from current catalog prices and is informational only; the authoritative
// total is fixed at checkout.
type CartView struct {
	Items       []models.CartLine `json:"items"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	ItemCount   int               `json:"itemCount"`
}

// CartService implements the cart operations over the cart store and the
// catalog read boundary.
type CartService struct {
	carts   store.CartStore
	catalog catalog.Client
}

func NewCartService(carts store.CartStore, cat catalog.Client) *CartService {
	return &CartService{carts: carts, catalog: cat}
}

// AddItem merges quantity into the user's cart line for the product. The
// product must exist and be purchasable at add time.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.Validationf("quantity must be at least 1")
	}

	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("verify product %d: %w", productID, err)
	}

	return s.carts.AddItem(ctx, userID, productID, quantity)
}

// GetCart returns the user's cart lines with best-effort product
// summaries. A line whose catalog lookup fails is still returned, just
// without product data, so the user can see and remove it.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*CartView, error) {
	items, err := s.carts.ItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		Items:       make([]models.CartLine, 0, len(items)),
		TotalAmount: decimal.Zero,
	}

	for _, item := range items {
		line := models.CartLine{CartItem: item, LineTotal: decimal.Zero}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				log.Printf("cart read: product %d lookup failed: %v", item.ProductID, err)
			}
		} else {
			line.Product = product
			line.LineTotal = product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			view.TotalAmount = view.TotalAmount.Add(line.LineTotal)
		}

		view.ItemCount += item.Quantity
		view.Items = append(view.Items, line)
	}

	return view, nil
}

// UpdateQuantity replaces the quantity on an existing item owned by the
// user.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.Validationf("quantity must be at least 1")
	}
	return s.carts.UpdateQuantity(ctx, userID, itemID, quantity)
}

// RemoveItem deletes one cart item. Removing an item that is already gone
// succeeds.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return s.carts.RemoveItem(ctx, userID, itemID)
}

// ClearCart deletes every item in the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	return s.carts.Clear(ctx, userID)
}
