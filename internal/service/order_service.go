package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/auth"
	"github.com/dstrelka/marketcart/internal/models"
	"github.com/dstrelka/marketcart/internal/store"
)

// OrderService builds orders from carts and governs their lifecycle. All
// visibility and transition-authority rules live here; the store below it
// only persists.
type OrderService struct {
	orders store.OrderStore
}

func NewOrderService(orders store.OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

// CreateFromCart turns the caller's cart into a pending order. The store
// primitive guarantees the order insert and the cart clearing commit as
// one unit.
func (s *OrderService) CreateFromCart(ctx context.Context, userID int64, info store.Checkout) (*models.Order, error) {
	if strings.TrimSpace(info.ShippingAddress) == "" {
		return nil, apperrors.Validationf("shipping address is required")
	}
	if strings.TrimSpace(info.ShippingMethod) == "" {
		return nil, apperrors.Validationf("shipping method is required")
	}
	if strings.TrimSpace(info.PaymentMethod) == "" {
		return nil, apperrors.Validationf("payment method is required")
	}

	return s.orders.CreateFromCart(ctx, userID, info)
}

// GetOrder returns an order visible to the caller. Existence is checked
// first: a caller without access to an existing order gets forbidden, not
// not-found.
func (s *OrderService) GetOrder(ctx context.Context, caller auth.Identity, orderID int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != caller.UserID && caller.Role != models.RoleAdmin {
		return nil, fmt.Errorf("order %d: %w", orderID, apperrors.ErrForbidden)
	}

	return order, nil
}

// ListUserOrders returns the caller's own orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.orders.ByUser(ctx, userID)
}

// UpdateStatus moves an order to a new status. Admin only; the state
// machine decides which moves are legal.
func (s *OrderService) UpdateStatus(ctx context.Context, caller auth.Identity, orderID int64, to models.OrderStatus) (*models.Order, error) {
	if caller.Role != models.RoleAdmin {
		return nil, fmt.Errorf("status update: %w", apperrors.ErrForbidden)
	}
	if !to.Valid() {
		return nil, apperrors.Validationf("unknown status %q", to)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(order.Status, to) {
		return nil, fmt.Errorf("cannot move order from %s to %s: %w", order.Status, to, apperrors.ErrInvalidTransition)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, order.Status, to); err != nil {
		return nil, err
	}

	return s.orders.GetByID(ctx, orderID)
}

// Cancel cancels a pending order. The owner or an admin may cancel; any
// other status fails with the not-pending rule, leaving the order as it
// was.
func (s *OrderService) Cancel(ctx context.Context, caller auth.Identity, orderID int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != caller.UserID && caller.Role != models.RoleAdmin {
		return nil, fmt.Errorf("order %d: %w", orderID, apperrors.ErrForbidden)
	}

	if order.Status != models.OrderPending {
		return nil, fmt.Errorf("only pending orders can be cancelled: %w", apperrors.ErrInvalidTransition)
	}

	err = s.orders.UpdateStatus(ctx, orderID, models.OrderPending, models.OrderCancelled)
	if errors.Is(err, apperrors.ErrConflict) {
		// Lost a race with another transition; report it as the
		// not-pending rule rather than a bare conflict.
		return nil, fmt.Errorf("only pending orders can be cancelled: %w", apperrors.ErrInvalidTransition)
	}
	if err != nil {
		return nil, err
	}

	return s.orders.GetByID(ctx, orderID)
}
