package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/models"
	"github.com/dstrelka/marketcart/internal/store"
	"github.com/shopspring/decimal"
)

// In-memory doubles for the store and catalog ports. They reproduce the
// documented contracts (merge-on-add, single-unit checkout, CAS status
// updates) closely enough to exercise the services without a database.

type mockCatalog struct {
	mu       sync.Mutex
	products map[int64]models.ProductSummary
	failWith error
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{products: make(map[int64]models.ProductSummary)}
}

func (m *mockCatalog) put(id int64, title, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[id] = models.ProductSummary{
		ID:       id,
		SellerID: 1,
		Title:    title,
		Price:    decimal.RequireFromString(price),
	}
}

func (m *mockCatalog) GetProduct(ctx context.Context, productID int64) (*models.ProductSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.products[productID]
	if !ok {
		return nil, apperrors.NotFoundf("product %d", productID)
	}
	return &p, nil
}

type mockCartStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]models.CartItem // by item id
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{nextID: 1, items: make(map[int64]models.CartItem)}
}

func (m *mockCartStore) AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			item.UpdatedAt = time.Now()
			m.items[id] = item
			return &item, nil
		}
	}

	item := models.CartItem{
		ID:        m.nextID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.nextID++
	m.items[item.ID] = item
	return &item, nil
}

func (m *mockCartStore) ItemsByUser(ctx context.Context, userID int64) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.CartItem
	for id := int64(1); id < m.nextID; id++ {
		if item, ok := m.items[id]; ok && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockCartStore) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[itemID]
	if !ok || item.UserID != userID {
		return nil, apperrors.NotFoundf("cart item %d", itemID)
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	m.items[itemID] = item
	return &item, nil
}

func (m *mockCartStore) RemoveItem(ctx context.Context, userID, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item, ok := m.items[itemID]; ok && item.UserID == userID {
		delete(m.items, itemID)
	}
	return nil
}

func (m *mockCartStore) Clear(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
		}
	}
	return nil
}

type mockOrderStore struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]models.Order

	// checkout sources
	carts  *mockCartStore
	prices map[int64]decimal.Decimal
}

func newMockOrderStore(carts *mockCartStore) *mockOrderStore {
	return &mockOrderStore{
		nextID: 1,
		orders: make(map[int64]models.Order),
		carts:  carts,
		prices: make(map[int64]decimal.Decimal),
	}
}

func (m *mockOrderStore) price(productID int64, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[productID] = decimal.RequireFromString(price)
}

func (m *mockOrderStore) seed(order models.Order) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = m.nextID
	m.nextID++
	m.orders[order.ID] = order
	return order
}

func (m *mockOrderStore) CreateFromCart(ctx context.Context, userID int64, info store.Checkout) (*models.Order, error) {
	items, err := m.carts.ItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	order := models.Order{
		ID:              m.nextID,
		OrderNumber:     fmt.Sprintf("mock-%d", m.nextID),
		UserID:          userID,
		Status:          models.OrderPending,
		TotalAmount:     decimal.Zero,
		ShippingAddress: info.ShippingAddress,
		ShippingMethod:  info.ShippingMethod,
		PaymentMethod:   info.PaymentMethod,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, item := range items {
		price, ok := m.prices[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d cannot be priced: %w", item.ProductID, apperrors.ErrCatalogUnavailable)
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
			Subtotal:  subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
	}

	m.nextID++
	m.orders[order.ID] = order

	// Same unit of work as the insert.
	if err := m.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return &order, nil
}

func (m *mockOrderStore) GetByID(ctx context.Context, orderID int64) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, apperrors.NotFoundf("order %d", orderID)
	}
	return &order, nil
}

func (m *mockOrderStore) ByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Order
	for id := m.nextID - 1; id >= 1; id-- {
		if order, ok := m.orders[id]; ok && order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, orderID int64, from, to models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok || order.Status != from {
		return fmt.Errorf("order %d is no longer %s: %w", orderID, from, apperrors.ErrConflict)
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	m.orders[orderID] = order
	return nil
}
