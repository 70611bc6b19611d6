package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/models"
	"github.com/google/uuid"
)

// MySQLOrderStore implements OrderStore over the orders and order_items
// tables.
type MySQLOrderStore struct {
	db *sql.DB
}

func NewMySQLOrderStore(db *sql.DB) *MySQLOrderStore {
	return &MySQLOrderStore{db: db}
}

// CreateFromCart is the single-transaction read-cart, write-order,
// clear-cart primitive. It runs serializable and locks the cart rows and
// their product rows, so two concurrent checkouts for the same user
// serialize: the second sees an empty cart and fails with ErrEmptyCart.
// Any failure partway rolls the whole unit back and leaves the cart
// untouched, so a failed attempt is always safe to retry.
func (s *MySQLOrderStore) CreateFromCart(ctx context.Context, userID int64, info Checkout) (*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback()

	// 1. --- Read the cart and snapshot prices under lock ---
	// The LEFT JOIN keeps lines whose product row has vanished; those lines
	// surface as unpriceable and fail the build instead of defaulting to a
	// zero price.
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.price, p.status
		FROM cart_items ci
		LEFT JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = ?
		FOR UPDATE`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("lock cart lines: %w", err)
	}

	var lines []snapshotLine
	for rows.Next() {
		var line snapshotLine
		var status sql.NullString
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.Price, &status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		line.Active = status.Valid && status.String == models.ProductActive
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}
	rows.Close()

	items, total, err := buildOrderItems(lines)
	if err != nil {
		return nil, err
	}

	// 2. --- Insert the order ---
	orderNumber := uuid.NewString()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (order_number, user_id, total_amount, status,
			shipping_address, shipping_method, payment_method, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		orderNumber, userID, total, models.OrderPending,
		info.ShippingAddress, info.ShippingMethod, info.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get order id: %w", err)
	}

	// 3. --- Insert the frozen items ---
	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price, subtotal)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.Quantity, item.Price, item.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	// 4. --- Clear the cart in the same unit ---
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	return s.GetByID(ctx, orderID)
}

func (s *MySQLOrderStore) GetByID(ctx context.Context, orderID int64) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_number, user_id, total_amount, status,
			shipping_address, shipping_method, payment_method, created_at, updated_at
		FROM orders
		WHERE id = ?`,
		orderID,
	).Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.TotalAmount, &o.Status,
		&o.ShippingAddress, &o.ShippingMethod, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("order %d", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	items, err := s.itemsByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (s *MySQLOrderStore) ByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_number, user_id, total_amount, status,
			shipping_address, shipping_method, payment_method, created_at, updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.TotalAmount, &o.Status,
			&o.ShippingAddress, &o.ShippingMethod, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	// Per-order item fan-out. Each order's items are read after its parent
	// row, so every order in the result is internally consistent.
	for i := range orders {
		items, err := s.itemsByOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (s *MySQLOrderStore) itemsByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price, subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY id`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

// UpdateStatus is a compare-and-set on the status column. A zero row count
// means the order moved out of the expected status (or never existed)
// between the caller's read and this write.
func (s *MySQLOrderStore) UpdateStatus(ctx context.Context, orderID int64, from, to models.OrderStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, updated_at = NOW()
		WHERE id = ? AND status = ?`,
		to, orderID, from)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("order %d is no longer %s: %w", orderID, from, apperrors.ErrConflict)
	}

	return nil
}
