package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/models"
)

// MySQLCartStore implements CartStore over the cart_items table.
type MySQLCartStore struct {
	db *sql.DB
}

func NewMySQLCartStore(db *sql.DB) *MySQLCartStore {
	return &MySQLCartStore{db: db}
}

// AddItem relies on the (user_id, product_id) unique key: a repeat add
// merges by incrementing quantity instead of inserting a second row. The
// upsert and the read back run in one transaction so a concurrent remove
// or clear cannot land between them and leave the read back empty-handed.
func (s *MySQLCartStore) AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cart upsert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = NOW()`,
		userID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	var item models.CartItem
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("read back cart item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cart upsert: %w", err)
	}

	return &item, nil
}

func (s *MySQLCartStore) itemByID(ctx context.Context, userID, itemID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = ? AND user_id = ?`,
		itemID, userID,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("cart item %d", itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("read back cart item: %w", err)
	}
	return &item, nil
}

func (s *MySQLCartStore) ItemsByUser(ctx context.Context, userID int64) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = ?
		ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return items, nil
}

// UpdateQuantity scopes the write to the owning user so one user can never
// touch another user's cart rows.
func (s *MySQLCartStore) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error) {
	_, err := s.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = ?, updated_at = NOW()
		WHERE id = ? AND user_id = ?`,
		quantity, itemID, userID)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	// RowsAffected is 0 both when the row is missing and when the quantity
	// is unchanged, so a read back decides between the two.
	return s.itemByID(ctx, userID, itemID)
}

func (s *MySQLCartStore) RemoveItem(ctx context.Context, userID, itemID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE id = ? AND user_id = ?", itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (s *MySQLCartStore) Clear(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
