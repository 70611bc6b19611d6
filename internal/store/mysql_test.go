package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/dstrelka/marketcart/internal/database"
	_ "github.com/go-sql-driver/mysql"
)

// Shared setup for the MySQL adapter tests. They run against a real
// database and skip when none is reachable.

func getTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/marketcart_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("schema setup failed: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *sql.DB, price string) int64 {
	res, err := db.Exec(`
		INSERT INTO products (seller_id, title, price, status, created_at, updated_at)
		VALUES (1, 'Seeded Product', ?, 'active', NOW(), NOW())`, price)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func cleanupUser(t *testing.T, db *sql.DB, userID int64) {
	ctx := context.Background()
	db.ExecContext(ctx, "DELETE oi FROM order_items oi JOIN orders o ON oi.order_id = o.id WHERE o.user_id = ?", userID)
	db.ExecContext(ctx, "DELETE FROM orders WHERE user_id = ?", userID)
	db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = ?", userID)
}
