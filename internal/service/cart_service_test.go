package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/shopspring/decimal"
)

func TestAddItem_RepeatAddMerges(t *testing.T) {
	carts := newMockCartStore()
	cat := newMockCatalog()
	cat.put(1, "Mug", "10")
	svc := NewCartService(carts, cat)

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, 7, 1, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	item, err := svc.AddItem(ctx, 7, 1, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if item.Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", item.Quantity)
	}
	items, _ := carts.ItemsByUser(ctx, 7)
	if len(items) != 1 {
		t.Errorf("expected exactly one cart row, got %d", len(items))
	}
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(newMockCartStore(), newMockCatalog())

	for _, q := range []int{0, -1} {
		_, err := svc.AddItem(context.Background(), 7, 1, q)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("quantity %d: expected ErrValidation, got %v", q, err)
		}
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := NewCartService(newMockCartStore(), newMockCatalog())

	_, err := svc.AddItem(context.Background(), 7, 404, 1)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddItem_CatalogOutageSurfaces(t *testing.T) {
	cat := newMockCatalog()
	cat.failWith = apperrors.ErrCatalogUnavailable
	svc := NewCartService(newMockCartStore(), cat)

	_, err := svc.AddItem(context.Background(), 7, 1, 1)
	if !errors.Is(err, apperrors.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestGetCart_Totals(t *testing.T) {
	carts := newMockCartStore()
	cat := newMockCatalog()
	cat.put(1, "Mug", "20")
	cat.put(2, "Coaster", "5")
	svc := NewCartService(carts, cat)

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, 7, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(ctx, 7, 2, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.GetCart(ctx, 7)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}

	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Items))
	}
	if view.ItemCount != 3 {
		t.Errorf("expected item count 3, got %d", view.ItemCount)
	}
	if !view.TotalAmount.Equal(decimal.RequireFromString("45")) {
		t.Errorf("expected total 45, got %s", view.TotalAmount)
	}
	if view.Items[0].Product == nil || view.Items[0].Product.Title != "Mug" {
		t.Error("expected product summary on first line")
	}
}

func TestGetCart_MissingProductToleratedOnRead(t *testing.T) {
	carts := newMockCartStore()
	cat := newMockCatalog()
	cat.put(1, "Mug", "20")
	svc := NewCartService(carts, cat)

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, 7, 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// The product disappears from the catalog after it was added.
	cat.mu.Lock()
	delete(cat.products, 1)
	cat.mu.Unlock()

	view, err := svc.GetCart(ctx, 7)
	if err != nil {
		t.Fatalf("GetCart must not fail on a missing product: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected the orphan line to be returned, got %d lines", len(view.Items))
	}
	if view.Items[0].Product != nil {
		t.Error("expected no product summary on the orphan line")
	}
	if !view.TotalAmount.IsZero() {
		t.Errorf("expected total 0, got %s", view.TotalAmount)
	}
}

func TestGetCart_Empty(t *testing.T) {
	svc := NewCartService(newMockCartStore(), newMockCatalog())

	view, err := svc.GetCart(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(view.Items) != 0 || view.ItemCount != 0 || !view.TotalAmount.IsZero() {
		t.Errorf("expected an empty view, got %+v", view)
	}
}

func TestUpdateQuantity(t *testing.T) {
	carts := newMockCartStore()
	cat := newMockCatalog()
	cat.put(1, "Mug", "10")
	svc := NewCartService(carts, cat)

	ctx := context.Background()
	item, err := svc.AddItem(ctx, 7, 1, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.UpdateQuantity(ctx, 7, item.ID, 6)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 6 {
		t.Errorf("expected quantity 6, got %d", updated.Quantity)
	}

	if _, err := svc.UpdateQuantity(ctx, 7, item.ID, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected ErrValidation for zero quantity, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, 7, 999, 2); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown item, got %v", err)
	}
}

func TestRemoveItem_Idempotent(t *testing.T) {
	carts := newMockCartStore()
	cat := newMockCatalog()
	cat.put(1, "Mug", "10")
	svc := NewCartService(carts, cat)

	ctx := context.Background()
	item, err := svc.AddItem(ctx, 7, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.RemoveItem(ctx, 7, item.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := svc.RemoveItem(ctx, 7, item.ID); err != nil {
		t.Fatalf("second remove must succeed, got %v", err)
	}
}
