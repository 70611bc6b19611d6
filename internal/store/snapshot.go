package store

import (
	"fmt"

	"github.com/dstrelka/marketcart/internal/apperrors"
	"github.com/dstrelka/marketcart/internal/models"
	"github.com/shopspring/decimal"
)

// snapshotLine is one cart row joined with the catalog price at checkout
// time. Price is unset when the product row was missing; Active is false
// when the product exists but is no longer purchasable.
type snapshotLine struct {
	ProductID int64
	Quantity  int
	Price     decimal.NullDecimal
	Active    bool
}

// buildOrderItems freezes the joined cart lines into order items and sums
// the order total. A line that cannot be priced fails the whole build; a
// zero price is never substituted.
func buildOrderItems(lines []snapshotLine) ([]models.OrderItem, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, apperrors.ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		if !line.Price.Valid || !line.Active {
			return nil, decimal.Zero, fmt.Errorf("product %d cannot be priced: %w", line.ProductID, apperrors.ErrCatalogUnavailable)
		}

		price := line.Price.Decimal
		subtotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	return items, total, nil
}
