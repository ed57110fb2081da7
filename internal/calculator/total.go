// Package calculator computes bill amounts with exact decimal arithmetic.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/models"
)

// ErrInvalidQuantity is returned for a quantity below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// LineTotal returns price × quantity.
func LineTotal(price decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// BillTotal sums price × quantity over all cart lines.
// An empty cart totals zero.
func BillTotal(lines []models.CartLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, line := range lines {
		sub, err := LineTotal(line.Price, line.Quantity)
		if err != nil {
			return decimal.Zero, fmt.Errorf("line %d (%s): %w", i+1, line.Product, err)
		}
		total = total.Add(sub)
	}
	return total, nil
}
