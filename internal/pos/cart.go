// Package pos holds the point-of-sale state: the cart being built and the
// bill currently selected for export.
package pos

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/catalog"
	"github.com/mmynk/billdesk/internal/models"
)

var (
	ErrUnknownProduct  = errors.New("please select a product from the catalog")
	ErrInvalidQuantity = errors.New("please enter a valid quantity (1 or more)")
	ErrNoSuchLine      = errors.New("no such cart line")
)

// Cart is the in-memory list of pending selections. The zero value is an
// empty cart ready to use.
type Cart struct {
	lines []models.CartLine
}

// Add appends a line for the named catalog product. qtyText must be a
// positive base-10 integer; surrounding spaces are ignored. On error the cart
// is left unchanged.
func (c *Cart) Add(productName, qtyText string) (models.CartLine, error) {
	product, ok := catalog.Lookup(productName)
	if !ok {
		return models.CartLine{}, fmt.Errorf("%w: %q", ErrUnknownProduct, productName)
	}
	qty, err := ParseQuantity(qtyText)
	if err != nil {
		return models.CartLine{}, err
	}

	line := models.CartLine{Product: product.Name, Price: product.Price, Quantity: qty}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove deletes the line at index (0-based).
func (c *Cart) Remove(index int) (models.CartLine, error) {
	if index < 0 || index >= len(c.lines) {
		return models.CartLine{}, fmt.Errorf("%w: %d", ErrNoSuchLine, index+1)
	}
	line := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return line, nil
}

// Lines returns a copy of the cart lines in the order they were added.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.lines) }

// Total returns the sum of price × quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() { c.lines = nil }

// ParseQuantity accepts only digit strings with a value of at least one.
func ParseQuantity(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrInvalidQuantity
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, text)
		}
	}
	qty, err := strconv.Atoi(text)
	if err != nil || qty <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, text)
	}
	return qty, nil
}
