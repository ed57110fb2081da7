package pos

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartAdd(t *testing.T) {
	var cart Cart

	line, err := cart.Add("Laptop", "2")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if line.Product != "Laptop" || line.Quantity != 2 || !line.Price.Equal(decimal.NewFromInt(800)) {
		t.Errorf("unexpected line: %+v", line)
	}

	if _, err := cart.Add("wireless mouse", " 3 "); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if cart.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", cart.Len())
	}
	if got := cart.Lines()[1].Product; got != "Wireless Mouse" {
		t.Errorf("expected catalog spelling, got %q", got)
	}
	if !cart.Total().Equal(decimal.NewFromInt(1720)) {
		t.Errorf("Total = %s, want 1720", cart.Total())
	}
}

func TestCartAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		product string
		qty     string
		wantErr error
	}{
		{"zero quantity", "Laptop", "0", ErrInvalidQuantity},
		{"negative quantity", "Laptop", "-1", ErrInvalidQuantity},
		{"signed quantity", "Laptop", "+2", ErrInvalidQuantity},
		{"fractional quantity", "Laptop", "1.5", ErrInvalidQuantity},
		{"non-numeric quantity", "Laptop", "two", ErrInvalidQuantity},
		{"empty quantity", "Laptop", "", ErrInvalidQuantity},
		{"overflowing quantity", "Laptop", "99999999999999999999", ErrInvalidQuantity},
		{"unknown product", "Toaster", "1", ErrUnknownProduct},
		{"no product", "", "1", ErrUnknownProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cart Cart
			cart.Add("Tablet", "1")

			_, err := cart.Add(tt.product, tt.qty)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add(%q, %q) error = %v, want %v", tt.product, tt.qty, err, tt.wantErr)
			}
			if cart.Len() != 1 {
				t.Errorf("cart changed after rejected add: %d lines", cart.Len())
			}
		})
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	var cart Cart
	cart.Add("Laptop", "1")
	cart.Add("Tablet", "1")
	cart.Add("Smartwatch", "1")

	removed, err := cart.Remove(1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.Product != "Tablet" {
		t.Errorf("removed %q, want Tablet", removed.Product)
	}
	if cart.Len() != 2 || cart.Lines()[1].Product != "Smartwatch" {
		t.Errorf("unexpected cart after remove: %+v", cart.Lines())
	}

	if _, err := cart.Remove(5); !errors.Is(err, ErrNoSuchLine) {
		t.Errorf("expected ErrNoSuchLine, got %v", err)
	}

	cart.Clear()
	if cart.Len() != 0 || !cart.Total().IsZero() {
		t.Errorf("expected empty cart after Clear, got %d lines", cart.Len())
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	var cart Cart
	cart.Add("Laptop", "1")
	lines := cart.Lines()
	lines[0].Quantity = 99
	if cart.Lines()[0].Quantity != 1 {
		t.Error("Lines() must not expose the backing slice")
	}
}

func TestCartAddLargeQuantityKeepsExactTotal(t *testing.T) {
	var cart Cart
	line, err := cart.Add("Laptop", "11529215046068469")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	want := decimal.RequireFromString("9223372036854775200")
	if !line.Subtotal().Equal(want) || !cart.Total().Equal(want) {
		t.Errorf("Subtotal = %s, Total = %s, want %s", line.Subtotal(), cart.Total(), want)
	}
	if line.Subtotal().IsNegative() {
		t.Error("subtotal wrapped negative")
	}
}
