package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBillTotal(t *testing.T) {
	tests := []struct {
		name    string
		lines   []models.CartLine
		want    string
		wantErr error
	}{
		{
			name: "single line",
			lines: []models.CartLine{
				{Product: "Laptop", Price: d("800.00"), Quantity: 2},
			},
			want: "1600",
		},
		{
			name: "mixed lines",
			lines: []models.CartLine{
				{Product: "Laptop", Price: d("800.00"), Quantity: 1},
				{Product: "Wireless Mouse", Price: d("40.00"), Quantity: 3},
				{Product: "Headphones", Price: d("100.00"), Quantity: 1},
			},
			want: "1020",
		},
		{
			name: "cents stay exact",
			lines: []models.CartLine{
				{Product: "Cable", Price: d("0.10"), Quantity: 3},
				{Product: "Adapter", Price: d("0.20"), Quantity: 1},
			},
			want: "0.5",
		},
		{
			name:  "empty cart is zero",
			lines: nil,
			want:  "0",
		},
		{
			name: "zero quantity rejected",
			lines: []models.CartLine{
				{Product: "Tablet", Price: d("300.00"), Quantity: 0},
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "negative quantity rejected",
			lines: []models.CartLine{
				{Product: "Tablet", Price: d("300.00"), Quantity: -2},
			},
			wantErr: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BillTotal(tt.lines)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BillTotal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BillTotal() unexpected error: %v", err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("BillTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineTotal(t *testing.T) {
	got, err := LineTotal(d("120.00"), 4)
	if err != nil {
		t.Fatalf("LineTotal failed: %v", err)
	}
	if !got.Equal(d("480")) {
		t.Errorf("LineTotal = %s, want 480", got)
	}
}
