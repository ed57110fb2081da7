package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/invoice"
	"github.com/mmynk/billdesk/internal/metrics"
	"github.com/mmynk/billdesk/internal/models"
	"github.com/mmynk/billdesk/internal/storage"
	"github.com/mmynk/billdesk/internal/storage/sqlite"
)

// setupTestService creates a BillService backed by a temp SQLite database.
func setupTestService(t *testing.T) (*BillService, *metrics.Metrics) {
	t.Helper()
	dir := t.TempDir()

	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	renderer, err := invoice.NewRenderer(filepath.Join(dir, "invoices"), "Test Shop", "USD")
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	m := metrics.New()
	svc := NewBillService(store, renderer, m)
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local) }
	return svc, m
}

func line(product, price string, qty int) models.CartLine {
	return models.CartLine{Product: product, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestSaveBill(t *testing.T) {
	svc, m := setupTestService(t)
	ctx := context.Background()

	lines := []models.CartLine{
		line("Laptop", "800.00", 2),
		line("Wireless Mouse", "40.00", 3),
		line("Headphones", "100.00", 1),
	}
	bill, err := svc.SaveBill(ctx, "  Alice  ", lines)
	if err != nil {
		t.Fatalf("SaveBill failed: %v", err)
	}

	if bill.ID == 0 {
		t.Error("expected bill ID to be assigned")
	}
	if bill.Customer != "Alice" {
		t.Errorf("expected trimmed customer, got %q", bill.Customer)
	}
	if bill.Date != "2026-10-14 09:30:00" {
		t.Errorf("unexpected date %q", bill.Date)
	}
	if !bill.Total.Equal(decimal.RequireFromString("1820")) {
		t.Errorf("Total = %s, want 1820", bill.Total)
	}

	detail, err := svc.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if len(detail.Items) != len(lines) {
		t.Fatalf("expected %d items, got %d", len(lines), len(detail.Items))
	}
	sum := decimal.Zero
	for _, item := range detail.Items {
		sum = sum.Add(item.Subtotal())
	}
	if !sum.Equal(detail.Bill.Total) {
		t.Errorf("stored total %s != sum of items %s", detail.Bill.Total, sum)
	}

	if got := testutil.ToFloat64(m.BillsSaved); got != 1 {
		t.Errorf("bills_saved_total = %v, want 1", got)
	}
}

func TestSaveBillRejections(t *testing.T) {
	tests := []struct {
		name     string
		customer string
		lines    []models.CartLine
		wantErr  error
	}{
		{"empty customer", "", []models.CartLine{line("Tablet", "300", 1)}, ErrCustomerRequired},
		{"blank customer", "   ", []models.CartLine{line("Tablet", "300", 1)}, ErrCustomerRequired},
		{"empty cart", "Alice", nil, ErrEmptyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupTestService(t)
			ctx := context.Background()

			_, err := svc.SaveBill(ctx, tt.customer, tt.lines)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SaveBill() error = %v, want %v", err, tt.wantErr)
			}

			bills, err := svc.ListBills(ctx)
			if err != nil {
				t.Fatalf("ListBills failed: %v", err)
			}
			if len(bills) != 0 {
				t.Errorf("expected no bills after rejection, got %d", len(bills))
			}
			if got := testutil.ToFloat64(m.BillsSaved); got != 0 {
				t.Errorf("bills_saved_total = %v, want 0", got)
			}
		})
	}
}

func TestLatestBill(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.LatestBill(ctx); !errors.Is(err, ErrNoBills) {
		t.Fatalf("expected ErrNoBills on empty store, got %v", err)
	}

	svc.SaveBill(ctx, "first", []models.CartLine{line("Tablet", "300", 1)})
	second, _ := svc.SaveBill(ctx, "second", []models.CartLine{line("Tablet", "300", 2)})

	latest, err := svc.LatestBill(ctx)
	if err != nil {
		t.Fatalf("LatestBill failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("LatestBill = %d, want %d", latest.ID, second.ID)
	}
}

func TestExportInvoice(t *testing.T) {
	svc, m := setupTestService(t)
	ctx := context.Background()

	bill, err := svc.SaveBill(ctx, "Bob", []models.CartLine{line("Smartwatch", "150.00", 2)})
	if err != nil {
		t.Fatalf("SaveBill failed: %v", err)
	}

	first, err := svc.ExportInvoice(ctx, bill.ID)
	if err != nil {
		t.Fatalf("ExportInvoice failed: %v", err)
	}
	second, err := svc.ExportInvoice(ctx, bill.ID)
	if err != nil {
		t.Fatalf("second ExportInvoice failed: %v", err)
	}
	if first != second || first != svc.InvoicePath(bill.ID) {
		t.Errorf("expected deterministic path, got %q, %q, %q", first, second, svc.InvoicePath(bill.ID))
	}
	if _, err := os.Stat(first); err != nil {
		t.Errorf("invoice file missing: %v", err)
	}
	if got := testutil.ToFloat64(m.InvoicesRendered); got != 2 {
		t.Errorf("invoices_rendered_total = %v, want 2", got)
	}
}

func TestExportInvoiceUnknownBill(t *testing.T) {
	svc, _ := setupTestService(t)
	_, err := svc.ExportInvoice(context.Background(), 42)
	if !errors.Is(err, storage.ErrBillNotFound) {
		t.Errorf("expected ErrBillNotFound, got %v", err)
	}
}
