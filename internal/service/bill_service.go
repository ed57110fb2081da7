package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/calculator"
	"github.com/mmynk/billdesk/internal/invoice"
	"github.com/mmynk/billdesk/internal/metrics"
	"github.com/mmynk/billdesk/internal/models"
	"github.com/mmynk/billdesk/internal/storage"
)

var (
	ErrCustomerRequired = errors.New("customer name is required")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoBills          = errors.New("no bills found")
)

// BillService saves carts as bills, reads bill history and renders invoices.
type BillService struct {
	store    storage.Store
	renderer *invoice.Renderer
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store, renderer *invoice.Renderer, m *metrics.Metrics) *BillService {
	return &BillService{
		store:    store,
		renderer: renderer,
		metrics:  m,
		now:      time.Now,
	}
}

// BillDetail is a bill together with its items.
type BillDetail struct {
	Bill  models.Bill
	Items []models.BillItem
}

// SaveBill persists lines as a new bill for customer.
// The customer name is trimmed; an empty name or an empty cart is rejected
// before the store is touched.
func (s *BillService) SaveBill(ctx context.Context, customer string, lines []models.CartLine) (*models.Bill, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		s.metrics.BillsRejected.WithLabelValues("customer_required").Inc()
		return nil, ErrCustomerRequired
	}
	if len(lines) == 0 {
		s.metrics.BillsRejected.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	total, err := calculator.BillTotal(lines)
	if err != nil {
		s.metrics.BillsRejected.WithLabelValues("invalid_line").Inc()
		return nil, err
	}

	bill := &models.Bill{
		Customer: customer,
		Date:     s.now().Format(models.DateLayout),
		Total:    total,
	}
	items := make([]models.BillItem, len(lines))
	for i, line := range lines {
		slog.Debug("Bill line",
			"index", i+1,
			"product", line.Product,
			"price", line.Price.String(),
			"quantity", line.Quantity,
		)
		items[i] = line.Item(0)
	}

	if _, err := s.store.AddBill(ctx, bill, items); err != nil {
		slog.Error("SaveBill failed", "customer", customer, "error", err)
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}
	s.metrics.BillsSaved.Inc()

	slog.Info("Bill saved",
		"bill_id", bill.ID,
		"customer", bill.Customer,
		"items_count", len(items),
		"total", bill.Total.StringFixed(2),
	)
	return bill, nil
}

// ListBills returns the bill history, most recent first.
func (s *BillService) ListBills(ctx context.Context) ([]models.Bill, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		slog.Error("ListBills failed", "error", err)
		return nil, err
	}
	slog.Debug("ListBills successful", "count", len(bills))
	return bills, nil
}

// LatestBill returns the most recent bill, or ErrNoBills.
func (s *BillService) LatestBill(ctx context.Context) (*models.Bill, error) {
	bills, err := s.ListBills(ctx)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, ErrNoBills
	}
	return &bills[0], nil
}

// GetBill returns a bill and its items.
func (s *BillService) GetBill(ctx context.Context, billID int64) (*BillDetail, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		if !errors.Is(err, storage.ErrBillNotFound) {
			slog.Error("GetBill failed", "bill_id", billID, "error", err)
		}
		return nil, err
	}
	items, err := s.store.ListBillItems(ctx, billID)
	if err != nil {
		slog.Error("GetBill items failed", "bill_id", billID, "error", err)
		return nil, err
	}
	return &BillDetail{Bill: *bill, Items: items}, nil
}

// InvoicePath returns where the invoice of billID is (or would be) written.
func (s *BillService) InvoicePath(billID int64) string {
	return s.renderer.Path(billID)
}

// ExportInvoice renders the invoice of billID to disk and returns its path.
func (s *BillService) ExportInvoice(ctx context.Context, billID int64) (string, error) {
	detail, err := s.GetBill(ctx, billID)
	if err != nil {
		return "", err
	}
	path, err := s.renderer.Render(detail.Bill, detail.Items)
	if err != nil {
		slog.Error("ExportInvoice failed", "bill_id", billID, "error", err)
		return "", err
	}
	s.metrics.InvoicesRendered.Inc()
	slog.Info("Invoice exported", "bill_id", billID, "path", path)
	return path, nil
}

// WriteInvoice renders the invoice of billID to w without touching disk.
func (s *BillService) WriteInvoice(ctx context.Context, billID int64, w io.Writer) error {
	detail, err := s.GetBill(ctx, billID)
	if err != nil {
		return err
	}
	if err := s.renderer.RenderTo(w, detail.Bill, detail.Items); err != nil {
		slog.Error("WriteInvoice failed", "bill_id", billID, "error", err)
		return err
	}
	s.metrics.InvoicesRendered.Inc()
	return nil
}

// Format formats an amount in the configured currency.
func (s *BillService) Format(amount decimal.Decimal) string {
	return s.renderer.Format(amount)
}
