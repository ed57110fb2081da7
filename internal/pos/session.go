package pos

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mmynk/billdesk/internal/models"
	"github.com/mmynk/billdesk/internal/service"
	"github.com/mmynk/billdesk/internal/viewer"
)

// State is where the session stands in the checkout flow.
type State int

const (
	StateEmpty State = iota
	StateItemsAdded
	StateSaved
	StateExported
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateItemsAdded:
		return "items added"
	case StateSaved:
		return "saved"
	case StateExported:
		return "exported"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is one user's checkout session: a cart and the bill selected for
// export. It is not safe for concurrent use.
type Session struct {
	svc    *service.BillService
	viewer viewer.Viewer

	cart     Cart
	selected *models.Bill
	exported bool
}

// NewSession creates an empty session.
func NewSession(svc *service.BillService, v viewer.Viewer) *Session {
	return &Session{svc: svc, viewer: v}
}

// Cart exposes the session cart.
func (s *Session) Cart() *Cart { return &s.cart }

// Selected returns the bill that Export and Open act on, or nil when the most
// recent bill would be used.
func (s *Session) Selected() *models.Bill { return s.selected }

// State reports the current checkout state.
func (s *Session) State() State {
	switch {
	case s.cart.Len() > 0:
		return StateItemsAdded
	case s.exported:
		return StateExported
	case s.selected != nil:
		return StateSaved
	default:
		return StateEmpty
	}
}

// AddToCart validates and adds a product line.
func (s *Session) AddToCart(product, qtyText string) (models.CartLine, error) {
	return s.cart.Add(product, qtyText)
}

// Save turns the cart into a bill. On success the cart is cleared and the new
// bill becomes the selected bill. On failure the cart is kept as is.
func (s *Session) Save(ctx context.Context, customer string) (*models.Bill, error) {
	bill, err := s.svc.SaveBill(ctx, customer, s.cart.Lines())
	if err != nil {
		return nil, err
	}
	s.cart.Clear()
	s.selected = bill
	s.exported = false
	return bill, nil
}

// Select makes a historical bill the target of Export and Open.
func (s *Session) Select(ctx context.Context, billID int64) (*service.BillDetail, error) {
	detail, err := s.svc.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	bill := detail.Bill
	s.selected = &bill
	s.exported = false
	return detail, nil
}

// Unselect falls back to the most recent bill for Export and Open.
func (s *Session) Unselect() {
	s.selected = nil
	s.exported = false
}

// History lists all bills, most recent first.
func (s *Session) History(ctx context.Context) ([]models.Bill, error) {
	return s.svc.ListBills(ctx)
}

// Export renders the invoice of the selected bill, or of the most recent
// bill when nothing is selected.
func (s *Session) Export(ctx context.Context) (string, error) {
	bill, err := s.current(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.svc.ExportInvoice(ctx, bill.ID)
	if err != nil {
		return "", err
	}
	s.exported = true
	return path, nil
}

// Open shows the invoice of the current bill in the viewer, rendering it
// first if the file does not exist yet.
func (s *Session) Open(ctx context.Context) (string, error) {
	bill, err := s.current(ctx)
	if err != nil {
		return "", err
	}

	path := s.svc.InvoicePath(bill.ID)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Invoice missing, rendering before open", "bill_id", bill.ID)
		if path, err = s.svc.ExportInvoice(ctx, bill.ID); err != nil {
			return "", err
		}
		s.exported = true
	} else if err != nil {
		return "", fmt.Errorf("failed to check invoice %s: %w", path, err)
	}

	if err := s.viewer.Open(path); err != nil {
		return path, fmt.Errorf("could not open invoice: %w", err)
	}
	return path, nil
}

func (s *Session) current(ctx context.Context) (*models.Bill, error) {
	if s.selected != nil {
		return s.selected, nil
	}
	return s.svc.LatestBill(ctx)
}
