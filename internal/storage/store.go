// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billdesk/internal/models"
)

// ErrBillNotFound is returned (wrapped) when a bill ID has no row.
var ErrBillNotFound = errors.New("bill not found")

// Store defines the interface for bill storage operations.
// Bills are write-once: there is no update or delete.
type Store interface {
	// AddBill persists a bill and all of its items atomically and returns
	// the assigned ID. bill.ID and every item's BillID are populated.
	AddBill(ctx context.Context, bill *models.Bill, items []models.BillItem) (int64, error)

	// ListBills returns every bill, most recent (highest ID) first.
	ListBills(ctx context.Context) ([]models.Bill, error)

	// GetBill retrieves one bill by ID.
	// Returns an error wrapping ErrBillNotFound if there is no such bill.
	GetBill(ctx context.Context, billID int64) (*models.Bill, error)

	// ListBillItems returns the items of a bill in the order they were saved.
	ListBillItems(ctx context.Context, billID int64) ([]models.BillItem, error)

	// Close releases any resources held by the store.
	Close() error
}
