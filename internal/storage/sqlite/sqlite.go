// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billdesk/internal/models"
	"github.com/mmynk/billdesk/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and initializes the schema.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so they go in the DSN
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer, single process: one connection, acquired per call.
	db.SetMaxOpenConns(1)

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dsn builds a SQLite URI for path. SQLite percent-decodes the path, so
// characters like '?' and '#' in file names survive.
func dsn(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "file:" + strings.Join(segments, "/") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddBill inserts the bill row and its item rows in one transaction.
func (s *SQLiteStore) AddBill(ctx context.Context, bill *models.Bill, items []models.BillItem) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO bills (customer, date, total) VALUES (?, ?, ?)",
		bill.Customer, bill.Date, bill.Total.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert bill: %w", err)
	}
	billID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read bill id: %w", err)
	}

	for i := range items {
		item := &items[i]
		_, err = tx.ExecContext(ctx,
			"INSERT INTO bill_items (bill_id, product, price, quantity) VALUES (?, ?, ?, ?)",
			billID, item.Product, item.Price.String(), item.Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert item %q: %w", item.Product, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	bill.ID = billID
	for i := range items {
		items[i].BillID = billID
	}
	return billID, nil
}

// ListBills returns all bills ordered newest first.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, customer, date, total FROM bills ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var bill models.Bill
		if err := rows.Scan(&bill.ID, &bill.Customer, &bill.Date, &bill.Total); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID int64) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, customer, date, total FROM bills WHERE id = ?",
		billID,
	).Scan(&bill.ID, &bill.Customer, &bill.Date, &bill.Total)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", storage.ErrBillNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListBillItems retrieves the items of a bill in insertion order.
// A bill without items (or an unknown bill) yields an empty slice.
func (s *SQLiteStore) ListBillItems(ctx context.Context, billID int64) ([]models.BillItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, product, price, quantity FROM bill_items WHERE bill_id = ? ORDER BY id",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.BillItem
	for rows.Next() {
		var item models.BillItem
		if err := rows.Scan(&item.BillID, &item.Product, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}
