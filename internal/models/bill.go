package models

import "github.com/shopspring/decimal"

// DateLayout is the text layout of Bill.Date.
const DateLayout = "2006-01-02 15:04:05"

// Bill represents a saved sale.
type Bill struct {
	// ID is the surrogate key assigned by the store on insert.
	ID int64

	// Customer is the name entered at checkout.
	Customer string

	// Date is the local timestamp of the sale, formatted with DateLayout.
	Date string

	// Total is the sum of price × quantity over the bill's items, computed once
	// at save time and never recomputed.
	Total decimal.Decimal
}

// BillItem represents one product line of a bill.
type BillItem struct {
	// BillID is the bill this item belongs to.
	BillID int64

	// Product is the catalog name of the product sold.
	Product string

	// Price is the unit price at the time of sale.
	Price decimal.Decimal

	// Quantity is the number of units sold. Always positive.
	Quantity int
}

// Subtotal returns Price × Quantity.
func (i BillItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartLine is a pending selection in the cart.
// It only lives in memory until the cart is saved as a bill.
type CartLine struct {
	Product  string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal returns Price × Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Item converts the line into a BillItem for the given bill.
func (l CartLine) Item(billID int64) BillItem {
	return BillItem{
		BillID:   billID,
		Product:  l.Product,
		Price:    l.Price,
		Quantity: l.Quantity,
	}
}
