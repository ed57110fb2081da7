package models

import "github.com/shopspring/decimal"

// Product is an entry of the shop catalog.
type Product struct {
	Name  string
	Price decimal.Decimal
}
