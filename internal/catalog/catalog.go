// Package catalog holds the fixed list of products the shop sells.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/models"
)

var products = []models.Product{
	{Name: "Laptop", Price: decimal.RequireFromString("800.00")},
	{Name: "Smartphone", Price: decimal.RequireFromString("500.00")},
	{Name: "Tablet", Price: decimal.RequireFromString("300.00")},
	{Name: "Headphones", Price: decimal.RequireFromString("100.00")},
	{Name: "Smartwatch", Price: decimal.RequireFromString("150.00")},
	{Name: "Gaming Console", Price: decimal.RequireFromString("600.00")},
	{Name: "4K Monitor", Price: decimal.RequireFromString("400.00")},
	{Name: "Mechanical Keyboard", Price: decimal.RequireFromString("120.00")},
	{Name: "Wireless Mouse", Price: decimal.RequireFromString("40.00")},
	{Name: "External Hard Drive", Price: decimal.RequireFromString("120.00")},
}

// Products returns a copy of the catalog in display order.
func Products() []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

// Lookup finds a product by name, ignoring case and surrounding spaces.
func Lookup(name string) (models.Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Product{}, false
}
