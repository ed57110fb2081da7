// Package renderer turns bills, carts and the catalog into markdown for the
// terminal.
package renderer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/models"
)

// Formatter formats an amount in the shop currency.
type Formatter func(decimal.Decimal) string

// Bills renders the bill history as a table, in the order given.
func Bills(bills []models.Bill, format Formatter) string {
	var b strings.Builder
	b.WriteString("# Previous Bills\n\n")
	if len(bills) == 0 {
		b.WriteString("_No bills yet._\n")
		return b.String()
	}
	b.WriteString("| ID | Customer | Date | Total |\n")
	b.WriteString("|---:|:---|:---|---:|\n")
	for _, bill := range bills {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", bill.ID, escape(bill.Customer), bill.Date, format(bill.Total))
	}
	return b.String()
}

// Bill renders one bill with its line items.
func Bill(bill models.Bill, items []models.BillItem, format Formatter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Bill #%d\n\n", bill.ID)
	fmt.Fprintf(&b, "- **Customer:** %s\n", escape(bill.Customer))
	fmt.Fprintf(&b, "- **Date:** %s\n\n", bill.Date)
	b.WriteString("| Product | Price | Quantity | Subtotal |\n")
	b.WriteString("|:---|---:|---:|---:|\n")
	for _, item := range items {
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", escape(item.Product), format(item.Price), item.Quantity, format(item.Subtotal()))
	}
	fmt.Fprintf(&b, "\n**Grand Total: %s**\n", format(bill.Total))
	return b.String()
}

// Cart renders the pending cart lines, numbered from 1.
func Cart(lines []models.CartLine, total decimal.Decimal, format Formatter) string {
	var b strings.Builder
	b.WriteString("# Shopping Cart\n\n")
	if len(lines) == 0 {
		b.WriteString("_Cart is empty._\n")
		return b.String()
	}
	b.WriteString("| # | Product | Quantity | Subtotal |\n")
	b.WriteString("|---:|:---|---:|---:|\n")
	for i, l := range lines {
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n", i+1, escape(l.Product), l.Quantity, format(l.Subtotal()))
	}
	fmt.Fprintf(&b, "\n**Total: %s**\n", format(total))
	return b.String()
}

// Catalog renders the product list.
func Catalog(products []models.Product, format Formatter) string {
	var b strings.Builder
	b.WriteString("# Products\n\n")
	b.WriteString("| Product | Price |\n")
	b.WriteString("|:---|---:|\n")
	for _, p := range products {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Name, format(p.Price))
	}
	return b.String()
}

// escape keeps user text from breaking table cells.
func escape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ", "*", `\*`, "_", `\_`).Replace(s)
}
