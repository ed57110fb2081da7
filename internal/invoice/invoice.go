// Package invoice renders bills as fixed-layout A4 PDF invoices.
package invoice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billdesk/internal/models"
)

// Layout in points, origin at the top-left corner of the page.
const (
	titleX = 180.0
	titleY = 50.0

	metaX     = 50.0
	billIDY   = 100.0
	customerY = 120.0
	dateY     = 140.0

	headerY     = 180.0
	colProduct  = 50.0
	colPrice    = 300.0
	colQuantity = 400.0
	colSubtotal = 500.0

	firstRowY   = 200.0
	rowHeight   = 20.0
	bottomLimit = 100.0 // distance from the page bottom that forces a new page
	nextPageY   = 50.0
	totalGap    = 30.0
)

// Renderer draws invoices into a directory, one file per bill.
type Renderer struct {
	dir      string
	shopName string
	currency *money.Currency
	compress bool
}

// NewRenderer returns a Renderer writing into dir, titling every invoice
// "<shopName> Invoice" and formatting amounts in the given ISO 4217 currency.
func NewRenderer(dir, shopName, currencyCode string) (*Renderer, error) {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", currencyCode)
	}
	return &Renderer{
		dir:      dir,
		shopName: shopName,
		currency: cur,
		compress: true,
	}, nil
}

// Path returns the file an invoice for billID is written to.
// The name only depends on the bill ID, so exporting again overwrites it.
func (r *Renderer) Path(billID int64) string {
	return filepath.Join(r.dir, "invoice_"+strconv.FormatInt(billID, 10)+".pdf")
}

// Render writes the invoice for bill to Path(bill.ID) and returns that path.
func (r *Renderer) Render(bill models.Bill, items []models.BillItem) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}
	path := r.Path(bill.ID)
	pdf := r.build(bill, items)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write invoice %s: %w", path, err)
	}
	return path, nil
}

// RenderTo writes the invoice for bill to w.
func (r *Renderer) RenderTo(w io.Writer, bill models.Bill, items []models.BillItem) error {
	pdf := r.build(bill, items)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render invoice %d: %w", bill.ID, err)
	}
	return nil
}

// Format renders an amount in the renderer's currency, e.g. "$1,600.00".
// It works on the decimal digits directly, so amounts larger than an int64
// of minor units still print correctly.
func (r *Renderer) Format(amount decimal.Decimal) string {
	cur := r.currency
	digits := amount.Abs().StringFixed(int32(cur.Fraction))
	whole, frac, _ := strings.Cut(digits, ".")

	if cur.Thousand != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + cur.Thousand + whole[i:]
		}
	}
	if cur.Fraction > 0 {
		whole += cur.Decimal + frac
	}

	s := strings.Replace(cur.Template, "1", whole, 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)
	if amount.Round(int32(cur.Fraction)).IsNegative() {
		s = "-" + s
	}
	return s
}

func (r *Renderer) build(bill models.Bill, items []models.BillItem) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(fmt.Sprintf("Invoice %d", bill.ID), true)
	pdf.SetCreator("billdesk", true)
	if t, err := time.ParseInLocation(models.DateLayout, bill.Date, time.Local); err == nil {
		pdf.SetCreationDate(t)
	}
	pdf.SetAutoPageBreak(false, 0)

	// Core fonts are cp1252; customer names may not be.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(titleX, titleY, tr(r.shopName+" Invoice"))

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(metaX, billIDY, fmt.Sprintf("Bill ID: %d", bill.ID))
	pdf.Text(metaX, customerY, tr("Customer: "+bill.Customer))
	pdf.Text(metaX, dateY, tr("Date: "+bill.Date))

	pdf.Text(colProduct, headerY, "Product")
	pdf.Text(colPrice, headerY, "Price")
	pdf.Text(colQuantity, headerY, "Quantity")
	pdf.Text(colSubtotal, headerY, "Subtotal")

	y := firstRowY
	for _, item := range items {
		pdf.Text(colProduct, y, tr(item.Product))
		pdf.Text(colPrice, y, tr(r.Format(item.Price)))
		pdf.Text(colQuantity, y, strconv.Itoa(item.Quantity))
		pdf.Text(colSubtotal, y, tr(r.Format(item.Subtotal())))
		y += rowHeight

		if y > pageHeight-bottomLimit {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 12)
			y = nextPageY
		}
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(metaX, y+totalGap, tr("Grand Total: "+r.Format(bill.Total)))

	return pdf
}
