// Package server exposes bill history and invoices over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/billdesk/internal/catalog"
	"github.com/mmynk/billdesk/internal/metrics"
	"github.com/mmynk/billdesk/internal/middleware"
	"github.com/mmynk/billdesk/internal/models"
	"github.com/mmynk/billdesk/internal/service"
	"github.com/mmynk/billdesk/internal/storage"
)

// BillJSON is the wire form of a bill.
type BillJSON struct {
	ID       int64  `json:"id"`
	Customer string `json:"customer"`
	Date     string `json:"date"`
	Total    string `json:"total"`
	// Display is the total formatted in the shop currency.
	Display string `json:"display"`
}

// ItemJSON is the wire form of a bill item.
type ItemJSON struct {
	Product  string `json:"product"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

// BillDetailJSON is a bill with its items.
type BillDetailJSON struct {
	BillJSON
	Items []ItemJSON `json:"items"`
}

// ProductJSON is the wire form of a catalog entry.
type ProductJSON struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type handler struct {
	svc *service.BillService
	// writeInvoice renders a bill's PDF; svc.WriteInvoice outside tests.
	writeInvoice func(ctx context.Context, billID int64, w io.Writer) error
}

// NewRouter builds the HTTP routes on top of svc.
func NewRouter(svc *service.BillService, m *metrics.Metrics) http.Handler {
	return newRouter(&handler{svc: svc, writeInvoice: svc.WriteInvoice}, m)
}

func newRouter(h *handler, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(m))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/bills", h.listBills)
		r.Get("/bills/{id}", h.getBill)
		r.Get("/bills/{id}/invoice.pdf", h.downloadInvoice)
	})
	return r
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products := catalog.Products()
	out := make([]ProductJSON, len(products))
	for i, p := range products {
		out[i] = ProductJSON{Name: p.Name, Price: p.Price.StringFixed(2)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.ListBills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bills")
		return
	}
	out := make([]BillJSON, len(bills))
	for i, b := range bills {
		out[i] = h.billJSON(b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getBill(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r)
	if !ok {
		return
	}
	detail, err := h.svc.GetBill(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	out := BillDetailJSON{BillJSON: h.billJSON(detail.Bill), Items: make([]ItemJSON, len(detail.Items))}
	for i, item := range detail.Items {
		out.Items[i] = ItemJSON{
			Product:  item.Product,
			Price:    item.Price.StringFixed(2),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) downloadInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r)
	if !ok {
		return
	}
	// Look the bill up first so a missing bill is a 404, not a half-written PDF.
	if _, err := h.svc.GetBill(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.writeInvoice(r.Context(), id, &buf); err != nil {
		slog.Error("Invoice download failed", "bill_id", id, "request_id", middleware.GetRequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"invoice_"+strconv.FormatInt(id, 10)+".pdf\"")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *handler) billJSON(b models.Bill) BillJSON {
	return BillJSON{
		ID:       b.ID,
		Customer: b.Customer,
		Date:     b.Date,
		Total:    b.Total.StringFixed(2),
		Display:  h.svc.Format(b.Total),
	}
}

func billID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrBillNotFound) {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
