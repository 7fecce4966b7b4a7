package dto

import (
	"encoding/json"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type InvoiceFilters struct {
	Status         model.InvoiceStatus
	StoreID        model.StoreID
	GenerationType model.GenerationType
}

func (f *InvoiceFilters) Match(inv *model.Invoice) bool {
	if f == nil {
		return true
	}
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if f.StoreID != "" && inv.StoreID != f.StoreID {
		return false
	}
	if f.GenerationType != "" && inv.GenerationType != f.GenerationType {
		return false
	}
	return true
}

type InvoiceStats struct {
	TotalInvoices int             `json:"total_invoices"`
	DraftInvoices int             `json:"draft_invoices"`
	SentInvoices  int             `json:"sent_invoices"`
	PaidInvoices  int             `json:"paid_invoices"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// GenerationOutcome is the result of invoicing one completed order.
type GenerationOutcome struct {
	OrderID model.OrderID
	Invoice *model.Invoice
	Err     error
}

func (o GenerationOutcome) MarshalJSON() ([]byte, error) {
	out := struct {
		OrderID model.OrderID  `json:"order_id"`
		Invoice *model.Invoice `json:"invoice,omitempty"`
		Error   string         `json:"error,omitempty"`
	}{OrderID: o.OrderID, Invoice: o.Invoice}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}

type GenerationReport struct {
	Outcomes []GenerationOutcome `json:"outcomes"`
}

// Invoices returns the invoices created by the batch, in scan order.
func (r *GenerationReport) Invoices() []model.Invoice {
	out := make([]model.Invoice, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Invoice != nil {
			out = append(out, *o.Invoice)
		}
	}
	return out
}

func (r *GenerationReport) Succeeded() int {
	return len(r.Invoices())
}

func (r *GenerationReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
