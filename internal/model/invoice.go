package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Pending reports whether an invoice still counts towards outstanding receivables.
func (s InvoiceStatus) Pending() bool {
	return s != InvoiceStatusPaid && s != InvoiceStatusCancelled
}

type GenerationType string

const (
	GenerationManual    GenerationType = "manual"
	GenerationAutomatic GenerationType = "automatic"
)

func (g GenerationType) Valid() bool {
	return g == GenerationManual || g == GenerationAutomatic
}

type InvoiceItem struct {
	ProductID   ProductID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Category    string          `json:"category,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Invoice struct {
	ID             InvoiceID       `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	OrderID        OrderID         `json:"order_id"`
	StoreID        StoreID         `json:"store_id"`
	SellerID       UserID          `json:"seller_id"`
	Status         InvoiceStatus   `json:"status"`
	GenerationType GenerationType  `json:"generation_type"`
	Items          []InvoiceItem   `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Taxes          decimal.Decimal `json:"taxes"`
	Total          decimal.Decimal `json:"total"`
	IssueDate      time.Time       `json:"issue_date"`
	DueDate        time.Time       `json:"due_date"`
	PaidDate       *time.Time      `json:"paid_date,omitempty"`
	PODID          PODID           `json:"pod_id"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      UserID          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SetItems replaces the line items and derives subtotal, taxes and total.
func (inv *Invoice) SetItems(items []InvoiceItem) {
	subtotal := decimal.Zero
	out := make([]InvoiceItem, len(items))
	for i, item := range items {
		item.Subtotal = LineSubtotal(item.Quantity, item.UnitPrice)
		subtotal = subtotal.Add(item.Subtotal)
		out[i] = item
	}
	inv.Items = out
	inv.Subtotal = subtotal
	inv.Taxes = Taxes(subtotal)
	inv.Total = subtotal.Add(inv.Taxes)
}

// NewDraftInvoice builds a draft invoice issued at now with the fixed due-date term.
func NewDraftInvoice(store StoreID, seller UserID, createdBy UserID, gen GenerationType, items []InvoiceItem, now time.Time) Invoice {
	inv := Invoice{
		ID:             NewInvoiceID(),
		InvoiceNumber:  NewInvoiceNumber(now),
		StoreID:        store,
		SellerID:       seller,
		Status:         InvoiceStatusDraft,
		GenerationType: gen,
		IssueDate:      now,
		DueDate:        DueDate(now),
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	inv.SetItems(items)
	return inv
}

// InvoiceFromOrder derives a draft invoice from an order's stored items,
// preserving product, quantity and unit price.
func InvoiceFromOrder(order Order, createdBy UserID, gen GenerationType, now time.Time) Invoice {
	items := make([]InvoiceItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = InvoiceItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	inv := NewDraftInvoice(order.StoreID, order.SalespersonID, createdBy, gen, items, now)
	inv.OrderID = order.ID
	return inv
}
