package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusCompleted
}

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusFulfilled ItemStatus = "fulfilled"
	ItemStatusPartial   ItemStatus = "partial"
	ItemStatusCancelled ItemStatus = "cancelled"
)

type OrderItem struct {
	ProductID ProductID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Status    ItemStatus      `json:"status"`
}

type Order struct {
	ID            OrderID         `json:"id"`
	PONumber      string          `json:"po_number"`
	SalespersonID UserID          `json:"salesperson_id"`
	StoreID       StoreID         `json:"store_id"`
	PlanogramID   PlanogramID     `json:"planogram_id,omitempty"`
	Status        OrderStatus     `json:"status"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// SetItems replaces the item list, recomputing every line subtotal and the
// order subtotal and total. Items without a status start as pending.
func (o *Order) SetItems(items []OrderItem) {
	subtotal := decimal.Zero
	out := make([]OrderItem, len(items))
	for i, item := range items {
		item.Subtotal = LineSubtotal(item.Quantity, item.UnitPrice)
		if item.Status == "" {
			item.Status = ItemStatusPending
		}
		subtotal = subtotal.Add(item.Subtotal)
		out[i] = item
	}
	o.Items = out
	o.Subtotal = subtotal
	o.Total = subtotal
}

func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
