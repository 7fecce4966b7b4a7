package model

import "time"

type PODStatus string

const (
	PODStatusPending   PODStatus = "pending"
	PODStatusCompleted PODStatus = "completed"
)

func (s PODStatus) Valid() bool {
	return s == PODStatusPending || s == PODStatusCompleted
}

// POD is a proof-of-delivery record. ImageURL is an opaque blob pointer.
type POD struct {
	ID            PODID      `json:"id"`
	PONumber      string     `json:"po_number"`
	SalespersonID UserID     `json:"salesperson_id"`
	StoreID       StoreID    `json:"store_id"`
	Status        PODStatus  `json:"status"`
	OrderID       OrderID    `json:"order_id"`
	InvoiceID     InvoiceID  `json:"invoice_id"`
	ImageURL      string     `json:"image_url"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	UploadedBy    UserID     `json:"uploaded_by"`
	Notes         string     `json:"notes,omitempty"`
	IsValidated   bool       `json:"is_validated"`
	ValidatedAt   *time.Time `json:"validated_at,omitempty"`
	ValidatedBy   UserID     `json:"validated_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsOrphan reports whether the POD links to neither an order nor an invoice.
func (p POD) IsOrphan() bool {
	return p.OrderID == "" && p.InvoiceID == ""
}
