package model

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Typed identifiers keep an order id from being passed where an invoice id is expected.
type (
	OrderID     string
	InvoiceID   string
	PODID       string
	ProductID   string
	StoreID     string
	UserID      string
	PlanogramID string
	IssueID     string
)

// newID returns a UUIDv7: a 48-bit epoch-millisecond prefix followed by random bits.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func NewOrderID() OrderID     { return OrderID(newID()) }
func NewInvoiceID() InvoiceID { return InvoiceID(newID()) }
func NewPODID() PODID         { return PODID(newID()) }
func NewIssueID() IssueID     { return IssueID(newID()) }

// NewPONumber formats a purchase-order number as PO-<epoch-ms>-<3-digit-random>.
func NewPONumber(now time.Time) string {
	return fmt.Sprintf("PO-%d-%03d", now.UnixMilli(), rand.IntN(1000))
}

// NewInvoiceNumber formats an invoice number as INV-<epoch-ms>-<3-digit-random>.
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%03d", now.UnixMilli(), rand.IntN(1000))
}
