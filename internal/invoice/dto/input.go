package dto

import (
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type InvoiceItemInput struct {
	ProductID model.ProductID
	Quantity  int
	UnitPrice decimal.Decimal
}

type CreateManualInvoiceInput struct {
	StoreID   model.StoreID
	SellerID  model.UserID
	Items     []InvoiceItemInput
	CreatedBy model.UserID
	Notes     string
}

type UpdateInvoiceStatusInput struct {
	ID       model.InvoiceID
	Status   model.InvoiceStatus
	PaidDate *time.Time // Nil stamps the current time when marking paid
}
