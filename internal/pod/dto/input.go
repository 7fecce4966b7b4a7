package dto

import "github.com/fekuna/omnipos-fulfillment-service/internal/model"

type CreatePODFromInvoiceInput struct {
	InvoiceID  model.InvoiceID
	ImageURL   string
	UploadedBy model.UserID
	Notes      string
}

type CreateManualPODInput struct {
	PONumber      string
	SalespersonID model.UserID
	StoreID       model.StoreID
	ImageURL      string
	UploadedBy    model.UserID
	Notes         string
}
