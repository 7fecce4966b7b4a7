package invoice

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
)

type UseCase interface {
	CreateInvoiceFromOrder(ctx context.Context, orderID model.OrderID, createdBy model.UserID, gen model.GenerationType) (*model.Invoice, error)
	CreateManualInvoice(ctx context.Context, input *dto.CreateManualInvoiceInput) (*model.Invoice, error)
	GetInvoice(ctx context.Context, id model.InvoiceID) (*model.Invoice, error)
	GetInvoiceByOrder(ctx context.Context, orderID model.OrderID) (*model.Invoice, error)
	ListInvoices(ctx context.Context, filters *dto.InvoiceFilters) ([]model.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, input *dto.UpdateInvoiceStatusInput) (*model.Invoice, error)
	LinkPODToInvoice(ctx context.Context, id model.InvoiceID, podID model.PODID) (*model.Invoice, error)
	DeleteInvoice(ctx context.Context, id model.InvoiceID) error
	GenerateAutomaticInvoices(ctx context.Context, createdBy model.UserID) (*dto.GenerationReport, error)
	GetInvoiceStats(ctx context.Context) (*dto.InvoiceStats, error)
}
