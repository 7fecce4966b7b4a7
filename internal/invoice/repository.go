package invoice

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id model.InvoiceID) (*model.Invoice, error)
	FindByOrderID(ctx context.Context, orderID model.OrderID) (*model.Invoice, error)
	FindByPODID(ctx context.Context, podID model.PODID) ([]model.Invoice, error)
	FindAll(ctx context.Context, filters *dto.InvoiceFilters) ([]model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id model.InvoiceID) error
}
