package pod

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod/dto"
)

type Repository interface {
	Create(ctx context.Context, pod *model.POD) error
	FindByID(ctx context.Context, id model.PODID) (*model.POD, error)
	FindByInvoiceID(ctx context.Context, invoiceID model.InvoiceID) (*model.POD, error)
	FindAll(ctx context.Context, filters *dto.PODFilters) ([]model.POD, error)
	Update(ctx context.Context, pod *model.POD) error
	Delete(ctx context.Context, id model.PODID) error
}
