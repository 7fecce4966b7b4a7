package pod

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod/dto"
)

type UseCase interface {
	CreatePODFromInvoice(ctx context.Context, input *dto.CreatePODFromInvoiceInput) (*model.POD, error)
	CreateManualPOD(ctx context.Context, input *dto.CreateManualPODInput) (*model.POD, error)
	GetPOD(ctx context.Context, id model.PODID) (*model.POD, error)
	GetPODByInvoice(ctx context.Context, invoiceID model.InvoiceID) (*model.POD, error)
	ListPODs(ctx context.Context, filters *dto.PODFilters) ([]model.POD, error)
	ValidatePOD(ctx context.Context, id model.PODID, validatedBy model.UserID) (*model.POD, error)
	InvalidatePOD(ctx context.Context, id model.PODID) (*model.POD, error)
	UpdatePODStatus(ctx context.Context, id model.PODID, status model.PODStatus) (*model.POD, error)
	DeletePOD(ctx context.Context, id model.PODID) error

	// CheckIntegrity scans orders, invoices and PODs for broken links. It is read-only.
	CheckIntegrity(ctx context.Context) ([]model.IntegrityIssue, error)
	// AutoFixIntegrityIssues invoices completed orders that have none. Other
	// issue types are detected only.
	AutoFixIntegrityIssues(ctx context.Context, userID model.UserID) (*dto.RepairReport, error)
}
