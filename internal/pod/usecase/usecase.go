package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/cache"
	invoiceDto "github.com/fekuna/omnipos-fulfillment-service/internal/invoice/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/metrics"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	orderDto "github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod/dto"
	"go.uber.org/zap"
)

// OrderReader is satisfied by the order repository.
type OrderReader interface {
	FindByID(ctx context.Context, id model.OrderID) (*model.Order, error)
	FindAll(ctx context.Context, filters *orderDto.OrderFilters) ([]model.Order, error)
}

// InvoiceStore is the part of the invoice repository PODs and repairs write through.
type InvoiceStore interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, id model.InvoiceID) (*model.Invoice, error)
	FindByPODID(ctx context.Context, podID model.PODID) ([]model.Invoice, error)
	FindAll(ctx context.Context, filters *invoiceDto.InvoiceFilters) ([]model.Invoice, error)
	Update(ctx context.Context, invoice *model.Invoice) error
}

type Config struct {
	LockTTL time.Duration
}

type podUseCase struct {
	repo     pod.Repository
	orders   OrderReader
	invoices InvoiceStore
	locker   cache.Locker
	lockTTL  time.Duration
	metrics  *metrics.FulfillmentMetrics
	logger   logger.ZapLogger
	now      func() time.Time
}

// NewPODUseCase wires the POD service and the integrity engine. m may be nil.
func NewPODUseCase(repo pod.Repository, orders OrderReader, invoices InvoiceStore, locker cache.Locker, cfg Config, m *metrics.FulfillmentMetrics, log logger.ZapLogger) pod.UseCase {
	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &podUseCase{
		repo:     repo,
		orders:   orders,
		invoices: invoices,
		locker:   locker,
		lockTTL:  ttl,
		metrics:  m,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func invoiceLockKey(id model.InvoiceID) string {
	return "lock:invoice:" + string(id)
}

func statusForImage(imageURL string) model.PODStatus {
	if imageURL != "" {
		return model.PODStatusCompleted
	}
	return model.PODStatusPending
}

// CreatePODFromInvoice writes the POD and then the invoice back-link while
// holding the invoice's lock.
func (uc *podUseCase) CreatePODFromInvoice(ctx context.Context, input *dto.CreatePODFromInvoiceInput) (*model.POD, error) {
	var created *model.POD

	err := cache.WithLock(ctx, uc.locker, invoiceLockKey(input.InvoiceID), uc.lockTTL, func() error {
		inv, err := uc.invoices.FindByID(ctx, input.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperror.NotFound("createPODFromInvoice", "invoice", string(input.InvoiceID))
		}

		existing, err := uc.repo.FindByInvoiceID(ctx, inv.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.DuplicateLink("createPODFromInvoice", "invoice", string(inv.ID))
		}

		poNumber := inv.InvoiceNumber
		if inv.OrderID != "" {
			o, err := uc.orders.FindByID(ctx, inv.OrderID)
			if err != nil {
				return err
			}
			if o != nil {
				poNumber = o.PONumber
			}
		}

		now := uc.now()
		p := &model.POD{
			ID:            model.NewPODID(),
			PONumber:      poNumber,
			SalespersonID: inv.SellerID,
			StoreID:       inv.StoreID,
			Status:        statusForImage(input.ImageURL),
			OrderID:       inv.OrderID,
			InvoiceID:     inv.ID,
			ImageURL:      input.ImageURL,
			UploadedAt:    now,
			UploadedBy:    input.UploadedBy,
			Notes:         input.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.repo.Create(ctx, p); err != nil {
			return err
		}

		inv.PODID = p.ID
		inv.UpdatedAt = now
		if err := uc.invoices.Update(ctx, inv); err != nil {
			uc.logger.Error("pod created but invoice back-link failed",
				zap.String("pod_id", string(p.ID)),
				zap.String("invoice_id", string(inv.ID)),
				zap.Error(err),
			)
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("pod created from invoice",
		zap.String("pod_id", string(created.ID)),
		zap.String("invoice_id", string(created.InvoiceID)),
	)
	return created, nil
}

func (uc *podUseCase) CreateManualPOD(ctx context.Context, input *dto.CreateManualPODInput) (*model.POD, error) {
	now := uc.now()
	p := &model.POD{
		ID:            model.NewPODID(),
		PONumber:      input.PONumber,
		SalespersonID: input.SalespersonID,
		StoreID:       input.StoreID,
		Status:        statusForImage(input.ImageURL),
		ImageURL:      input.ImageURL,
		UploadedAt:    now,
		UploadedBy:    input.UploadedBy,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("manual pod created", zap.String("pod_id", string(p.ID)), zap.String("po_number", p.PONumber))
	return p, nil
}

func (uc *podUseCase) GetPOD(ctx context.Context, id model.PODID) (*model.POD, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("getPOD", "pod", string(id))
	}
	return p, nil
}

func (uc *podUseCase) GetPODByInvoice(ctx context.Context, invoiceID model.InvoiceID) (*model.POD, error) {
	p, err := uc.repo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("getPODByInvoice", "invoice", string(invoiceID))
	}
	return p, nil
}

func (uc *podUseCase) ListPODs(ctx context.Context, filters *dto.PODFilters) ([]model.POD, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *podUseCase) mutate(ctx context.Context, op string, id model.PODID, fn func(p *model.POD, now time.Time)) (*model.POD, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound(op, "pod", string(id))
	}

	now := uc.now()
	fn(p, now)
	p.UpdatedAt = now

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *podUseCase) ValidatePOD(ctx context.Context, id model.PODID, validatedBy model.UserID) (*model.POD, error) {
	return uc.mutate(ctx, "validatePOD", id, func(p *model.POD, now time.Time) {
		p.IsValidated = true
		p.ValidatedAt = &now
		p.ValidatedBy = validatedBy
	})
}

func (uc *podUseCase) InvalidatePOD(ctx context.Context, id model.PODID) (*model.POD, error) {
	return uc.mutate(ctx, "invalidatePOD", id, func(p *model.POD, _ time.Time) {
		p.IsValidated = false
		p.ValidatedAt = nil
		p.ValidatedBy = ""
	})
}

func (uc *podUseCase) UpdatePODStatus(ctx context.Context, id model.PODID, status model.PODStatus) (*model.POD, error) {
	if !status.Valid() {
		return nil, apperror.InvalidInput("updatePODStatus", "unknown pod status "+string(status))
	}
	return uc.mutate(ctx, "updatePODStatus", id, func(p *model.POD, _ time.Time) {
		p.Status = status
	})
}

// DeletePOD clears every invoice back-link naming this POD before removing
// it. The POD's own invoice keeps a reference to some other POD untouched.
func (uc *podUseCase) DeletePOD(ctx context.Context, id model.PODID) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.NotFound("deletePOD", "pod", string(id))
	}

	refs, err := uc.invoices.FindByPODID(ctx, id)
	if err != nil {
		return err
	}
	lockIDs := make([]model.InvoiceID, 0, len(refs)+1)
	if p.InvoiceID != "" {
		lockIDs = append(lockIDs, p.InvoiceID)
	}
	for _, inv := range refs {
		lockIDs = append(lockIDs, inv.ID)
	}
	slices.Sort(lockIDs)
	lockIDs = slices.Compact(lockIDs)

	return uc.withInvoiceLocks(ctx, lockIDs, func() error {
		refs, err := uc.invoices.FindByPODID(ctx, id)
		if err != nil {
			return err
		}
		for i := range refs {
			refs[i].PODID = ""
			refs[i].UpdatedAt = uc.now()
			if err := uc.invoices.Update(ctx, &refs[i]); err != nil {
				return err
			}
		}
		return uc.repo.Delete(ctx, id)
	})
}

// withInvoiceLocks holds the locks for ids, acquired in the given order, while fn runs.
func (uc *podUseCase) withInvoiceLocks(ctx context.Context, ids []model.InvoiceID, fn func() error) error {
	if len(ids) == 0 {
		return fn()
	}
	return cache.WithLock(ctx, uc.locker, invoiceLockKey(ids[0]), uc.lockTTL, func() error {
		return uc.withInvoiceLocks(ctx, ids[1:], fn)
	})
}
