package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/metrics"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	orderDto "github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderReader is the slice of the order repository invoicing reads from.
type OrderReader interface {
	FindByID(ctx context.Context, id model.OrderID) (*model.Order, error)
	FindAll(ctx context.Context, filters *orderDto.OrderFilters) ([]model.Order, error)
}

// ProductFinder resolves catalog names for manual invoice lines.
type ProductFinder interface {
	FindProduct(ctx context.Context, id model.ProductID) (*model.Product, error)
}

type invoiceUseCase struct {
	repo     invoice.Repository
	orders   OrderReader
	products ProductFinder
	metrics  *metrics.FulfillmentMetrics
	logger   logger.ZapLogger
	now      func() time.Time
}

// NewInvoiceUseCase wires the invoice service. m may be nil.
func NewInvoiceUseCase(repo invoice.Repository, orders OrderReader, products ProductFinder, m *metrics.FulfillmentMetrics, log logger.ZapLogger) invoice.UseCase {
	return &invoiceUseCase{
		repo:     repo,
		orders:   orders,
		products: products,
		metrics:  m,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *invoiceUseCase) CreateInvoiceFromOrder(ctx context.Context, orderID model.OrderID, createdBy model.UserID, gen model.GenerationType) (*model.Invoice, error) {
	if !gen.Valid() {
		return nil, apperror.InvalidInput("createInvoiceFromOrder", "unknown generation type "+string(gen))
	}

	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("createInvoiceFromOrder", "order", string(orderID))
	}

	existing, err := uc.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.DuplicateLink("createInvoiceFromOrder", "order", string(orderID))
	}

	inv := model.InvoiceFromOrder(*o, createdBy, gen, uc.now())
	if err := uc.repo.Create(ctx, &inv); err != nil {
		return nil, err
	}

	uc.logger.Info("invoice created from order",
		zap.String("invoice_id", string(inv.ID)),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("order_id", string(orderID)),
		zap.String("generation_type", string(gen)),
	)
	return &inv, nil
}

func (uc *invoiceUseCase) CreateManualInvoice(ctx context.Context, input *dto.CreateManualInvoiceInput) (*model.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.InvalidInput("createManualInvoice", "at least one item is required")
	}

	items := make([]model.InvoiceItem, len(input.Items))
	for i, in := range input.Items {
		item := model.InvoiceItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		}
		if uc.products != nil {
			p, err := uc.products.FindProduct(ctx, in.ProductID)
			if err != nil {
				return nil, err
			}
			if p != nil {
				item.ProductName = p.Name
				item.Category = p.Category
			}
		}
		items[i] = item
	}

	inv := model.NewDraftInvoice(input.StoreID, input.SellerID, input.CreatedBy, model.GenerationManual, items, uc.now())
	inv.Notes = input.Notes

	if err := uc.repo.Create(ctx, &inv); err != nil {
		return nil, err
	}

	uc.logger.Info("manual invoice created",
		zap.String("invoice_id", string(inv.ID)),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("total", inv.Total.StringFixed(2)),
	)
	return &inv, nil
}

func (uc *invoiceUseCase) GetInvoice(ctx context.Context, id model.InvoiceID) (*model.Invoice, error) {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NotFound("getInvoice", "invoice", string(id))
	}
	return inv, nil
}

func (uc *invoiceUseCase) GetInvoiceByOrder(ctx context.Context, orderID model.OrderID) (*model.Invoice, error) {
	inv, err := uc.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NotFound("getInvoiceByOrder", "order", string(orderID))
	}
	return inv, nil
}

func (uc *invoiceUseCase) ListInvoices(ctx context.Context, filters *dto.InvoiceFilters) ([]model.Invoice, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *invoiceUseCase) UpdateInvoiceStatus(ctx context.Context, input *dto.UpdateInvoiceStatusInput) (*model.Invoice, error) {
	if !input.Status.Valid() {
		return nil, apperror.InvalidInput("updateInvoiceStatus", "unknown invoice status "+string(input.Status))
	}

	inv, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NotFound("updateInvoiceStatus", "invoice", string(input.ID))
	}

	now := uc.now()
	inv.Status = input.Status
	if input.Status == model.InvoiceStatusPaid {
		paid := now
		if input.PaidDate != nil {
			paid = *input.PaidDate
		}
		inv.PaidDate = &paid
	} else {
		inv.PaidDate = nil
	}
	inv.UpdatedAt = now

	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// LinkPODToInvoice sets the invoice's POD reference. An empty podID clears it.
func (uc *invoiceUseCase) LinkPODToInvoice(ctx context.Context, id model.InvoiceID, podID model.PODID) (*model.Invoice, error) {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NotFound("linkPODToInvoice", "invoice", string(id))
	}

	inv.PODID = podID
	inv.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (uc *invoiceUseCase) DeleteInvoice(ctx context.Context, id model.InvoiceID) error {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return apperror.NotFound("deleteInvoice", "invoice", string(id))
	}
	if inv.PODID != "" {
		return apperror.ReferentialIntegrity("deleteInvoice", "invoice", string(id))
	}
	return uc.repo.Delete(ctx, id)
}

// GenerateAutomaticInvoices invoices every completed order that has none.
// A failure on one order is recorded in the report and the batch continues.
func (uc *invoiceUseCase) GenerateAutomaticInvoices(ctx context.Context, createdBy model.UserID) (*dto.GenerationReport, error) {
	completed, err := uc.orders.FindAll(ctx, &orderDto.OrderFilters{Status: model.OrderStatusCompleted})
	if err != nil {
		return nil, err
	}
	invoices, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	invoiced := make(map[model.OrderID]struct{}, len(invoices))
	for _, inv := range invoices {
		if inv.OrderID != "" {
			invoiced[inv.OrderID] = struct{}{}
		}
	}

	report := &dto.GenerationReport{Outcomes: []dto.GenerationOutcome{}}
	for _, o := range completed {
		if _, ok := invoiced[o.ID]; ok {
			continue
		}

		inv, err := uc.CreateInvoiceFromOrder(ctx, o.ID, createdBy, model.GenerationAutomatic)
		uc.metrics.ObserveInvoiceGeneration(err)
		if err != nil {
			uc.logger.Error("automatic invoice generation failed",
				zap.String("order_id", string(o.ID)),
				zap.Error(err),
			)
		}
		report.Outcomes = append(report.Outcomes, dto.GenerationOutcome{OrderID: o.ID, Invoice: inv, Err: err})
	}

	uc.logger.Info("automatic invoice generation finished",
		zap.Int("created", report.Succeeded()),
		zap.Int("failed", report.Failed()),
	)
	return report, nil
}

func (uc *invoiceUseCase) GetInvoiceStats(ctx context.Context) (*dto.InvoiceStats, error) {
	invoices, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &dto.InvoiceStats{
		TotalInvoices: len(invoices),
		TotalAmount:   decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for _, inv := range invoices {
		switch inv.Status {
		case model.InvoiceStatusDraft:
			stats.DraftInvoices++
		case model.InvoiceStatusSent:
			stats.SentInvoices++
		case model.InvoiceStatusPaid:
			stats.PaidInvoices++
		}
		stats.TotalAmount = stats.TotalAmount.Add(inv.Total)
		if inv.Status.Pending() {
			stats.PendingAmount = stats.PendingAmount.Add(inv.Total)
		}
	}
	return stats, nil
}
