package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceFinder is the slice of the invoice repository the deletion guard needs.
type InvoiceFinder interface {
	FindByOrderID(ctx context.Context, orderID model.OrderID) (*model.Invoice, error)
}

// EventPublisher publishes order lifecycle events. broker.KafkaProducer satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type orderUseCase struct {
	repo      order.Repository
	invoices  InvoiceFinder
	publisher EventPublisher
	logger    logger.ZapLogger
	now       func() time.Time
}

// NewOrderUseCase wires the order service. publisher may be nil.
func NewOrderUseCase(repo order.Repository, invoices InvoiceFinder, publisher EventPublisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		invoices:  invoices,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	now := uc.now()

	o := &model.Order{
		ID:            model.NewOrderID(),
		PONumber:      model.NewPONumber(now),
		SalespersonID: input.SalespersonID,
		StoreID:       input.StoreID,
		PlanogramID:   input.PlanogramID,
		Status:        model.OrderStatusPending,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.SetItems(dto.ToOrderItems(input.Items))

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("order_id", string(o.ID)),
		zap.String("po_number", o.PONumber),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("getOrder", "order", string(id))
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, input *dto.UpdateOrderStatusInput) (*model.Order, error) {
	if !input.Status.Valid() {
		return nil, apperror.InvalidInput("updateOrderStatus", "unknown order status "+string(input.Status))
	}

	o, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("updateOrderStatus", "order", string(input.ID))
	}

	now := uc.now()
	wasCompleted := o.IsCompleted()

	o.Status = input.Status
	switch {
	case input.Status != model.OrderStatusCompleted:
		o.CompletedAt = nil
	case input.CompletedAt != nil:
		completedAt := *input.CompletedAt
		o.CompletedAt = &completedAt
	case o.CompletedAt == nil:
		o.CompletedAt = &now
	}
	o.UpdatedAt = now

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if o.IsCompleted() && !wasCompleted {
		uc.publishCompleted(ctx, o)
	}
	return o, nil
}

// publishCompleted is best-effort: the status change is already persisted and
// the reconciliation engine reports completed orders that never got an invoice.
func (uc *orderUseCase) publishCompleted(ctx context.Context, o *model.Order) {
	if uc.publisher == nil {
		return
	}
	event := model.OrderEvent{
		EventID:   uuid.New().String(),
		EventType: model.EventTypeOrderCompleted,
		Payload: model.OrderPayload{
			ID:       o.ID,
			PONumber: o.PONumber,
			StoreID:  o.StoreID,
		},
		Timestamp: uc.now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to encode order event", zap.String("order_id", string(o.ID)), zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, string(o.ID), data); err != nil {
		uc.logger.Error("failed to publish order completed event", zap.String("order_id", string(o.ID)), zap.Error(err))
	}
}

// UpdateOrderItems replaces the item list. Invoices already issued for the
// order keep the lines they were derived from.
func (uc *orderUseCase) UpdateOrderItems(ctx context.Context, id model.OrderID, items []dto.OrderItemInput) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("updateOrderItems", "order", string(id))
	}

	o.SetItems(dto.ToOrderItems(items))
	o.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id model.OrderID) error {
	inv, err := uc.invoices.FindByOrderID(ctx, id)
	if err != nil {
		return err
	}
	if inv != nil {
		return apperror.ReferentialIntegrity("deleteOrder", "order", string(id))
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *orderUseCase) GetOrderStats(ctx context.Context) (*dto.OrderStats, error) {
	orders, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &dto.OrderStats{
		TotalOrders:       len(orders),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			stats.PendingOrders++
		case model.OrderStatusCompleted:
			stats.CompletedOrders++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalOrders))).Round(2)
	}
	return stats, nil
}
