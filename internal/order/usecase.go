package order

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, input *dto.UpdateOrderStatusInput) (*model.Order, error)
	UpdateOrderItems(ctx context.Context, id model.OrderID, items []dto.OrderItemInput) (*model.Order, error)
	DeleteOrder(ctx context.Context, id model.OrderID) error
	GetOrderStats(ctx context.Context) (*dto.OrderStats, error)
}
