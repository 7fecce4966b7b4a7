package order

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id model.OrderID) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id model.OrderID) error
}
