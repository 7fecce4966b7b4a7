package dto

import (
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type OrderItemInput struct {
	ProductID model.ProductID
	Quantity  int
	UnitPrice decimal.Decimal
	Status    model.ItemStatus
}

type CreateOrderInput struct {
	SalespersonID model.UserID
	StoreID       model.StoreID
	PlanogramID   model.PlanogramID
	Items         []OrderItemInput
	Notes         string
}

type UpdateOrderStatusInput struct {
	ID          model.OrderID
	Status      model.OrderStatus
	CompletedAt *time.Time // Nil stamps the current time when completing
}

func ToOrderItems(items []OrderItemInput) []model.OrderItem {
	out := make([]model.OrderItem, len(items))
	for i, item := range items {
		out[i] = model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Status:    item.Status,
		}
	}
	return out
}
