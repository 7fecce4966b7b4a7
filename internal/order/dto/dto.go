package dto

import (
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type OrderFilters struct {
	Status        model.OrderStatus
	StoreID       model.StoreID
	SalespersonID model.UserID
}

func (f *OrderFilters) Match(o *model.Order) bool {
	if f == nil {
		return true
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.StoreID != "" && o.StoreID != f.StoreID {
		return false
	}
	if f.SalespersonID != "" && o.SalespersonID != f.SalespersonID {
		return false
	}
	return true
}

type OrderStats struct {
	TotalOrders       int             `json:"total_orders"`
	PendingOrders     int             `json:"pending_orders"`
	CompletedOrders   int             `json:"completed_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}
