package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/catalog"
	"github.com/fekuna/omnipos-fulfillment-service/internal/middleware"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc      order.UseCase
	catalog catalog.Repository
}

func NewOrderHandler(uc order.UseCase, catalogRepo catalog.Repository) *OrderHandler {
	return &OrderHandler{uc: uc, catalog: catalogRepo}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.CreateOrder)
	orders.GET("", h.ListOrders)
	orders.GET("/stats", h.GetOrderStats)
	orders.GET("/:id", h.GetOrder)
	orders.PATCH("/:id/status", h.UpdateOrderStatus)
	orders.PUT("/:id/items", h.UpdateOrderItems)
	orders.DELETE("/:id", h.DeleteOrder)
}

type orderItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Status    string          `json:"status"`
}

type createOrderRequest struct {
	SalespersonID string             `json:"salesperson_id" binding:"required"`
	StoreID       string             `json:"store_id" binding:"required"`
	PlanogramID   string             `json:"planogram_id"`
	Items         []orderItemRequest `json:"items" binding:"required,dive"`
	Notes         string             `json:"notes"`
}

type updateOrderStatusRequest struct {
	Status      string     `json:"status" binding:"required"`
	CompletedAt *time.Time `json:"completed_at"`
}

type updateOrderItemsRequest struct {
	Items []orderItemRequest `json:"items" binding:"required,dive"`
}

func toItemInputs(items []orderItemRequest) []dto.OrderItemInput {
	out := make([]dto.OrderItemInput, len(items))
	for i, item := range items {
		out[i] = dto.OrderItemInput{
			ProductID: model.ProductID(strings.TrimSpace(item.ProductID)),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Status:    model.ItemStatus(item.Status),
		}
	}
	return out
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("createOrder", err.Error()))
		return
	}

	resp, err := h.uc.CreateOrder(c.Request.Context(), &dto.CreateOrderInput{
		SalespersonID: model.UserID(strings.TrimSpace(req.SalespersonID)),
		StoreID:       model.StoreID(strings.TrimSpace(req.StoreID)),
		PlanogramID:   model.PlanogramID(strings.TrimSpace(req.PlanogramID)),
		Items:         toItemInputs(req.Items),
		Notes:         req.Notes,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query struct {
		Status        string `form:"status"`
		StoreID       string `form:"store_id"`
		SalespersonID string `form:"salesperson_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("listOrders", err.Error()))
		return
	}

	resp, err := h.uc.ListOrders(c.Request.Context(), &dto.OrderFilters{
		Status:        model.OrderStatus(strings.TrimSpace(query.Status)),
		StoreID:       model.StoreID(strings.TrimSpace(query.StoreID)),
		SalespersonID: model.UserID(strings.TrimSpace(query.SalespersonID)),
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx := c.Request.Context()
	o, err := h.uc.GetOrder(ctx, model.OrderID(c.Param("id")))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	lookup, err := catalog.LoadLookup(ctx, h.catalog)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": catalog.EnrichOrder(*o, lookup)})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("updateOrderStatus", err.Error()))
		return
	}

	resp, err := h.uc.UpdateOrderStatus(c.Request.Context(), &dto.UpdateOrderStatusInput{
		ID:          model.OrderID(c.Param("id")),
		Status:      model.OrderStatus(strings.TrimSpace(req.Status)),
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *OrderHandler) UpdateOrderItems(c *gin.Context) {
	var req updateOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("updateOrderItems", err.Error()))
		return
	}

	resp, err := h.uc.UpdateOrderItems(c.Request.Context(), model.OrderID(c.Param("id")), toItemInputs(req.Items))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.uc.DeleteOrder(c.Request.Context(), model.OrderID(c.Param("id"))); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) GetOrderStats(c *gin.Context) {
	resp, err := h.uc.GetOrderStats(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
