package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/auth"
	"github.com/fekuna/omnipos-fulfillment-service/internal/catalog"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/middleware"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	uc      invoice.UseCase
	catalog catalog.Repository
}

func NewInvoiceHandler(uc invoice.UseCase, catalogRepo catalog.Repository) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, catalog: catalogRepo}
}

func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.POST("/from-order", h.CreateInvoiceFromOrder)
	invoices.POST("/manual", h.CreateManualInvoice)
	invoices.POST("/generate", h.GenerateAutomaticInvoices)
	invoices.GET("", h.ListInvoices)
	invoices.GET("/stats", h.GetInvoiceStats)
	invoices.GET("/by-order/:orderId", h.GetInvoiceByOrder)
	invoices.GET("/:id", h.GetInvoice)
	invoices.PATCH("/:id/status", h.UpdateInvoiceStatus)
	invoices.PUT("/:id/pod", h.LinkPOD)
	invoices.DELETE("/:id", h.DeleteInvoice)
}

// actingUser falls back to the system identity when no X-User-ID was sent.
func actingUser(c *gin.Context) model.UserID {
	if id := auth.GetUserID(c.Request.Context()); id != "" {
		return id
	}
	return auth.SystemUser
}

type createFromOrderRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	GenerationType string `json:"generation_type"`
}

type invoiceItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createManualInvoiceRequest struct {
	StoreID  string               `json:"store_id" binding:"required"`
	SellerID string               `json:"seller_id" binding:"required"`
	Items    []invoiceItemRequest `json:"items" binding:"required,dive"`
	Notes    string               `json:"notes"`
}

type updateInvoiceStatusRequest struct {
	Status   string     `json:"status" binding:"required"`
	PaidDate *time.Time `json:"paid_date"`
}

type linkPODRequest struct {
	PODID string `json:"pod_id"`
}

func (h *InvoiceHandler) CreateInvoiceFromOrder(c *gin.Context) {
	var req createFromOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("createInvoiceFromOrder", err.Error()))
		return
	}

	gen := model.GenerationType(strings.TrimSpace(req.GenerationType))
	if gen == "" {
		gen = model.GenerationManual
	}

	resp, err := h.uc.CreateInvoiceFromOrder(c.Request.Context(), model.OrderID(strings.TrimSpace(req.OrderID)), actingUser(c), gen)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (h *InvoiceHandler) CreateManualInvoice(c *gin.Context) {
	var req createManualInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("createManualInvoice", err.Error()))
		return
	}

	items := make([]dto.InvoiceItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = dto.InvoiceItemInput{
			ProductID: model.ProductID(strings.TrimSpace(item.ProductID)),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	resp, err := h.uc.CreateManualInvoice(c.Request.Context(), &dto.CreateManualInvoiceInput{
		StoreID:   model.StoreID(strings.TrimSpace(req.StoreID)),
		SellerID:  model.UserID(strings.TrimSpace(req.SellerID)),
		Items:     items,
		CreatedBy: actingUser(c),
		Notes:     req.Notes,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (h *InvoiceHandler) GenerateAutomaticInvoices(c *gin.Context) {
	report, err := h.uc.GenerateAutomaticInvoices(c.Request.Context(), actingUser(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": report,
		"meta": gin.H{"created": report.Succeeded(), "failed": report.Failed()},
	})
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var query struct {
		Status         string `form:"status"`
		StoreID        string `form:"store_id"`
		GenerationType string `form:"generation_type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("listInvoices", err.Error()))
		return
	}

	resp, err := h.uc.ListInvoices(c.Request.Context(), &dto.InvoiceFilters{
		Status:         model.InvoiceStatus(strings.TrimSpace(query.Status)),
		StoreID:        model.StoreID(strings.TrimSpace(query.StoreID)),
		GenerationType: model.GenerationType(strings.TrimSpace(query.GenerationType)),
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	inv, err := h.uc.GetInvoice(ctx, model.InvoiceID(c.Param("id")))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	h.renderEnriched(c, inv)
}

func (h *InvoiceHandler) GetInvoiceByOrder(c *gin.Context) {
	inv, err := h.uc.GetInvoiceByOrder(c.Request.Context(), model.OrderID(c.Param("orderId")))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	h.renderEnriched(c, inv)
}

func (h *InvoiceHandler) renderEnriched(c *gin.Context, inv *model.Invoice) {
	lookup, err := catalog.LoadLookup(c.Request.Context(), h.catalog)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog.EnrichInvoice(*inv, lookup)})
}

func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	var req updateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("updateInvoiceStatus", err.Error()))
		return
	}

	resp, err := h.uc.UpdateInvoiceStatus(c.Request.Context(), &dto.UpdateInvoiceStatusInput{
		ID:       model.InvoiceID(c.Param("id")),
		Status:   model.InvoiceStatus(strings.TrimSpace(req.Status)),
		PaidDate: req.PaidDate,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *InvoiceHandler) LinkPOD(c *gin.Context) {
	var req linkPODRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("linkPODToInvoice", err.Error()))
		return
	}

	resp, err := h.uc.LinkPODToInvoice(c.Request.Context(), model.InvoiceID(c.Param("id")), model.PODID(strings.TrimSpace(req.PODID)))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.uc.DeleteInvoice(c.Request.Context(), model.InvoiceID(c.Param("id"))); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) GetInvoiceStats(c *gin.Context) {
	resp, err := h.uc.GetInvoiceStats(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
