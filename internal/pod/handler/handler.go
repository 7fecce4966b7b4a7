package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/auth"
	"github.com/fekuna/omnipos-fulfillment-service/internal/catalog"
	"github.com/fekuna/omnipos-fulfillment-service/internal/middleware"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod/dto"
	"github.com/gin-gonic/gin"
)

type PODHandler struct {
	uc      pod.UseCase
	catalog catalog.Repository
}

func NewPODHandler(uc pod.UseCase, catalogRepo catalog.Repository) *PODHandler {
	return &PODHandler{uc: uc, catalog: catalogRepo}
}

func (h *PODHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pods := rg.Group("/pods")
	pods.POST("/from-invoice", h.CreatePODFromInvoice)
	pods.POST("/manual", h.CreateManualPOD)
	pods.GET("", h.ListPODs)
	pods.GET("/by-invoice/:invoiceId", h.GetPODByInvoice)
	pods.GET("/:id", h.GetPOD)
	pods.POST("/:id/validate", h.ValidatePOD)
	pods.POST("/:id/invalidate", h.InvalidatePOD)
	pods.PATCH("/:id/status", h.UpdatePODStatus)
	pods.DELETE("/:id", h.DeletePOD)

	integrity := rg.Group("/integrity")
	integrity.GET("/check", h.CheckIntegrity)
	integrity.POST("/fix", h.AutoFixIntegrityIssues)
}

func actingUser(c *gin.Context) model.UserID {
	if id := auth.GetUserID(c.Request.Context()); id != "" {
		return id
	}
	return auth.SystemUser
}

type createFromInvoiceRequest struct {
	InvoiceID string `json:"invoice_id" binding:"required"`
	ImageURL  string `json:"image_url"`
	Notes     string `json:"notes"`
}

type createManualPODRequest struct {
	PONumber      string `json:"po_number" binding:"required"`
	SalespersonID string `json:"salesperson_id" binding:"required"`
	StoreID       string `json:"store_id" binding:"required"`
	ImageURL      string `json:"image_url"`
	Notes         string `json:"notes"`
}

type updatePODStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PODHandler) CreatePODFromInvoice(c *gin.Context) {
	var req createFromInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("createPODFromInvoice", err.Error()))
		return
	}

	resp, err := h.uc.CreatePODFromInvoice(c.Request.Context(), &dto.CreatePODFromInvoiceInput{
		InvoiceID:  model.InvoiceID(strings.TrimSpace(req.InvoiceID)),
		ImageURL:   strings.TrimSpace(req.ImageURL),
		UploadedBy: actingUser(c),
		Notes:      req.Notes,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (h *PODHandler) CreateManualPOD(c *gin.Context) {
	var req createManualPODRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("createManualPOD", err.Error()))
		return
	}

	resp, err := h.uc.CreateManualPOD(c.Request.Context(), &dto.CreateManualPODInput{
		PONumber:      strings.TrimSpace(req.PONumber),
		SalespersonID: model.UserID(strings.TrimSpace(req.SalespersonID)),
		StoreID:       model.StoreID(strings.TrimSpace(req.StoreID)),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		UploadedBy:    actingUser(c),
		Notes:         req.Notes,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (h *PODHandler) ListPODs(c *gin.Context) {
	var query struct {
		Status        string `form:"status"`
		StoreID       string `form:"store_id"`
		SalespersonID string `form:"salesperson_id"`
		Validated     string `form:"validated"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("listPODs", err.Error()))
		return
	}

	filters := &dto.PODFilters{
		Status:        model.PODStatus(strings.TrimSpace(query.Status)),
		StoreID:       model.StoreID(strings.TrimSpace(query.StoreID)),
		SalespersonID: model.UserID(strings.TrimSpace(query.SalespersonID)),
	}
	if v := strings.TrimSpace(query.Validated); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			middleware.AbortWithError(c, apperror.InvalidInput("listPODs", "invalid validated flag"))
			return
		}
		filters.Validated = &b
	}

	resp, err := h.uc.ListPODs(c.Request.Context(), filters)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PODHandler) GetPOD(c *gin.Context) {
	p, err := h.uc.GetPOD(c.Request.Context(), model.PODID(c.Param("id")))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	h.renderEnriched(c, p)
}

func (h *PODHandler) GetPODByInvoice(c *gin.Context) {
	p, err := h.uc.GetPODByInvoice(c.Request.Context(), model.InvoiceID(c.Param("invoiceId")))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	h.renderEnriched(c, p)
}

func (h *PODHandler) renderEnriched(c *gin.Context, p *model.POD) {
	lookup, err := catalog.LoadLookup(c.Request.Context(), h.catalog)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog.EnrichPOD(*p, lookup)})
}

func (h *PODHandler) ValidatePOD(c *gin.Context) {
	resp, err := h.uc.ValidatePOD(c.Request.Context(), model.PODID(c.Param("id")), actingUser(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PODHandler) InvalidatePOD(c *gin.Context) {
	resp, err := h.uc.InvalidatePOD(c.Request.Context(), model.PODID(c.Param("id")))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PODHandler) UpdatePODStatus(c *gin.Context) {
	var req updatePODStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperror.InvalidInput("updatePODStatus", err.Error()))
		return
	}

	resp, err := h.uc.UpdatePODStatus(c.Request.Context(), model.PODID(c.Param("id")), model.PODStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PODHandler) DeletePOD(c *gin.Context) {
	if err := h.uc.DeletePOD(c.Request.Context(), model.PODID(c.Param("id"))); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PODHandler) CheckIntegrity(c *gin.Context) {
	issues, err := h.uc.CheckIntegrity(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": issues, "meta": gin.H{"total": len(issues)}})
}

func (h *PODHandler) AutoFixIntegrityIssues(c *gin.Context) {
	report, err := h.uc.AutoFixIntegrityIssues(c.Request.Context(), actingUser(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}
