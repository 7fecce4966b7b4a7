package bootstrap

import (
	"net/http"

	invH "github.com/fekuna/omnipos-fulfillment-service/internal/invoice/handler"
	"github.com/fekuna/omnipos-fulfillment-service/internal/middleware"
	ordH "github.com/fekuna/omnipos-fulfillment-service/internal/order/handler"
	podH "github.com/fekuna/omnipos-fulfillment-service/internal/pod/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP surface: /healthz, /metrics and the /api/v1 groups.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ContextMiddleware())
	r.Use(middleware.ErrorHandler(a.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if a.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	ordH.NewOrderHandler(a.Orders, a.Catalog).RegisterRoutes(api)
	invH.NewInvoiceHandler(a.Invoices, a.Catalog).RegisterRoutes(api)
	podH.NewPODHandler(a.PODs, a.Catalog).RegisterRoutes(api)

	return r
}
