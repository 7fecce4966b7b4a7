package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-fulfillment-service/config"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/middleware"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	orderDto "github.com/fekuna/omnipos-fulfillment-service/internal/order/dto"
	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Store:   config.StoreConfig{Backend: BackendMemory},
		Redis:   config.RedisConfig{LockTTLSec: 1},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, "admin")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

func TestHTTPFulfillmentFlow(t *testing.T) {
	app := newTestApp(t, testConfig())
	ctx := context.Background()
	require.NoError(t, recordstore.Save(ctx, app.Store, recordstore.CollectionStores, []model.Store{{ID: "s1", Name: "Centro"}}))
	require.NoError(t, recordstore.Save(ctx, app.Store, recordstore.CollectionUsers, []model.User{{ID: "u1", Name: "Ana"}, {ID: "admin", Name: "Admin"}}))
	r := app.Router()

	w := do(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"salesperson_id": "u1",
		"store_id":       "s1",
		"items": []gin.H{
			{"product_id": "p1", "quantity": 5, "unit_price": "25.90"},
			{"product_id": "p2", "quantity": 3, "unit_price": "38.67"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decode[model.Order](t, w)
	assert.Equal(t, "245.51", o.Total.StringFixed(2))

	w = do(t, r, http.MethodPatch, "/api/v1/orders/"+string(o.ID)+"/status", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/integrity/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	issues := decode[[]model.IntegrityIssue](t, w)
	require.Len(t, issues, 1)
	assert.Equal(t, model.IssueOrderWithoutInvoice, issues[0].Type)

	w = do(t, r, http.MethodPost, "/api/v1/invoices/from-order", gin.H{"order_id": o.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inv := decode[model.Invoice](t, w)
	assert.Equal(t, "297.07", inv.Total.StringFixed(2))
	assert.Equal(t, model.UserID("admin"), inv.CreatedBy)

	w = do(t, r, http.MethodPost, "/api/v1/invoices/from-order", gin.H{"order_id": o.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPatch, "/api/v1/invoices/"+string(inv.ID)+"/status", gin.H{"status": "paid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode[model.Invoice](t, w).PaidDate)

	w = do(t, r, http.MethodPost, "/api/v1/pods/from-invoice", gin.H{"invoice_id": inv.ID, "image_url": "s3://pods/1.jpg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[model.POD](t, w)
	assert.Equal(t, inv.ID, p.InvoiceID)

	w = do(t, r, http.MethodGet, "/api/v1/invoices/"+string(inv.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Data struct {
			PODID         model.PODID `json:"pod_id"`
			StoreName     string      `json:"store_name"`
			SellerName    string      `json:"seller_name"`
			CreatedByName string      `json:"created_by_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, p.ID, view.Data.PODID)
	assert.Equal(t, "Centro", view.Data.StoreName)
	assert.Equal(t, "Ana", view.Data.SellerName)
	assert.Equal(t, "Admin", view.Data.CreatedByName)

	w = do(t, r, http.MethodGet, "/api/v1/integrity/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]model.IntegrityIssue](t, w))

	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodDelete, "/api/v1/orders/"+string(o.ID), nil).Code)
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodDelete, "/api/v1/invoices/"+string(inv.ID), nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/v1/pods/"+string(p.ID), nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/v1/invoices/"+string(inv.ID), nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/v1/orders/"+string(o.ID), nil).Code)
}

func TestHTTPErrorsAndStats(t *testing.T) {
	app := newTestApp(t, testConfig())
	r := app.Router()

	w := do(t, r, http.MethodGet, "/api/v1/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/orders", gin.H{"store_id": "s1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/api/v1/invoices/x/status", gin.H{"status": "void"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/orders/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"total_orders":0,"pending_orders":0,"completed_orders":0,"total_revenue":"0","average_order_value":"0"}}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/pods?validated=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type repairReportBody struct {
	Fixed    int `json:"fixed"`
	Errors   int `json:"errors"`
	Outcomes []struct {
		Issue   model.IntegrityIssue `json:"issue"`
		Invoice *model.Invoice       `json:"invoice"`
		Error   string               `json:"error"`
	} `json:"outcomes"`
}

func TestAutoFixEndpointAndMetrics(t *testing.T) {
	app := newTestApp(t, testConfig())
	r := app.Router()

	w := do(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"salesperson_id": "u1",
		"store_id":       "s1",
		"items":          []gin.H{{"product_id": "p1", "quantity": 1, "unit_price": "10.00"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	o := decode[model.Order](t, w)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPatch, "/api/v1/orders/"+string(o.ID)+"/status", gin.H{"status": "completed"}).Code)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/v1/integrity/check", nil).Code)

	w = do(t, r, http.MethodPost, "/api/v1/integrity/fix", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode[repairReportBody](t, w)
	assert.Equal(t, 1, report.Fixed)
	assert.Equal(t, 0, report.Errors)
	require.Len(t, report.Outcomes, 1)
	require.NotNil(t, report.Outcomes[0].Invoice)
	assert.Equal(t, o.ID, report.Outcomes[0].Invoice.OrderID)
	assert.Equal(t, model.UserID("admin"), report.Outcomes[0].Invoice.CreatedBy)

	w = do(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `fulfillment_integrity_repairs_total{outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), `fulfillment_integrity_issues_total{severity="high",type="order_without_invoice"} 1`)
	assert.Contains(t, w.Body.String(), `fulfillment_integrity_checks_total 1`)
}

func TestNewWithSQLiteBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Store = config.StoreConfig{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "fulfillment.db")}
	app := newTestApp(t, cfg)
	ctx := context.Background()

	created, err := app.Orders.CreateOrder(ctx, &orderDto.CreateOrderInput{
		SalespersonID: "u1",
		StoreID:       "s1",
		Items:         []orderDto.OrderItemInput{{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")}},
	})
	require.NoError(t, err)

	orders, err := app.Orders.ListOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, created.ID, orders[0].ID)
	assert.Equal(t, "9.00", orders[0].Total.StringFixed(2))
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Backend = "floppy"

	app, err := New(context.Background(), cfg, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floppy")
	assert.NoError(t, app.Close())
}
