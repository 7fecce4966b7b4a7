package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/auth"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandlerMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		typ    string
	}{
		{apperror.NotFound("getOrder", "order", "o1"), http.StatusNotFound, "not_found"},
		{apperror.DuplicateLink("createPODFromInvoice", "invoice", "i1"), http.StatusConflict, "duplicate_link"},
		{apperror.ReferentialIntegrity("deleteOrder", "order", "o1"), http.StatusConflict, "referential_integrity"},
		{apperror.InvalidInput("updateOrderStatus", "bad"), http.StatusBadRequest, "invalid_request"},
		{fmt.Errorf("wrapped: %w", apperror.ErrLockBusy), http.StatusServiceUnavailable, "service_unavailable"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler(logger.NewNop()))
			r.GET("/x", func(c *gin.Context) { AbortWithError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tc.status, w.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.typ, body.Error.Type)
		})
	}
}

func TestContextMiddlewareSetsUser(t *testing.T) {
	r := gin.New()
	r.Use(ContextMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, string(auth.GetUserID(c.Request.Context())))
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderUserID, " u-7 ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "u-7", w.Body.String())
}
