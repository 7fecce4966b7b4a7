package middleware

import (
	"strings"

	"github.com/fekuna/omnipos-fulfillment-service/internal/auth"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/gin-gonic/gin"
)

const HeaderUserID = "X-User-ID"

// ContextMiddleware copies the acting identity header into the request context.
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(HeaderUserID)); userID != "" {
			ctx := auth.WithUserID(c.Request.Context(), model.UserID(userID))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
