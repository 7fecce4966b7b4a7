package middleware

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandler renders the last error attached to the gin context.
func ErrorHandler(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, typ := mapError(lastErr.Err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(lastErr.Err),
			)
		}
		c.AbortWithStatusJSON(status, errorResponse{Error: errorPayload{Type: typ, Message: lastErr.Err.Error()}})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrDuplicateLink):
		return http.StatusConflict, "duplicate_link"
	case errors.Is(err, apperror.ErrReferentialIntegrity):
		return http.StatusConflict, "referential_integrity"
	case errors.Is(err, apperror.ErrLockBusy):
		return http.StatusServiceUnavailable, "service_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
