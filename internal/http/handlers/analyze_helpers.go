package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-analyzer/internal/http/middleware"
	"github.com/phambaophuc/image-analyzer/internal/models"
	"github.com/phambaophuc/image-analyzer/internal/services/analysis"
	"github.com/phambaophuc/image-analyzer/internal/services/upstream"
	"go.uber.org/zap"
)

const (
	msgMissingContent = "Image and query are required"
	msgMissingAPIKey  = "x-api-key is required"
	msgNotConfigured  = "Upstream URL not configured"
	msgAnalyzeFailed  = "Failed to analyze image"
)

// classifyError maps a service error to the status and the only message the
// caller gets to see.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, analysis.ErrMissingContent):
		return http.StatusBadRequest, msgMissingContent
	case errors.Is(err, analysis.ErrMissingAPIKey):
		return http.StatusBadRequest, msgMissingAPIKey
	case errors.Is(err, upstream.ErrNotConfigured):
		return http.StatusInternalServerError, msgNotConfigured
	default:
		return http.StatusInternalServerError, msgAnalyzeFailed
	}
}

// === RESPONSE HANDLING ===

func (h *AnalyzeHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		Error: message,
	})
}

func (h *AnalyzeHandler) logFailure(c *gin.Context, status int, err error) {
	fields := []zap.Field{
		zap.String("request_id", requestID(c)),
		zap.Int("status", status),
		zap.Error(err),
	}

	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		fields = append(fields, zap.Int("upstream_status", statusErr.StatusCode))
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Image analysis failed", fields...)
		return
	}
	h.logger.Warn("Rejected analysis request", fields...)
}

// === UTILITY METHODS ===

func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

func calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if strings.HasPrefix(status, "unhealthy") {
			return "unhealthy"
		}
	}
	for _, status := range services {
		if status != "healthy" {
			return "degraded"
		}
	}
	return "healthy"
}
