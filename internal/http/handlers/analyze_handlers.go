package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-analyzer/internal/models"
	"github.com/phambaophuc/image-analyzer/internal/services/analysis"
	"github.com/phambaophuc/image-analyzer/internal/services/storage"
	"github.com/phambaophuc/image-analyzer/internal/services/upstream"
	"go.uber.org/zap"
)

type AnalyzeHandler struct {
	analyzer *analysis.Service
	storage  *storage.StorageService
	logger   *zap.Logger
}

func NewAnalyzeHandler(
	analyzer *analysis.Service,
	storage *storage.StorageService,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		storage:  storage,
		logger:   logger,
	}
}

// === MAIN API ENDPOINTS ===

// Analyze relays one image question to the upstream service. The upstream
// JSON body is returned byte for byte.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to parse analysis request",
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		h.respondError(c, http.StatusInternalServerError, msgAnalyzeFailed)
		return
	}

	if req.APIKey == "" {
		req.APIKey = c.GetHeader(upstream.APIKeyHeader)
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), &req)
	if err != nil {
		status, message := classifyError(err)
		h.logFailure(c, status, err)
		h.respondError(c, status, message)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Raw)
}

// HealthCheck
func (h *AnalyzeHandler) HealthCheck(c *gin.Context) {
	services := h.storage.HealthCheck(c.Request.Context())
	if h.analyzer.UpstreamConfigured() {
		services["upstream"] = "healthy"
	} else {
		services["upstream"] = "not configured"
	}

	overall := calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}
