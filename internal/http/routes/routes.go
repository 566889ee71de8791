package routes

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-analyzer/internal/http/handlers"
	"github.com/phambaophuc/image-analyzer/internal/http/middleware"
	"github.com/phambaophuc/image-analyzer/internal/http/templates"
	"github.com/phambaophuc/image-analyzer/internal/ui"
	"go.uber.org/zap"
)

// Base64 grows payloads by a third; the rest covers JSON and form overhead.
const bodyOverhead = 1 << 20

type Router struct {
	analyzeHandler *handlers.AnalyzeHandler
	pageHandler    *handlers.PageHandler
	logger         *zap.Logger
	maxImageSize   int64
}

func NewRouter(
	analyzeHandler *handlers.AnalyzeHandler,
	pageHandler *handlers.PageHandler,
	logger *zap.Logger,
	maxImageSize int64,
) *Router {
	return &Router{
		analyzeHandler: analyzeHandler,
		pageHandler:    pageHandler,
		logger:         logger,
		maxImageSize:   maxImageSize,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.SecurityHeaders())

	router.SetHTMLTemplate(template.Must(
		template.New("").
			Funcs(template.FuncMap{"markdown": ui.FormatMarkdownHTML}).
			ParseFS(templates.FS, "*.html"),
	))

	formLimit := middleware.LimitBodySize(r.maxImageSize + bodyOverhead)
	jsonLimit := middleware.LimitBodySize(r.maxImageSize*4/3 + bodyOverhead)

	router.GET("/", r.pageHandler.Index)
	router.POST("/", formLimit, r.pageHandler.Submit)
	router.POST("/clear", r.pageHandler.Clear)
	router.GET("/preview/:id", r.pageHandler.Preview)

	api := router.Group("/api")
	api.Use(middleware.CORS())
	{
		api.GET("/health", r.analyzeHandler.HealthCheck)
		api.POST("/analyze", jsonLimit, r.analyzeHandler.Analyze)
		api.OPTIONS("/analyze", func(ctx *gin.Context) {
			ctx.Status(http.StatusNoContent)
		})
	}

	return router
}
