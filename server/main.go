package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-analyzer/internal/config"
	"github.com/phambaophuc/image-analyzer/internal/http/handlers"
	"github.com/phambaophuc/image-analyzer/internal/http/routes"
	"github.com/phambaophuc/image-analyzer/internal/services/analysis"
	"github.com/phambaophuc/image-analyzer/internal/services/processor"
	"github.com/phambaophuc/image-analyzer/internal/services/storage"
	"github.com/phambaophuc/image-analyzer/internal/services/upstream"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Upstream.URL == "" {
		logger.Warn("UPSTREAM_URL is not set; analysis requests will fail until it is configured")
	}

	// Initialize services
	imageProcessor := processor.NewImageProcessor(cfg.Preview.MaxImageSize)

	storageService := storage.NewStorageService(cfg, logger)
	defer storageService.Close()

	upstreamClient := upstream.NewClient(cfg.Upstream, logger)
	analyzer := analysis.NewService(upstreamClient, cfg.Preview.MaxImageSize, logger)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, storageService, logger)
	pageHandler := handlers.NewPageHandler(analyzer, storageService, imageProcessor, logger, cfg.Preview.MaxImageSize)

	router := routes.NewRouter(analyzeHandler, pageHandler, logger, cfg.Preview.MaxImageSize)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("preview_store", storageService.Backend()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
