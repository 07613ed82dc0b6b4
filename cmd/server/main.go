package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/analyzer"
	"github.com/veritasmainapp/VERITAS-AI/internal/api/handlers"
	"github.com/veritasmainapp/VERITAS-AI/internal/cache"
	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/fetch"
	"github.com/veritasmainapp/VERITAS-AI/internal/health"
	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/llm"
	"github.com/veritasmainapp/VERITAS-AI/internal/metrics"
	"github.com/veritasmainapp/VERITAS-AI/internal/middleware"
	"github.com/veritasmainapp/VERITAS-AI/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting VERITAS server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Missing vendor keys are worth a warning, not a refusal to start.
	// Scans will fail until the keys arrive, everything else works.
	if err := cfg.ValidateFetch(); err != nil {
		logger.WithError(err).Warn("Scraper not fully configured")
	}
	if err := cfg.ValidateLLM(); err != nil {
		logger.WithError(err).Warn("Verdict model not fully configured")
	}
	if err := cfg.ValidateHistory(); err != nil {
		logger.WithError(err).Fatal("History configuration invalid")
	}

	store, err := history.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize history store")
	}

	fetcher, err := fetch.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize page fetcher")
	}

	provider, err := llm.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize verdict provider")
	}

	verdictCache, err := cache.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize verdict cache")
	}

	service := analyzer.NewService(fetcher, provider, store, verdictCache, logger)
	checker := health.NewChecker(store, verdictCache, fetcher, provider, logger)

	metrics.Register()

	router := setupRouter(cfg, service, checker, logger)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
		// Analyses wait on a scrape plus a model call, so response
		// writes need far more headroom than reads.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    addr,
			"fetcher": fetcher.Source(),
			"model":   provider.Source(),
			"history": cfg.History.Backend,
		}).Info("HTTP server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shut down")
	}

	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.WithError(err).Error("Failed to close history store")
		}
	}
	if err := verdictCache.Close(); err != nil {
		logger.WithError(err).Error("Failed to close verdict cache")
	}

	logger.Info("Server stopped")
}

func setupRouter(cfg *config.Config, service *analyzer.Service, checker *health.Checker, logger *logrus.Logger) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	router.SetHTMLTemplate(handlers.LoadTemplates())

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute)
	handlers.NewHandler(service, checker, logger).RegisterRoutes(router, limiter.RateLimit())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
