package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/analyzer"
	"github.com/veritasmainapp/VERITAS-AI/internal/health"
	"github.com/veritasmainapp/VERITAS-AI/internal/middleware"
)

// Handler serves both the HTML views and the JSON API on top of the
// analyzer service.
type Handler struct {
	service *analyzer.Service
	checker *health.Checker
	logger  *logrus.Logger
}

func NewHandler(service *analyzer.Service, checker *health.Checker, logger *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		checker: checker,
		logger:  logger,
	}
}

// RegisterRoutes mounts every route on the router. analyzeGuards run only
// on routes that can trigger a scan, which keeps the rate limiter off
// report pages and probes.
func (h *Handler) RegisterRoutes(router *gin.Engine, analyzeGuards ...gin.HandlerFunc) {
	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(analyzeGuards)+1)
		chain = append(chain, analyzeGuards...)
		return append(chain, handler)
	}

	router.GET("/", guarded(h.ShowSearch)...)
	router.POST("/analyze", guarded(h.HandleAnalyzeForm)...)
	router.GET("/report/:id", h.ShowReport)

	api := router.Group("/api/v1")
	api.Use(middleware.CORS())
	{
		api.POST("/analyze", guarded(h.HandleAnalyze)...)
		api.GET("/history", h.HandleHistory)
		api.GET("/history/:id", h.HandleHistoryEntry)
	}

	router.GET("/health", h.HandleHealth)
}
