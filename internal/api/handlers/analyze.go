package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/analyzer"
	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/models"
	"github.com/veritasmainapp/VERITAS-AI/pkg/utils"
)

// HandleAnalyze runs a scan for the JSON API.
func (h *Handler) HandleAnalyze(c *gin.Context) {
	startTime := time.Now()

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid analyze request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Please paste a link first.", nil)
		return
	}

	entry, cached, err := h.service.Analyze(c.Request.Context(), url)
	if err != nil {
		h.respondAnalysisError(c, err)
		return
	}

	responseTime := time.Since(startTime)
	h.logger.WithFields(logrus.Fields{
		"url":           url,
		"score":         entry.Score,
		"cache_hit":     cached,
		"response_time": responseTime.Milliseconds(),
	}).Info("Analyze request completed")

	utils.SuccessResponse(c, http.StatusOK, "Analysis completed", models.AnalyzeResponse{
		Entry:        *entry,
		CacheHit:     cached,
		ResponseTime: int(responseTime.Milliseconds()),
	})
}

// HandleHistory returns all recorded scans, newest first.
func (h *Handler) HandleHistory(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load history", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "History retrieved", models.HistoryResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// HandleHistoryEntry returns one recorded scan by id.
func (h *Handler) HandleHistoryEntry(c *gin.Context) {
	entry, err := h.service.Entry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "History entry not found", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to load history entry")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load history entry", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "History entry retrieved", entry)
}

// HandleHealth reports dependency health. Unhealthy dependencies push the
// status code to 503 so load balancers notice.
func (h *Handler) HandleHealth(c *gin.Context) {
	overall := h.checker.CheckAll(c.Request.Context())

	status := http.StatusOK
	if overall.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, overall)
}

// respondAnalysisError maps pipeline failures onto API status codes.
// Vendor failures and unusable model output both surface as bad gateway,
// anything else is on us.
func (h *Handler) respondAnalysisError(c *gin.Context, err error) {
	var external *analyzer.ExternalCallError
	var malformed *analyzer.MalformedResponseError

	switch {
	case errors.As(err, &external):
		utils.ErrorResponse(c, http.StatusBadGateway, "Analysis failed", err)
	case errors.As(err, &malformed):
		utils.ErrorResponse(c, http.StatusBadGateway, "Model returned an unusable verdict", err)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Analysis failed", err)
	}
}
