package handlers

import (
	"errors"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/models"
)

// searchPage feeds the search view: the scan log plus an optional banner.
type searchPage struct {
	History []models.HistoryEntry
	Warning string
	Error   string
}

// reportPage feeds the report view. Either Entry or Error is set.
type reportPage struct {
	Entry *models.HistoryEntry
	Error string
}

// ShowSearch renders the landing page. Shared links arrive as /?q=<url>;
// those run a scan and redirect, so refreshing the result can never
// trigger another one.
func (h *Handler) ShowSearch(c *gin.Context) {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		h.analyzeAndRedirect(c, q)
		return
	}

	entries, err := h.service.History(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history for search view")
		entries = nil
	}

	c.HTML(http.StatusOK, "search.html", searchPage{
		History: entries,
		Warning: c.Query("warn"),
		Error:   c.Query("err"),
	})
}

// HandleAnalyzeForm runs a scan submitted from the search form. An empty
// link renders the search view again with a warning and touches nothing
// else. A finished scan redirects to its report so the result has a
// stable, shareable address.
func (h *Handler) HandleAnalyzeForm(c *gin.Context) {
	url := strings.TrimSpace(c.PostForm("product_url"))
	if url == "" {
		entries, _ := h.service.History(c.Request.Context())
		c.HTML(http.StatusOK, "search.html", searchPage{
			History: entries,
			Warning: "Please paste a link first.",
		})
		return
	}

	entry, _, err := h.service.Analyze(c.Request.Context(), url)
	if err != nil {
		c.HTML(http.StatusBadGateway, "report.html", reportPage{Error: analysisMessage(err)})
		return
	}

	c.Redirect(http.StatusSeeOther, "/report/"+entry.ID)
}

// ShowReport renders the verdict for one recorded scan.
func (h *Handler) ShowReport(c *gin.Context) {
	entry, err := h.service.Entry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			redirectWithError(c, "Report not found.")
			return
		}
		h.logger.WithError(err).Error("Failed to load report")
		redirectWithError(c, "Failed to load report.")
		return
	}

	c.HTML(http.StatusOK, "report.html", reportPage{Entry: entry})
}

func (h *Handler) analyzeAndRedirect(c *gin.Context, url string) {
	entry, _, err := h.service.Analyze(c.Request.Context(), url)
	if err != nil {
		redirectWithError(c, analysisMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/report/"+entry.ID)
}

func redirectWithError(c *gin.Context, message string) {
	c.Redirect(http.StatusSeeOther, "/?err="+neturl.QueryEscape(message))
}

func analysisMessage(err error) string {
	return "Scan failed: " + err.Error()
}
