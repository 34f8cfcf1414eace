package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Adhikram/ChartIQ-sub000/utils"
)

type generateChartsRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// GenerateChartsHandler captures one screenshot per configured interval
// and returns their public URLs.
// POST /api/generate-charts
func (h *APIHandler) GenerateChartsHandler(c *gin.Context) {
	var req generateChartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "symbol is required", err)
		return
	}
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "symbol is required", nil)
		return
	}

	results, err := h.capture.CaptureAll(c.Request.Context(), symbol, h.intervals)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "chart generation failed", err)
		return
	}

	chartURLs := make([]string, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			log.Printf("WARN: [Charts] Capture of %s %s failed: %v", symbol, res.Interval, res.Err)
			continue
		}
		chartURLs = append(chartURLs, res.Path)
	}

	c.JSON(http.StatusOK, gin.H{"chartUrls": chartURLs})
}

type analyzeChartsRequest struct {
	ChartURLs []string `json:"chartUrls"`
	Symbol    string   `json:"symbol" binding:"required"`
	UserID    string   `json:"userId" binding:"required"`
}

// AnalyzeChartsHandler streams the vision-model analysis of the given
// charts as SSE and persists the finished conversation turn. The request
// context is canceled when the client disconnects, which aborts the
// upstream completion.
// POST /api/analyze-charts
func (h *APIHandler) AnalyzeChartsHandler(c *gin.Context) {
	var req analyzeChartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "chartUrls, symbol and userId are required", err)
		return
	}
	if req.ChartURLs == nil {
		utils.SendJSONError(c, http.StatusBadRequest, "chartUrls must be an array", nil)
		return
	}

	sink := newSSESink(c)
	if err := h.turns.RunAnalysisTurn(c.Request.Context(), req.Symbol, req.UserID, req.ChartURLs, sink); err != nil {
		// The terminal error event has already been relayed; nothing
		// more can be written to the stream.
		log.Printf("ERROR: [Charts] Analysis turn for %s (%s) failed: %v", req.Symbol, req.UserID, err)
	}
}
