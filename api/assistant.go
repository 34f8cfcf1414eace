package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adhikram/ChartIQ-sub000/models"
	"github.com/Adhikram/ChartIQ-sub000/services"
	"github.com/Adhikram/ChartIQ-sub000/utils"
)

type stockAssistantRequest struct {
	Question            string                       `json:"question" binding:"required"`
	UserID              string                       `json:"userId" binding:"required"`
	Symbol              string                       `json:"symbol"`
	Analysis            string                       `json:"analysis"`
	ConversationHistory []models.ConversationMessage `json:"conversationHistory"`
}

// StockAssistantHandler answers a follow-up question about the user's
// latest analysis.
// POST /api/stock-assistant
func (h *APIHandler) StockAssistantHandler(c *gin.Context) {
	var req stockAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "question and userId are required", err)
		return
	}

	resp, err := h.assistant.Answer(c.Request.Context(), services.AssistantRequest{
		Question:        req.Question,
		UserID:          req.UserID,
		Symbol:          req.Symbol,
		AnalysisContext: req.Analysis,
		History:         req.ConversationHistory,
	})
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "assistant is unavailable", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SymbolSearchHandler proxies the third-party symbol-search API.
// GET /api/symbol-search?text=&filter=
func (h *APIHandler) SymbolSearchHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "text query parameter is required", nil)
		return
	}

	results, err := h.symbols.Search(c.Request.Context(), text, c.Query("filter"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadGateway, "symbol search is unavailable", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// AnalysisHistoryHandler returns the user's last analyses with their
// chart paths.
// GET /api/analysis-history/:userId
func (h *APIHandler) AnalysisHistoryHandler(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "userId is required", nil)
		return
	}

	analyses, err := h.analyses.RecentByUser(userID, 10)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "failed to load analysis history", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}
