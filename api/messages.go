package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Adhikram/ChartIQ-sub000/models"
	"github.com/Adhikram/ChartIQ-sub000/repository"
	"github.com/Adhikram/ChartIQ-sub000/utils"
)

type createMessageRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
	Role    string `json:"role" binding:"required"`
}

// CreateMessageHandler appends one chat message.
// POST /api/messages
func (h *APIHandler) CreateMessageHandler(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "content, userId and role are required", err)
		return
	}
	role := models.MessageRole(req.Role)
	if !role.Valid() {
		utils.SendJSONError(c, http.StatusBadRequest, "role must be USER, ASSISTANT or SYSTEM", nil)
		return
	}

	msg := &models.Message{
		UserID:  req.UserID,
		Content: req.Content,
		Role:    role,
	}
	if err := h.messages.Create(msg); err != nil {
		// Callers treat "not saved" as non-fatal and continue degraded.
		utils.SendJSONError(c, http.StatusInternalServerError, "message not saved", err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// DeleteMessageHandler removes one message by id, distinguishing
// "already gone" from a storage failure.
// DELETE /api/messages/:id
func (h *APIHandler) DeleteMessageHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "message id must be a positive integer", err)
		return
	}

	if err := h.messages.Delete(uint(id)); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "message not found", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "failed to delete message", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type chatMessagesRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Symbol   string `json:"symbol"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Cursor   uint   `json:"cursor"`
	Format   string `json:"format"` // "html" applies the display transform
}

// ChatMessagesHandler returns one page of a user's chat history. Cursor
// pagination takes precedence when a cursor is supplied.
// POST /api/chat-message
func (h *APIHandler) ChatMessagesHandler(c *gin.Context) {
	var req chatMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "userId is required", err)
		return
	}

	messages, pagination, total, err := h.messages.ListByUser(req.UserID, repository.PageRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Cursor:   req.Cursor,
	})
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "failed to load messages", err)
		return
	}

	if req.Format == "html" {
		// Display-only transform; stored content stays raw. It must be
		// applied at most once per message.
		for i := range messages {
			messages[i].Content = utils.FormatAnalysisHTML(messages[i].Content)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":   messages,
		"count":      len(messages),
		"totalCount": total,
		"pagination": pagination,
		"symbol":     req.Symbol,
	})
}
