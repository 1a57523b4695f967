package handlers

import (
	"net/http"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage godoc
// @Summary Ask the parenting assistant a question
// @Description Classifies the message, builds a personalized prompt and returns the assistant's reply. Falls back to a canned reply when the completion service is unavailable.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body types.ChatMessageRequest true "Message"
// @Success 200 {object} types.ChatMessageResponse
// @Router /chat/message [post]
// @Security BearerAuth
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req types.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	resp, err := h.chatService.SendMessage(c.Request.Context(), middleware.GetUserID(c), req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History returns recent conversations, newest first.
func (h *ChatHandler) History(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	conversations, err := h.chatService.History(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// ClearHistory deletes all of the user's conversations.
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	deleted, err := h.chatService.ClearHistory(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
