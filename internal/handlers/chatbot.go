package handlers

import (
	"log"
	"net/http"

	"github.com/athera-ai/athera/internal/services"
	"github.com/athera-ai/athera/internal/utils"
	"github.com/gin-gonic/gin"
)

type ChatbotRequest struct {
	Message             string                 `json:"message" binding:"required"`
	ConversationHistory []services.ChatMessage `json:"conversationHistory"`
}

// ChatbotHandler is thin glue over the completions API; the panel owns
// the conversation, this endpoint only relays one turn.
type ChatbotHandler struct {
	chat *services.ChatService
}

func NewChatbotHandler(chat *services.ChatService) *ChatbotHandler {
	return &ChatbotHandler{chat: chat}
}

func (h *ChatbotHandler) Chat(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if h.chat == nil {
		log.Printf("Chat service is not configured")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Service configuration error"})
		return
	}

	var req ChatbotRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.chat.Reply(req.Message, req.ConversationHistory)

	if err != nil {
		log.Printf("Chat completion failed for user %s: %v", currentUser.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate response"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"reply": reply,
		"model": h.chat.Model(),
	})
}
