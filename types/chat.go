package types

import (
	"encoding/json"
	"time"
)

// Conversation is one exchange with the chat assistant.
type Conversation struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Message   string          `json:"message"`
	Response  string          `json:"response"`
	Context   json.RawMessage `json:"context,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatMessageResponse struct {
	Response       string           `json:"response"`
	Category       ResourceCategory `json:"category"`
	ConversationID string           `json:"conversationId"`
}
