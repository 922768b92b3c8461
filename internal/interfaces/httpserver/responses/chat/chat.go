package chatresponses

import (
	"time"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
)

// CreateChatResponse is returned when a new conversation is opened.
type CreateChatResponse struct {
	ChatID string `json:"chat_id"`
}

// MessageResponse is one transcript turn in API form.
type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagesResponse is the full transcript of a conversation.
type MessagesResponse struct {
	ChatID   string            `json:"chat_id"`
	Messages []MessageResponse `json:"messages"`
}

// StreamContent is one NDJSON content line of a streamed answer.
type StreamContent struct {
	Content string `json:"content"`
}

// StreamStatus is the terminal NDJSON line of a streamed answer.
type StreamStatus struct {
	Status string `json:"status"`
}

// StreamError is the NDJSON line emitted when streaming fails mid-answer.
type StreamError struct {
	Error string `json:"error"`
}

// NewMessageResponse converts a domain message to API form.
func NewMessageResponse(msg *conversation.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.PublicID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
