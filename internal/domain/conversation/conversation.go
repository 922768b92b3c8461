package conversation

import (
	"context"
	"time"
)

// Role identifies who produced a message.
type Role string

const (
	RoleSystem     Role = "system"
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleToolResult Role = "tool-result"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleToolResult:
		return true
	}
	return false
}

// Conversation owns an ordered, append-only sequence of messages. A conversation
// with zero messages is valid; it becomes active on the first append and never
// reaches a terminal state.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one turn of a conversation. Tool-result content may embed
// structured JSON; the pipeline treats content as opaque text.
type Message struct {
	ID             uint      `json:"-"`
	PublicID       string    `json:"id"`
	ConversationID uint      `json:"-"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Repository persists conversations and their messages. Message order is
// creation-time order with insertion order as the tie break.
type Repository interface {
	// Create stores the conversation together with its seed messages in one
	// transaction, so a created conversation is never observed half-seeded.
	Create(ctx context.Context, conv *Conversation, seed []*Message) error
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	AddMessage(ctx context.Context, conversationID uint, msg *Message) error
	ListMessages(ctx context.Context, conversationID uint) ([]*Message, error)
}
