package dbschema

import (
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	BaseModel
	PublicID string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// Message represents one transcript turn. Creation order within a conversation
// is the transcript order.
type Message struct {
	BaseModel
	ConversationID uint   `gorm:"index:idx_message_conversation;not null"`
	PublicID       string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Role           string `gorm:"type:varchar(20);not null"`
	Content        string `gorm:"type:text;not null"`
}

// NewSchemaConversation creates a database schema from a domain conversation
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID: c.PublicID,
	}
}

// EtoD converts database schema to domain conversation (Entity to Domain)
func (c *Conversation) EtoD() *conversation.Conversation {
	return &conversation.Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewSchemaMessage creates a database schema from a domain message
func NewSchemaMessage(m *conversation.Message) *Message {
	return &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		ConversationID: m.ConversationID,
		PublicID:       m.PublicID,
		Role:           string(m.Role),
		Content:        m.Content,
	}
}

// EtoD converts database schema to domain message (Entity to Domain)
func (m *Message) EtoD() *conversation.Message {
	return &conversation.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		PublicID:       m.PublicID,
		Role:           conversation.Role(m.Role),
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}
