package domain

import (
	"github.com/google/wire"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/chat"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Conversation domain
	conversation.NewService,

	// Chat resolution
	chat.NewToolDispatcher,
	chat.NewResolver,
)
