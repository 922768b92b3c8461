package repository

import (
	"github.com/google/wire"

	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/repository/conversationrepo"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/database/repository/menurepo"
)

// RepositoryProvider provides all repository implementations
var RepositoryProvider = wire.NewSet(
	conversationrepo.NewConversationGormRepository,
	menurepo.NewMenuGormRepository,
)
