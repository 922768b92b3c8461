package routes

import (
	"github.com/google/wire"

	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/handlers/chathandler"
	v1 "github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/routes/v1"
	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/routes/v1/chat"
)

var RouteProvider = wire.NewSet(
	// Handlers
	chathandler.NewChatHandler,

	// Routes
	v1.NewV1Route,
	chat.NewChatRoute,
)
