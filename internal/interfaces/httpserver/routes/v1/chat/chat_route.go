package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/handlers/chathandler"
)

type ChatRoute struct {
	handler *chathandler.ChatHandler
}

func NewChatRoute(
	handler *chathandler.ChatHandler,
) *ChatRoute {
	return &ChatRoute{
		handler: handler,
	}
}

func (chatRoute *ChatRoute) RegisterRouter(router gin.IRouter) {
	chatRouter := router.Group("/chats")
	chatRouter.POST("", chatRoute.handler.StartChat)
	chatRouter.POST("/:chat_id/messages", chatRoute.handler.SendMessage)
	chatRouter.GET("/:chat_id/messages", chatRoute.handler.ListMessages)
}
