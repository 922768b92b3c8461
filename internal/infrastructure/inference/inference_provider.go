package inference

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/miuye256/restaurant-chatbot-backend/internal/config"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/chat"
)

// NewCompletionClient builds the reasoning engine client from configuration.
// An OPENAI_BASE_URL override points the client at a compatible gateway.
func NewCompletionClient(cfg *config.Config) chat.CompletionClient {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// NewChatOptions carries the fixed completion parameters into the domain layer.
func NewChatOptions(cfg *config.Config) chat.Options {
	return chat.Options{
		Model:       cfg.CompletionModel,
		MaxTokens:   cfg.CompletionMaxTokens,
		Temperature: cfg.CompletionTemperature,
	}
}
