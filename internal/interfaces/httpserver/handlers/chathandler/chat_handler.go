package chathandler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/miuye256/restaurant-chatbot-backend/internal/config"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/chat"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/catalog"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/logger"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/metrics"
	middleware "github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/middlewares"
	chatrequests "github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/requests/chat"
	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/responses"
	chatresponses "github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/responses/chat"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/functional"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

type ChatHandler struct {
	conversations *conversation.Service
	resolver      *chat.Resolver
	catalog       *catalog.Cache
	segmenter     chat.Segmenter
	opts          chat.Options
	config        *config.Config
}

func NewChatHandler(
	conversations *conversation.Service,
	resolver *chat.Resolver,
	catalogCache *catalog.Cache,
	opts chat.Options,
	cfg *config.Config,
) *ChatHandler {
	return &ChatHandler{
		conversations: conversations,
		resolver:      resolver,
		catalog:       catalogCache,
		segmenter:     chat.NewSegmenter(""),
		opts:          opts,
		config:        cfg,
	}
}

// StartChat opens a new conversation seeded with the system prompt and the
// configured opening script.
func (h *ChatHandler) StartChat(c *gin.Context) {
	ctx := c.Request.Context()

	seed := []conversation.SeedMessage{
		{Role: conversation.RoleSystem, Content: h.config.Seed.SystemPrompt},
	}
	for _, msg := range h.config.Seed.Script {
		seed = append(seed, conversation.SeedMessage{
			Role:    conversation.Role(msg.Role),
			Content: msg.Content,
		})
	}

	conv, err := h.conversations.Create(ctx, seed)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	metrics.ConversationsCreatedTotal.Inc()
	c.JSON(http.StatusOK, chatresponses.CreateChatResponse{ChatID: conv.PublicID})
}

// SendMessage accepts one user turn, resolves the answer and streams it back
// as NDJSON fragments followed by a finished status line.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	chatID := c.Param("chat_id")

	var input chatrequests.ChatMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "content is required", "f0a1b2c3-d4e5-4f6a-8b9c-0d1e2f3a4b5c")
		return
	}

	if _, err := h.conversations.Find(ctx, chatID); err != nil {
		responses.HandleError(c, err)
		return
	}

	if _, err := h.conversations.Append(ctx, chatID, conversation.RoleUser, input.Content); err != nil {
		responses.HandleError(c, err)
		return
	}

	history, err := h.conversations.History(ctx, chatID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	snapshot, err := h.catalog.Snapshot(ctx)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	started := time.Now()
	resolution, err := h.resolver.Resolve(ctx, chat.EngineMessages(history), input.Content, snapshot)
	if err != nil {
		metrics.RecordEngineError(string(platformerrors.ErrorTypeExternal))
		responses.HandleError(c, err)
		return
	}
	metrics.RecordResolution(string(resolution.Path))
	if resolution.Path == chat.PathToolDispatched || resolution.Path == chat.PathCatalogFuzzy || resolution.Path == chat.PathFallbackUnresolved {
		metrics.RecordEngineDuration(h.opts.Model, time.Since(started).Seconds())
	}

	h.streamAnswer(c, chatID, resolution.Answer)
}

// ListMessages returns the full transcript of a conversation.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	chatID := c.Param("chat_id")

	if _, err := h.conversations.Find(ctx, chatID); err != nil {
		responses.HandleError(c, err)
		return
	}

	history, err := h.conversations.History(ctx, chatID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatresponses.MessagesResponse{
		ChatID: chatID,
		Messages: functional.Map(history, func(msg *conversation.Message) chatresponses.MessageResponse {
			return chatresponses.NewMessageResponse(msg)
		}),
	})
}

func (h *ChatHandler) streamAnswer(c *gin.Context, chatID, answer string) {
	log := logger.GetLogger()

	flusher, ok := middleware.PrepareNDJSON(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeInternal, "streaming unsupported", "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d")
		return
	}
	c.Status(http.StatusOK)

	stream := chat.NewStream(c.Request.Context(), h.segmenter, h.conversations, chatID, answer)
	encoder := json.NewEncoder(c.Writer)

	for {
		event, err := stream.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			// The answer could not be persisted; surface the failure in-band
			// instead of a finished status.
			log.Error().Err(err).Str("chat_id", chatID).Msg("failed to persist assistant turn")
			_ = encoder.Encode(chatresponses.StreamError{Error: "failed to store answer"})
			flusher.Flush()
			return
		}

		switch event.Type {
		case chat.EventContent:
			if err := encoder.Encode(chatresponses.StreamContent{Content: event.Content}); err != nil {
				log.Warn().Err(err).Str("chat_id", chatID).Msg("client disconnected mid-stream")
				return
			}
			metrics.StreamFragmentsTotal.Inc()
		case chat.EventFinished:
			if err := encoder.Encode(chatresponses.StreamStatus{Status: "finished"}); err != nil {
				return
			}
		}
		flusher.Flush()
	}
}
