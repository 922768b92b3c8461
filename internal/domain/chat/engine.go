package chat

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

// CompletionClient is the external reasoning engine. *openai.Client satisfies
// it directly; tests inject doubles that record invocations.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Options carry the fixed completion parameters applied to every engine call.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// ReplyKind tags the two response shapes the engine may produce.
type ReplyKind string

const (
	ReplyText     ReplyKind = "text"
	ReplyToolCall ReplyKind = "tool_call"
)

// EngineReply is the tagged variant over the engine's response: either a plain
// natural-language answer or a request to invoke one declared tool.
type EngineReply struct {
	Kind     ReplyKind
	Text     string
	ToolCall openai.ToolCall
}

func replyFromResponse(ctx context.Context, resp openai.ChatCompletionResponse) (EngineReply, error) {
	if len(resp.Choices) == 0 {
		return EngineReply{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "engine returned no choices", nil, "e0f3b7c8-92d4-4a1e-b5c6-7d8e9f0a1b2c")
	}
	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		return EngineReply{Kind: ReplyToolCall, ToolCall: msg.ToolCalls[0]}, nil
	}
	return EngineReply{Kind: ReplyText, Text: msg.Content}, nil
}

// EngineMessages converts a transcript history into the engine's message form.
func EngineMessages(history []*conversation.Message) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		role := string(msg.Role)
		if msg.Role == conversation.RoleToolResult {
			role = openai.ChatMessageRoleTool
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	return messages
}
