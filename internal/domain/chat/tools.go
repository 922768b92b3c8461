package chat

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.opentelemetry.io/otel/attribute"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/observability"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

// Tool names declared to the engine.
const (
	ToolGetMenuInfo       = "get_menu_info"
	ToolGetAllMenus       = "get_all_menus"
	ToolGetAllMenuDetails = "get_all_menu_details"
)

// NoSuchItemAnswer is returned when get_menu_info finds no catalog item even
// after the fuzzy fallback. No second engine round-trip happens in that case.
const NoSuchItemAnswer = "申し訳ありません。そのメニューは見つかりませんでした。"

func toolDeclarations() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolGetMenuInfo,
				Description: "指定したメニューの材料・アレルギー・ハラール対応を取得する",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"menu_name": {
							Type:        jsonschema.String,
							Description: "メニュー名",
						},
					},
					Required: []string{"menu_name"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolGetAllMenus,
				Description: "全メニュー名の一覧を取得する",
				Parameters: jsonschema.Definition{
					Type:       jsonschema.Object,
					Properties: map[string]jsonschema.Definition{},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        ToolGetAllMenuDetails,
				Description: "全メニューの詳細情報を取得する",
				Parameters: jsonschema.Definition{
					Type:       jsonschema.Object,
					Properties: map[string]jsonschema.Definition{},
				},
			},
		},
	}
}

// menuInfoPayload mirrors the wire shape of a catalog record handed back to the
// engine as a tool result.
type menuInfoPayload struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Allergies   string `json:"allergies"`
	IsHalal     bool   `json:"is_halal"`
}

func payloadFromItem(item *menu.Item) menuInfoPayload {
	return menuInfoPayload{
		Name:        item.Name,
		Ingredients: item.Ingredients,
		Allergies:   item.Allergens,
		IsHalal:     item.Halal,
	}
}

// DispatchResult is the outcome of one engine exchange.
type DispatchResult struct {
	Answer string
	// UsedFuzzy is set when get_menu_info resolved through the fuzzy fallback.
	UsedFuzzy bool
	// Unresolved is set when the engine requested something the dispatcher
	// cannot honor (unknown tool, malformed arguments, chained tool calls).
	// The dispatcher fails closed; the orchestrator substitutes the refusal.
	Unresolved bool
}

// ToolDispatcher mediates between the reasoning engine and the menu catalog.
// It performs at most one tool round-trip per user turn: a single tool call is
// executed against the catalog snapshot, its output is re-submitted as context,
// and the engine's follow-up answer is final.
type ToolDispatcher struct {
	client CompletionClient
	opts   Options
}

func NewToolDispatcher(client CompletionClient, opts Options) *ToolDispatcher {
	return &ToolDispatcher{client: client, opts: opts}
}

// Dispatch submits the history plus the tool declarations and resolves the
// engine's reply to a final answer.
func (d *ToolDispatcher) Dispatch(ctx context.Context, messages []openai.ChatCompletionMessage, snapshot []*menu.Item) (*DispatchResult, error) {
	req := openai.ChatCompletionRequest{
		Model:       d.opts.Model,
		Messages:    messages,
		MaxTokens:   d.opts.MaxTokens,
		Temperature: d.opts.Temperature,
		Tools:       toolDeclarations(),
	}

	callCtx, callSpan := observability.StartSpan(ctx, tracerName, "engine.completion")
	observability.AddSpanAttributes(callCtx, attribute.String("engine.model", d.opts.Model))
	resp, err := d.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		observability.RecordError(callCtx, err)
		callSpan.End()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "engine completion failed", err, "4b6a1c2d-8e9f-4a0b-9c1d-2e3f4a5b6c7d")
	}
	callSpan.End()

	reply, err := replyFromResponse(ctx, resp)
	if err != nil {
		return nil, err
	}

	if reply.Kind == ReplyText {
		return &DispatchResult{Answer: strings.TrimSpace(reply.Text)}, nil
	}

	return d.executeToolCall(ctx, messages, reply.ToolCall, snapshot)
}

func (d *ToolDispatcher) executeToolCall(ctx context.Context, messages []openai.ChatCompletionMessage, call openai.ToolCall, snapshot []*menu.Item) (*DispatchResult, error) {
	var payload any
	usedFuzzy := false

	switch call.Function.Name {
	case ToolGetMenuInfo:
		var args struct {
			MenuName string `json:"menu_name"`
		}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return &DispatchResult{Unresolved: true}, nil
		}
		item := menu.FindExact(args.MenuName, snapshot)
		if item == nil {
			if name, ok := menu.FindFuzzy(args.MenuName, snapshot); ok {
				item = menu.FindExact(name, snapshot)
				usedFuzzy = true
			}
		}
		if item == nil {
			return &DispatchResult{Answer: NoSuchItemAnswer}, nil
		}
		payload = payloadFromItem(item)

	case ToolGetAllMenus:
		names := make([]string, 0, len(snapshot))
		for _, item := range snapshot {
			names = append(names, item.Name)
		}
		payload = names

	case ToolGetAllMenuDetails:
		details := make([]menuInfoPayload, 0, len(snapshot))
		for _, item := range snapshot {
			details = append(details, payloadFromItem(item))
		}
		payload = details

	default:
		// Unrecognized tool name: fail closed rather than guessing.
		return &DispatchResult{Unresolved: true}, nil
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to encode tool result")
	}

	followUp := append(append([]openai.ChatCompletionMessage(nil), messages...),
		openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			ToolCalls: []openai.ToolCall{call},
		},
		openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: call.ID,
			Content:    string(encoded),
		},
	)

	// No tool declarations on the follow-up request; one round-trip per turn.
	callCtx, callSpan := observability.StartSpan(ctx, tracerName, "engine.follow_up")
	observability.AddSpanAttributes(callCtx, attribute.String("tool.name", call.Function.Name))
	resp, err := d.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       d.opts.Model,
		Messages:    followUp,
		MaxTokens:   d.opts.MaxTokens,
		Temperature: d.opts.Temperature,
	})
	if err != nil {
		observability.RecordError(callCtx, err)
		callSpan.End()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "engine follow-up completion failed", err, "9d8c7b6a-5e4f-4d3c-b2a1-0f9e8d7c6b5a")
	}
	callSpan.End()

	reply, err := replyFromResponse(ctx, resp)
	if err != nil {
		return nil, err
	}
	if reply.Kind != ReplyText {
		return &DispatchResult{Unresolved: true}, nil
	}

	return &DispatchResult{Answer: strings.TrimSpace(reply.Text), UsedFuzzy: usedFuzzy}, nil
}
