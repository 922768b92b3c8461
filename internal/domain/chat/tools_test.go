package chat

import (
	"context"
	"encoding/json"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
)

// scriptedClient replays canned responses and records every request it saw.
type scriptedClient struct {
	responses []openai.ChatCompletionResponse
	requests  []openai.ChatCompletionRequest
}

func (c *scriptedClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.requests = append(c.requests, req)
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func textResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func toolCallResponse(name, arguments string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleAssistant,
				ToolCalls: []openai.ToolCall{{
					ID:       "call_1",
					Type:     openai.ToolTypeFunction,
					Function: openai.FunctionCall{Name: name, Arguments: arguments},
				}},
			}},
		},
	}
}

func testOptions() Options {
	return Options{Model: "gpt-4", MaxTokens: 200, Temperature: 0.7}
}

func userHistory(text string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: text},
	}
}

func TestDispatchPlainText(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{textResponse("いらっしゃいませ。")}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("こんにちは"), catalogFixture())
	require.NoError(t, err)
	assert.Equal(t, "いらっしゃいませ。", result.Answer)
	assert.False(t, result.UsedFuzzy)
	assert.False(t, result.Unresolved)

	require.Len(t, client.requests, 1)
	assert.Len(t, client.requests[0].Tools, 3)
}

func TestDispatchMenuInfoRoundTrip(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse(ToolGetMenuInfo, `{"menu_name":"チキンカレー"}`),
		textResponse("チキンカレーはハラール対応です。"),
	}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("チキンカレーについて"), catalogFixture())
	require.NoError(t, err)
	assert.Equal(t, "チキンカレーはハラール対応です。", result.Answer)
	assert.False(t, result.UsedFuzzy)

	require.Len(t, client.requests, 2)
	// The follow-up carries the tool result and declares no tools.
	followUp := client.requests[1]
	assert.Empty(t, followUp.Tools)
	last := followUp.Messages[len(followUp.Messages)-1]
	assert.Equal(t, openai.ChatMessageRoleTool, last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)

	var payload menuInfoPayload
	require.NoError(t, json.Unmarshal([]byte(last.Content), &payload))
	assert.Equal(t, "チキンカレー", payload.Name)
	assert.True(t, payload.IsHalal)
}

func TestDispatchMenuInfoFuzzyFallback(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse(ToolGetMenuInfo, `{"menu_name":"チキンカレ"}`),
		textResponse("チキンカレーの情報です。"),
	}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("チキンカレについて"), catalogFixture())
	require.NoError(t, err)
	assert.True(t, result.UsedFuzzy)
	assert.Equal(t, "チキンカレーの情報です。", result.Answer)
}

func TestDispatchMenuInfoNotFound(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse(ToolGetMenuInfo, `{"menu_name":"寿司"}`),
	}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("寿司はありますか"), catalogFixture())
	require.NoError(t, err)
	assert.Equal(t, NoSuchItemAnswer, result.Answer)
	// No second round-trip when the lookup misses.
	assert.Len(t, client.requests, 1)
}

func TestDispatchAllMenus(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse(ToolGetAllMenus, `{}`),
		textResponse("カレーが三種類ございます。"),
	}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("メニューを教えて"), catalogFixture())
	require.NoError(t, err)
	assert.Equal(t, "カレーが三種類ございます。", result.Answer)

	last := client.requests[1].Messages[len(client.requests[1].Messages)-1]
	var names []string
	require.NoError(t, json.Unmarshal([]byte(last.Content), &names))
	assert.Equal(t, []string{"チキンカレー", "ビーフカレー", "野菜カレー"}, names)
}

func TestDispatchUnknownToolFailsClosed(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse("delete_everything", `{}`),
	}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("何か"), catalogFixture())
	require.NoError(t, err)
	assert.True(t, result.Unresolved)
	assert.Len(t, client.requests, 1)
}

func TestDispatchMalformedArgumentsFailsClosed(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse(ToolGetMenuInfo, `{broken`),
	}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("何か"), catalogFixture())
	require.NoError(t, err)
	assert.True(t, result.Unresolved)
}

func TestDispatchChainedToolCallFailsClosed(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse(ToolGetAllMenus, `{}`),
		toolCallResponse(ToolGetAllMenuDetails, `{}`),
	}}
	d := NewToolDispatcher(client, testOptions())

	result, err := d.Dispatch(context.Background(), userHistory("全部"), catalogFixture())
	require.NoError(t, err)
	assert.True(t, result.Unresolved)
	assert.Len(t, client.requests, 2)
}

func catalogFixture() []*menu.Item {
	return []*menu.Item{
		{Name: "チキンカレー", Ingredients: "鶏肉,玉ねぎ,スパイス", Allergens: "なし", Halal: true},
		{Name: "ビーフカレー", Ingredients: "牛肉,玉ねぎ,スパイス", Allergens: "牛肉アレルギー", Halal: false},
		{Name: "野菜カレー", Ingredients: "ジャガイモ,ニンジン,玉ねぎ,スパイス", Allergens: "なし", Halal: true},
	}
}
