package chathandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miuye256/restaurant-chatbot-backend/internal/config"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/chat"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/conversation"
	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/catalog"
	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/responses"
	"github.com/miuye256/restaurant-chatbot-backend/internal/utils/platformerrors"
)

type fakeConversationRepository struct {
	mu            sync.Mutex
	nextID        uint
	convs         map[string]*conversation.Conversation
	messages      map[uint][]*conversation.Message
	failAssistant bool
}

func newFakeConversationRepository() *fakeConversationRepository {
	return &fakeConversationRepository{
		convs:    make(map[string]*conversation.Conversation),
		messages: make(map[uint][]*conversation.Message),
	}
}

func (r *fakeConversationRepository) Create(ctx context.Context, conv *conversation.Conversation, seed []*conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	conv.ID = r.nextID
	conv.CreatedAt = time.Now()
	r.convs[conv.PublicID] = conv
	for _, msg := range seed {
		r.nextID++
		msg.ID = r.nextID
		msg.ConversationID = conv.ID
		msg.CreatedAt = time.Now()
		r.messages[conv.ID] = append(r.messages[conv.ID], msg)
	}
	return nil
}

func (r *fakeConversationRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[publicID]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
	}
	return conv, nil
}

func (r *fakeConversationRepository) AddMessage(ctx context.Context, conversationID uint, msg *conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAssistant && msg.Role == conversation.RoleAssistant {
		return errors.New("insert failed")
	}
	r.nextID++
	msg.ID = r.nextID
	msg.ConversationID = conversationID
	msg.CreatedAt = time.Now()
	r.messages[conversationID] = append(r.messages[conversationID], msg)
	return nil
}

func (r *fakeConversationRepository) ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*conversation.Message, len(r.messages[conversationID]))
	copy(out, r.messages[conversationID])
	return out, nil
}

type fakeMenuRepository struct {
	items []*menu.Item
}

func (r *fakeMenuRepository) ListItems(ctx context.Context) ([]*menu.Item, error) {
	return r.items, nil
}

func (r *fakeMenuRepository) FindByName(ctx context.Context, name string) (*menu.Item, error) {
	return nil, errors.New("unused")
}

func (r *fakeMenuRepository) Upsert(ctx context.Context, item *menu.Item) error {
	return errors.New("unused")
}

type engineScript struct {
	responses []openai.ChatCompletionResponse
	calls     int
}

func (s *engineScript) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	if len(s.responses) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("no scripted response")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

// streamLine is the union of the NDJSON line shapes a streamed answer can emit.
type streamLine struct {
	Content string `json:"content"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

type handlerFixture struct {
	router *gin.Engine
	repo   *fakeConversationRepository
	engine *engineScript
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeConversationRepository()
	engine := &engineScript{}

	conversations := conversation.NewService(repo)
	dispatcher := chat.NewToolDispatcher(engine, chat.Options{Model: "gpt-4", MaxTokens: 200, Temperature: 0.7})
	resolver := chat.NewResolver(dispatcher)
	catalogCache := catalog.NewCache(&fakeMenuRepository{items: []*menu.Item{
		{Name: "チキンカレー", Ingredients: "鶏肉、玉ねぎ", Allergens: "なし", Halal: true},
		{Name: "ビーフカレー", Ingredients: "牛肉、玉ねぎ", Allergens: "なし", Halal: false},
	}})

	handler := NewChatHandler(conversations, resolver, catalogCache, chat.Options{Model: "gpt-4", MaxTokens: 200, Temperature: 0.7}, &config.Config{Seed: config.DefaultSeed()})

	router := gin.New()
	chats := router.Group("/v1/chats")
	chats.POST("", handler.StartChat)
	chats.POST("/:chat_id/messages", handler.SendMessage)
	chats.GET("/:chat_id/messages", handler.ListMessages)

	return &handlerFixture{router: router, repo: repo, engine: engine}
}

func (f *handlerFixture) startChat(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chats", nil)
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		ChatID string `json:"chat_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ChatID)
	return created.ChatID
}

func (f *handlerFixture) sendMessage(t *testing.T, chatID, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"content": content})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chats/"+chatID+"/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

func decodeStream(t *testing.T, body string) []streamLine {
	t.Helper()
	lines := make([]streamLine, 0)
	for _, raw := range strings.Split(strings.TrimSpace(body), "\n") {
		var line streamLine
		require.NoError(t, json.Unmarshal([]byte(raw), &line), "each stream line must be a JSON object: %q", raw)
		lines = append(lines, line)
	}
	return lines
}

func TestSendMessageUnknownChatReturnsNotFound(t *testing.T) {
	fixture := newHandlerFixture(t)

	w := fixture.sendMessage(t, "chat_missing", "こんにちは")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "application/x-ndjson")

	var errBody responses.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.NotEmpty(t, errBody.Error.Code)
	assert.NotEmpty(t, errBody.Error.Message)
	assert.NotContains(t, w.Body.String(), `"status"`)
}

func TestSendMessageStreamsFragmentsThenFinished(t *testing.T) {
	fixture := newHandlerFixture(t)
	chatID := fixture.startChat(t)

	w := fixture.sendMessage(t, chatID, "予約できますか")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/x-ndjson")
	assert.Zero(t, fixture.engine.calls, "a refused reservation must not consult the engine")

	rawLines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Equal(t, []string{
		`{"content":"申し訳ありません。"}`,
		`{"content":"現在予約には対応しておりません。"}`,
		`{"status":"finished"}`,
	}, rawLines)

	// The persisted transcript ends with the reassembled assistant answer.
	listRecorder := httptest.NewRecorder()
	listReq := httptest.NewRequest(http.MethodGet, "/v1/chats/"+chatID+"/messages", nil)
	fixture.router.ServeHTTP(listRecorder, listReq)
	require.Equal(t, http.StatusOK, listRecorder.Code)

	var transcript struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(listRecorder.Body.Bytes(), &transcript))
	require.NotEmpty(t, transcript.Messages)
	last := transcript.Messages[len(transcript.Messages)-1]
	assert.Equal(t, "assistant", last.Role)
	assert.Equal(t, chat.ReservationRefusal, last.Content)
}

func TestSendMessagePersistenceFailureEmitsErrorLine(t *testing.T) {
	fixture := newHandlerFixture(t)
	chatID := fixture.startChat(t)
	fixture.repo.failAssistant = true

	w := fixture.sendMessage(t, chatID, "予約できますか")

	require.Equal(t, http.StatusOK, w.Code)
	lines := decodeStream(t, w.Body.String())
	require.NotEmpty(t, lines)

	last := lines[len(lines)-1]
	assert.Equal(t, "failed to store answer", last.Error)
	for _, line := range lines {
		assert.NotEqual(t, "finished", line.Status, "a failed stream must not report finished")
	}
}
