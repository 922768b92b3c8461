package chat

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/observability"
)

// tracerName scopes spans emitted by the chat resolution pipeline.
const tracerName = "menu-chat-api"

// Path identifies which decision branch produced an answer. Exposed for
// metrics labelling.
type Path string

const (
	PathReservationRefused Path = "reservation-refused"
	PathDietaryFiltered    Path = "dietary-filtered"
	PathCatalogDirect      Path = "catalog-direct"
	PathCatalogFuzzy       Path = "catalog-fuzzy"
	PathToolDispatched     Path = "tool-dispatched"
	PathFallbackUnresolved Path = "fallback-unresolved"
)

// Fixed answer texts.
const (
	ReservationRefusal = "申し訳ありません。現在予約には対応しておりません。"
	HalalListHeader    = "ハラール対応メニューは以下のとおりです。"
	HalalNoneAnswer    = "ハラール対応メニューは現在提供しておりません。"
	UnknownRefusal     = "申し訳ありません。その質問にはお答えできません。"
)

// uncertaintyMarkers flag engine answers that admit ignorance; such answers are
// replaced with the polite refusal.
var uncertaintyMarkers = []string{"わから", "不明", "答えられ"}

// Resolution is the orchestrator's verdict for one user utterance.
type Resolution struct {
	Answer string
	Path   Path
}

// Resolver applies the answer decision policy for a user turn: deterministic
// screens first (reservation, dietary, catalog name), then the engine through
// the tool dispatcher, then the uncertainty post-filter.
type Resolver struct {
	dispatcher *ToolDispatcher
}

func NewResolver(dispatcher *ToolDispatcher) *Resolver {
	return &Resolver{dispatcher: dispatcher}
}

// Resolve decides the assistant's full answer for the latest user message in
// history. The engine is consulted only when no deterministic screen matched.
func (r *Resolver) Resolve(ctx context.Context, history []openai.ChatCompletionMessage, userText string, snapshot []*menu.Item) (*Resolution, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "Resolver.Resolve")
	defer span.End()

	resolution, err := r.resolve(ctx, history, userText, snapshot)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, err
	}
	observability.AddSpanAttributes(ctx,
		attribute.String("resolution.path", string(resolution.Path)),
	)
	return resolution, nil
}

func (r *Resolver) resolve(ctx context.Context, history []openai.ChatCompletionMessage, userText string, snapshot []*menu.Item) (*Resolution, error) {
	intents := Classify(userText)

	if intents.Reservation {
		return &Resolution{Answer: ReservationRefusal, Path: PathReservationRefused}, nil
	}

	if intents.Dietary {
		return &Resolution{Answer: halalAnswer(snapshot), Path: PathDietaryFiltered}, nil
	}

	if name, ok := menu.ContainsAnyName(userText, snapshot); ok {
		if item := menu.FindExact(name, snapshot); item != nil {
			return &Resolution{Answer: itemDetail(item), Path: PathCatalogDirect}, nil
		}
	}

	result, err := r.dispatcher.Dispatch(ctx, history, snapshot)
	if err != nil {
		return nil, err
	}
	if result.Unresolved {
		return &Resolution{Answer: UnknownRefusal, Path: PathFallbackUnresolved}, nil
	}
	if soundsUncertain(result.Answer) {
		return &Resolution{Answer: UnknownRefusal, Path: PathFallbackUnresolved}, nil
	}

	path := PathToolDispatched
	if result.UsedFuzzy {
		path = PathCatalogFuzzy
	}
	return &Resolution{Answer: result.Answer, Path: path}, nil
}

func soundsUncertain(answer string) bool {
	for _, marker := range uncertaintyMarkers {
		if strings.Contains(answer, marker) {
			return true
		}
	}
	return false
}

func halalAnswer(snapshot []*menu.Item) string {
	halal := menu.FilterHalal(snapshot)
	if len(halal) == 0 {
		return HalalNoneAnswer
	}
	var b strings.Builder
	b.WriteString(HalalListHeader)
	for _, item := range halal {
		b.WriteString("\n")
		b.WriteString(item.Name)
	}
	return b.String()
}

func itemDetail(item *menu.Item) string {
	halal := "いいえ"
	if item.Halal {
		halal = "はい"
	}
	return fmt.Sprintf("%sの情報です。\n材料: %s\nアレルギー: %s\nハラール対応: %s",
		item.Name, item.Ingredients, item.Allergens, halal)
}
