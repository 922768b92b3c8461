package chat

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installSpanRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return exporter
}

func TestResolveRecordsResolutionSpan(t *testing.T) {
	exporter := installSpanRecorder(t)

	resolver := NewResolver(NewToolDispatcher(&scriptedClient{}, testOptions()))
	resolution, err := resolver.Resolve(context.Background(), userHistory("予約できますか"), "予約できますか", catalogFixture())
	require.NoError(t, err)
	require.Equal(t, PathReservationRefused, resolution.Path)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "Resolver.Resolve", spans[0].Name)
	assert.Contains(t, spans[0].Attributes,
		attribute.String("resolution.path", string(PathReservationRefused)))
}

func TestDispatchRecordsEngineRoundTripSpans(t *testing.T) {
	exporter := installSpanRecorder(t)

	client := &scriptedClient{responses: []openai.ChatCompletionResponse{
		toolCallResponse(ToolGetAllMenus, "{}"),
		textResponse("チキンカレー、ビーフカレー、野菜カレーがございます。"),
	}}
	resolver := NewResolver(NewToolDispatcher(client, testOptions()))

	_, err := resolver.Resolve(context.Background(), userHistory("メニューを教えて"), "メニューを教えて", catalogFixture())
	require.NoError(t, err)

	names := make([]string, 0, 3)
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "engine.completion")
	assert.Contains(t, names, "engine.follow_up")
	assert.Contains(t, names, "Resolver.Resolve")
}
