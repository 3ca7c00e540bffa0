package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRecordTurn_ExportsToRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewWithRegisterer("food-assistant-test", reg)
	require.NoError(t, err)
	defer obs.Shutdown()

	obs.RecordTurn(context.Background(), "menu", 12*time.Millisecond)
	obs.RecordTurn(context.Background(), "menu", 3*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "chat_turns_total")
	assert.Contains(t, joined, "chat_turn_duration")
	assert.NotContains(t, joined, "chat.turn")
}

func TestTracerProviderInstalled(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs, err := NewWithRegisterer("food-assistant-test", prometheus.NewRegistry(), sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	defer obs.Shutdown()

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "op", recorder.Ended()[0].Name())
}

func TestNilObservabilityIsSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordTurn(context.Background(), "fallback", time.Millisecond)
		obs.Shutdown()
	})
}
