package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan_RecordsOnGlobalProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := NewProvider("archia-test", 1, sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	_, span := StartSpan(context.Background(), "story.like", trace.WithAttributes(attribute.Int64("story.id", 7)))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "story.like", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("story.id", 7))

	name, ok := ended[0].Resource().Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "archia-test", name.AsString())
}

func TestNewProvider_ZeroRateDropsRootSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := NewProvider("archia-test", 0, sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "dropped")
	span.End()

	assert.Empty(t, recorder.Ended())
}

func TestInitTracing_Shutdown(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	tp, err := InitTracing(context.Background(), Options{
		ServiceName: "archia-test",
		Endpoint:    "localhost:4318",
		SampleRate:  1,
		Insecure:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.Same(t, tp, otel.GetTracerProvider())
	assert.NoError(t, tp.Shutdown(context.Background()))
}
