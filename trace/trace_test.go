package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTraceRequest(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	logger, _ := test.NewNullLogger()

	tr := NewTracer(logger, tp, map[string]string{"test_id": "home"})

	_, span := tr.TraceRequest(context.Background(), "abtest.experiment", "POST", "http://localhost/experiment")
	End(span, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "abtest.experiment", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)

	var attrs []string
	for _, a := range spans[0].Attributes {
		attrs = append(attrs, string(a.Key))
	}
	assert.Contains(t, attrs, "test_id")
	assert.Contains(t, attrs, "http.url")
}

func TestNoopTracer(t *testing.T) {
	t.Parallel()

	tr := NewNoopTracer()
	_, span := tr.TraceRequest(context.Background(), "abtest.conversion", "POST", "http://localhost/conversion")
	assert.False(t, span.IsRecording())
	assert.Empty(t, GetTraceID(span.SpanContext()))
	End(span, nil)
}
