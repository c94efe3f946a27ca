package tracing

import (
	"net/http"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/jaeger-client-go"
)

func TestLogObjectAsJson_MarshalsObject(t *testing.T) {
	// Arrange
	tracer := mocktracer.New()
	span := tracer.StartSpan("test").(*mocktracer.MockSpan)

	// Act
	LogObjectAsJson(span, "payload", map[string]int{"opened": 1})
	span.Finish()

	// Assert
	logs := span.Logs()
	require.Len(t, logs, 1)
	require.Len(t, logs[0].Fields, 1)
	assert.Equal(t, "payload", logs[0].Fields[0].Key)
	assert.JSONEq(t, `{"opened":1}`, logs[0].Fields[0].ValueString)
}

func TestLogObjectAsJson_NilObjectLogsOnce(t *testing.T) {
	// Arrange
	tracer := mocktracer.New()
	span := tracer.StartSpan("test").(*mocktracer.MockSpan)

	// Act
	LogObjectAsJson(span, "payload", nil)
	span.Finish()

	// Assert
	logs := span.Logs()
	require.Len(t, logs, 1)
	require.Len(t, logs[0].Fields, 1)
	assert.Equal(t, "nil", logs[0].Fields[0].ValueString)
}

func TestInjectSpanContextIntoHTTPRequest(t *testing.T) {
	// Arrange
	tracer := mocktracer.New()
	span := tracer.StartSpan("test")
	req, err := http.NewRequest(http.MethodGet, "http://localhost/campaign/1", nil)
	require.NoError(t, err)

	// Act
	req = InjectSpanContextIntoHTTPRequest(req, span)

	// Assert
	assert.NotEmpty(t, req.Header.Get("Mockpfx-Ids-Traceid"))
}

func TestGetTraceId(t *testing.T) {
	// Arrange
	tracer, closer := jaeger.NewTracer("campaignstack-test",
		jaeger.NewConstSampler(true), jaeger.NewInMemoryReporter())
	t.Cleanup(func() { closer.Close() })

	previous := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	t.Cleanup(func() { opentracing.SetGlobalTracer(previous) })

	span := tracer.StartSpan("test")
	defer span.Finish()

	// Act
	traceID := GetTraceId(span)

	// Assert
	assert.NotEmpty(t, traceID)
}

func TestGetTraceId_NoopTracerIsEmpty(t *testing.T) {
	span := opentracing.NoopTracer{}.StartSpan("test")

	traceID := GetTraceId(span)

	assert.Empty(t, traceID)
}
