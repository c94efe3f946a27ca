package tracing

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

const (
	SpanTagUserEmail = "user-email"
	SpanTagStrategy  = "strategy"
	SpanTagRunId     = "run-id"
	SpanTagComponent = "component"
)

const (
	SpanTagComponentHttpClient = "httpClient"
	SpanTagComponentFileStore  = "fileStore"
	SpanTagComponentService    = "service"
)

func StartTracerSpan(ctx context.Context, operationName string) (opentracing.Span, context.Context) {
	serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
	return serverSpan, opentracing.ContextWithSpan(ctx, serverSpan)
}

func InjectSpanContextIntoHTTPRequest(req *http.Request, span opentracing.Span) *http.Request {
	if span != nil {
		tracer := span.Tracer()
		textMapCarrier := opentracing.HTTPHeadersCarrier(req.Header)

		if err := tracer.Inject(span.Context(), opentracing.HTTPHeaders, textMapCarrier); err != nil {
			// Header injection is best effort; the request is still usable.
			return req
		}
	}
	return req
}

func TraceErr(span opentracing.Span, err error, fields ...log.Field) {
	if span == nil || err == nil {
		return
	}
	// Log the error with the fields
	ext.LogError(span, err, fields...)
}

func LogObjectAsJson(span opentracing.Span, name string, object any) {
	if object == nil {
		span.LogFields(log.String(name, "nil"))
		return
	}
	jsonObject, err := json.Marshal(object)
	if err == nil {
		span.LogFields(log.String(name, string(jsonObject)))
	} else {
		span.LogFields(log.Object(name, object))
	}
}

func InjectTextMapCarrier(spanCtx opentracing.SpanContext) (opentracing.TextMapCarrier, error) {
	m := make(opentracing.TextMapCarrier)
	if err := opentracing.GlobalTracer().Inject(spanCtx, opentracing.TextMap, m); err != nil {
		return nil, err
	}
	return m, nil
}

func ExtractTextMapCarrier(spanCtx opentracing.SpanContext) opentracing.TextMapCarrier {
	textMapCarrier, err := InjectTextMapCarrier(spanCtx)
	if err != nil {
		return make(opentracing.TextMapCarrier)
	}
	return textMapCarrier
}

func GetTraceId(span opentracing.Span) string {
	tracingData := ExtractTextMapCarrier((span).Context())
	return strings.Split(tracingData["uber-trace-id"], ":")[0]
}

func TagUserEmail(span opentracing.Span, email string) {
	if email != "" {
		span.SetTag(SpanTagUserEmail, email)
	}
}

func TagStrategy(span opentracing.Span, strategy int) {
	span.SetTag(SpanTagStrategy, strategy)
}

func TagRunId(span opentracing.Span, runId string) {
	if runId != "" {
		span.SetTag(SpanTagRunId, runId)
	}
}

func TagComponentHttpClient(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentHttpClient)
}

func TagComponentFileStore(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentFileStore)
}

func TagComponentService(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentService)
}
