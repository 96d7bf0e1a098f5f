// Package telemetry wires OpenTelemetry tracing to logrus.
package telemetry

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// EventMessage is the log message of every observability event.
const EventMessage = "observability.event"

// Setup installs a tracer provider that logs finished spans at debug level
// and returns its shutdown function.
func Setup(logger *log.Logger) (*sdktrace.TracerProvider, func(context.Context) error) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(NewLogExporter(logger))),
	)
	otel.SetTracerProvider(tp)
	return tp, tp.Shutdown
}

// LogExporter writes spans to a logrus logger.
type LogExporter struct {
	logger *log.Logger
}

func NewLogExporter(logger *log.Logger) *LogExporter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogExporter{logger: logger}
}

func (e *LogExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if !e.logger.IsLevelEnabled(log.DebugLevel) {
		return nil
	}
	for _, s := range spans {
		fields := log.Fields{
			"span.name":   s.Name(),
			"trace_id":    s.SpanContext().TraceID().String(),
			"span_id":     s.SpanContext().SpanID().String(),
			"duration_ms": durationToMillis(s.EndTime().Sub(s.StartTime())),
			"status":      s.Status().Code.String(),
		}
		if attrs := attributesToMap(s.Attributes()); len(attrs) > 0 {
			fields["attributes"] = attrs
		}
		if d := s.Status().Description; d != "" {
			fields["error"] = d
		}
		e.logger.WithFields(fields).Debug("span")
	}
	return nil
}

func (e *LogExporter) Shutdown(context.Context) error { return nil }

// Event is a structured observation attached to the current span and
// logged as EventMessage.
type Event struct {
	Name       string
	Domain     string
	Status     int
	Err        error
	Attributes []attribute.KeyValue
}

// Emit records ev on the span in ctx and logs it with a severity derived
// from the status and error.
func Emit(ctx context.Context, logger *log.Logger, ev Event) {
	text, number := SeverityForStatus(ev.Status, ev.Err)

	attrs := append([]attribute.KeyValue(nil), ev.Attributes...)
	if ev.Err != nil {
		attrs = append(attrs, attribute.String("error.message", ev.Err.Error()))
	}
	span := trace.SpanFromContext(ctx)
	span.AddEvent(EventMessage, trace.WithAttributes(append([]attribute.KeyValue{
		attribute.String("event.name", ev.Name),
		attribute.String("event.domain", ev.Domain),
		attribute.String("severity_text", text),
		attribute.Int("severity_number", number),
	}, attrs...)...))

	if logger == nil {
		return
	}
	fields := log.Fields{
		"event.name":      ev.Name,
		"event.domain":    ev.Domain,
		"attributes":      attributesToMap(attrs),
		"severity_text":   text,
		"severity_number": number,
	}
	if sc := span.SpanContext(); sc.IsValid() {
		fields["trace_id"] = sc.TraceID().String()
		fields["span_id"] = sc.SpanID().String()
	}
	entry := logger.WithFields(fields)
	switch {
	case number >= 17:
		entry.Error(EventMessage)
	case number >= 13:
		entry.Warn(EventMessage)
	default:
		entry.Info(EventMessage)
	}
}

// SeverityForStatus maps an HTTP status and error onto OpenTelemetry log
// severities.
func SeverityForStatus(status int, err error) (string, int) {
	switch {
	case status >= http.StatusInternalServerError || (err != nil && status < http.StatusBadRequest):
		return "ERROR", 17
	case status >= http.StatusBadRequest:
		return "WARN", 13
	default:
		return "INFO", 9
	}
}

func attributesToMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
