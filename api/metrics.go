package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Arham2306/Focus-Flow-Web-App/telemetry"
)

const (
	tracerName         = "focusflow/api"
	requestSpanName    = "focusflow.http.request"
	requestEventName   = "focusflow.request"
	requestEventDomain = "focusflow.api"
	metricsKey         = "focusflow.metrics"
)

// requestMetrics collects what a single request did and reports it once as
// an observability event on its span.
type requestMetrics struct {
	logger      *log.Logger
	span        trace.Span
	ctx         context.Context
	start       time.Time
	route       string
	method      string
	resultCount int
	hasCount    bool
	errorStage  string
}

func newRequestMetrics(ctx context.Context, logger *log.Logger, method, route string) *requestMetrics {
	ctx, span := otel.Tracer(tracerName).Start(ctx, requestSpanName, trace.WithAttributes(
		attribute.String("http.route", route),
		attribute.String("http.method", method),
	))
	return &requestMetrics{
		logger: logger,
		span:   span,
		ctx:    ctx,
		start:  time.Now(),
		route:  route,
		method: method,
	}
}

func (m *requestMetrics) SetResultCount(n int) {
	if n < 0 {
		n = 0
	}
	m.resultCount = n
	m.hasCount = true
}

func (m *requestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log ends the span and emits the event.
func (m *requestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.route", m.route),
		attribute.String("http.method", m.method),
		attribute.Int("http.status_code", status),
		attribute.Float64("focusflow.request.total_ms", durationToMillis(time.Since(m.start))),
	}
	if m.hasCount {
		attrs = append(attrs, attribute.Int("focusflow.request.results", m.resultCount))
	}
	if m.errorStage != "" {
		attrs = append(attrs, attribute.String("focusflow.request.error_stage", m.errorStage))
	}

	telemetry.Emit(m.ctx, m.logger, telemetry.Event{
		Name:       requestEventName,
		Domain:     requestEventDomain,
		Status:     status,
		Err:        err,
		Attributes: attrs,
	})

	m.span.SetAttributes(attrs...)
	switch {
	case err != nil:
		m.span.RecordError(err)
		m.span.SetStatus(codes.Error, err.Error())
	case status >= http.StatusInternalServerError:
		m.span.SetStatus(codes.Error, http.StatusText(status))
	default:
		m.span.SetStatus(codes.Ok, "")
	}
	m.span.End()
}

// RequestMetrics wraps every request in a span and reports it through
// telemetry.Emit.
func RequestMetrics(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			m := newRequestMetrics(req.Context(), logger, req.Method, c.Path())
			c.SetRequest(req.WithContext(m.ctx))
			c.Set(metricsKey, m)

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			m.Log(status, err)
			return err
		}
	}
}

func metricsFrom(c echo.Context) *requestMetrics {
	m, _ := c.Get(metricsKey).(*requestMetrics)
	return m
}

func setErrorStage(c echo.Context, stage string) {
	if m := metricsFrom(c); m != nil {
		m.SetErrorStage(stage)
	}
}

func setResultCount(c echo.Context, n int) {
	if m := metricsFrom(c); m != nil {
		m.SetResultCount(n)
	}
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
