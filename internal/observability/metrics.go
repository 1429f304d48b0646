package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names.
const (
	MetricRequests        = "timefmt.requests"
	MetricRequestDuration = "timefmt.request.duration"
)

// RequestMetrics records one count and one latency sample per served
// request.
type RequestMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRequestMetrics creates the request instruments on the global meter
// provider. Call after InitTelemetry so the instruments bind to it.
func NewRequestMetrics(scope string) (*RequestMetrics, error) {
	meter := otel.Meter(scope)

	requests, err := meter.Int64Counter(MetricRequests,
		metric.WithDescription("Requests served, by route and status."),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", MetricRequests, err)
	}

	duration, err := meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Request latency, by route and status."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", MetricRequestDuration, err)
	}

	return &RequestMetrics{requests: requests, duration: duration}, nil
}

// Record adds one request on route that finished with status after elapsed.
func (m *RequestMetrics) Record(ctx context.Context, route string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}
