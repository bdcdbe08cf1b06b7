package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
)

// GatewayMetrics captures low-cardinality metrics for outbound WidePay calls.
type GatewayMetrics struct {
	callDuration metric.Float64Histogram
	callErrors   metric.Int64Counter
}

// NewGatewayMetrics creates the gateway call instruments.
func NewGatewayMetrics() (*GatewayMetrics, error) {
	meter := otel.GetMeterProvider().Meter("widepay/gateway")

	callDuration, err := meter.Float64Histogram("gateway.call.duration_ms")
	if err != nil {
		return nil, err
	}
	callErrors, err := meter.Int64Counter("gateway.call.errors")
	if err != nil {
		return nil, err
	}

	return &GatewayMetrics{
		callDuration: callDuration,
		callErrors:   callErrors,
	}, nil
}

// RecordCall records one completed gateway request. A transport failure is
// recorded with status 0.
func (m *GatewayMetrics) RecordCall(ctx context.Context, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("route", normalizeRoute(route)),
		attribute.String("status_code", strconv.Itoa(status)),
	}
	m.callDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if status == 0 {
		m.callErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func normalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return "unknown"
	}
	return route
}

var Module = fx.Module("metrics",
	fx.Provide(NewGatewayMetrics),
)
