package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded by the HTTP service.
type Metrics struct {
	requestTotal       metric.Int64Counter
	requestDuration    metric.Float64Histogram
	requestActive      metric.Int64UpDownCounter
	validationTotal    metric.Int64Counter
	validationDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter("http.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("http.request.duration",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.request.duration histogram: %w", err)
	}

	requestActive, err := meter.Int64UpDownCounter("http.request.active",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.request.active counter: %w", err)
	}

	validationTotal, err := meter.Int64Counter("oidc.validation.total",
		metric.WithDescription("Token validations by provider and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating oidc.validation.total counter: %w", err)
	}

	validationDuration, err := meter.Float64Histogram("oidc.validation.duration",
		metric.WithDescription("Duration of token validations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating oidc.validation.duration histogram: %w", err)
	}

	return &Metrics{
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestActive:      requestActive,
		validationTotal:    validationTotal,
		validationDuration: validationDuration,
	}, nil
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements in-flight requests and records the completed one.
func (m *Metrics) RecordRequestEnd(ctx context.Context, route string, status int, duration time.Duration) {
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("route", route),
	))
}

// RecordValidation records one validation. outcome is "ok" or an error code.
func (m *Metrics) RecordValidation(ctx context.Context, provider, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	m.validationTotal.Add(ctx, 1, attrs)
	m.validationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}
