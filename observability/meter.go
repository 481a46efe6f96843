package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/skyhubkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Outcome labels for dispatch.total.
const (
	OutcomeSuccess   = "success"
	OutcomeException = "exception"
)

// DispatchMetrics holds the instruments recorded around every dispatched request.
type DispatchMetrics struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
	failures metric.Int64Counter
}

// NewDispatchMetrics creates dispatch instruments on the given meter.
func NewDispatchMetrics(meter metric.Meter) (*DispatchMetrics, error) {
	total, err := meter.Int64Counter("dispatch.total",
		metric.WithDescription("Total number of dispatched requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch.total counter: %w", err)
	}

	duration, err := meter.Float64Histogram("dispatch.duration",
		metric.WithDescription("Duration of dispatched requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch.duration histogram: %w", err)
	}

	active, err := meter.Int64UpDownCounter("dispatch.active",
		metric.WithDescription("Number of requests currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch.active gauge: %w", err)
	}

	failures, err := meter.Int64Counter("dispatch.failure",
		metric.WithDescription("Failed requests by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch.failure counter: %w", err)
	}

	return &DispatchMetrics{
		total:    total,
		duration: duration,
		active:   active,
		failures: failures,
	}, nil
}

// RecordStart increments the in-flight count.
func (m *DispatchMetrics) RecordStart(ctx context.Context) {
	m.active.Add(ctx, 1)
}

// RecordEnd decrements the in-flight count and records the completed request.
func (m *DispatchMetrics) RecordEnd(ctx context.Context, method, outcome string, duration time.Duration) {
	m.active.Add(ctx, -1)
	m.total.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
	))
}

// RecordFailure counts a failed request under its error code.
func (m *DispatchMetrics) RecordFailure(ctx context.Context, method, code string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("code", code),
	))
}
