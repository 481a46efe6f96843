package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		if got := samplerFor(tc.rate).Description(); got != tc.want {
			t.Errorf("rate %v: expected %q, got %q", tc.rate, tc.want, got)
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("order-sync", "1.2.3", "staging")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		found[kv.Key] = kv.Value.Emit()
	}
	if found["service.name"] != "order-sync" {
		t.Errorf("expected service.name, got %v", found)
	}
	if found["service.version"] != "1.2.3" || found["environment"] != "staging" {
		t.Errorf("unexpected attributes %v", found)
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("test-tracer") == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter("test-meter") == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestStartSpan_RecordsWithSDKProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer(InstrumentationName).Start(context.Background(), SpanRequest)
	span.SetAttributes(attribute.Int64(AttrRequestID, 1234567890))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != SpanRequest {
		t.Errorf("expected span %q, got %q", SpanRequest, ended[0].Name())
	}
	if ended[0].InstrumentationScope().Name != InstrumentationName {
		t.Errorf("unexpected scope %q", ended[0].InstrumentationScope().Name)
	}
}

func TestStartSpan_GlobalProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-operation")
	defer span.End()
	if span == nil || ctx == nil {
		t.Fatal("expected span and context")
	}
}

func TestDispatchMetrics_Noop(t *testing.T) {
	metrics, err := NewDispatchMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "GET", OutcomeSuccess, 100*time.Millisecond)
	metrics.RecordFailure(ctx, "GET", "TIMEOUT")
}

func TestDispatchMetrics_Collected(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewDispatchMetrics(mp.Meter(InstrumentationName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "GET", OutcomeSuccess, 20*time.Millisecond)
	metrics.RecordStart(ctx)
	metrics.RecordEnd(ctx, "POST", OutcomeException, 30*time.Millisecond)
	metrics.RecordFailure(ctx, "POST", "NOT_FOUND")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	sums := map[string]int64{}
	var histCount uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					histCount += dp.Count
				}
			}
		}
	}

	if sums["dispatch.total"] != 2 {
		t.Errorf("expected dispatch.total 2, got %d", sums["dispatch.total"])
	}
	if sums["dispatch.active"] != 0 {
		t.Errorf("expected dispatch.active 0, got %d", sums["dispatch.active"])
	}
	if sums["dispatch.failure"] != 1 {
		t.Errorf("expected dispatch.failure 1, got %d", sums["dispatch.failure"])
	}
	if histCount != 2 {
		t.Errorf("expected 2 duration samples, got %d", histCount)
	}
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")
	cfg.Environment = "test"

	tp, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Skipf("InitTracer failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")
	cfg.Interval = 0

	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Skipf("InitMeter failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
