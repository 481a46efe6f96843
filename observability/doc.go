// Package observability provides OpenTelemetry tracing and metrics for
// dispatched requests.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("order-sync"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewDispatchMetrics(observability.Meter("order-sync"))
//
// The dispatcher starts one "skyhub.request" span per call and records
// dispatch.total, dispatch.duration, dispatch.active and dispatch.failure.
package observability
