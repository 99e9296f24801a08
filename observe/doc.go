// Package observe provides telemetry for health check execution.
//
// It wires OpenTelemetry tracing and metrics with pluggable exporters (OTLP
// over gRPC, Prometheus, stdout) plus a structured JSON logger, and exposes
// a Middleware that wraps one check execution with a span, duration and
// error metrics, and a log line.
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "orders-api",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//
// Pass the Observer to the health service to instrument every probe
// execution with health.check.total, health.check.errors and
// health.check.duration_ms, and a health.check.<component> span.
package observe
