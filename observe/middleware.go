package observe

import (
	"context"
	"time"
)

// CheckFunc is the signature of an instrumentable health check execution.
// It returns the outcome status string and the error, if any.
type CheckFunc func(ctx context.Context) (status string, err error)

// Middleware wraps check execution with observability (tracing, metrics,
// logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CheckFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated
//     unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a CheckFunc with tracing, metrics, and logging for one check.
func (m *Middleware) Wrap(meta CheckMeta, fn CheckFunc) CheckFunc {
	return func(ctx context.Context) (string, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		status, err := fn(ctx)
		duration := time.Since(start)

		m.tracer.EndSpan(span, status, err)
		m.metrics.RecordCheck(ctx, meta, duration, status, err)

		checkLogger := m.logger.WithCheck(meta)
		fields := []Field{
			{Key: "status", Value: status},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			checkLogger.Error(ctx, "health check failed", fields...)
		} else {
			checkLogger.Debug(ctx, "health check completed", fields...)
		}

		return status, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
