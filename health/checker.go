package health

import (
	"context"
	"encoding/json"
)

// Status represents the health status reported for a component.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusOK is equivalent to StatusHealthy; some probes report "ok".
	StatusOK
	// StatusWarning indicates the component is functioning but needs attention.
	StatusWarning
	// StatusDegraded indicates the component is functioning with reduced capability.
	StatusDegraded
	// StatusUnhealthy indicates the component is not functioning properly.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Passing reports whether the status counts as passing for readiness.
// Only healthy and ok pass; everything else blocks readiness.
func (s Status) Passing() bool {
	return s == StatusHealthy || s == StatusOK
}

// MarshalJSON encodes the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Outcome is the result a probe produces for one component.
// An Outcome is created fresh on every execution and never mutated afterwards.
type Outcome struct {
	// Status is the probe's classification of the component.
	Status Status

	// Details provides human-readable context about the status.
	Details string

	// Error is the failure message when the component is not healthy.
	Error string

	// ResponseTimeMillis is how long the check took. When zero, the
	// executor fills it in with the measured elapsed time.
	ResponseTimeMillis int64

	// Extra holds probe-specific fields. They are flattened into the
	// component's JSON object; well-known fields win on collision.
	Extra map[string]any
}

// Healthy creates a healthy outcome.
func Healthy(details string) Outcome {
	return Outcome{Status: StatusHealthy, Details: details}
}

// OK creates an ok outcome.
func OK(details string) Outcome {
	return Outcome{Status: StatusOK, Details: details}
}

// Warning creates a warning outcome.
func Warning(details string) Outcome {
	return Outcome{Status: StatusWarning, Details: details}
}

// Degraded creates a degraded outcome.
func Degraded(details string) Outcome {
	return Outcome{Status: StatusDegraded, Details: details}
}

// Unhealthy creates an unhealthy outcome. The error may be nil.
func Unhealthy(details string, err error) Outcome {
	o := Outcome{Status: StatusUnhealthy, Details: details}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// WithExtra attaches probe-specific fields to an outcome.
func (o Outcome) WithExtra(extra map[string]any) Outcome {
	o.Extra = extra
	return o
}

// Probe is the interface for component health checks.
//
// Contract:
// - Concurrency: a probe may be invoked from concurrent aggregation passes.
// - Context: Check must honor cancellation; the executor withdraws the
//   context when the probe's deadline elapses.
// - Errors: returning an error is equivalent to an unhealthy outcome; the
//   message is preserved in the normalized result.
type Probe interface {
	// Name returns the component name this probe checks.
	Name() string

	// Check performs the health check.
	Check(ctx context.Context) (Outcome, error)
}

// ProbeFunc is an adapter to allow ordinary functions to be used as Probes.
type ProbeFunc struct {
	name string
	fn   func(context.Context) (Outcome, error)
}

// NewProbeFunc creates a new ProbeFunc.
func NewProbeFunc(name string, fn func(context.Context) (Outcome, error)) *ProbeFunc {
	return &ProbeFunc{name: name, fn: fn}
}

// Name returns the component name this probe checks.
func (f *ProbeFunc) Name() string {
	return f.name
}

// Check performs the health check.
func (f *ProbeFunc) Check(ctx context.Context) (Outcome, error) {
	return f.fn(ctx)
}
