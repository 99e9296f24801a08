package health

import "errors"

var (
	// ErrCheckTimeout indicates a probe exceeded its deadline.
	ErrCheckTimeout = errors.New("health: check timed out")

	// ErrNotReady indicates one or more critical components failed the
	// readiness pass. It is wrapped with a count of the failed components.
	ErrNotReady = errors.New("health: service not ready")

	// ErrProbeNotFound indicates a probe was not found in the registry.
	ErrProbeNotFound = errors.New("health: probe not found")
)
