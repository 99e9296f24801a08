// Package health aggregates the health of independently defined probes into
// standardized liveness, detailed and readiness reports.
//
// Probes run concurrently, each under its own deadline. A slow or failing
// probe never blocks the others: its result is normalized into an unhealthy
// outcome and the aggregation pass continues. Combined reports are cached
// for a short interval so probe storms do not hammer the underlying
// components.
//
// # Core Concepts
//
// A Probe checks one component and produces an Outcome with a Status:
// healthy, ok, warning, degraded or unhealthy. Each probe carries a policy:
// a critical flag, an execution deadline and readiness eligibility.
//
// The overall status of a detailed report follows fixed precedence rules:
// a critical unhealthy component forces unhealthy; any other unhealthy,
// warning or degraded component yields degraded; otherwise healthy.
//
// # Basic Usage
//
//	svc := health.New("orders-api", health.Config{Version: "1.4.2"})
//
//	svc.Add("database", func(ctx context.Context) (health.Outcome, error) {
//	    if err := db.PingContext(ctx); err != nil {
//	        return health.Outcome{}, err
//	    }
//	    return health.Healthy("database connected"), nil
//	}, health.WithTimeout(time.Second))
//
//	svc.Add("cache", pingCache, health.WithCritical(false))
//
//	report, err := svc.Detailed(ctx)
//
// # Report Types
//
// Liveness answers "is the process alive" without running any probe and
// without blocking I/O. Detailed runs every registered probe and adds a
// process memory classification. Readiness runs only critical,
// readiness-eligible probes and fails with ErrNotReady when any of them is
// not passing:
//
//	if _, err := svc.Readiness(ctx); errors.Is(err, health.ErrNotReady) {
//	    // answer 503, keep the pod out of rotation
//	}
//
// # HTTP Endpoints
//
// The package provides handlers for the common probe routes:
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, svc)
//	// /healthz -> liveness, /readyz -> readiness, /health -> detailed
//
// The detailed endpoint can be placed behind a bearer-token Guard when its
// component internals should not be public.
package health
