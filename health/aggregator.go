package health

import (
	"context"
	"sync"
)

// runFunc executes one probe definition and returns its report. The service
// substitutes an instrumented variant when telemetry is configured.
type runFunc func(ctx context.Context, def Definition) ComponentReport

// collect runs every definition concurrently and waits for all of them to
// settle. A failing or slow probe never prevents the others from completing
// or being reported; each goroutine writes exactly one entry.
func collect(ctx context.Context, defs []Definition, run runFunc) map[string]ComponentReport {
	results := make(map[string]ComponentReport, len(defs))
	if len(defs) == 0 {
		return results
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, def := range defs {
		wg.Add(1)
		go func(def Definition) {
			defer wg.Done()
			report := run(ctx, def)
			mu.Lock()
			results[def.Name] = report
			mu.Unlock()
		}(def)
	}

	wg.Wait()
	return results
}

// ResolveStatus computes the overall status from a set of component reports.
// Returns StatusUnhealthy if any critical component is unhealthy.
// Returns StatusDegraded if any component is unhealthy (non-critical),
// warning, or degraded.
// Returns StatusHealthy otherwise, including for an empty set.
// The result does not depend on iteration order.
func ResolveStatus(results map[string]ComponentReport) Status {
	overall := StatusHealthy
	for _, report := range results {
		switch report.Status {
		case StatusUnhealthy:
			if report.Critical {
				return StatusUnhealthy
			}
			overall = StatusDegraded
		case StatusWarning, StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}
