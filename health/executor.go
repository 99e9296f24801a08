package health

import (
	"context"
	"fmt"
	"time"
)

// ComponentReport is one component's outcome annotated with the execution
// policy it ran under. It is the per-component entry of a detailed report.
type ComponentReport struct {
	Outcome

	// Critical is the probe's critical flag at execution time.
	Critical bool

	// TimeoutMillis is the deadline the probe ran under.
	TimeoutMillis int64
}

// execute runs one probe under its definition's deadline and returns exactly
// one report: the probe's own outcome if it settles in time, or a normalized
// unhealthy report if it fails or the deadline elapses first. A probe that
// ignores the withdrawn context keeps running in the background; its result
// is discarded because the buffered channel frees the goroutine to exit.
func execute(ctx context.Context, def Definition) ComponentReport {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, def.Timeout)
	defer cancel()

	type settled struct {
		outcome Outcome
		err     error
	}
	done := make(chan settled, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- settled{err: fmt.Errorf("probe panicked: %v", r)}
			}
		}()
		outcome, err := def.Probe.Check(ctx)
		done <- settled{outcome: outcome, err: err}
	}()

	select {
	case s := <-done:
		if s.err != nil {
			return failed(def, s.err, time.Since(start))
		}
		outcome := s.outcome
		if outcome.ResponseTimeMillis == 0 {
			outcome.ResponseTimeMillis = time.Since(start).Milliseconds()
		}
		return annotate(def, outcome)
	case <-ctx.Done():
		err := fmt.Errorf("%w after %s", ErrCheckTimeout, def.Timeout)
		return failed(def, err, time.Since(start))
	}
}

// failed normalizes a probe failure or timeout into an unhealthy report.
func failed(def Definition, err error, elapsed time.Duration) ComponentReport {
	return annotate(def, Outcome{
		Status:             StatusUnhealthy,
		Details:            "Check failed: " + err.Error(),
		Error:              err.Error(),
		ResponseTimeMillis: elapsed.Milliseconds(),
	})
}

func annotate(def Definition, outcome Outcome) ComponentReport {
	return ComponentReport{
		Outcome:       outcome,
		Critical:      def.Critical,
		TimeoutMillis: def.Timeout.Milliseconds(),
	}
}
