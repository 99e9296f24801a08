package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCollect_Empty(t *testing.T) {
	results := collect(context.Background(), nil, execute)

	if len(results) != 0 {
		t.Errorf("Expected 0 results, got %d", len(results))
	}
}

func TestCollect_AllSettle(t *testing.T) {
	defs := []Definition{
		definition("db", time.Second, func(ctx context.Context) (Outcome, error) {
			return Healthy("ok"), nil
		}),
		definition("cache", time.Second, func(ctx context.Context) (Outcome, error) {
			return Outcome{}, errors.New("down")
		}),
		definition("queue", time.Second, func(ctx context.Context) (Outcome, error) {
			return Warning("backlog"), nil
		}),
	}

	results := collect(context.Background(), defs, execute)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results["db"].Status != StatusHealthy {
		t.Errorf("db status = %v, want StatusHealthy", results["db"].Status)
	}
	if results["cache"].Status != StatusUnhealthy {
		t.Errorf("cache status = %v, want StatusUnhealthy", results["cache"].Status)
	}
	if results["queue"].Status != StatusWarning {
		t.Errorf("queue status = %v, want StatusWarning", results["queue"].Status)
	}
}

func TestCollect_FailureIsolation(t *testing.T) {
	defs := []Definition{
		definition("slow", 50*time.Millisecond, func(ctx context.Context) (Outcome, error) {
			<-ctx.Done()
			return Outcome{}, ctx.Err()
		}),
		definition("fast", time.Second, func(ctx context.Context) (Outcome, error) {
			return Healthy("ok"), nil
		}),
	}

	start := time.Now()
	results := collect(context.Background(), defs, execute)
	elapsed := time.Since(start)

	if results["fast"].Status != StatusHealthy {
		t.Errorf("fast status = %v, want StatusHealthy despite sibling timeout", results["fast"].Status)
	}
	if results["slow"].Status != StatusUnhealthy {
		t.Errorf("slow status = %v, want StatusUnhealthy", results["slow"].Status)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("pass took %v, should be bounded by the slowest probe's own deadline", elapsed)
	}
}

func TestCollect_RunsConcurrently(t *testing.T) {
	sleep := 50 * time.Millisecond
	var defs []Definition
	for _, name := range []string{"a", "b", "c", "d"} {
		defs = append(defs, definition(name, time.Second, func(ctx context.Context) (Outcome, error) {
			time.Sleep(sleep)
			return Healthy("ok"), nil
		}))
	}

	start := time.Now()
	results := collect(context.Background(), defs, execute)
	elapsed := time.Since(start)

	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	// Sequential execution would take 4x the sleep.
	if elapsed > 3*sleep {
		t.Errorf("pass took %v, probes should run concurrently", elapsed)
	}
}

func TestResolveStatus(t *testing.T) {
	critical := func(s Status) ComponentReport {
		return ComponentReport{Outcome: Outcome{Status: s}, Critical: true}
	}
	optional := func(s Status) ComponentReport {
		return ComponentReport{Outcome: Outcome{Status: s}, Critical: false}
	}

	tests := []struct {
		name    string
		results map[string]ComponentReport
		want    Status
	}{
		{
			name:    "empty",
			results: map[string]ComponentReport{},
			want:    StatusHealthy,
		},
		{
			name: "all healthy",
			results: map[string]ComponentReport{
				"a": critical(StatusHealthy),
				"b": optional(StatusOK),
			},
			want: StatusHealthy,
		},
		{
			name: "critical unhealthy",
			results: map[string]ComponentReport{
				"a": critical(StatusUnhealthy),
				"b": optional(StatusHealthy),
			},
			want: StatusUnhealthy,
		},
		{
			name: "critical unhealthy overrides degraded",
			results: map[string]ComponentReport{
				"a": optional(StatusUnhealthy),
				"b": critical(StatusUnhealthy),
			},
			want: StatusUnhealthy,
		},
		{
			name: "non-critical unhealthy",
			results: map[string]ComponentReport{
				"a": critical(StatusHealthy),
				"b": optional(StatusUnhealthy),
			},
			want: StatusDegraded,
		},
		{
			name: "warning",
			results: map[string]ComponentReport{
				"a": critical(StatusHealthy),
				"b": critical(StatusWarning),
			},
			want: StatusDegraded,
		},
		{
			name: "degraded component",
			results: map[string]ComponentReport{
				"a": critical(StatusDegraded),
			},
			want: StatusDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.results)
			if got != tt.want {
				t.Errorf("ResolveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}
