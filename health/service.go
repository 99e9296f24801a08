package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/probekit/cache"
	"github.com/jonwraymond/probekit/observe"
)

// Defaults applied by New when Config fields are left zero.
const (
	// DefaultCacheTTL is the default staleness bound for cached reports.
	DefaultCacheTTL = 5 * time.Second

	// DefaultTimeout is the default per-probe execution deadline.
	DefaultTimeout = 3 * time.Second

	// DefaultMemoryWarningPercent is the heap usage percentage above which
	// the memory block classifies as warning.
	DefaultMemoryWarningPercent = 85.0
)

// Config configures a Service.
type Config struct {
	// Version is the free-form service version string reported by liveness
	// and detailed reports.
	Version string

	// CacheTTL is the maximum age of a cached report.
	// Default: 5 seconds.
	CacheTTL time.Duration

	// DefaultTimeout is the per-probe deadline used when a probe is added
	// without WithTimeout. Default: 3 seconds.
	DefaultTimeout time.Duration

	// MemoryWarningPercent is the heap usage percentage above which the
	// memory block classifies as warning. Default: 85.
	MemoryWarningPercent float64

	// Observer enables per-check tracing, metrics and logging when set.
	Observer observe.Observer
}

// Service aggregates the health of a set of independently defined probes
// into liveness, detailed and readiness reports.
type Service struct {
	name        string
	version     string
	startTime   time.Time
	warnPercent float64

	registry *Registry
	run      runFunc

	liveness  *cache.Memory[LivenessReport]
	detailed  *cache.Memory[DetailedReport]
	readiness *cache.Memory[ReadinessReport]
}

// New creates a health Service for the named service.
func New(name string, config ...Config) *Service {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = DefaultTimeout
	}
	if cfg.MemoryWarningPercent <= 0 {
		cfg.MemoryWarningPercent = DefaultMemoryWarningPercent
	}

	policy := cache.Policy{TTL: cfg.CacheTTL}

	s := &Service{
		name:        name,
		version:     cfg.Version,
		startTime:   time.Now(),
		warnPercent: cfg.MemoryWarningPercent,
		registry:    NewRegistry(cfg.DefaultTimeout),
		run:         execute,
		liveness:    cache.NewMemory[LivenessReport](policy),
		detailed:    cache.NewMemory[DetailedReport](policy),
		readiness:   cache.NewMemory[ReadinessReport](policy),
	}

	if cfg.Observer != nil {
		if mw, err := observe.MiddlewareFromObserver(cfg.Observer); err == nil {
			s.run = instrumented(mw)
		}
	}

	return s
}

// Name returns the service name.
func (s *Service) Name() string {
	return s.name
}

// Add registers a probe for the named component, replacing any existing one.
// Missing policy fields fall back to the configured defaults: critical=true,
// readiness-eligible=true, timeout=Config.DefaultTimeout.
func (s *Service) Add(name string, check func(context.Context) (Outcome, error), opts ...Option) *Service {
	return s.AddProbe(name, NewProbeFunc(name, check), opts...)
}

// AddProbe registers a Probe for the named component.
func (s *Service) AddProbe(name string, probe Probe, opts ...Option) *Service {
	s.registry.Add(name, probe, opts...)
	s.invalidate()
	return s
}

// Remove deregisters the named component. Removing an unknown name is a
// no-op.
func (s *Service) Remove(name string) *Service {
	s.registry.Remove(name)
	s.invalidate()
	return s
}

// invalidate drops the cached reports whose probe subset just changed.
// Liveness runs no probes, so its entry stays.
func (s *Service) invalidate() {
	s.detailed.Delete(string(ReportDetailed))
	s.readiness.Delete(string(ReportReady))
}

// Health produces the report for the requested type. Unknown report types
// fall back to liveness to keep the cheapest path maximally robust.
func (s *Service) Health(ctx context.Context, typ ReportType) (any, error) {
	switch typ {
	case ReportDetailed:
		return s.Detailed(ctx)
	case ReportReady:
		return s.Readiness(ctx)
	default:
		return s.Liveness(ctx), nil
	}
}

// Liveness reports that the process is alive. It runs no probes and no
// blocking I/O, so it can answer under load or partial outage.
func (s *Service) Liveness(ctx context.Context) LivenessReport {
	report, _ := s.liveness.GetOrCompute(ctx, string(ReportLiveness), func(context.Context) (LivenessReport, error) {
		now := time.Now()
		return LivenessReport{
			Status:        StatusHealthy,
			Service:       s.name,
			Timestamp:     now,
			Version:       s.version,
			UptimeSeconds: now.Sub(s.startTime).Seconds(),
		}, nil
	})
	return report
}

// Detailed runs every registered probe concurrently and combines their
// outcomes with the process memory classification. Within the cache TTL,
// concurrent and repeated calls return the same payload.
func (s *Service) Detailed(ctx context.Context) (DetailedReport, error) {
	return s.detailed.GetOrCompute(ctx, string(ReportDetailed), s.buildDetailed)
}

func (s *Service) buildDetailed(ctx context.Context) (DetailedReport, error) {
	components := collect(ctx, s.registry.List(), s.run)
	now := time.Now()

	return DetailedReport{
		Status:        ResolveStatus(components),
		Service:       s.name,
		Timestamp:     now,
		Version:       s.version,
		UptimeSeconds: now.Sub(s.startTime).Seconds(),
		Memory:        ClassifyMemory(ReadMemStats(), s.warnPercent),
		Components:    components,
	}, nil
}

// Readiness runs only critical, readiness-eligible probes. It returns
// ErrNotReady (wrapped with the failed count) when any of them fails, times
// out, or reports a non-passing status. With no eligible probes it reports
// ready without executing anything. Failed passes are never cached.
func (s *Service) Readiness(ctx context.Context) (ReadinessReport, error) {
	return s.readiness.GetOrCompute(ctx, string(ReportReady), s.buildReadiness)
}

func (s *Service) buildReadiness(ctx context.Context) (ReadinessReport, error) {
	defs := s.registry.ListReadiness()
	if len(defs) == 0 {
		return ReadinessReport{
			Status:    StatusReady,
			Service:   s.name,
			Timestamp: time.Now(),
		}, nil
	}

	results := collect(ctx, defs, s.run)

	failedCount := 0
	for _, report := range results {
		if !report.Status.Passing() {
			failedCount++
		}
	}
	if failedCount > 0 {
		return ReadinessReport{}, fmt.Errorf("%w: %d critical component(s) failed", ErrNotReady, failedCount)
	}

	return ReadinessReport{
		Status:             StatusReady,
		Service:            s.name,
		Timestamp:          time.Now(),
		CriticalComponents: len(defs),
	}, nil
}

// instrumented wraps the executor so every check execution is traced,
// measured and logged through the observe middleware.
func instrumented(mw *observe.Middleware) runFunc {
	return func(ctx context.Context, def Definition) ComponentReport {
		var report ComponentReport

		check := mw.Wrap(
			observe.CheckMeta{Component: def.Name, Critical: def.Critical},
			func(ctx context.Context) (string, error) {
				report = execute(ctx, def)
				if report.Error != "" {
					return report.Status.String(), errors.New(report.Error)
				}
				return report.Status.String(), nil
			},
		)

		_, _ = check(ctx)
		return report
	}
}
