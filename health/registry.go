package health

import (
	"sync"
	"time"
)

// Definition binds a probe to its execution policy. Definitions are owned by
// the Registry; once added they are replaced wholesale, never mutated.
type Definition struct {
	// Name is the component name, unique within the registry.
	Name string

	// Probe produces the component's outcome.
	Probe Probe

	// Critical marks the component as one whose failure forces the overall
	// status to unhealthy and blocks readiness.
	Critical bool

	// Timeout is the deadline for one execution of the probe.
	Timeout time.Duration

	// ReadinessEligible includes the probe in the readiness subset.
	ReadinessEligible bool
}

// Option overrides one field of a Definition's policy at registration time.
type Option func(*Definition)

// WithCritical sets whether the probe is critical. Default: true.
func WithCritical(critical bool) Option {
	return func(d *Definition) { d.Critical = critical }
}

// WithTimeout sets the probe's execution deadline.
// Default: the registry's default timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Definition) {
		if timeout > 0 {
			d.Timeout = timeout
		}
	}
}

// WithReadiness sets whether the probe participates in readiness.
// Default: true.
func WithReadiness(eligible bool) Option {
	return func(d *Definition) { d.ReadinessEligible = eligible }
}

// Registry holds probe definitions keyed by component name.
type Registry struct {
	defaultTimeout time.Duration

	mu    sync.RWMutex
	defs  map[string]Definition
	order []string // registration order, fixes result assembly iteration
}

// NewRegistry creates a registry whose probes default to the given timeout.
func NewRegistry(defaultTimeout time.Duration) *Registry {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTimeout
	}
	return &Registry{
		defaultTimeout: defaultTimeout,
		defs:           make(map[string]Definition),
	}
}

// Add inserts or replaces a probe definition. Policy defaults are applied
// here: critical=true, readiness-eligible=true, timeout=registry default.
func (r *Registry) Add(name string, probe Probe, opts ...Option) {
	def := Definition{
		Name:              name,
		Probe:             probe,
		Critical:          true,
		Timeout:           r.defaultTimeout,
		ReadinessEligible: true,
	}
	for _, opt := range opts {
		opt(&def)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.defs[name] = def
}

// Remove deletes a probe definition by name. Removing an unknown name is a
// no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[name]; !exists {
		return
	}
	delete(r.defs, name)

	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the definition for a component name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	return def, ok
}

// Len returns the number of registered probes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.defs)
}

// List returns a snapshot of all definitions in registration order. The
// snapshot is a copy; concurrent Add/Remove calls do not affect it.
func (r *Registry) List() []Definition {
	return r.snapshot(func(Definition) bool { return true })
}

// ListReadiness returns a snapshot of the definitions that gate readiness:
// critical and readiness-eligible.
func (r *Registry) ListReadiness() []Definition {
	return r.snapshot(func(d Definition) bool {
		return d.Critical && d.ReadinessEligible
	})
}

func (r *Registry) snapshot(keep func(Definition) bool) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		if def, ok := r.defs[name]; ok && keep(def) {
			defs = append(defs, def)
		}
	}
	return defs
}
