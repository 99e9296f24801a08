package health

import (
	"encoding/json"
	"time"
)

// ReportType selects one of the three report shapes.
type ReportType string

const (
	// ReportLiveness answers "is the process alive" with no component checks.
	ReportLiveness ReportType = "liveness"
	// ReportDetailed runs every registered probe and adds memory stats.
	ReportDetailed ReportType = "detailed"
	// ReportReady runs only critical readiness-eligible probes.
	ReportReady ReportType = "ready"
)

// LivenessReport is the cheapest report shape. Its field names are the wire
// contract for liveness consumers.
type LivenessReport struct {
	Status        Status    `json:"status"`
	Service       string    `json:"service"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
}

// MemoryReport classifies process memory usage.
type MemoryReport struct {
	HeapUsedMB   float64 `json:"heapUsedMB"`
	HeapTotalMB  float64 `json:"heapTotalMB"`
	ExternalMB   float64 `json:"externalMB"`
	RSSMB        float64 `json:"rssMB"`
	UsagePercent float64 `json:"usagePercent"`
	Status       Status  `json:"status"`
}

// DetailedReport is the full report over all registered probes.
type DetailedReport struct {
	Status        Status                     `json:"status"`
	Service       string                     `json:"service"`
	Timestamp     time.Time                  `json:"timestamp"`
	Version       string                     `json:"version"`
	UptimeSeconds float64                    `json:"uptimeSeconds"`
	Memory        MemoryReport               `json:"memory"`
	Components    map[string]ComponentReport `json:"components"`
}

// ReadinessReport is the success shape of a readiness pass. A failed pass is
// surfaced as ErrNotReady, not as a payload.
type ReadinessReport struct {
	Status             string    `json:"status"`
	Service            string    `json:"service"`
	Timestamp          time.Time `json:"timestamp"`
	CriticalComponents int       `json:"criticalComponents,omitempty"`
}

// StatusReady is the Status field value of a successful readiness report.
const StatusReady = "ready"

// MarshalJSON flattens the outcome's Extra fields into the component object.
// Well-known fields win when a probe-specific key collides with one of them.
func (r ComponentReport) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(r.Extra)+6)
	for k, v := range r.Extra {
		obj[k] = v
	}

	obj["status"] = r.Status.String()
	if r.Details != "" {
		obj["details"] = r.Details
	}
	if r.Error != "" {
		obj["error"] = r.Error
	}
	if r.ResponseTimeMillis != 0 {
		obj["responseTimeMillis"] = r.ResponseTimeMillis
	}
	obj["critical"] = r.Critical
	obj["timeoutMillis"] = r.TimeoutMillis

	return json.Marshal(obj)
}
