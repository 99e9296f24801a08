package health

import (
	"encoding/json"
	"errors"
	"net/http"
)

// LivenessHandler returns an HTTP handler for liveness probes.
// It always answers 200 with the liveness report.
func LivenessHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Liveness(r.Context()))
	}
}

// ReadinessHandler returns an HTTP handler for readiness probes.
// A not-ready condition answers 503 with the failure message.
func ReadinessHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.Readiness(r.Context())
		if err != nil {
			if errors.Is(err, ErrNotReady) {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// DetailedHandler returns an HTTP handler that provides the full report over
// all registered probes. An unhealthy overall status answers 503; degraded
// still answers 200.
func DetailedHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.Detailed(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": err.Error(),
			})
			return
		}

		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, report)
	}
}

// RegisterHandlers registers all health check handlers on the given mux.
func RegisterHandlers(mux *http.ServeMux, s *Service) {
	mux.HandleFunc("/healthz", LivenessHandler(s))
	mux.HandleFunc("/readyz", ReadinessHandler(s))
	mux.HandleFunc("/health", DetailedHandler(s))
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
