// Package health reports whether the console can reach its backend.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/medicines-admin/interfaces"
)

// staleFactor is how many probe intervals may pass before the last probe is
// considered stale
const staleFactor = 3

var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	probes   interfaces.ProbeStore
	board    interfaces.BoardReader
	interval time.Duration
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(probes interfaces.ProbeStore, board interfaces.BoardReader, interval time.Duration) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		probes:   probes,
		board:    board,
		interval: interval,
	}
}

// ProbeInterval returns how often the backend is probed
func (h *HealthCheckerImpl) ProbeInterval() time.Duration {
	return h.interval
}

// HealthCheck returns the health label, its details and the HTTP status for /health
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	probe := h.probes.LastProbe()
	snap := h.board.Snapshot()

	data = map[string]any{
		"table_state": string(snap.State),
		"rows":        len(snap.Table.Rows),
	}
	if !snap.LastLoaded.IsZero() {
		data["last_loaded"] = snap.LastLoaded.Format(time.RFC3339)
	}

	if probe.At.IsZero() {
		data["backend_reachable"] = nil
		return "degraded", data, http.StatusOK
	}

	probeAge := time.Since(probe.At)
	data["last_probe"] = probe.At.Format(time.RFC3339)
	data["probe_age_seconds"] = math.Round(probeAge.Seconds()*10) / 10
	data["backend_reachable"] = probe.OK
	if probe.Error != "" {
		data["backend_error"] = probe.Error
	}

	switch {
	case !probe.OK:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case h.interval > 0 && probeAge > staleFactor*h.interval:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	return status, data, httpStatus
}
