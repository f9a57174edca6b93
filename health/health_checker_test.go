package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/giygas/medicines-admin/data"
	"github.com/giygas/medicines-admin/entities"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		probe      *entities.ProbeResult
		wantStatus string
		wantHTTP   int
	}{
		{
			name:       "never probed",
			wantStatus: "degraded",
			wantHTTP:   http.StatusOK,
		},
		{
			name:       "reachable",
			probe:      &entities.ProbeResult{At: time.Now(), OK: true},
			wantStatus: "healthy",
			wantHTTP:   http.StatusOK,
		},
		{
			name:       "unreachable",
			probe:      &entities.ProbeResult{At: time.Now(), OK: false, Error: "connection refused"},
			wantStatus: "unhealthy",
			wantHTTP:   http.StatusServiceUnavailable,
		},
		{
			name:       "stale",
			probe:      &entities.ProbeResult{At: time.Now().Add(-10 * time.Minute), OK: true},
			wantStatus: "degraded",
			wantHTTP:   http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := data.NewBoard()
			if tt.probe != nil {
				board.RecordProbe(*tt.probe)
			}
			checker := NewHealthChecker(board, board, time.Minute)

			status, details, code := checker.HealthCheck()

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if code != tt.wantHTTP {
				t.Errorf("http status = %d, want %d", code, tt.wantHTTP)
			}
			if details["table_state"] != string(entities.LoadIdle) {
				t.Errorf("table_state = %v, want idle", details["table_state"])
			}
		})
	}
}

func TestHealthCheckDetails(t *testing.T) {
	board := data.NewBoard()
	board.ReplaceTable(entities.Table{Rows: []entities.DisplayRow{{Index: 1}, {Index: 2}}})
	board.SetLoadState(entities.LoadLoaded)
	board.RecordProbe(entities.ProbeResult{At: time.Now(), OK: false, Error: "GET /report/average-price: unexpected status 500"})

	_, details, _ := NewHealthChecker(board, board, time.Minute).HealthCheck()

	if details["rows"] != 2 {
		t.Errorf("rows = %v, want 2", details["rows"])
	}
	if details["backend_reachable"] != false {
		t.Errorf("backend_reachable = %v, want false", details["backend_reachable"])
	}
	if _, ok := details["backend_error"]; !ok {
		t.Error("expected backend_error in details")
	}
	if _, ok := details["last_loaded"]; !ok {
		t.Error("expected last_loaded in details")
	}
}

func TestProbeInterval(t *testing.T) {
	board := data.NewBoard()
	if got := NewHealthChecker(board, board, 5*time.Second).ProbeInterval(); got != 5*time.Second {
		t.Errorf("ProbeInterval() = %v, want 5s", got)
	}
}
