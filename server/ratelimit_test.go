package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestGetTokenCost(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   int64
	}{
		{http.MethodGet, "/health", 0},
		{http.MethodGet, "/metrics", 0},
		{http.MethodGet, "/static/style.css", 0},
		{http.MethodGet, "/", 5},
		{http.MethodGet, "/medicines/delete", 2},
		{http.MethodPost, "/medicines", 20},
		{http.MethodPost, "/medicines/update", 20},
		{http.MethodGet, "/unknown", 10},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if got := getTokenCost(req); got != tt.want {
				t.Errorf("getTokenCost() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRateLimiterRejectsWhenExhausted(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := 0
	for range 20 {
		req := httptest.NewRequest(http.MethodPost, "/medicines", nil)
		req.RemoteAddr = "127.0.0.1"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusOK {
			allowed++
			continue
		}
		if rr.Code != http.StatusTooManyRequests {
			t.Fatalf("unexpected status %d", rr.Code)
		}
		if rr.Header().Get("Retry-After") == "" {
			t.Error("missing Retry-After header")
		}
	}

	// 300 tokens at 20 per mutation, plus whatever refilled meanwhile
	if allowed < 15 || allowed >= 20 {
		t.Errorf("allowed %d mutations, want 15..19", allowed)
	}
}

func TestRateLimiterFreeRoutesSkipBuckets(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "127.0.0.1"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if rl.Clients() != 0 {
		t.Errorf("Clients() = %d, want 0", rl.Clients())
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	rl.getBucket("10.0.0.1")
	used := rl.getBucket("10.0.0.2")
	used.TakeAvailable(100)

	if removed := rl.cleanup(); removed != 1 {
		t.Errorf("cleanup() removed %d, want 1", removed)
	}
	if rl.Clients() != 1 {
		t.Errorf("Clients() = %d, want 1", rl.Clients())
	}
}

func TestRateLimiterStopReleasesGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rl := NewRateLimiter(5 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	rl.Stop()
	rl.Stop()
}
