package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// counterValue reads a counter from the default registry by name and labels
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/medicines/{action}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	labels := map[string]string{"method": "GET", "path": "/medicines/{action}", "status": "418"}
	before := counterValue(t, "http_request_total", labels)

	for _, target := range []string{"/medicines/update?name=a", "/medicines/delete?name=b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	if got := counterValue(t, "http_request_total", labels) - before; got != 2 {
		t.Errorf("request total increased by %v, want 2", got)
	}
}

func TestMetricsMiddlewareUnmatched(t *testing.T) {
	labels := map[string]string{"method": "GET", "path": "unmatched", "status": "404"}
	before := counterValue(t, "http_request_total", labels)

	Metrics(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := counterValue(t, "http_request_total", labels) - before; got != 1 {
		t.Errorf("unmatched total increased by %v, want 1", got)
	}
}

func TestObserveMutation(t *testing.T) {
	labels := map[string]string{"action": "delete", "result": ResultCancelled}
	before := counterValue(t, "mutation_total", labels)

	ObserveMutation("delete", ResultCancelled)

	if got := counterValue(t, "mutation_total", labels) - before; got != 1 {
		t.Errorf("mutation total increased by %v, want 1", got)
	}
}
