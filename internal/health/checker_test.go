package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/league-manager/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestChecker(deps ...health.Dependency) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return health.NewChecker(slog.Default(), reg, deps...), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	c, _ := newTestChecker(health.Ping("postgres", &mockPinger{err: errors.New("db down")}))

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
}

func TestReadiness_AllUp(t *testing.T) {
	c, reg := newTestChecker(
		health.Ping("postgres", &mockPinger{}),
		health.Dependency{Name: "schema", Check: func(context.Context) error { return nil }},
	)

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	for _, name := range []string{"postgres", "schema"} {
		if got := result.Checks[name].Status; got != "up" {
			t.Fatalf("expected %s up, got %q", name, got)
		}
		if gauge := testGauge(t, reg, "league_health_check_up", name); gauge != 1 {
			t.Fatalf("expected %s gauge 1, got %f", name, gauge)
		}
	}
}

func TestReadiness_SchemaMissing(t *testing.T) {
	c, reg := newTestChecker(
		health.Ping("postgres", &mockPinger{}),
		health.Dependency{Name: "schema", Check: func(context.Context) error { return errors.New("table games missing") }},
	)

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	if result.Checks["postgres"].Status != "up" {
		t.Fatal("postgres should still be reported up")
	}
	sc := result.Checks["schema"]
	if sc.Status != "down" || sc.Error == "" {
		t.Fatalf("expected schema down with error, got %+v", sc)
	}
	if gauge := testGauge(t, reg, "league_health_check_up", "schema"); gauge != 0 {
		t.Fatalf("expected gauge 0, got %f", gauge)
	}
}

func TestReadinessHandler_ReportsUnavailable(t *testing.T) {
	c, _ := newTestChecker(health.Ping("postgres", &mockPinger{err: errors.New("connection refused")}))

	w := httptest.NewRecorder()
	c.ReadinessHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var body health.HealthResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Checks["postgres"].Error != "connection refused" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestLivenessHandler_OK(t *testing.T) {
	c, _ := newTestChecker()

	w := httptest.NewRecorder()
	c.LivenessHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func testGauge(t *testing.T, reg *prometheus.Registry, name, depLabel string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == depLabel {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{dependency=%q} not found", name, depLabel)
	return 0
}
