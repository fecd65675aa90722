package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "league",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "league",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "league",
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})

	// Access control

	AuthAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "league",
		Name:      "auth_attempts_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	AuthzDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "league",
		Name:      "authz_decisions_total",
		Help:      "Authorization decisions on mutating operations.",
	}, []string{"action", "decision"})

	// Notifications

	EmailsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "league",
		Name:      "emails_sent_total",
		Help:      "Outgoing emails, by outcome.",
	}, []string{"outcome"})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"

	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		HTTPInFlight,
		AuthAttemptsTotal,
		AuthzDecisionsTotal,
		EmailsSentTotal,
	)
}

// Probes serves liveness and readiness next to /metrics.
type Probes interface {
	LivenessHandler() http.Handler
	ReadinessHandler() http.Handler
}

func NewServer(addr string, probes Probes) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", probes.LivenessHandler())
	mux.Handle("/readyz", probes.ReadinessHandler())
	return &http.Server{Addr: addr, Handler: mux}
}
