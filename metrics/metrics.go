// metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "causeway_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "causeway_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AuthzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "causeway_authz_decisions_total",
		Help: "Scope checks by required scope and outcome.",
	}, []string{"scope", "allowed"})

	SubmissionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "causeway_submission_transitions_total",
		Help: "Submission state transitions by target status.",
	}, []string{"status"})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
