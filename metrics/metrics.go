// Package metrics exposes Prometheus collectors for the audit service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalidURL  = "invalid_url"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeParseFailed = "parse_failed"
)

var (
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webcheck_analyses_total",
			Help: "Total number of page analyses, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	analysisDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webcheck_analysis_duration_seconds",
			Help:    "Histogram of end-to-end analysis latency including fetch and link probes.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
	)

	linkProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webcheck_link_probes_total",
			Help: "Total number of link liveness probes, labeled by scope and result.",
		},
		[]string{"scope", "result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webcheck_http_requests_total",
			Help: "Total number of HTTP requests served, labeled by method, route and code.",
		},
		[]string{"method", "route", "code"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webcheck_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method and route.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "route"},
	)
)

// ObserveAnalysis records one finished analysis.
func ObserveAnalysis(outcome string, duration time.Duration) {
	analysesTotal.WithLabelValues(outcome).Inc()
	analysisDurationSeconds.Observe(duration.Seconds())
}

// ObserveLinkProbe records one probe; scope is "internal" or "external".
func ObserveLinkProbe(scope string, broken bool) {
	result := "ok"
	if broken {
		result = "broken"
	}
	linkProbesTotal.WithLabelValues(scope, result).Inc()
}

// ObserveHTTPRequest records a served request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if route == "" {
		route = "unknown"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
