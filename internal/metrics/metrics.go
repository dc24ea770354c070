// Package metrics provides Prometheus instrumentation for the cap service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hockeycap_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hockeycap_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
	}, []string{"method", "path"})

	// RosterFetchFailures counts teams whose roster could not be fetched.
	RosterFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hockeycap_roster_fetch_failures_total",
		Help: "Roster fetches that failed, by team",
	}, []string{"team"})

	// SnapshotReads counts snapshot lookups by outcome (fresh, stale, miss).
	SnapshotReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hockeycap_snapshot_reads_total",
		Help: "Team snapshot cache lookups by outcome",
	}, []string{"outcome"})

	// ContractsImported counts contracts patched from external contract data.
	ContractsImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hockeycap_contracts_imported_total",
		Help: "Contracts overlaid from external contract data",
	}, []string{"team"})

	// SandboxSessions tracks open what-if sessions.
	SandboxSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hockeycap_sandbox_sessions",
		Help: "Number of open roster sandbox sessions",
	})

	// AssistantRequests counts assistant calls by kind and outcome.
	AssistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hockeycap_assistant_requests_total",
		Help: "Assistant calls by kind and outcome",
	}, []string{"kind", "outcome"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
