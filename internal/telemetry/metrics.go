package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution sources, used as the "source" label.
const (
	SourceAlias    = "alias"
	SourceLearned  = "learned"
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

var registry = prometheus.NewRegistry()

// Metrics is the global metrics registry.
var Metrics = struct {
	NamesResolved       *prometheus.CounterVec
	RowsNormalized      prometheus.Counter
	ConsensusRows       prometheus.Counter
	ConsensusDropped    prometheus.Counter
	ProviderChecks      *prometheus.CounterVec
	ProviderRequests    *prometheus.CounterVec
	ResolverConnections prometheus.Gauge
	ProviderLatency     *prometheus.HistogramVec
}{
	NamesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loteca_names_resolved_total",
		Help: "Team names resolved, by resolution source.",
	}, []string{"source"}),
	RowsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loteca_rows_normalized_total",
		Help: "Fixture rows passed through the canonicalizer.",
	}),
	ConsensusRows: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loteca_consensus_rows_total",
		Help: "Consensus rows written with at least two valid odds.",
	}),
	ConsensusDropped: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loteca_consensus_dropped_total",
		Help: "Consensus rows dropped for lack of valid odds.",
	}),
	ProviderChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loteca_provider_checks_total",
		Help: "Provider health checks, by outcome.",
	}, []string{"outcome"}),
	ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loteca_provider_requests_total",
		Help: "HTTP requests sent to API-Football, by endpoint and status code.",
	}, []string{"endpoint", "code"}),
	ResolverConnections: prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "loteca_resolver_ws_connections",
		Help: "Open resolver WebSocket connections.",
	}),
	ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loteca_provider_request_seconds",
		Help:    "API-Football round-trip time, excluding rate-limit waits.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"endpoint"}),
}

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		Metrics.NamesResolved,
		Metrics.RowsNormalized,
		Metrics.ConsensusRows,
		Metrics.ConsensusDropped,
		Metrics.ProviderChecks,
		Metrics.ProviderRequests,
		Metrics.ResolverConnections,
		Metrics.ProviderLatency,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
