// Package metrics exposes the crawler's ambient Prometheus surface:
// counters for resolver calls and cache hits/misses, a breakdown of
// reports by kind and severity, and gauges for in-flight workers and
// pending nodes. It is observability only; nothing here feeds back
// into crawl decisions (that stays pkg/crawl.ProgressSink, a plain Go
// interface so test doubles are trivial).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ResolverCallsTotal counts every call to the resolver helper, by
	// outcome: "success", "nonzero_exit", "spawn_failure", "io_failure".
	ResolverCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "addoncrawl_resolver_calls_total",
			Help: "Total number of resolver helper invocations by outcome",
		},
		[]string{"outcome"},
	)

	ResolverCallDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "addoncrawl_resolver_call_duration_seconds",
			Help:    "Time taken by one resolver helper invocation, cache misses only",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "addoncrawl_cache_hits_total",
			Help: "Total number of resolver cache hits",
		},
	)

	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "addoncrawl_cache_misses_total",
			Help: "Total number of resolver cache misses",
		},
	)

	// ReportsTotal counts reports emitted during a crawl, by kind and
	// severity (e.g. kind="resolver_failure", severity="error").
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "addoncrawl_reports_total",
			Help: "Total number of reports emitted by kind and severity",
		},
		[]string{"kind", "severity"},
	)

	NodesVisitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "addoncrawl_nodes_visited_total",
			Help: "Total number of nodes whose visit step has completed",
		},
	)

	// WorkersActive is the number of crawl worker goroutines currently
	// holding an admission slot.
	WorkersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "addoncrawl_workers_active",
			Help: "Number of crawl workers currently holding an admission slot",
		},
	)

	// NodesPending is the number of enumerated-but-not-yet-finished
	// child nodes, a rough backlog gauge for the running crawl.
	NodesPending = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "addoncrawl_nodes_pending",
			Help: "Number of nodes enumerated but not yet finished",
		},
	)
)

func init() {
	prometheus.MustRegister(ResolverCallsTotal)
	prometheus.MustRegister(ResolverCallDuration)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(ReportsTotal)
	prometheus.MustRegister(NodesVisitedTotal)
	prometheus.MustRegister(WorkersActive)
	prometheus.MustRegister(NodesPending)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a small helper for timing one resolver call.
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created. Safe
// to call more than once; each call reflects the time elapsed so far.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(t.Duration().Seconds())
}

func (t *Timer) ObserveDurationVec(histogram *prometheus.HistogramVec, labelValues ...string) {
	histogram.WithLabelValues(labelValues...).Observe(t.Duration().Seconds())
}
