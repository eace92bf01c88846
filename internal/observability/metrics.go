package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "psws_spots"

// Metrics holds the Prometheus counters, histograms, and gauges for the spot feeds.
type Metrics struct {
	FeedRequests  *prometheus.CounterVec   // labels: projection={detail,summary}
	SpotsServed   *prometheus.CounterVec   // labels: projection
	QueryDuration *prometheus.HistogramVec // labels: projection
	StoreErrors   prometheus.Counter

	// Enrichment metrics.
	Degraded   *prometheus.CounterVec // labels: kind={geocode,zone_miss,band_miss,parse}
	ZoneCache  *prometheus.CounterVec // labels: set={cq,itu,country,continent}, result={hit,miss}
	ZoneLoaded *prometheus.GaugeVec   // labels: set
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Feed requests by projection.",
		}, []string{"projection"}),
		SpotsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spots_served_total",
			Help:      "Enriched spots returned by projection.",
		}, []string{"projection"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_query_duration_seconds",
			Help:      "Spot store query duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"projection"}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Spot store queries that failed.",
		}),
		Degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_total",
			Help:      "Records or requests served with fallback values, by kind.",
		}, []string{"kind"}),
		ZoneCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zone_cache_total",
			Help:      "Zone resolution cache lookups by zone set and result.",
		}, []string{"set", "result"}),
		ZoneLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zones_loaded",
			Help:      "Zones loaded per boundary dataset.",
		}, []string{"set"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedRequests,
		m.SpotsServed,
		m.QueryDuration,
		m.StoreErrors,
		m.Degraded,
		m.ZoneCache,
		m.ZoneLoaded,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// RecordDegraded implements domain.DegradationRecorder.
func (m *Metrics) RecordDegraded(kind string) {
	m.Degraded.WithLabelValues(kind).Inc()
}

// ZoneCacheObserver returns a hook for zone.NewCachedResolver that counts
// lookups for one zone set.
func (m *Metrics) ZoneCacheObserver(set string) func(hit bool) {
	hits := m.ZoneCache.WithLabelValues(set, "hit")
	misses := m.ZoneCache.WithLabelValues(set, "miss")
	return func(hit bool) {
		if hit {
			hits.Inc()
			return
		}
		misses.Inc()
	}
}
