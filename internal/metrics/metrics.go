package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "searches_total",
			Help:      "Total number of executed searches by scoring mode",
		},
		[]string{"mode"},
	)

	relaxedFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "relaxed_fallback_total",
			Help:      "Searches answered by the relaxed predicate set",
		},
	)

	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "cache_lookups_total",
			Help:      "Search cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(searchesTotal)
	prometheus.MustRegister(relaxedFallbackTotal)
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(cacheLookupsTotal)
}

// ObserveSearch records one completed search.
func ObserveSearch(mode string, relaxed bool, d time.Duration) {
	searchesTotal.WithLabelValues(mode).Inc()
	searchDuration.Observe(d.Seconds())
	if relaxed {
		relaxedFallbackTotal.Inc()
	}
}

func CacheHit()  { cacheLookupsTotal.WithLabelValues("hit").Inc() }
func CacheMiss() { cacheLookupsTotal.WithLabelValues("miss").Inc() }
