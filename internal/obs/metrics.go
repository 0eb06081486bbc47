package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors for the search pipeline.
type Metrics struct {
	SearchesTotal       *prometheus.CounterVec
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	UpstreamLatency     *prometheus.HistogramVec
	PriceRetriesTotal   prometheus.Counter
	PricesNotReadyTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on the given registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_searches_total",
			Help: "Search requests by outcome",
		}, []string{"outcome"}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotel_search_cache_hits_total",
			Help: "Base-result cache hits",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotel_search_cache_misses_total",
			Help: "Base-result cache misses",
		}),
		UpstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream provider request latencies",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		PriceRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "upstream_price_poll_retries_total",
			Help: "Price calls re-issued because the quote set was not completed",
		}),
		PricesNotReadyTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "upstream_prices_not_ready_total",
			Help: "Searches that exhausted the completion poll",
		}),
		registry: reg,
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.UpstreamLatency,
		m.PriceRetriesTotal,
		m.PricesNotReadyTotal,
	)

	return m
}

func (m *Metrics) IncSearches(outcome string) { m.SearchesTotal.WithLabelValues(outcome).Inc() }
func (m *Metrics) IncCacheHits()              { m.CacheHitsTotal.Inc() }
func (m *Metrics) IncCacheMisses()            { m.CacheMissesTotal.Inc() }
func (m *Metrics) IncPriceRetries()           { m.PriceRetriesTotal.Inc() }
func (m *Metrics) IncPricesNotReady()         { m.PricesNotReadyTotal.Inc() }

func (m *Metrics) ObserveUpstreamLatency(endpoint string, seconds float64) {
	m.UpstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}

// Handler serves the registry for GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
