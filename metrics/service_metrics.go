package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "coin_tracker_"

// Service constants
const (
	ServiceMarkets     = "markets"
	ServiceCoins       = "coins"
	ServiceOHLC        = "ohlc"
	ServicePersistence = "persistence"
	MachineList        = "coin_list"
	MachineDetail      = "coin_detail"
)

var (
	// Global Coingecko request counter (all services)
	// Cardinality: ~6 (success, error, rate_limited, unauthorized, server_error, network)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all services",
		},
		[]string{"status"},
	)

	// Service-specific Coingecko request counter
	// Cardinality: ~18 (3 services × 6 statuses)
	ServiceCoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API per service",
		},
		[]string{"service", "status"},
	)

	// Request latency per service
	// Cardinality: ~3
	RequestLatencyHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "request_latency_seconds",
			Help: "HTTP request latency by service",
		},
		[]string{"service"},
	)

	// Rate limiter waits
	// Cardinality: ~3
	RateLimitWaitHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "rate_limit_wait_seconds",
			Help: "Time spent waiting on the local rate limiter",
		},
		[]string{"service"},
	)

	// Persistence failures that were logged and swallowed
	// Cardinality: ~10 (get/set × key kinds)
	PersistenceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "persistence_errors_total",
			Help: "Total number of swallowed persistence failures",
		},
		[]string{"operation", "key"},
	)

	// Write-behind queue depth
	PendingWritesGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "persistence_pending_writes",
			Help: "Number of keys waiting in the write-behind queue",
		},
	)

	// Persisted coin details currently tracked by the detail LRU
	CachedDetailsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cached_coin_details",
			Help: "Number of coin details kept in local storage",
		},
	)

	// Details dropped from local storage by the LRU
	DetailEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coin_detail_evictions_total",
			Help: "Total number of coin details evicted from local storage",
		},
	)

	// Favorite toggles by direction
	// Cardinality: 2
	FavoriteTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "favorite_toggles_total",
			Help: "Total number of favorite toggles",
		},
		[]string{"action"},
	)

	// Visible list size
	CoinListSizeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "coin_list_size",
			Help: "Number of coins in the visible list",
		},
	)
)

// MetricsWriter records Coingecko request metrics for one service
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordServiceCoingeckoRequest records a service-specific Coingecko API request
func (mw *MetricsWriter) RecordServiceCoingeckoRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	ServiceCoingeckoRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordRequestLatency records the latency of a single request
func (mw *MetricsWriter) RecordRequestLatency(d time.Duration) {
	RequestLatencyHistogram.WithLabelValues(mw.serviceName).Observe(d.Seconds())
}

// RecordRateLimitWait records time spent blocked on the limiter
func (mw *MetricsWriter) RecordRateLimitWait(d time.Duration) {
	RateLimitWaitHistogram.WithLabelValues(mw.serviceName).Observe(d.Seconds())
	if d > time.Second {
		log.Printf("Metrics: %s waited %.2fs on rate limiter", mw.serviceName, d.Seconds())
	}
}

// OnRequest implements HttpStatusHandler
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordServiceCoingeckoRequest(status)
}

// OnLatency implements HttpStatusHandler
func (mw *MetricsWriter) OnLatency(d time.Duration) {
	mw.RecordRequestLatency(d)
}

// RecordPersistenceError counts a swallowed storage failure
func RecordPersistenceError(operation, key string) {
	PersistenceErrorsTotal.WithLabelValues(operation, key).Inc()
}

// RecordFavoriteToggle counts a favorite toggle
func RecordFavoriteToggle(added bool) {
	action := "removed"
	if added {
		action = "added"
	}
	FavoriteTogglesTotal.WithLabelValues(action).Inc()
}
