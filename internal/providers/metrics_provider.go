package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"nightlock/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncActivations(trigger string)
	IncUnlockAttempts(step string, result string)
	IncReleases(cause string)
	SetLockdownActive(active bool)
	ObservePersistenceDuration(duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	activations         *prometheus.CounterVec
	unlockAttempts      *prometheus.CounterVec
	releases            *prometheus.CounterVec
	lockdownActive      prometheus.Gauge
	persistenceDuration prometheus.Histogram
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncActivations(trigger string) {
	m.activations.WithLabelValues(trigger).Inc()
}

func (m *MetricsProvider) IncUnlockAttempts(step string, result string) {
	m.unlockAttempts.WithLabelValues(step, result).Inc()
}

func (m *MetricsProvider) IncReleases(cause string) {
	m.releases.WithLabelValues(cause).Inc()
}

func (m *MetricsProvider) SetLockdownActive(active bool) {
	if active {
		m.lockdownActive.Set(1)
	} else {
		m.lockdownActive.Set(0)
	}
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nightlock_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nightlock_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		activations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nightlock_lockdown_activations_total",
			Help: "Total number of lockdown activations by trigger",
		}, []string{"trigger"}),

		unlockAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nightlock_unlock_attempts_total",
			Help: "Total number of unlock step attempts by step and result",
		}, []string{"step", "result"}),

		releases: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nightlock_releases_total",
			Help: "Total number of lockdown releases by cause",
		}, []string{"cause"}),

		lockdownActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "nightlock_lockdown_active",
			Help: "Whether a lockdown session is currently active",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nightlock_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nightlock_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nightlock_cache_misses_total",
			Help: "Total number of cache misses",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncActivations(_ string)                          {}
func (n *noopMetrics) IncUnlockAttempts(_ string, _ string)             {}
func (n *noopMetrics) IncReleases(_ string)                             {}
func (n *noopMetrics) SetLockdownActive(_ bool)                         {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
