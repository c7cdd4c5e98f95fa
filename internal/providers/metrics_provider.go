package providers

import (
	"corpusdash/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncPagesFetched(resource string)
	AddRecordsFetched(count int)
	AddRecordsRejected(count int)
	IncFetchErrors(resource string)
	ObserveSnapshotDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	pagesFetched     *prometheus.CounterVec
	recordsFetched   prometheus.Counter
	recordsRejected  prometheus.Counter
	fetchErrors      *prometheus.CounterVec
	snapshotDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncPagesFetched(resource string) {
	m.pagesFetched.WithLabelValues(resource).Inc()
}

func (m *MetricsProvider) AddRecordsFetched(count int) {
	m.recordsFetched.Add(float64(count))
}

func (m *MetricsProvider) AddRecordsRejected(count int) {
	m.recordsRejected.Add(float64(count))
}

func (m *MetricsProvider) IncFetchErrors(resource string) {
	m.fetchErrors.WithLabelValues(resource).Inc()
}

func (m *MetricsProvider) ObserveSnapshotDuration(duration time.Duration) {
	m.snapshotDuration.Observe(duration.Seconds())
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
			Name: "crd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		pagesFetched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crd_backend_pages_fetched_total",
			Help: "Total number of pages fetched from the corpus backend",
		}, []string{"resource"}),

		recordsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crd_records_fetched_total",
			Help: "Total number of raw records fetched from the corpus backend",
		}),

		recordsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crd_records_rejected_total",
			Help: "Total number of records rejected during normalization",
		}),

		fetchErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crd_backend_fetch_errors_total",
			Help: "Total number of failed backend page requests (after retries)",
		}, []string{"resource"}),

		snapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crd_snapshot_duration_seconds",
			Help:    "Offline snapshot persistence duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncPagesFetched(_ string)                         {}
func (n *noopMetrics) AddRecordsFetched(_ int)                          {}
func (n *noopMetrics) AddRecordsRejected(_ int)                         {}
func (n *noopMetrics) IncFetchErrors(_ string)                          {}
func (n *noopMetrics) ObserveSnapshotDuration(_ time.Duration)          {}
