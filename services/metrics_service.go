package services

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mclauncher/internal/models"
	"mclauncher/internal/syncer"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mclauncher_request_total",
			Help: "Total HTTP API requests",
		},
		[]string{"service"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mclauncher_request_errors_total",
			Help: "HTTP API requests answered with status >= 400",
		},
		[]string{"service"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mclauncher_request_duration_seconds",
			Help:    "Duration of HTTP API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	syncObjects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mclauncher_sync_objects_total",
			Help: "Objects processed by synchronization, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	syncBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mclauncher_sync_bytes_total",
			Help: "Verified bytes written to the content store",
		},
		[]string{"kind"},
	)

	fetchInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mclauncher_fetch_in_flight",
			Help: "Fetches currently open",
		},
	)

	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mclauncher_fetch_duration_seconds",
			Help:    "Duration of individual object fetches including verification",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"kind"},
	)

	totalRequests atomic.Int64
	totalErrors   atomic.Int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestErrors)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(syncObjects)
	prometheus.MustRegister(syncBytes)
	prometheus.MustRegister(fetchInFlight)
	prometheus.MustRegister(fetchDuration)
}

func IncrementRequestCount(service string) {
	requestCount.WithLabelValues(service).Inc()
	totalRequests.Add(1)
}

func IncrementErrorCount(service string) {
	requestErrors.WithLabelValues(service).Inc()
	totalErrors.Add(1)
}

func RecordRequestDuration(service string, seconds float64) {
	requestDuration.WithLabelValues(service).Observe(seconds)
}

// GetTotalRequestCount is a local mirror of the request counter, for /healthz.
func GetTotalRequestCount() int64 {
	return totalRequests.Load()
}

func GetTotalErrorCount() int64 {
	return totalErrors.Load()
}

/**
 * Synchronization observer backed by prometheus
 * @description
 * - skipped objects count as outcome "skipped"
 * - fetched objects count as "valid" or "failed" and feed byte and duration metrics
 */
type MetricsObserver struct{}

var _ syncer.Observer = MetricsObserver{}

func (MetricsObserver) Skipped(kind models.ObjectKind) {
	syncObjects.WithLabelValues(string(kind), string(models.StateSkipped)).Inc()
}

func (MetricsObserver) FetchStarted(kind models.ObjectKind) {
	fetchInFlight.Inc()
}

func (MetricsObserver) FetchFinished(kind models.ObjectKind, state models.ItemState, bytes int64, elapsed time.Duration) {
	fetchInFlight.Dec()
	syncObjects.WithLabelValues(string(kind), string(state)).Inc()
	fetchDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
	if state == models.StateValid && bytes > 0 {
		syncBytes.WithLabelValues(string(kind)).Add(float64(bytes))
	}
}
