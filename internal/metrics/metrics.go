package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Supplier API Metrics
var (
	SupplierRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSupplierRequests,
			Help: HelpTextSupplierRequests,
		},
		[]string{LabelEndpoint, LabelOutcome},
	)

	SupplierRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSupplierRetries,
			Help: HelpTextSupplierRetries,
		},
		[]string{LabelEndpoint},
	)
)

// Sync Metrics
var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRuns,
			Help: HelpTextSyncRuns,
		},
		[]string{LabelOutcome},
	)

	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncRunDuration,
			Help:    HelpTextSyncRunDuration,
			Buckets: SyncRunBuckets,
		},
	)

	ProductsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProductsCreated,
			Help: HelpTextProductsCreated,
		},
	)

	ProductsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProductsUpdated,
			Help: HelpTextProductsUpdated,
		},
	)

	ProductErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameProductErrors,
			Help: HelpTextProductErrors,
		},
	)

	LockContention = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLockContention,
			Help: HelpTextLockContention,
		},
	)
)
