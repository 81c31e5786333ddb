package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Supplier API metric names
const (
	MetricNameSupplierRequests = "supplier_requests_total"
	MetricNameSupplierRetries  = "supplier_request_retries_total"
)

// Sync metric names
const (
	MetricNameSyncRuns        = "sync_runs_total"
	MetricNameSyncRunDuration = "sync_run_duration_seconds"
	MetricNameProductsCreated = "sync_products_created_total"
	MetricNameProductsUpdated = "sync_products_updated_total"
	MetricNameProductErrors   = "sync_product_errors_total"
	MetricNameLockContention  = "sync_lock_contention_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Supplier API metric help text
const (
	HelpTextSupplierRequests = "Total number of supplier API requests by outcome"
	HelpTextSupplierRetries  = "Total number of supplier API request retries"
)

// Sync metric help text
const (
	HelpTextSyncRuns        = "Total number of sync runs by outcome"
	HelpTextSyncRunDuration = "Sync run duration in seconds"
	HelpTextProductsCreated = "Total number of products created by sync"
	HelpTextProductsUpdated = "Total number of products updated by sync"
	HelpTextProductErrors   = "Total number of per-product sync failures"
	HelpTextLockContention  = "Total number of sync runs rejected because a run was active"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelEndpoint = "endpoint"
	LabelOutcome  = "outcome"
)

// Histogram buckets for HTTP and sync latency
var (
	HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	SyncRunBuckets     = []float64{1, 5, 15, 30, 60, 120, 300, 600}
)
