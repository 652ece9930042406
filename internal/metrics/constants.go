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

// Statistics metric names
const (
	MetricNameReconciliationsTotal   = "reconciliations_total"
	MetricNameConflictsResolvedTotal = "conflicts_resolved_total"
	MetricNameRowsLoadedTotal        = "rows_loaded_total"
	MetricNameRowsFlushedTotal       = "rows_flushed_total"
	MetricNameCacheHitsTotal         = "player_cache_hits_total"
	MetricNameCacheMissesTotal       = "player_cache_misses_total"
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

// Statistics metric help text
const (
	HelpTextReconciliationsTotal   = "Total number of player info reconciliations performed"
	HelpTextConflictsResolvedTotal = "Total number of duplicate rows merged during reconciliation"
	HelpTextRowsLoadedTotal        = "Total number of statistic rows loaded from the database"
	HelpTextRowsFlushedTotal       = "Total number of statistic rows flushed to the database"
	HelpTextCacheHitsTotal         = "Total number of player info cache hits"
	HelpTextCacheMissesTotal       = "Total number of player info cache misses"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelStat   = "stat"
)

// UnmatchedRoute is the path label for requests that matched no route.
const UnmatchedRoute = "unmatched"

// HTTPLatencyBuckets covers fast in-memory reads through slow reconciling loads
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}
