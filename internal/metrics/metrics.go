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

// Statistics Metrics
var (
	ReconciliationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconciliationsTotal,
			Help: HelpTextReconciliationsTotal,
		},
	)

	ConflictsResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameConflictsResolvedTotal,
			Help: HelpTextConflictsResolvedTotal,
		},
	)

	RowsLoadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRowsLoadedTotal,
			Help: HelpTextRowsLoadedTotal,
		},
	)

	RowsFlushedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRowsFlushedTotal,
			Help: HelpTextRowsFlushedTotal,
		},
		[]string{LabelStat},
	)

	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCacheHitsTotal,
			Help: HelpTextCacheHitsTotal,
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCacheMissesTotal,
			Help: HelpTextCacheMissesTotal,
		},
	)
)
