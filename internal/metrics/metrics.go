// Package metrics exposes Prometheus collectors for cache scan activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScansTotal counts completed cache scans.
var ScansTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "hubscan",
	Name:      "scans_total",
	Help:      "Total completed cache scans.",
})

// ScanErrors counts scans that failed before producing a snapshot.
var ScanErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "hubscan",
	Name:      "scan_errors_total",
	Help:      "Total scans aborted by an unreadable cache root.",
})

// ScanDuration tracks how long a full scan takes.
var ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "hubscan",
	Name:      "scan_duration_seconds",
	Help:      "Wall-clock duration of a full cache scan.",
	Buckets:   prometheus.DefBuckets,
})

// CacheBytes reports the grand total of the most recent snapshot.
var CacheBytes = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "hubscan",
	Name:      "cache_bytes",
	Help:      "Total bytes of cached model files as of the last scan.",
})

// CacheModels reports the model count of the most recent snapshot.
var CacheModels = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "hubscan",
	Name:      "cache_models",
	Help:      "Number of cached models as of the last scan.",
})
