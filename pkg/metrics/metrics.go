// Package metrics holds the process-wide prometheus collectors and the otel
// meter provider bridged to prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// PlatformRequestDuration observes the latency of calls to the deployment
// platform API, labelled by operation and HTTP status (or "error" when no
// response was received).
var PlatformRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
	Namespace: "builtat",
	Subsystem: "platform",
	Name:      "request_duration_seconds",
	Help:      "Latency of deployment platform API calls.",
	Buckets:   DefaultBuckets,
}, []string{"operation", "status"})
