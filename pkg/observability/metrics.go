// Package observability provides Prometheus metrics for the frage client.
//
// Metrics are registered on the default registry at init time. Programs that
// embed frage expose them through their own /metrics endpoint; the library
// itself starts no HTTP server.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts API calls by method, endpoint family, and outcome.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frage_requests_total",
			Help: "Total API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration records API call duration in seconds by method and
	// endpoint family.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "frage_request_duration_seconds",
			Help:    "API request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ActiveStreams tracks the number of open streaming responses.
	ActiveStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "frage_streams_active",
			Help: "Open streaming responses",
		},
	)

	// StreamChunksTotal counts successfully decoded stream chunks.
	StreamChunksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frage_stream_chunks_total",
			Help: "Decoded stream chunks",
		},
		[]string{"endpoint"},
	)

	// StreamChunksSkippedTotal counts stream chunks dropped because they did
	// not parse. A non-zero rate here usually means the backend schema has
	// drifted from the client's chunk type.
	StreamChunksSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frage_stream_chunks_skipped_total",
			Help: "Stream chunks skipped as malformed",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ActiveStreams,
		StreamChunksTotal,
		StreamChunksSkippedTotal,
	)
}
