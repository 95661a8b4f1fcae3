// Package metrics defines the Prometheus instrumentation for voicescribe.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the transcription service.
type Metrics struct {
	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Transcription job metrics
	TranscriptionRequests  prometheus.Counter
	TranscriptionSuccesses prometheus.Counter
	TranscriptionFailures  *prometheus.CounterVec
	TranscriptionDuration  prometheus.Histogram
	UploadBytes            prometheus.Histogram
	PollCycles             prometheus.Counter

	// Persistence metrics
	PrimarySaves  prometheus.Counter
	FallbackSaves prometheus.Counter
	FailedSaves   prometheus.Counter
	HistoryClears prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voicescribe_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voicescribe_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		TranscriptionRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicescribe_transcription_requests_total",
			Help: "Transcription jobs attempted",
		}),
		TranscriptionSuccesses: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicescribe_transcription_successes_total",
			Help: "Transcription jobs that produced text",
		}),
		TranscriptionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voicescribe_transcription_failures_total",
			Help: "Transcription jobs that failed, by error kind",
		}, []string{"kind"}),
		TranscriptionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicescribe_transcription_duration_seconds",
			Help:    "End-to-end transcription job duration",
			Buckets: []float64{1, 3, 6, 12, 30, 60, 90, 120},
		}),
		UploadBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicescribe_upload_bytes",
			Help:    "Size distribution of accepted uploads",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),
		PollCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicescribe_poll_cycles_total",
			Help: "Provider status polls issued",
		}),

		PrimarySaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicescribe_primary_saves_total",
			Help: "Records persisted to the primary backend",
		}),
		FallbackSaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicescribe_fallback_saves_total",
			Help: "Records persisted to the fallback backend",
		}),
		FailedSaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicescribe_failed_saves_total",
			Help: "Records lost because every backend failed",
		}),
		HistoryClears: factory.NewCounter(prometheus.CounterOpts{
			Name: "voicescribe_history_clears_total",
			Help: "Clear-history operations",
		}),
	}
}
