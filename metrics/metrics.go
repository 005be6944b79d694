// Package metrics provides Prometheus metrics collection for the
// prescription analyzer. Besides the HTTP server metrics it tracks the
// analysis pipeline itself:
//   - analyses_total: analyses served, labeled by file type
//   - assessment_records_total: emitted records, labeled by status
//   - ocr_requests_total: OCR collaborator calls, labeled by engine and outcome
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Prescription analyses served, by file type",
		},
		[]string{"file_type"},
	)

	AssessmentRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_records_total",
			Help: "Assessment records emitted, by status",
		},
		[]string{"status"},
	)

	OCRRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocr_requests_total",
			Help: "OCR collaborator calls, by engine and outcome",
		},
		[]string{"engine", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(AssessmentRecordsTotal)
	prometheus.MustRegister(OCRRequestsTotal)
}
