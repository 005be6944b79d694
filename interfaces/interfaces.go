// Package interfaces defines core abstractions for the prescription analyzer
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/prescription-analyzer/prescriptionparser/entities"
)

// ProbeResult is the outcome of one OCR collaborator health probe.
type ProbeResult struct {
	Engine    string
	Healthy   bool
	Error     string
	Latency   time.Duration
	CheckedAt time.Time
}

// Analyzer defines the contract for the text-to-assessment pipeline.
// All methods are pure functions of their inputs and never return errors;
// failure states are represented in the returned records.
type Analyzer interface {
	// Extract parses text into ordered (medicine, dosage) pairs
	Extract(text string) []entities.RawEntry

	// Assess evaluates one raw dosage and always returns a record
	Assess(medicine, rawDosage string) entities.AssessmentRecord

	// Analyze runs the full pipeline; the source label is only used in
	// the fallback record when nothing was extracted
	Analyze(text, source string) []entities.AssessmentRecord
}

// OCREngine defines the contract for the external image-to-text
// collaborator. The analyzer treats its output like any other text and
// assumes nothing about the engine lifecycle.
type OCREngine interface {
	// Name identifies the engine in logs and health reports
	Name() string

	// ExtractText returns the text recognized in the image
	ExtractText(ctx context.Context, image []byte, mime string) (string, error)

	// Probe performs a cheap reachability check
	Probe(ctx context.Context) error
}

// StatusStore defines the contract for runtime status tracking.
// Implementations must be safe for concurrent use by handlers and the
// probe scheduler.
type StatusStore interface {
	GetServerStartTime() time.Time
	SetServerStartTime(startTime time.Time)

	// RecordAnalysis counts one completed analysis by file type
	RecordAnalysis(fileType string)
	GetAnalysisCount() int64

	// Probe bookkeeping for the OCR collaborator
	SetProbeResult(result ProbeResult)
	GetProbeResult() (ProbeResult, bool)
}

// UploadValidator defines the contract for validating uploaded files and
// free-text input before they reach the pipeline.
type UploadValidator interface {
	// ValidateUpload checks the filename extension against the announced
	// content and returns the canonical file type (png, jpg, jpeg, txt)
	ValidateUpload(filename string, content []byte) (string, error)

	// ValidateTextInput validates direct text submissions
	ValidateTextInput(text string) error
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	AnalyzeUpload(w http.ResponseWriter, r *http.Request)
	AnalyzeText(w http.ResponseWriter, r *http.Request)
	Home(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// Scheduler defines the contract for background job scheduling.
type Scheduler interface {
	Start() error
	Stop()
}
