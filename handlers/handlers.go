// Package handlers provides HTTP request handlers for the prescription
// analyzer endpoints, with dependencies injected through the interfaces
// package.
package handlers

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/giygas/prescription-analyzer/interfaces"
	"github.com/giygas/prescription-analyzer/logging"
	"github.com/giygas/prescription-analyzer/metrics"
	"github.com/giygas/prescription-analyzer/prescriptionparser/entities"
	"github.com/giygas/prescription-analyzer/textfile"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	analyzer      interfaces.Analyzer
	validator     interfaces.UploadValidator
	engine        interfaces.OCREngine // nil when no OCR engine is configured
	status        interfaces.StatusStore
	healthChecker interfaces.HealthChecker
	maxUploadSize int64
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	analyzer interfaces.Analyzer,
	validator interfaces.UploadValidator,
	engine interfaces.OCREngine,
	status interfaces.StatusStore,
	healthChecker interfaces.HealthChecker,
	maxUploadSize int64,
) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		analyzer:      analyzer,
		validator:     validator,
		engine:        engine,
		status:        status,
		healthChecker: healthChecker,
		maxUploadSize: maxUploadSize,
	}
}

// Minimum response size to consider compression (1KB)
const compressionThreshold = 1024

// RespondWithJSON writes a JSON response, gzip-compressed when the payload
// reaches the threshold and the client accepts it. Extracted-text bodies are
// the large-response case.
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	shouldCompress := len(data) >= compressionThreshold &&
		strings.Contains(strings.ToLower(r.Header.Get("Accept-Encoding")), "gzip")

	if shouldCompress {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(code)

		gz := gzip.NewWriter(w)
		defer gz.Close()
		if _, err := gz.Write(data); err != nil {
			logging.Debug("Failed to write compressed response", "error", err)
		}
		logging.Debug("Compressed JSON response", "original_size", len(data))
		return
	}

	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Debug("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response. Error bodies stay below the
// compression threshold, so they go out uncompressed.
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, r *http.Request, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, r, code, errorResponse)
}

// Home confirms the service is up
func (h *HTTPHandlerImpl) Home(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Backend is running!"})
}

// AnalyzeUpload accepts a multipart prescription upload (field "file"),
// extracts its text and returns the per-medication assessment. Text files
// are decoded locally; images go through the OCR collaborator.
func (h *HTTPHandlerImpl) AnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.RespondWithError(w, r, http.StatusBadRequest, "Missing or unreadable 'file' form field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.RespondWithError(w, r, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	fileType, err := h.validator.ValidateUpload(header.Filename, content)
	if err != nil {
		logging.Warn("Rejected upload", "filename", header.Filename, "error", err)
		h.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var text, source string
	switch fileType {
	case "txt":
		source = "text file"
		text, err = textfile.Decode(content)
		if err != nil {
			h.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}

	default: // png, jpg, jpeg
		source = "image"
		if h.engine == nil {
			h.RespondWithError(w, r, http.StatusServiceUnavailable, "Image analysis is not available: no OCR engine configured")
			return
		}

		mime := mimetype.Detect(content).String()
		text, err = h.engine.ExtractText(r.Context(), content, mime)
		if err != nil {
			metrics.OCRRequestsTotal.WithLabelValues(h.engine.Name(), "error").Inc()
			logging.Error("OCR extraction failed", "engine", h.engine.Name(), "filename", header.Filename, "error", err)
			h.RespondWithError(w, r, http.StatusBadGateway, "Failed to extract text from image")
			return
		}
		metrics.OCRRequestsTotal.WithLabelValues(h.engine.Name(), "success").Inc()
	}

	result := entities.AnalysisResult{
		Filename:      header.Filename,
		FileType:      fileType,
		ExtractedText: text,
		Analysis:      h.analyzer.Analyze(text, source),
	}

	h.recordAnalysis(fileType, result.Analysis)
	h.RespondWithJSON(w, r, http.StatusOK, result)
}

// textRequest is the body of POST /analyze/text
type textRequest struct {
	Text string `json:"text"`
}

// AnalyzeText runs the pipeline on already-decoded text
func (h *HTTPHandlerImpl) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.ValidateTextInput(req.Text); err != nil {
		h.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := entities.AnalysisResult{
		FileType:      "text",
		ExtractedText: req.Text,
		Analysis:      h.analyzer.Analyze(req.Text, "text"),
	}

	h.recordAnalysis("text", result.Analysis)
	h.RespondWithJSON(w, r, http.StatusOK, result)
}

// recordAnalysis updates the status store and the Prometheus counters
func (h *HTTPHandlerImpl) recordAnalysis(fileType string, records []entities.AssessmentRecord) {
	h.status.RecordAnalysis(fileType)
	metrics.AnalysesTotal.WithLabelValues(fileType).Inc()
	for _, record := range records {
		metrics.AssessmentRecordsTotal.WithLabelValues(string(record.Status)).Inc()
	}
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.healthChecker.HealthCheck()

	response := map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"data":      data,
	}

	h.RespondWithJSON(w, r, httpStatus, response)
}
