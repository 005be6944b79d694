// Package health provides health checking functionality for the
// prescription analyzer.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/prescription-analyzer/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	status     interfaces.StatusStore
	engineName string // empty when no OCR engine is configured
}

// NewHealthChecker creates a health checker with injected dependencies.
// engineName is empty when image analysis is disabled.
func NewHealthChecker(status interfaces.StatusStore, engineName string) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		status:     status,
		engineName: engineName,
	}
}

// HealthCheck reports service state. The analysis pipeline is stateless, so
// the service itself is always able to serve text uploads; a failing OCR
// collaborator degrades rather than breaks the service.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	status = "healthy"
	httpStatus = http.StatusOK

	uptime := time.Since(h.status.GetServerStartTime())

	ocr := map[string]any{
		"engine": h.engineName,
		"probe":  "unconfigured",
	}

	if h.engineName != "" {
		probe, recorded := h.status.GetProbeResult()
		switch {
		case !recorded:
			ocr["probe"] = "pending"
		case probe.Healthy:
			ocr["probe"] = "ok"
			ocr["latency_ms"] = probe.Latency.Milliseconds()
			ocr["checked_at"] = probe.CheckedAt.Format(time.RFC3339)
		default:
			status = "degraded"
			ocr["probe"] = "failed"
			ocr["error"] = probe.Error
			ocr["checked_at"] = probe.CheckedAt.Format(time.RFC3339)
		}
	}

	data = map[string]any{
		"uptime_hours":   math.Round(uptime.Hours()*10) / 10,
		"analyses_total": h.status.GetAnalysisCount(),
		"ocr":            ocr,
	}

	return status, data, httpStatus
}
