package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/giygas/prescription-analyzer/data"
	"github.com/giygas/prescription-analyzer/interfaces"
)

func TestHealthCheckWithoutEngine(t *testing.T) {
	status := data.NewStatusContainer()
	status.SetServerStartTime(time.Now())

	checker := NewHealthChecker(status, "")
	state, payload, httpStatus := checker.HealthCheck()

	if state != "healthy" {
		t.Errorf("Expected healthy, got %s", state)
	}
	if httpStatus != http.StatusOK {
		t.Errorf("Expected status 200, got %d", httpStatus)
	}

	ocr, ok := payload["ocr"].(map[string]any)
	if !ok {
		t.Fatal("Expected ocr section in payload")
	}
	if ocr["probe"] != "unconfigured" {
		t.Errorf("Expected unconfigured probe, got %v", ocr["probe"])
	}
}

func TestHealthCheckProbePending(t *testing.T) {
	status := data.NewStatusContainer()
	status.SetServerStartTime(time.Now())

	checker := NewHealthChecker(status, "remote")
	state, payload, _ := checker.HealthCheck()

	if state != "healthy" {
		t.Errorf("Expected healthy while probe is pending, got %s", state)
	}

	ocr := payload["ocr"].(map[string]any)
	if ocr["probe"] != "pending" {
		t.Errorf("Expected pending probe, got %v", ocr["probe"])
	}
}

func TestHealthCheckProbeOK(t *testing.T) {
	status := data.NewStatusContainer()
	status.SetServerStartTime(time.Now())
	status.SetProbeResult(interfaces.ProbeResult{
		Engine:    "remote",
		Healthy:   true,
		Latency:   30 * time.Millisecond,
		CheckedAt: time.Now(),
	})

	checker := NewHealthChecker(status, "remote")
	state, payload, httpStatus := checker.HealthCheck()

	if state != "healthy" || httpStatus != http.StatusOK {
		t.Errorf("Expected healthy 200, got %s %d", state, httpStatus)
	}

	ocr := payload["ocr"].(map[string]any)
	if ocr["probe"] != "ok" {
		t.Errorf("Expected ok probe, got %v", ocr["probe"])
	}
	if ocr["latency_ms"] != int64(30) {
		t.Errorf("Expected 30ms latency, got %v", ocr["latency_ms"])
	}
}

func TestHealthCheckProbeFailedDegradesService(t *testing.T) {
	status := data.NewStatusContainer()
	status.SetServerStartTime(time.Now())
	status.SetProbeResult(interfaces.ProbeResult{
		Engine:    "remote",
		Healthy:   false,
		Error:     "connection refused",
		CheckedAt: time.Now(),
	})

	checker := NewHealthChecker(status, "remote")
	state, payload, httpStatus := checker.HealthCheck()

	if state != "degraded" {
		t.Errorf("Expected degraded, got %s", state)
	}
	if httpStatus != http.StatusOK {
		t.Errorf("Expected status 200 while degraded, got %d", httpStatus)
	}

	ocr := payload["ocr"].(map[string]any)
	if ocr["probe"] != "failed" {
		t.Errorf("Expected failed probe, got %v", ocr["probe"])
	}
	if ocr["error"] != "connection refused" {
		t.Errorf("Expected probe error in payload, got %v", ocr["error"])
	}
}

func TestHealthCheckCounters(t *testing.T) {
	status := data.NewStatusContainer()
	status.SetServerStartTime(time.Now().Add(-90 * time.Minute))
	status.RecordAnalysis("txt")
	status.RecordAnalysis("png")

	checker := NewHealthChecker(status, "")
	_, payload, _ := checker.HealthCheck()

	if payload["analyses_total"] != int64(2) {
		t.Errorf("Expected 2 analyses, got %v", payload["analyses_total"])
	}
	if payload["uptime_hours"] != 1.5 {
		t.Errorf("Expected 1.5 uptime hours, got %v", payload["uptime_hours"])
	}
}
