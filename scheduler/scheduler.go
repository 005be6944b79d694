// Package scheduler runs the periodic OCR collaborator probe. The probe
// result feeds the health endpoint so operators see a failing vision
// service before users do.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/giygas/prescription-analyzer/interfaces"
	"github.com/giygas/prescription-analyzer/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure ProbeScheduler implements Scheduler
var _ interfaces.Scheduler = (*ProbeScheduler)(nil)

// probeTimeout bounds one probe attempt
const probeTimeout = 10 * time.Second

// ProbeScheduler periodically checks the OCR collaborator
type ProbeScheduler struct {
	engine    interfaces.OCREngine
	status    interfaces.StatusStore
	interval  time.Duration
	scheduler *gocron.Scheduler
}

// NewProbeScheduler creates a probe scheduler with injected dependencies
func NewProbeScheduler(engine interfaces.OCREngine, status interfaces.StatusStore, interval time.Duration) *ProbeScheduler {
	return &ProbeScheduler{
		engine:    engine,
		status:    status,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start runs one immediate probe and schedules the recurring job
func (s *ProbeScheduler) Start() error {
	if s.engine == nil {
		return fmt.Errorf("no OCR engine to probe")
	}

	s.probe()

	_, err := s.scheduler.Every(s.interval).Do(s.probe)
	if err != nil {
		return fmt.Errorf("failed to schedule OCR probe: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("OCR probe scheduler started", "engine", s.engine.Name(), "interval", s.interval.String())
	return nil
}

// Stop stops the recurring job
func (s *ProbeScheduler) Stop() {
	s.scheduler.Stop()
	logging.Info("OCR probe scheduler stopped")
}

// probe runs one reachability check and records the outcome
func (s *ProbeScheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	start := time.Now()
	err := s.engine.Probe(ctx)
	latency := time.Since(start)

	result := interfaces.ProbeResult{
		Engine:    s.engine.Name(),
		Healthy:   err == nil,
		Latency:   latency,
		CheckedAt: time.Now(),
	}

	if err != nil {
		result.Error = err.Error()
		logging.Warn("OCR collaborator probe failed", "engine", s.engine.Name(), "error", err)
	} else {
		logging.Debug("OCR collaborator probe succeeded", "engine", s.engine.Name(), "latency_ms", latency.Milliseconds())
	}

	s.status.SetProbeResult(result)
}
