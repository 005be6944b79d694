package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/giygas/prescription-analyzer/data"
)

// fakeEngine implements interfaces.OCREngine for tests
type fakeEngine struct {
	err error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) ExtractText(ctx context.Context, image []byte, mime string) (string, error) {
	return "", nil
}

func (f *fakeEngine) Probe(ctx context.Context) error { return f.err }

func TestStartWithoutEngine(t *testing.T) {
	s := NewProbeScheduler(nil, data.NewStatusContainer(), time.Minute)
	if err := s.Start(); err == nil {
		t.Error("Expected an error when no engine is configured")
	}
}

func TestStartRunsImmediateProbe(t *testing.T) {
	status := data.NewStatusContainer()
	s := NewProbeScheduler(&fakeEngine{}, status, time.Hour)

	if err := s.Start(); err != nil {
		t.Fatalf("Failed to start scheduler: %v", err)
	}
	defer s.Stop()

	result, recorded := status.GetProbeResult()
	if !recorded {
		t.Fatal("Expected a probe result after Start")
	}
	if !result.Healthy {
		t.Errorf("Expected healthy probe, got %+v", result)
	}
	if result.Engine != "fake" {
		t.Errorf("Expected engine fake, got %s", result.Engine)
	}
	if result.CheckedAt.IsZero() {
		t.Error("Expected a probe timestamp")
	}
}

func TestProbeRecordsFailure(t *testing.T) {
	status := data.NewStatusContainer()
	s := NewProbeScheduler(&fakeEngine{err: fmt.Errorf("timeout")}, status, time.Hour)

	s.probe()

	result, recorded := status.GetProbeResult()
	if !recorded {
		t.Fatal("Expected a probe result")
	}
	if result.Healthy {
		t.Error("Expected unhealthy probe")
	}
	if result.Error != "timeout" {
		t.Errorf("Expected timeout error, got %q", result.Error)
	}
}
