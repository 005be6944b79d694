// Package data provides thread-safe runtime status tracking for the
// prescription analyzer. The StatusContainer uses atomic values so the
// handlers, the probe scheduler, and the health checker never block each
// other.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/prescription-analyzer/interfaces"
)

// Compile-time check to ensure StatusContainer implements StatusStore
var _ interfaces.StatusStore = (*StatusContainer)(nil)

// StatusContainer holds runtime status with atomic values
type StatusContainer struct {
	serverStartTime atomic.Value // time.Time
	analysisCount   atomic.Int64
	probeResult     atomic.Value // interfaces.ProbeResult
	probeRecorded   atomic.Bool
}

// NewStatusContainer creates a StatusContainer with zeroed status
func NewStatusContainer() *StatusContainer {
	sc := &StatusContainer{}
	sc.serverStartTime.Store(time.Time{})
	sc.probeResult.Store(interfaces.ProbeResult{})
	return sc
}

// SetServerStartTime sets the server start time
func (sc *StatusContainer) SetServerStartTime(startTime time.Time) {
	sc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (sc *StatusContainer) GetServerStartTime() time.Time {
	if v := sc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}
	return time.Time{}
}

// RecordAnalysis counts one completed analysis. The file type label is
// accepted for interface symmetry with the Prometheus counters, which track
// the per-type breakdown.
func (sc *StatusContainer) RecordAnalysis(fileType string) {
	sc.analysisCount.Add(1)
}

// GetAnalysisCount returns the number of analyses served since startup
func (sc *StatusContainer) GetAnalysisCount() int64 {
	return sc.analysisCount.Load()
}

// SetProbeResult stores the latest OCR collaborator probe outcome
func (sc *StatusContainer) SetProbeResult(result interfaces.ProbeResult) {
	sc.probeResult.Store(result)
	sc.probeRecorded.Store(true)
}

// GetProbeResult returns the latest probe outcome and whether one was
// recorded since startup
func (sc *StatusContainer) GetProbeResult() (interfaces.ProbeResult, bool) {
	if !sc.probeRecorded.Load() {
		return interfaces.ProbeResult{}, false
	}
	if v := sc.probeResult.Load(); v != nil {
		if result, ok := v.(interfaces.ProbeResult); ok {
			return result, true
		}
	}
	return interfaces.ProbeResult{}, false
}
