package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingLogger writes to one log file per ISO week, starting a numbered
// sibling file when the current one reaches maxFileSize. Files older than
// the retention window are removed by a background sweep.
type RotatingLogger struct {
	logDir      string
	retention   time.Duration
	maxFileSize int64

	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
	currentSeq  int
	currentSize int64

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRotatingLogger creates a rotating logger writing under logDir
func NewRotatingLogger(logDir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		stop:        make(chan struct{}),
	}
}

// weekKey returns the ISO week key, e.g. "2026-W35"
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// fileName builds the log file name for a week and rotation sequence
func (rl *RotatingLogger) fileName(week string, seq int) string {
	if seq == 0 {
		return fmt.Sprintf("app-%s.log", week)
	}
	return fmt.Sprintf("app-%s_%02d.log", week, seq)
}

// rotate opens the next log file (caller must hold mu)
func (rl *RotatingLogger) rotate(week string, seq int) error {
	if rl.currentFile != nil {
		if err := rl.currentFile.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
		rl.currentFile = nil
	}

	path := filepath.Join(rl.logDir, rl.fileName(week, seq))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	size := int64(0)
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	rl.currentFile = file
	rl.currentWeek = week
	rl.currentSeq = seq
	rl.currentSize = size
	return nil
}

// Write writes data to the current log file, rotating on week change or
// when the size cap is reached
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := weekKey(time.Now())
	switch {
	case rl.currentFile == nil || rl.currentWeek != week:
		if err := rl.rotate(week, 0); err != nil {
			return 0, err
		}
	case rl.maxFileSize > 0 && rl.currentSize+int64(len(p)) > rl.maxFileSize:
		if err := rl.rotate(week, rl.currentSeq+1); err != nil {
			return 0, err
		}
	}

	n, err := rl.currentFile.Write(p)
	rl.currentSize += int64(n)
	return n, err
}

// sweepOldLogs removes log files older than the retention period
func (rl *RotatingLogger) sweepOldLogs() {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		slog.Warn("Failed to read log directory for cleanup", "error", err)
		return
	}

	cutoff := time.Now().Add(-rl.retention)
	deleted := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rl.logDir, name)); err == nil {
				deleted++
			}
		}
	}

	if deleted > 0 {
		slog.Info("Cleaned up old log files", "deleted", deleted)
	}
}

// Close stops the cleanup goroutine and closes the current file
func (rl *RotatingLogger) Close() error {
	rl.stopOnce.Do(func() { close(rl.stop) })

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.currentFile != nil {
		err := rl.currentFile.Close()
		rl.currentFile = nil
		return err
	}
	return nil
}

// SetupLogger configures slog to log to both console and rotating file
func SetupLogger(logDir string, retentionWeeks int, maxFileSize int64) *slog.Logger {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		// Without a log directory we still run, console only
		fallback := slog.New(consoleHandler)
		fallback.Error("Failed to create logs directory", "error", err)
		return fallback
	}

	rotating := NewRotatingLogger(logDir, retentionWeeks, maxFileSize)

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-rotating.stop:
				return
			case <-ticker.C:
				rotating.sweepOldLogs()
			}
		}
	}()

	fileHandler := slog.NewJSONHandler(rotating, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
}
