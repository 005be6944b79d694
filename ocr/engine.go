// Package ocr provides clients for the external image-to-text services the
// analyzer delegates to. Engines are constructed once at startup and shared
// across requests; the parsing core never talks to them directly.
package ocr

import (
	"fmt"

	"github.com/giygas/prescription-analyzer/config"
	"github.com/giygas/prescription-analyzer/interfaces"
	"github.com/giygas/prescription-analyzer/ocr/gemini"
	"github.com/giygas/prescription-analyzer/ocr/remote"
)

// NewFromConfig builds the configured OCR engine. A nil engine with a nil
// error means no engine is configured and image uploads must be rejected.
func NewFromConfig(cfg *config.Config) (interfaces.OCREngine, error) {
	switch cfg.OCREngine {
	case config.OCREngineNone:
		return nil, nil
	case config.OCREngineRemote:
		return remote.New(cfg.OCREndpoint), nil
	case config.OCREngineGemini:
		return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine: %s", cfg.OCREngine)
	}
}
