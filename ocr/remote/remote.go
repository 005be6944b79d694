// Package remote implements the OCR engine contract against a generic HTTP
// vision service: POST the image bytes, receive the recognized text.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Engine calls a self-hosted document understanding service
type Engine struct {
	Endpoint string
	httpc    *http.Client
}

// New creates a remote engine for the given endpoint URL
func New(endpoint string) *Engine {
	return &Engine{
		Endpoint: endpoint,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "remote" }

// extractResponse is the service reply shape
type extractResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// ExtractText sends the image and returns the recognized text
func (e *Engine) ExtractText(ctx context.Context, image []byte, mime string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("failed to build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", mime)
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read OCR response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out extractResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("invalid OCR response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("OCR service error: %s", out.Error)
	}

	return out.Text, nil
}

// Probe checks that the service answers at all
func (e *Engine) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, e.Endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}

	resp, err := e.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("OCR service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("OCR service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
