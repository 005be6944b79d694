// Package gemini implements the OCR engine contract against the Google
// generative language REST API with inline image data.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const baseURL = "https://generativelanguage.googleapis.com/v1"

const transcribePrompt = `You are an OCR assistant. Transcribe ALL text visible in this image of a medical prescription, verbatim, preserving line breaks. Output only the transcribed text with no commentary.`

// Engine calls the Gemini vision API
type Engine struct {
	APIKey string
	Model  string

	baseURL string // overridable in tests
	httpc   *http.Client
}

// New creates a Gemini engine
func New(key, model string) *Engine {
	return &Engine{
		APIKey:  key,
		Model:   model,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "gemini" }

// generateResponse covers the fields we read from the API reply
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractText sends the image with a transcription prompt and returns the text
func (e *Engine) ExtractText(ctx context.Context, image []byte, mime string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is empty")
	}

	body := map[string]any{
		"contents": []any{
			map[string]any{
				"parts": []any{
					map[string]any{"text": transcribePrompt},
					map[string]any{"inline_data": map[string]any{
						"mime_type": mime,
						"data":      base64.StdEncoding.EncodeToString(image),
					}},
				},
			},
		},
		"generationConfig": map[string]any{"temperature": 0},
	}
	payload, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", e.baseURL, e.Model, e.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("Gemini API unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response: %w", err)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("invalid Gemini response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("Gemini API error: %s", out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned status %d", resp.StatusCode)
	}

	var sb strings.Builder
	for _, candidate := range out.Candidates {
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
		break // only the first candidate
	}

	return sb.String(), nil
}

// Probe verifies the model is reachable with the configured key
func (e *Engine) Probe(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s?key=%s", e.baseURL, e.Model, e.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}

	resp, err := e.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("Gemini API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Gemini API probe returned status %d", resp.StatusCode)
	}
	return nil
}
