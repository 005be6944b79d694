package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestEngine(url string) *Engine {
	e := New("test-key", "test-model")
	e.baseURL = url
	return e
}

func TestExtractText(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}

	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Amoxicillin 500mg"}]}}]}`))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	text, err := engine.ExtractText(context.Background(), image, "image/png")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if text != "Amoxicillin 500mg" {
		t.Errorf("Expected recognized text, got %q", text)
	}
	if gotPath != "/models/test-model:generateContent" {
		t.Errorf("Unexpected request path: %s", gotPath)
	}

	// The request carries the prompt and the inline base64 image
	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(parts))
	}
	inline := parts[1].(map[string]any)["inline_data"].(map[string]any)
	if inline["mime_type"] != "image/png" {
		t.Errorf("Expected image/png mime type, got %v", inline["mime_type"])
	}
	if inline["data"] != base64.StdEncoding.EncodeToString(image) {
		t.Error("Expected base64 encoded image bytes in request")
	}
}

func TestExtractTextMultipleParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Amoxicillin 500mg\n"}, {"text": "Ibuprofen 600mg"}]}}]}`))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	text, err := engine.ExtractText(context.Background(), []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if text != "Amoxicillin 500mg\nIbuprofen 600mg" {
		t.Errorf("Expected concatenated parts, got %q", text)
	}
}

func TestExtractTextAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	_, err := engine.ExtractText(context.Background(), []byte("img"), "image/png")
	if err == nil {
		t.Fatal("Expected an error from the API error reply")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("Expected the API message in the error, got %v", err)
	}
}

func TestExtractTextBadStatusWithoutErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	if _, err := engine.ExtractText(context.Background(), []byte("img"), "image/png"); err == nil {
		t.Error("Expected an error on non-200 status")
	}
}

func TestExtractTextInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	if _, err := engine.ExtractText(context.Background(), []byte("img"), "image/png"); err == nil {
		t.Error("Expected an error on malformed response")
	}
}

func TestExtractTextEmptyKey(t *testing.T) {
	engine := New("", "test-model")
	if _, err := engine.ExtractText(context.Background(), []byte("img"), "image/png"); err == nil {
		t.Error("Expected an error with an empty API key")
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		expectErr bool
	}{
		{"reachable model", http.StatusOK, false},
		{"unknown model", http.StatusNotFound, true},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			engine := newTestEngine(srv.URL)
			err := engine.Probe(context.Background())
			if tt.expectErr && err == nil {
				t.Error("Expected probe to fail")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected probe to succeed, got %v", err)
			}
		})
	}
}
