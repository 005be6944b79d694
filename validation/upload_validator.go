// Package validation provides input validation for the prescription analyzer.
package validation

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/giygas/prescription-analyzer/interfaces"
)

// Compile-time check to ensure UploadValidatorImpl implements UploadValidator
var _ interfaces.UploadValidator = (*UploadValidatorImpl)(nil)

// maxTextInput caps direct text submissions (100KB of prescription text is
// already far beyond any real-world document)
const maxTextInput = 100 * 1024

// allowedExtensions maps accepted upload extensions to the MIME prefix the
// content must carry. Text files have no reliable signature, so they are
// checked negatively instead.
var allowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"txt":  "",
}

// dangerousPatterns are substrings rejected in direct text input.
// strings.Contains is faster than a regex for this kind of scan.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"eval(", "expression(", "@import",
}

// UploadValidatorImpl implements the interfaces.UploadValidator interface
type UploadValidatorImpl struct{}

// NewUploadValidator creates a new upload validator
func NewUploadValidator() interfaces.UploadValidator {
	return &UploadValidatorImpl{}
}

// ValidateUpload checks the filename extension and verifies it against the
// actual content, returning the canonical file type.
func (v *UploadValidatorImpl) ValidateUpload(filename string, content []byte) (string, error) {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		ext = strings.ToLower(filename[idx+1:])
	}

	wantMIME, ok := allowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("file must be an image (png/jpg/jpeg) or text file (txt)")
	}

	if len(content) == 0 {
		return "", fmt.Errorf("uploaded file is empty")
	}

	detected := mimetype.Detect(content)
	if wantMIME != "" {
		if !detected.Is(wantMIME) {
			return "", fmt.Errorf("file content does not match .%s extension (detected %s)", ext, detected.String())
		}
	} else {
		// A .txt upload must not smuggle binary media
		if strings.HasPrefix(detected.String(), "image/") ||
			strings.HasPrefix(detected.String(), "video/") ||
			strings.HasPrefix(detected.String(), "audio/") {
			return "", fmt.Errorf("file content does not look like text (detected %s)", detected.String())
		}
	}

	return ext, nil
}

// ValidateTextInput validates direct text submissions
func (v *UploadValidatorImpl) ValidateTextInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if len(text) > maxTextInput {
		return fmt.Errorf("text too long: %d bytes (max %d)", len(text), maxTextInput)
	}

	lowered := strings.ToLower(text)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("text contains disallowed content")
		}
	}

	return nil
}
