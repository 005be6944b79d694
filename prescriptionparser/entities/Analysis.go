// Package entities defines the data structures produced by the prescription parser.
package entities

// Status classifies a dosage against its safety threshold.
type Status string

const (
	StatusSafe           Status = "Safe"
	StatusReviewRequired Status = "Review Required"
)

// RawEntry is a (medicine, dosage) pair captured from one pattern match.
// The medicine name has its first rune upper-cased, the rest is kept as
// written in the source text.
type RawEntry struct {
	MedicineName string `json:"medicine_name"`
	RawDosage    string `json:"raw_dosage"`
}

// DosageValue is a raw dosage string normalized to magnitude and unit.
type DosageValue struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// AssessmentRecord is the per-medication safety verdict.
type AssessmentRecord struct {
	Medicine string `json:"medicine"`
	Status   Status `json:"status"`
	Info     string `json:"info"`
}

// AnalysisResult is the full response body for an analysis request.
// Filename and FileType are caller-owned passthrough data.
type AnalysisResult struct {
	Filename      string             `json:"filename"`
	FileType      string             `json:"file_type"`
	ExtractedText string             `json:"extracted_text"`
	Analysis      []AssessmentRecord `json:"analysis"`
}
