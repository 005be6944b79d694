package prescriptionparser

import (
	"fmt"

	"github.com/giygas/prescription-analyzer/interfaces"
	"github.com/giygas/prescription-analyzer/policy"
	"github.com/giygas/prescription-analyzer/prescriptionparser/entities"
)

// Compile-time check to ensure PrescriptionAnalyzer implements Analyzer
var _ interfaces.Analyzer = (*PrescriptionAnalyzer)(nil)

// PrescriptionAnalyzer runs the extract-then-assess pipeline. It holds no
// mutable state, so one instance is safe for concurrent requests.
type PrescriptionAnalyzer struct {
	thresholds policy.Thresholds
}

// NewAnalyzer creates an analyzer bound to a safety policy.
func NewAnalyzer(thresholds policy.Thresholds) *PrescriptionAnalyzer {
	return &PrescriptionAnalyzer{thresholds: thresholds}
}

// Extract implements the Analyzer interface.
func (a *PrescriptionAnalyzer) Extract(text string) []entities.RawEntry {
	return Extract(text)
}

// Assess implements the Analyzer interface.
func (a *PrescriptionAnalyzer) Assess(medicine, rawDosage string) entities.AssessmentRecord {
	return AssessDosage(medicine, rawDosage, a.thresholds)
}

// Analyze extracts entries from text and assesses each one in order.
// When nothing is extracted it returns exactly one advisory record naming
// the caller-supplied source label ("text file", "image", ...), so the
// result always contains at least one record.
func (a *PrescriptionAnalyzer) Analyze(text, source string) []entities.AssessmentRecord {
	rawEntries := Extract(text)

	records := make([]entities.AssessmentRecord, 0, len(rawEntries))
	for _, entry := range rawEntries {
		dosage := entry.RawDosage
		if dosage == "" {
			// A pattern that matched a name without a dosage still yields
			// one record, flagged for review.
			dosage = "Unknown"
		}
		records = append(records, a.Assess(entry.MedicineName, dosage))
	}

	if len(records) == 0 {
		records = append(records, entities.AssessmentRecord{
			Medicine: "No medications detected",
			Status:   entities.StatusReviewRequired,
			Info:     fmt.Sprintf("Please ensure the %s contains clear prescription information", source),
		})
	}

	return records
}
