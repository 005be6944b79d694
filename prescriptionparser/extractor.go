// Package prescriptionparser extracts medication entries from free-form
// prescription text and assesses each dosage against the safety policy.
package prescriptionparser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/giygas/prescription-analyzer/prescriptionparser/entities"
)

// Pre-compiled pattern rules, applied to every line in priority order.
// Each rule targets one common prescription phrasing:
var medicationPatterns = []*regexp.Regexp{
	// "Amoxicillin 500mg" - dosage captured with its unit attached
	regexp.MustCompile(`(?i)(\w+)\s+(\d+(?:\.\d+)?\s*(?:mg|ml|g|mcg|units?))`),
	// "Amoxicillin: 500 mg" - colon separated
	regexp.MustCompile(`(?i)(\w+)\s*:\s*(\d+(?:\.\d+)?\s*(?:mg|ml|g|mcg|units?))`),
	// "Amoxicillin 500 mg" - number and unit captured separately
	regexp.MustCompile(`(?i)(\w+)\s+(\d+(?:\.\d+)?)\s*(mg|ml|g|mcg|units?)`),
}

// matchSpan identifies the region of a line consumed by one match. Two
// rules matching the same region describe the same medication entry, so
// only the highest-priority rule's capture is kept.
type matchSpan struct {
	start, end int
}

// Extract scans text line by line and returns every (medicine, dosage) pair
// found by the pattern rules, in line order, then rule order, then match
// order. Matches covering a region already claimed by an earlier rule on
// the same line are dropped. Unparseable lines contribute nothing; an
// empty input yields an empty slice.
func Extract(text string) []entities.RawEntry {
	rawEntries := []entities.RawEntry{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		seen := make(map[matchSpan]bool)

		for _, pattern := range medicationPatterns {
			for _, idx := range pattern.FindAllStringSubmatchIndex(line, -1) {
				span := matchSpan{start: idx[0], end: idx[1]}
				if seen[span] {
					continue
				}
				seen[span] = true

				name := capitalize(line[idx[2]:idx[3]])

				switch len(idx)/2 - 1 {
				case 2: // name + dosage with unit attached
					rawEntries = append(rawEntries, entities.RawEntry{
						MedicineName: name,
						RawDosage:    line[idx[4]:idx[5]],
					})
				case 3: // name + number + unit
					rawEntries = append(rawEntries, entities.RawEntry{
						MedicineName: name,
						RawDosage:    line[idx[4]:idx[5]] + " " + line[idx[6]:idx[7]],
					})
				}
			}
		}
	}

	return rawEntries
}

// capitalize upper-cases the first rune only. The remainder is kept exactly
// as written, so "ibuPROFEN" becomes "IbuPROFEN".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
