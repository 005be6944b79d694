package prescriptionparser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/giygas/prescription-analyzer/policy"
	"github.com/giygas/prescription-analyzer/prescriptionparser/entities"
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	unitPattern   = regexp.MustCompile(`(?i)mg|ml|g|mcg|units?`)
)

// ParseDosage normalizes a raw dosage string into magnitude and unit.
// The magnitude is the first numeric substring; the unit defaults to
// "units" when no unit token is present.
func ParseDosage(rawDosage string) (entities.DosageValue, error) {
	number := numberPattern.FindString(rawDosage)
	if number == "" {
		return entities.DosageValue{}, fmt.Errorf("no numeric value in dosage %q", rawDosage)
	}

	magnitude, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return entities.DosageValue{}, fmt.Errorf("failed to parse dosage number %q: %w", number, err)
	}

	unit := unitPattern.FindString(rawDosage)
	if unit == "" {
		unit = "units"
	}

	return entities.DosageValue{Magnitude: magnitude, Unit: unit}, nil
}

// AssessDosage evaluates one raw dosage against the thresholds and always
// returns a well-formed record. A dosage with no numeric token is flagged
// for review, as is anything that fails during calculation; errors never
// propagate to the caller.
func AssessDosage(medicine, rawDosage string, thresholds policy.Thresholds) entities.AssessmentRecord {
	if !numberPattern.MatchString(rawDosage) {
		return entities.AssessmentRecord{
			Medicine: medicine,
			Status:   entities.StatusReviewRequired,
			Info:     fmt.Sprintf("Current: %s, Unable to parse dosage", rawDosage),
		}
	}

	dosage, err := ParseDosage(rawDosage)
	if err != nil {
		return entities.AssessmentRecord{
			Medicine: medicine,
			Status:   entities.StatusReviewRequired,
			Info:     fmt.Sprintf("Current: %s, Unable to calculate recommendation", rawDosage),
		}
	}

	threshold := thresholds.ForUnit(dosage.Unit)

	status := entities.StatusSafe
	recommended := rawDosage
	if dosage.Magnitude > threshold {
		status = entities.StatusReviewRequired
		recommended = fmt.Sprintf("%s %s", strconv.FormatFloat(dosage.Magnitude*0.9, 'f', 1, 64), dosage.Unit)
	}

	return entities.AssessmentRecord{
		Medicine: medicine,
		Status:   status,
		Info:     fmt.Sprintf("Current: %s, Recommended: %s", rawDosage, recommended),
	}
}
