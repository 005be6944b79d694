package prescriptionparser

import (
	"testing"

	"github.com/giygas/prescription-analyzer/prescriptionparser/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSingleEntry(t *testing.T) {
	tests := []struct {
		name string
		text string
		want entities.RawEntry
	}{
		{
			name: "compact dosage",
			text: "Amoxicillin 500mg",
			want: entities.RawEntry{MedicineName: "Amoxicillin", RawDosage: "500mg"},
		},
		{
			name: "colon separated",
			text: "Paracetamol: 650 mg",
			want: entities.RawEntry{MedicineName: "Paracetamol", RawDosage: "650 mg"},
		},
		{
			name: "spaced unit",
			text: "Ibuprofen 400 mg",
			want: entities.RawEntry{MedicineName: "Ibuprofen", RawDosage: "400 mg"},
		},
		{
			name: "milliliters",
			text: "Saline 30ml",
			want: entities.RawEntry{MedicineName: "Saline", RawDosage: "30ml"},
		},
		{
			name: "decimal magnitude",
			text: "Levothyroxine 12.5mcg",
			want: entities.RawEntry{MedicineName: "Levothyroxine", RawDosage: "12.5mcg"},
		},
		{
			name: "insulin units",
			text: "Insulin 10 units",
			want: entities.RawEntry{MedicineName: "Insulin", RawDosage: "10 units"},
		},
		{
			name: "lowercase name is capitalized",
			text: "amoxicillin 500mg",
			want: entities.RawEntry{MedicineName: "Amoxicillin", RawDosage: "500mg"},
		},
		{
			name: "mixed case preserved after first rune",
			text: "ibuPROFEN 200mg",
			want: entities.RawEntry{MedicineName: "IbuPROFEN", RawDosage: "200mg"},
		},
		{
			name: "uppercase unit",
			text: "Aspirin 100MG",
			want: entities.RawEntry{MedicineName: "Aspirin", RawDosage: "100MG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestExtractMultipleLines(t *testing.T) {
	text := "Amoxicillin 500mg\n\n  Paracetamol: 650 mg  \nSaline 30ml\n"

	got := Extract(text)

	require.Len(t, got, 3)
	assert.Equal(t, "Amoxicillin", got[0].MedicineName)
	assert.Equal(t, "Paracetamol", got[1].MedicineName)
	assert.Equal(t, "Saline", got[2].MedicineName)
}

func TestExtractMultipleEntriesPerLine(t *testing.T) {
	got := Extract("Amoxicillin 500mg Paracetamol 650mg")

	require.Len(t, got, 2)
	assert.Equal(t, entities.RawEntry{MedicineName: "Amoxicillin", RawDosage: "500mg"}, got[0])
	assert.Equal(t, entities.RawEntry{MedicineName: "Paracetamol", RawDosage: "650mg"}, got[1])
}

func TestExtractOverlappingRulesProduceOneEntry(t *testing.T) {
	// The compact rule and the spaced-unit rule both match this line; the
	// span de-duplication keeps only the higher-priority capture.
	got := Extract("Amoxicillin 500 mg")

	require.Len(t, got, 1)
	assert.Equal(t, "500 mg", got[0].RawDosage)
}

func TestExtractNoMatches(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"blank lines only", "\n  \n\t\n"},
		{"prose without dosages", "Take with food after meals"},
		{"number without unit", "Aspirin 100"},
		{"unit without number", "Aspirin mg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Extract(tt.text))
		})
	}
}

func TestExtractNumericTokenAsName(t *testing.T) {
	// A numeric token satisfies the word class and is accepted as a name;
	// known input-quality risk, not corrected.
	got := Extract("12 500mg")

	require.Len(t, got, 1)
	assert.Equal(t, "12", got[0].MedicineName)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "A", capitalize("a"))
	assert.Equal(t, "Amoxicillin", capitalize("amoxicillin"))
	assert.Equal(t, "IbuPROFEN", capitalize("ibuPROFEN"))
	assert.Equal(t, "Été", capitalize("été"))
}
