package clinical

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRecord() StoredMedicalRecord {
	return StoredMedicalRecord{
		ChiefComplaint: "recurring migraines",
		Diagnosis:      "chronic migraine",
		Notes:          "responds well to triptans",
		TreatmentPlan: TreatmentPlan{
			Medications: []Medication{
				{Name: "Sumatriptan", Dosage: "50 mg", Frequency: "as needed", DurationDays: 30},
				{Name: "Propranolol", Dosage: "40 mg", Frequency: "2x/day", DurationDays: 90,
					Warning: "do not combine with asthma medication"},
			},
			RiskFlags:    []string{"hypertension"},
			Instructions: "avoid caffeine in the evening",
		},
	}
}

func TestFormatForPromptEmptyRecord(t *testing.T) {
	require.Equal(t, "No previous medical records available.",
		StoredMedicalRecord{}.FormatForPrompt())
}

func TestFormatForPromptFullRecord(t *testing.T) {
	out := sampleRecord().FormatForPrompt()

	require.Contains(t, out, "Previous Complaint: recurring migraines")
	require.Contains(t, out, "Diagnosis: chronic migraine")
	require.Contains(t, out, "Clinical Notes: responds well to triptans")
	require.Contains(t, out, "Current Medications:")
	require.Contains(t, out, "- Sumatriptan 50 mg as needed for 30 days")
	require.Contains(t, out, "- Propranolol 40 mg 2x/day for 90 days")
	require.Contains(t, out, "  Warning: do not combine with asthma medication")
	require.Contains(t, out, "Risk Flags:")
	require.Contains(t, out, "- hypertension")
	require.Contains(t, out, "Treatment Instructions: avoid caffeine in the evening")
}

func TestFormatForPromptUnknownFields(t *testing.T) {
	record := StoredMedicalRecord{
		TreatmentPlan: TreatmentPlan{
			Medications: []Medication{{Dosage: "10 mg"}},
		},
	}
	out := record.FormatForPrompt()

	require.Contains(t, out, "- Unknown 10 mg  for ? days")
}

func TestFormatForPromptIsDeterministic(t *testing.T) {
	record := sampleRecord()
	require.Equal(t, record.FormatForPrompt(), record.FormatForPrompt())
}

func TestIsEmpty(t *testing.T) {
	require.True(t, StoredMedicalRecord{}.IsEmpty())
	require.False(t, StoredMedicalRecord{Notes: "x"}.IsEmpty())
	require.False(t, StoredMedicalRecord{
		TreatmentPlan: TreatmentPlan{RiskFlags: []string{"falls"}},
	}.IsEmpty())
	require.True(t, StoredMedicalRecord{
		TreatmentPlan: TreatmentPlan{Medications: []Medication{}, RiskFlags: []string{}},
	}.IsEmpty())
}
