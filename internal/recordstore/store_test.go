package recordstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleHistory = `{
  "consultation": {
    "chief_complaint": "persistent cough",
    "diagnosis": "bronchitis",
    "notes": "smoker, 10 pack-years",
    "treatment_plan": {
      "medications": [
        {"name": "Amoxicillin", "dosage": "500 mg", "frequency": "3x/day", "duration_days": 7}
      ],
      "risk_flags": ["smoker"],
      "instructions": "rest and fluids"
    }
  }
}`

func writeHistoryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medical_history.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileBackendLoadsConsultationEnvelope(t *testing.T) {
	store := New(writeHistoryFile(t, sampleHistory))

	record, err := store.Load(context.Background(), "patient-1")
	require.NoError(t, err)
	require.Equal(t, "persistent cough", record.ChiefComplaint)
	require.Equal(t, "bronchitis", record.Diagnosis)
	require.Len(t, record.TreatmentPlan.Medications, 1)
	require.Equal(t, "Amoxicillin", record.TreatmentPlan.Medications[0].Name)
	require.Equal(t, 7, record.TreatmentPlan.Medications[0].DurationDays)
	require.Equal(t, []string{"smoker"}, record.TreatmentPlan.RiskFlags)
}

func TestFileBackendServesAnyPatient(t *testing.T) {
	// The legacy data file holds one consultation; every patient id maps to it.
	store := New(writeHistoryFile(t, sampleHistory))

	a, err := store.Load(context.Background(), "patient-1")
	require.NoError(t, err)
	b, err := store.Load(context.Background(), "patient-2")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFileBackendMissingFileIsSilent(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does_not_exist.json"))

	record, err := store.Load(context.Background(), "patient-1")
	require.NoError(t, err, "a missing record file is a normal outcome")
	require.True(t, record.IsEmpty())
}

func TestFileBackendMalformedFileErrors(t *testing.T) {
	store := New(writeHistoryFile(t, "{not json"))

	_, err := store.Load(context.Background(), "patient-1")
	require.Error(t, err)
}

func TestNilStoreLoadsNothing(t *testing.T) {
	var store *Store
	record, err := store.Load(context.Background(), "patient-1")
	require.NoError(t, err)
	require.True(t, record.IsEmpty())
}
