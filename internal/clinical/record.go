package clinical

import (
	"fmt"
	"strconv"
	"strings"
)

// StoredMedicalRecord is a patient's persisted prior clinical history.
// It is read-only input to the pipeline; the persistence layer owns its
// lifecycle. The zero value means "no records".
type StoredMedicalRecord struct {
	ChiefComplaint string        `json:"chief_complaint,omitempty"`
	Diagnosis      string        `json:"diagnosis,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	TreatmentPlan  TreatmentPlan `json:"treatment_plan,omitempty"`
}

type TreatmentPlan struct {
	Medications  []Medication `json:"medications,omitempty"`
	RiskFlags    []string     `json:"risk_flags,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
}

type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	DurationDays int    `json:"duration_days,omitempty"`
	Warning      string `json:"warning,omitempty"`
}

// IsEmpty reports whether the record carries no data worth merging.
func (r StoredMedicalRecord) IsEmpty() bool {
	return r.ChiefComplaint == "" &&
		r.Diagnosis == "" &&
		r.Notes == "" &&
		len(r.TreatmentPlan.Medications) == 0 &&
		len(r.TreatmentPlan.RiskFlags) == 0 &&
		r.TreatmentPlan.Instructions == ""
}

// FormatForPrompt renders the record as human-readable text for the
// synthesis model. The projection is deterministic and makes no calls.
func (r StoredMedicalRecord) FormatForPrompt() string {
	if r.IsEmpty() {
		return "No previous medical records available."
	}

	var parts []string

	if r.ChiefComplaint != "" {
		parts = append(parts, "Previous Complaint: "+r.ChiefComplaint)
	}
	if r.Diagnosis != "" {
		parts = append(parts, "Diagnosis: "+r.Diagnosis)
	}
	if r.Notes != "" {
		parts = append(parts, "Clinical Notes: "+r.Notes)
	}

	if meds := r.TreatmentPlan.Medications; len(meds) > 0 {
		parts = append(parts, "\nCurrent Medications:")
		for _, med := range meds {
			name := med.Name
			if name == "" {
				name = "Unknown"
			}
			duration := "?"
			if med.DurationDays > 0 {
				duration = strconv.Itoa(med.DurationDays)
			}
			line := fmt.Sprintf("- %s %s %s for %s days", name, med.Dosage, med.Frequency, duration)
			if med.Warning != "" {
				line += "\n  Warning: " + med.Warning
			}
			parts = append(parts, line)
		}
	}

	if flags := r.TreatmentPlan.RiskFlags; len(flags) > 0 {
		parts = append(parts, "\nRisk Flags:")
		for _, flag := range flags {
			parts = append(parts, "- "+flag)
		}
	}

	if r.TreatmentPlan.Instructions != "" {
		parts = append(parts, "\nTreatment Instructions: "+r.TreatmentPlan.Instructions)
	}

	if len(parts) == 0 {
		return "No detailed medical records available."
	}
	return strings.Join(parts, "\n")
}
