package clinical

// ExtractedFields is the flat six-field output of the extraction stage.
// A field the model did not mention stays an empty string.
type ExtractedFields struct {
	ChiefComplaint         string `json:"chief_complaint"`
	History                string `json:"history"`
	Examination            string `json:"examination"`
	Diagnosis              string `json:"diagnosis"`
	Plan                   string `json:"plan"`
	AdditionalObservations string `json:"additional_observations"`
}

// ClinicalNote is the final pipeline result: the extracted fields with
// History replaced by the synthesized summary.
type ClinicalNote struct {
	ChiefComplaint         string `json:"chief_complaint"`
	History                string `json:"history"`
	Examination            string `json:"examination"`
	Diagnosis              string `json:"diagnosis"`
	Plan                   string `json:"plan"`
	AdditionalObservations string `json:"additional_observations"`
}
