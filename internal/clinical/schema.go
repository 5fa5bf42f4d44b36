package clinical

// NoteSchema returns the canonical clinical-note template that mirrors the
// frontend consultation form. Every call returns a fresh tree so callers
// can never alias the defaults.
func NoteSchema() map[string]any {
	return map[string]any{
		"patient_info": map[string]any{
			"full_name":     "",
			"age":           nil,
			"gender":        "",
			"date_of_birth": "",
			"phone_number":  "",
			"address":       "",
		},
		"consultation": map[string]any{
			"date":                       "",
			"chief_complaint":            "",
			"history_of_present_illness": "",
			"past_medical_history":       []any{},
			"family_history":             "",
			"allergies":                  []any{},
			"current_medications":        []any{},
		},
		"vitals": map[string]any{
			"blood_pressure":    "",
			"heart_rate":        "",
			"temperature":       "",
			"respiratory_rate":  "",
			"oxygen_saturation": "",
			"weight":            "",
			"height":            "",
		},
		"physical_examination": "",
		"diagnosis":            []any{},
		"observation":          "",
		"medical_plan":         "",
		"prescriptions":        []any{},
		"follow_up":            "",
		"additional_notes":     "",
	}
}

// Normalize recursively merges candidate into a copy of defaults.
//
// Every key in defaults appears in the result: missing keys keep their
// default, nested maps merge per-key, anything else takes the candidate's
// value verbatim (no type coercion; a string where a list is expected
// passes through unchanged). Keys only the candidate has are preserved;
// the schema is a floor, not a filter.
func Normalize(defaults, candidate map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(candidate))
	for key, def := range defaults {
		got, ok := candidate[key]
		if !ok {
			merged[key] = def
			continue
		}
		defMap, defIsMap := def.(map[string]any)
		gotMap, gotIsMap := got.(map[string]any)
		if defIsMap && gotIsMap {
			merged[key] = Normalize(defMap, gotMap)
			continue
		}
		merged[key] = got
	}
	for key, got := range candidate {
		if _, ok := defaults[key]; !ok {
			merged[key] = got
		}
	}
	return merged
}
