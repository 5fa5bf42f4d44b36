package handler

import (
	"errors"
	"net/http"
	"strings"

	"mediscribe/internal/clinical"
)

type extractRequest struct {
	Text      string `json:"text"`
	PatientID string `json:"patient_id"`
}

// ExtractClinicalNotes runs the two-stage pipeline over a transcript and
// returns the six-field clinical note.
func (s *Service) ExtractClinicalNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in extractRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		writeError(w, http.StatusBadRequest, "text field is required and cannot be empty")
		return
	}

	note, err := s.pipeline.BuildClinicalNote(r.Context(), in.Text, in.PatientID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, clinical.ErrEmptyTranscript) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"clinical_notes": note,
	})
}

// StructureNote maps a raw dictation onto the full nested consultation form.
func (s *Service) StructureNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in extractRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		writeError(w, http.StatusBadRequest, "text field is required and cannot be empty")
		return
	}

	note, err := s.structurer.StructureNote(r.Context(), in.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"note":    note,
	})
}
