package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mediscribe/internal/clinical"
	"mediscribe/internal/llm"
)

func newTestService() *Service {
	client := llm.NewFakeClient()
	return New(
		clinical.NewPipeline(client, nil),
		&clinical.Structurer{LLM: client},
		nil,
		nil,
	)
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	mux := BuildMux(newTestService())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, false, body["speech_to_text_ready"])
}

func TestExtractClinicalNotes(t *testing.T) {
	mux := BuildMux(newTestService())

	rec := postJSON(t, mux, "/api/clinical-notes/extract", map[string]string{
		"text": "Patient reports severe headache for three days.",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success       bool                  `json:"success"`
		ClinicalNotes clinical.ClinicalNote `json:"clinical_notes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "fake chief complaint", body.ClinicalNotes.ChiefComplaint)
	require.NotEmpty(t, body.ClinicalNotes.History)
}

func TestExtractClinicalNotesEmptyText(t *testing.T) {
	mux := BuildMux(newTestService())

	rec := postJSON(t, mux, "/api/clinical-notes/extract", map[string]string{"text": "   "})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
}

func TestExtractClinicalNotesBadJSON(t *testing.T) {
	mux := BuildMux(newTestService())

	req := httptest.NewRequest(http.MethodPost, "/api/clinical-notes/extract", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractClinicalNotesMethodNotAllowed(t *testing.T) {
	mux := BuildMux(newTestService())

	req := httptest.NewRequest(http.MethodGet, "/api/clinical-notes/extract", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStructureNote(t *testing.T) {
	mux := BuildMux(newTestService())

	rec := postJSON(t, mux, "/api/clinical-notes/structure", map[string]string{
		"text": "Patient with persistent cough, prescribed amoxicillin.",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool           `json:"success"`
		Note    map[string]any `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	// The response is the full consultation form: defaults filled in around
	// whatever the model produced.
	require.Contains(t, body.Note, "consultation")
	require.Contains(t, body.Note, "vitals")
	require.Contains(t, body.Note, "prescriptions")
}

func TestTranscribeAudioWithoutSpeechClient(t *testing.T) {
	mux := BuildMux(newTestService())

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", "visit.mp3")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/speech/transcribe", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["error"], "ELEVENLABS_API_KEY")
}
