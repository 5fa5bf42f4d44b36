package handler

import (
	"encoding/json"
	"net/http"

	"mediscribe/internal/clinical"
	"mediscribe/internal/transcribe"
	"mediscribe/internal/transcribe/audiostore"
)

// Service holds the pipeline and its collaborators behind the HTTP surface.
type Service struct {
	pipeline   *clinical.Pipeline
	structurer *clinical.Structurer
	speech     *transcribe.Client
	audio      *audiostore.Store
}

// New creates the gateway service. speech and audio may be nil when the
// corresponding collaborator is not configured.
func New(pipeline *clinical.Pipeline, structurer *clinical.Structurer, speech *transcribe.Client, audio *audiostore.Store) *Service {
	return &Service{
		pipeline:   pipeline,
		structurer: structurer,
		speech:     speech,
		audio:      audio,
	}
}

// BuildMux registers all HTTP routes on a new ServeMux.
func BuildMux(s *Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/clinical-notes/extract", s.ExtractClinicalNotes)
	mux.HandleFunc("/api/clinical-notes/structure", s.StructureNote)
	mux.HandleFunc("/api/speech/transcribe", s.TranscribeAudio)
	mux.HandleFunc("/api/health", s.Health)
	return mux
}

func (s *Service) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "healthy",
		"speech_to_text_ready": s.speech != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}
