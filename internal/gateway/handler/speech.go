package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"mediscribe/internal/transcribe"
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// TranscribeAudio accepts a multipart upload under the "audio" field,
// archives the recording when an audio store is configured, and returns
// the transcript.
func (s *Service) TranscribeAudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.speech == nil {
		writeError(w, http.StatusInternalServerError, "transcription service not initialized; check ELEVENLABS_API_KEY")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, transcribe.MaxFileSize)
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no audio file provided")
		return
	}
	defer file.Close()

	filename := filepath.Base(strings.TrimSpace(header.Filename))
	if filename == "" || filename == "." {
		writeError(w, http.StatusBadRequest, "no file selected")
		return
	}
	if !transcribe.AllowedExtension(filename) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid file type; allowed: %s", strings.Join(transcribe.AllowedExtensions(), ", ")))
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file too large; maximum size: %dMB", transcribe.MaxFileSize/(1024*1024)))
		return
	}

	// Archiving is best-effort; a storage outage must not block dictation.
	var audioURL string
	if s.audio != nil {
		contentType := mime.TypeByExtension(filepath.Ext(filename))
		key, err := s.audio.Put(r.Context(), filename, contentType, audio)
		if err != nil {
			log.Printf("handler: could not archive audio %s: %v", filename, err)
		} else if url, err := s.audio.GetURL(r.Context(), key); err == nil {
			audioURL = url
		}
	}

	transcript, err := s.speech.Transcribe(r.Context(), filename, audio)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]any{
		"success":    true,
		"transcript": transcript,
		"timestamp":  time.Now().Format(time.RFC3339),
	}
	if audioURL != "" {
		resp["audio_url"] = audioURL
	}
	writeJSON(w, http.StatusOK, resp)
}
