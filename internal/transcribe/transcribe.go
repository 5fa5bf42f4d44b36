// Package transcribe wraps the ElevenLabs speech-to-text API behind a
// single adapter that returns one plain transcript string.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrMissingAPIKey means the ElevenLabs credential was absent at construction.
var ErrMissingAPIKey = errors.New("transcribe: api key is not set")

// ErrNoTranscript means the service answered without usable text.
var ErrNoTranscript = errors.New("transcribe: empty transcript from service")

// MaxFileSize caps uploaded audio at 25MB, matching the upstream limit.
const MaxFileSize = 25 * 1024 * 1024

var allowedExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".webm": {},
	".m4a":  {},
	".ogg":  {},
	".flac": {},
}

// AllowedExtension reports whether the filename has a supported audio extension.
func AllowedExtension(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// AllowedExtensions lists the supported extensions without the leading dot,
// for error messages.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, strings.TrimPrefix(ext, "."))
	}
	return out
}

// Client calls the ElevenLabs speech-to-text convert endpoint.
type Client struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewClient creates an ElevenLabs client. If apiKey is empty, it falls back
// to the ELEVENLABS_API_KEY env var; a still-empty key is a configuration
// error raised here, before any request.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ELEVENLABS_API_KEY")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = "scribe_v2"
	}
	return &Client{
		http:    &http.Client{Timeout: 120 * time.Second},
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.elevenlabs.io/v1/speech-to-text",
	}, nil
}

type convertResp struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio bytes and returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("model_id", c.model); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(b) > max {
			b = b[:max]
		}
		return "", fmt.Errorf("elevenlabs: unexpected status %s: %s", resp.Status, string(b))
	}

	var out convertResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", ErrNoTranscript
	}
	return out.Text, nil
}
