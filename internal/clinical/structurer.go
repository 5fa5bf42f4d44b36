package clinical

import (
	"context"
	"encoding/json"
	"fmt"

	"mediscribe/internal/llm"
	"mediscribe/internal/util/jsonutil"
)

const structurerPromptFormat = `You are a medical transcription assistant.
You will receive raw text that was produced by a speech-to-text system during
a doctor's consultation. The text may contain:
  - speech recognition errors (homophones, missing words, wrong punctuation)
  - medical jargon spoken quickly or abbreviated
  - mixed languages or informal phrasing

Your tasks, in order:
1. Correct the transcription: fix spelling, grammar, and medical
   terminology while preserving the original meaning.
2. Extract every piece of clinical information and map it into the
   JSON structure below. If a field is not mentioned, leave it as its
   default (empty string, empty list, or null).
3. Return ONLY valid JSON, with no markdown fences and no commentary.

JSON template:
%s

Rules:
- past_medical_history, allergies, current_medications, diagnosis,
  and prescriptions must be arrays of strings.
- age must be an integer or null.
- Dates should be in YYYY-MM-DD format when possible.
- Vital-sign values should include units (e.g. "120/80 mmHg").
- If the doctor mentions observation notes or a medical/treatment plan,
  populate observation and medical_plan accordingly.
- Always return the full JSON object, even if most fields are empty.`

// Structurer transforms a raw dictation into the full nested clinical-note
// form in a single completion call, normalized against NoteSchema so every
// expected key is present regardless of what the model returned.
type Structurer struct {
	LLM llm.Client
}

func (s *Structurer) systemPrompt() (string, error) {
	tmpl, err := jsonutil.MarshalNoEscapeIndent(NoteSchema(), "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(structurerPromptFormat, tmpl), nil
}

// StructureNote returns a mapping guaranteed to contain every schema path.
func (s *Structurer) StructureNote(ctx context.Context, rawText string) (map[string]any, error) {
	prompt, err := s.systemPrompt()
	if err != nil {
		return nil, err
	}

	ctx = llm.WithStage(ctx, "structure")
	out, err := s.LLM.Complete(ctx, llm.Request{
		System:      prompt,
		User:        rawText,
		Temperature: 0.2,
		MaxTokens:   2048,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		stripped := jsonutil.StripFences(out)
		if err2 := json.Unmarshal([]byte(stripped), &data); err2 != nil {
			return nil, &ExtractionError{Err: fmt.Errorf("parse structured note response: %w", err2)}
		}
	}
	return Normalize(NoteSchema(), data), nil
}
