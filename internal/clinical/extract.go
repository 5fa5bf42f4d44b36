package clinical

import (
	"context"
	"encoding/json"
	"fmt"

	"mediscribe/internal/llm"
	"mediscribe/internal/llmtool"
	"mediscribe/internal/util/jsonutil"
)

var extractPromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:    "Extract clinical information from a transcribed medical consultation and return it as structured JSON.",
	Background: "The text is raw output from a speech-to-text system recording a doctor's dictation during a patient visit.",
	OutputFields: []llmtool.PromptField{
		{Name: "chief_complaint", Type: "string", Required: true, Description: "Main reason for visit."},
		{Name: "history", Type: "string", Required: true, Description: "Patient's history and present illness details from this consultation."},
		{Name: "examination", Type: "string", Required: true, Description: "Physical examination findings."},
		{Name: "diagnosis", Type: "string", Required: true, Description: "Doctor's diagnosis or assessment."},
		{Name: "plan", Type: "string", Required: true, Description: "Treatment plan and recommendations."},
		{Name: "additional_observations", Type: "string", Required: true, Description: "Any other relevant notes or observations."},
	},
	Rules: []string{
		"If a field is not mentioned in the text, use an empty string.",
	},
	OutputFormat: "JSON only.",
	Language:     "English",
}, llmtool.PresetStrictJSON(), llmtool.PresetNoInvent())

// Extractor pulls the six flat clinical fields out of a raw transcript with
// one JSON-mode completion call.
type Extractor struct {
	LLM llm.Client
}

// Run extracts fields from rawText. A failed call or a response that stays
// unparseable after fence-stripping is an ExtractionError; the stage never
// invents partial results from an unparseable body.
func (e *Extractor) Run(ctx context.Context, rawText string) (ExtractedFields, error) {
	prompt, err := llmtool.Build(extractPromptSpec)
	if err != nil {
		return ExtractedFields{}, err
	}

	ctx = llm.WithStage(ctx, "extract")
	out, err := e.LLM.Complete(ctx, llm.Request{
		System:      prompt,
		User:        rawText,
		Temperature: 0.2,
		MaxTokens:   1024,
		JSONOnly:    true,
	})
	if err != nil {
		return ExtractedFields{}, &ExtractionError{Err: err}
	}

	// Missing keys stay zero-valued, which is the documented default.
	var fields ExtractedFields
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		stripped := jsonutil.StripFences(out)
		if err2 := json.Unmarshal([]byte(stripped), &fields); err2 != nil {
			return ExtractedFields{}, &ExtractionError{Err: fmt.Errorf("parse extraction response: %w", err2)}
		}
	}
	return fields, nil
}
