package clinical

import (
	"context"
	"log"
	"strings"

	"mediscribe/internal/llm"
)

const synthesisPrompt = `You are a clinical documentation specialist. Create a STRUCTURED, SCANNABLE patient history summary that a doctor can review in seconds.

Format the output with clear sections and bullet points:

CHRONIC CONDITIONS:
- List any chronic diseases or ongoing conditions
- Include relevant past diagnoses

CURRENT MEDICATIONS:
- List long-term medications with dosage
- Highlight any warnings or interactions

ALLERGIES & WARNINGS:
- List known allergies
- Note any medication warnings or contraindications

RECENT MEDICAL HISTORY:
- Brief summary of current complaint history
- Relevant recent treatments or issues

RISK FLAGS:
- Any anomalies that could interfere with treatment
- Drug interactions or complications to watch for

Rules:
- Keep each bullet point to ONE line maximum
- Only include clinically relevant information
- Use medical terminology but keep it clear
- If a section has no information, write "None documented"
- Be extremely concise - doctors need to scan this quickly`

// Synthesizer merges the history extracted from the current consultation
// with the patient's stored records into one scannable summary.
type Synthesizer struct {
	LLM    llm.Client
	Logger *log.Logger
}

// Run returns the merged history. With an empty record the stage is skipped
// and consultationHistory comes back unchanged with no completion call.
// A failed completion degrades the same way instead of failing the note:
// losing the merge is acceptable, losing the base extraction is not.
func (s *Synthesizer) Run(ctx context.Context, consultationHistory string, record StoredMedicalRecord) string {
	if record.IsEmpty() {
		return consultationHistory
	}

	combined := strings.Join([]string{
		"CURRENT CONSULTATION HISTORY:",
		consultationHistory,
		"",
		"PATIENT MEDICAL RECORDS:",
		record.FormatForPrompt(),
		"",
		"Create a structured, scannable history summary.",
	}, "\n")

	ctx = llm.WithStage(ctx, "synthesize")
	out, err := s.LLM.Complete(ctx, llm.Request{
		System:      synthesisPrompt,
		User:        combined,
		Temperature: 0.2,
		MaxTokens:   512,
	})
	if err != nil {
		s.logger().Printf("clinical: history synthesis failed, keeping unmerged history: %v", err)
		return consultationHistory
	}
	return strings.TrimSpace(out)
}

func (s *Synthesizer) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
