package clinical

import (
	"context"
	"log"
	"strings"

	"mediscribe/internal/llm"
)

// RecordLoader resolves a patient's stored medical record. Absence is a
// normal outcome: implementations return a zero record, not an error, when
// nothing is on file.
type RecordLoader interface {
	Load(ctx context.Context, patientID string) (StoredMedicalRecord, error)
}

// Pipeline is the unit exposed to callers: extraction, best-effort record
// load, then history synthesis. It holds no mutable state; concurrent
// invocations are independent.
type Pipeline struct {
	Extract    *Extractor
	Synthesize *Synthesizer
	Records    RecordLoader
	Logger     *log.Logger
}

// NewPipeline wires both stages to the same completion client. records may
// be nil when no history store is configured.
func NewPipeline(client llm.Client, records RecordLoader) *Pipeline {
	return &Pipeline{
		Extract:    &Extractor{LLM: client},
		Synthesize: &Synthesizer{LLM: client},
		Records:    records,
	}
}

// BuildClinicalNote runs the two-stage pipeline over a transcript.
//
// An empty transcript is ErrEmptyTranscript before any call is made. An
// extraction failure is fatal and propagates. A missing or unreadable
// stored record, and a failed synthesis call, both degrade silently: the
// note keeps the unmerged extraction history. Nothing is retried here.
func (p *Pipeline) BuildClinicalNote(ctx context.Context, rawText, patientID string) (ClinicalNote, error) {
	if strings.TrimSpace(rawText) == "" {
		return ClinicalNote{}, ErrEmptyTranscript
	}

	fields, err := p.Extract.Run(ctx, rawText)
	if err != nil {
		return ClinicalNote{}, err
	}

	record := p.loadRecord(ctx, patientID)
	history := p.Synthesize.Run(ctx, fields.History, record)

	return ClinicalNote{
		ChiefComplaint:         fields.ChiefComplaint,
		History:                history,
		Examination:            fields.Examination,
		Diagnosis:              fields.Diagnosis,
		Plan:                   fields.Plan,
		AdditionalObservations: fields.AdditionalObservations,
	}, nil
}

func (p *Pipeline) loadRecord(ctx context.Context, patientID string) StoredMedicalRecord {
	if p.Records == nil || strings.TrimSpace(patientID) == "" {
		return StoredMedicalRecord{}
	}
	record, err := p.Records.Load(ctx, patientID)
	if err != nil {
		p.logger().Printf("clinical: could not load medical record for patient %s: %v", patientID, err)
		return StoredMedicalRecord{}
	}
	return record
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}
