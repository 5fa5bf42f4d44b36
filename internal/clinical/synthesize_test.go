package clinical

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesizerSkipsEmptyRecord(t *testing.T) {
	client := &scriptClient{}
	s := &Synthesizer{LLM: client}

	got := s.Run(context.Background(), "patient reports mild cough", StoredMedicalRecord{})
	require.Equal(t, "patient reports mild cough", got)
	require.Equal(t, 0, client.calls, "no completion call for an empty record")
}

func TestSynthesizerMergesRecords(t *testing.T) {
	client := &scriptClient{responses: map[string]string{
		"synthesize": "\nCHRONIC CONDITIONS:\n• chronic migraine\n",
	}}
	s := &Synthesizer{LLM: client}

	got := s.Run(context.Background(), "worse than last visit", sampleRecord())
	require.Equal(t, "CHRONIC CONDITIONS:\n• chronic migraine", got, "response is trimmed")

	require.Equal(t, 1, client.calls)
	req := client.requests[0]
	require.False(t, req.JSONOnly, "synthesis output is free text")
	require.Contains(t, req.System, "CHRONIC CONDITIONS")
	require.Contains(t, req.System, "None documented")
	require.Contains(t, req.User, "CURRENT CONSULTATION HISTORY:")
	require.Contains(t, req.User, "worse than last visit")
	require.Contains(t, req.User, "Sumatriptan")
	require.Contains(t, req.User, "Propranolol")
	require.Contains(t, req.User, "do not combine with asthma medication")
	require.Contains(t, req.User, "hypertension")
}

func TestSynthesizerDegradesOnFailure(t *testing.T) {
	client := &scriptClient{errs: map[string]error{
		"synthesize": errors.New("quota exceeded"),
	}}
	s := &Synthesizer{
		LLM:    client,
		Logger: log.New(io.Discard, "", 0),
	}

	got := s.Run(context.Background(), "original consultation history", sampleRecord())
	require.Equal(t, "original consultation history", got,
		"failed synthesis returns the unmerged history, not an error")
	require.Equal(t, 1, client.calls)
}
