package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
)

// FakeClient returns deterministic, minimal payloads per stage for
// offline/testing runs. It records how many calls it served.
type FakeClient struct {
	calls int64
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls reports how many completions this client served.
func (f *FakeClient) Calls() int64 { return atomic.LoadInt64(&f.calls) }

func (f *FakeClient) Complete(ctx context.Context, r Request) (string, error) {
	atomic.AddInt64(&f.calls, 1)
	switch StageFrom(ctx) {
	case "extract":
		b, _ := json.Marshal(map[string]string{
			"chief_complaint":         "fake chief complaint",
			"history":                 "fake history of present illness",
			"examination":             "fake examination findings",
			"diagnosis":               "fake diagnosis",
			"plan":                    "fake plan",
			"additional_observations": "",
		})
		return string(b), nil
	case "synthesize":
		return strings.Join([]string{
			"CHRONIC CONDITIONS:",
			"• None documented",
			"",
			"CURRENT MEDICATIONS:",
			"• None documented",
			"",
			"ALLERGIES & WARNINGS:",
			"• None documented",
			"",
			"RECENT MEDICAL HISTORY:",
			"• fake history of present illness",
			"",
			"RISK FLAGS:",
			"• None documented",
		}, "\n"), nil
	case "structure":
		b, _ := json.Marshal(map[string]any{
			"consultation": map[string]any{
				"chief_complaint": "fake chief complaint",
			},
			"diagnosis": []string{"fake diagnosis"},
		})
		return string(b), nil
	default:
		if r.JSONOnly {
			return "{}", nil
		}
		return "", nil
	}
}
