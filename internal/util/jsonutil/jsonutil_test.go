package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"outer whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
		{"leading fence only", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"multiline body", "```json\n{\n  \"a\": 1\n}\n```", "{\n  \"a\": 1\n}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestMarshalNoEscape(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"note": "BP <120/80> & stable"})
	require.NoError(t, err)
	require.Equal(t, `{"note":"BP <120/80> & stable"}`, string(b))
}

func TestMarshalNoEscapeIndent(t *testing.T) {
	b, err := MarshalNoEscapeIndent(map[string]any{"vitals": map[string]any{"hr": "<90"}}, "", "  ")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"vitals\": {\n    \"hr\": \"<90\"\n  }\n}", string(b))
}
