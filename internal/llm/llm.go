package llm

import "context"

// Request describes one completion call: a fixed system instruction, the
// user content, and the knobs the upstream APIs share.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	// JSONOnly asks the provider for a JSON-object response. When false the
	// response is free text.
	JSONOnly bool
}

// Client is the completion-provider boundary. Implementations normalize
// whatever shape the upstream API returns into a single plain string, so
// callers never branch on response shape.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}
