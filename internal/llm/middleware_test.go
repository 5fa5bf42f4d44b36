package llm

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

type tagClient struct {
	name string
	err  error
}

func (t *tagClient) Name() string { return t.name }
func (t *tagClient) Close() error { return nil }

func (t *tagClient) Complete(ctx context.Context, r Request) (string, error) {
	return t.name, t.err
}

func tagMiddleware(tag string) Middleware {
	return func(next Client) Client {
		return &tagged{next: next, tag: tag}
	}
}

type tagged struct {
	next Client
	tag  string
}

func (t *tagged) Name() string { return t.next.Name() }
func (t *tagged) Close() error { return t.next.Close() }

func (t *tagged) Complete(ctx context.Context, r Request) (string, error) {
	out, err := t.next.Complete(ctx, r)
	return t.tag + ">" + out, err
}

func TestWrapOrder(t *testing.T) {
	c := Wrap(&tagClient{name: "inner"}, tagMiddleware("A"), tagMiddleware("B"))

	out, err := c.Complete(context.Background(), Request{})
	require.NoError(t, err)
	// Wrap(inner, A, B) means A runs outermost.
	require.Equal(t, "A>B>inner", out)
}

func TestWithLoggingPassesThroughAndTagsStage(t *testing.T) {
	var buf bytes.Buffer
	c := Wrap(&tagClient{name: "inner"}, WithLogging(log.New(&buf, "", 0)))

	ctx := WithStage(context.Background(), "extract")
	out, err := c.Complete(ctx, Request{System: "sys", User: "user"})
	require.NoError(t, err)
	require.Equal(t, "inner", out)
	require.Contains(t, buf.String(), "LLM request (extract): 7 bytes")
}

func TestWithLoggingReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	c := Wrap(&tagClient{name: "inner", err: boom}, WithLogging(log.New(&buf, "", 0)))

	_, err := c.Complete(context.Background(), Request{})
	require.ErrorIs(t, err, boom)
	require.Contains(t, buf.String(), "LLM error")
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	c := Wrap(&tagClient{name: "inner"}, RateLimit(0, 0))

	out, err := c.Complete(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, "inner", out)
	require.NoError(t, c.Close())
}

func TestStageRoundTrip(t *testing.T) {
	require.Equal(t, "unknown", StageFrom(context.Background()))
	ctx := WithStage(context.Background(), "synthesize")
	require.Equal(t, "synthesize", StageFrom(ctx))
}
