package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by clients built without credentials.
var ErrNotConfigured = errors.New("llm provider not configured")

// ChatRequest is a single-turn chat completion.
type ChatRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer returns the text of one chat completion.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Embedder turns text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Fallback completes with the first configured provider. Errors other than
// ErrNotConfigured are returned without trying the next one.
type Fallback []Completer

func (f Fallback) Complete(ctx context.Context, req ChatRequest) (string, error) {
	for _, c := range f {
		if c == nil {
			continue
		}
		out, err := c.Complete(ctx, req)
		if errors.Is(err, ErrNotConfigured) {
			continue
		}
		return out, err
	}
	return "", ErrNotConfigured
}
