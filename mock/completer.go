package mock

import (
	"context"

	"github.com/fwojciec/docagent"
)

var _ docagent.Completer = (*Completer)(nil)

// Completer is a mock implementation of docagent.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req *docagent.CompletionRequest) (string, error)
}

func (c *Completer) Complete(ctx context.Context, req *docagent.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}

var _ docagent.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of docagent.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
