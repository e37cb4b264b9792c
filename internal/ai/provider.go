package ai

import (
	"context"
	"time"
)

// LLMProvider sends a prompt to an LLM and returns the raw text response.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type timeoutProvider struct {
	inner   LLMProvider
	timeout time.Duration
}

// WithTimeout bounds every Complete call on p to d. A non-positive d returns p unchanged.
func WithTimeout(p LLMProvider, d time.Duration) LLMProvider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: d}
}

func (p *timeoutProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.inner.Complete(ctx, prompt)
}
