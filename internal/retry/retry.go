package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

// Completer is the subset of an LLM provider the decorator wraps.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RetryProvider is a decorator that retries transient LLM failures with
// exponential backoff and jitter before giving up.
type RetryProvider struct {
	inner      Completer
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetryProvider wraps a provider with retry logic.
// maxRetries is the number of additional attempts after the first failure (default: 2).
// baseDelay is the delay before the first retry (default: 2s), doubled on each subsequent retry.
func NewRetryProvider(inner Completer, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryProvider {
	return &RetryProvider{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Complete sends the prompt, retrying on transient errors.
func (p *RetryProvider) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := p.inner.Complete(ctx, prompt)
	if err == nil {
		return out, nil
	}

	if !isRetryable(err) {
		return "", err
	}

	lastErr := err
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		delay := p.backoffDelay(attempt, lastErr)

		p.logger.Warn("retrying llm call after transient error",
			"attempt", attempt,
			"max_retries", p.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		out, err = p.inner.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}

		if !isRetryable(err) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// If the error includes a Retry-After duration (HTTP 429), that takes precedence.
func (p *RetryProvider) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	// Exponential: baseDelay * 2^(attempt-1)
	delay := p.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	// Apply ±30% jitter
	jitter := float64(delay) * 0.3
	delay = time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)

	return delay
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation: never retry.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		// 429 and 5xx are transient; other 4xx (bad key, bad request) are not.
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}

	// Network and DNS errors.
	return true
}
