package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/amishk599/jobscout/internal/model"
)

// BoardLimiter paces requests per job board. Every keyword search against the
// same board shares one token bucket, so a long keyword list does not burst
// dozens of requests at a single site.
type BoardLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter // key: board name
	limit    rate.Limit
	burst    int
}

// NewBoardLimiter allows perSecond requests per board with the given burst.
// A non-positive perSecond disables limiting.
func NewBoardLimiter(perSecond float64, burst int) *BoardLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &BoardLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (l *BoardLimiter) get(board string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[board]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[board] = lim
	}
	return lim
}

// Wait blocks until a request to board is allowed.
// Returns an error if the context is cancelled or its deadline would pass first.
func (l *BoardLimiter) Wait(ctx context.Context, board string) error {
	if err := l.get(board).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", board, err)
	}
	return nil
}

// RateLimitedBoard is a decorator that waits on the board's limiter before
// delegating to the wrapped board.
type RateLimitedBoard struct {
	inner   model.Board
	limiter *BoardLimiter
}

// NewRateLimitedBoard wraps a board. All boards should share one limiter.
func NewRateLimitedBoard(inner model.Board, limiter *BoardLimiter) *RateLimitedBoard {
	return &RateLimitedBoard{inner: inner, limiter: limiter}
}

func (b *RateLimitedBoard) Name() string { return b.inner.Name() }

// Search waits for the limiter, then delegates to the wrapped board.
func (b *RateLimitedBoard) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	if err := b.limiter.Wait(ctx, b.inner.Name()); err != nil {
		return nil, err
	}
	return b.inner.Search(ctx, keyword)
}
