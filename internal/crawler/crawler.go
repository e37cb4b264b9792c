package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/jobscout/internal/model"
)

// DefaultTimeout bounds one RunAll call end to end.
const DefaultTimeout = 120 * time.Second

// Crawler fans every keyword out to every board and gathers the listings.
type Crawler struct {
	boards      []model.Board
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

// New creates a crawler. timeout is the total budget for one RunAll call;
// concurrency caps in-flight searches (zero or less means unlimited).
func New(boards []model.Board, timeout time.Duration, concurrency int, logger *slog.Logger) *Crawler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Crawler{
		boards:      boards,
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RunAll searches every board for every keyword concurrently. A failing
// search is logged and contributes nothing; it never stops the others.
// If the total timeout expires before all searches finish, RunAll returns
// the listings gathered so far together with an error wrapping
// context.DeadlineExceeded.
func (c *Crawler) RunAll(ctx context.Context, keywords []string) ([]model.Listing, error) {
	if len(c.boards) == 0 || len(keywords) == 0 {
		c.logger.Warn("nothing to search", "boards", len(c.boards), "keywords", len(keywords))
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		listings []model.Listing
		failed   int
	)

	// Plain Group, not WithContext: one failure must not cancel its siblings.
	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for _, kw := range keywords {
		c.logger.Info("queueing searches", "keyword", kw, "boards", len(c.boards))
		for _, b := range c.boards {
			g.Go(func() error {
				found, err := c.search(ctx, b, kw)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed++
					c.logger.Error("board search failed", "board", b.Name(), "keyword", kw, "error", err)
					return nil
				}
				listings = append(listings, found...)
				c.logger.Debug("board search done", "board", b.Name(), "keyword", kw, "count", len(found))
				return nil
			})
		}
	}
	_ = g.Wait()

	c.logger.Info("crawl complete",
		"searches", len(keywords)*len(c.boards),
		"failed", failed,
		"listings", len(listings),
	)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return listings, fmt.Errorf("crawl exceeded %s: %w", c.timeout, ctx.Err())
	}
	return listings, nil
}

// search runs one board search and converts a panic in the board into an error.
func (c *Crawler) search(ctx context.Context, b model.Board, keyword string) (found []model.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s search panicked: %v", b.Name(), r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Search(ctx, keyword)
}
