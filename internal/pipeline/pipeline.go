// Package pipeline runs the intake cycle: crawl, dedup, score, store, notify.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

// DefaultNotifyMinScore is the score at which a new listing triggers a notification.
const DefaultNotifyMinScore = 70

// Crawler gathers raw listings for a set of keywords.
type Crawler interface {
	RunAll(ctx context.Context, keywords []string) ([]model.Listing, error)
}

// Pipeline owns one intake run end to end.
type Pipeline struct {
	crawler        Crawler
	filter         model.ListingFilter
	store          model.ListingStore
	scorer         model.Scorer
	notifier       model.Notifier
	notifyMinScore int
	logger         *slog.Logger
	now            func() time.Time
}

// New creates a pipeline wired with all its dependencies. filter may be nil,
// in which case every crawled listing is considered.
func New(
	crawler Crawler,
	filter model.ListingFilter,
	store model.ListingStore,
	scorer model.Scorer,
	notifier model.Notifier,
	notifyMinScore int,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		crawler:        crawler,
		filter:         filter,
		store:          store,
		scorer:         scorer,
		notifier:       notifier,
		notifyMinScore: notifyMinScore,
		logger:         logger,
		now:            time.Now,
	}
}

// Run crawls all boards for keywords and feeds the result through ProcessNew.
// A crawl that hits its total timeout aborts the run before anything is stored.
func (p *Pipeline) Run(ctx context.Context, keywords []string) (int, error) {
	started := p.now()

	listings, err := p.crawler.RunAll(ctx, keywords)
	if err != nil {
		return 0, fmt.Errorf("crawl: %w", err)
	}

	matched := listings
	if p.filter != nil {
		matched = p.filter.Apply(listings)
	}

	added := p.ProcessNew(ctx, matched)

	p.logger.Info("run complete",
		"fetched", len(listings),
		"matched", len(matched),
		"new", added,
		"elapsed", p.now().Sub(started).Round(time.Millisecond),
	)
	return added, nil
}

// ProcessNew scores and stores every listing the store has not seen yet and
// returns how many were added. Individual failures are logged and skipped.
func (p *Pipeline) ProcessNew(ctx context.Context, listings []model.Listing) int {
	var (
		added   int
		notify  []model.Listing
		inBatch = make(map[string]bool, len(listings))
	)

	for i, l := range listings {
		if ctx.Err() != nil {
			p.logger.Warn("processing interrupted", "remaining", len(listings)-i, "error", ctx.Err())
			break
		}

		if l.ID == "" {
			l.ID = model.NewListingID(l.Source, l.Link)
		}
		if inBatch[l.ID] {
			continue
		}
		inBatch[l.ID] = true

		dup, err := p.store.IsDuplicate(l)
		if err != nil {
			p.logger.Error("duplicate check failed", "listing_id", l.ID, "title", l.Title, "error", err)
			continue
		}
		if dup {
			p.logger.Debug("skipping known listing", "listing_id", l.ID, "title", l.Title, "company", l.Company)
			continue
		}

		l = p.scorer.Score(ctx, l)
		if ctx.Err() != nil {
			// The score was cut short; leave the listing unseen so the next run retries it.
			p.logger.Warn("processing interrupted", "listing_id", l.ID, "remaining", len(listings)-i, "error", ctx.Err())
			break
		}
		l.Status = model.StatusNew
		if l.DiscoveredAt.IsZero() {
			l.DiscoveredAt = p.now()
		}

		if err := p.store.Upsert(l); err != nil {
			p.logger.Error("storing listing failed", "listing_id", l.ID, "title", l.Title, "error", err)
			continue
		}
		added++

		p.logger.Info("new listing stored",
			"listing_id", l.ID,
			"title", l.Title,
			"company", l.Company,
			"source", l.Source,
			"score", l.RelevanceScore,
		)
		if l.RelevanceScore >= p.notifyMinScore {
			notify = append(notify, l)
		}
	}

	if len(notify) > 0 && p.notifier != nil {
		if err := p.notifier.Notify(notify); err != nil {
			p.logger.Error("notification failed", "count", len(notify), "error", err)
		}
	}
	return added
}
