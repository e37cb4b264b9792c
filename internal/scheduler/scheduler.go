package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Runner performs one intake run for the given keywords.
type Runner interface {
	Run(ctx context.Context, keywords []string) (int, error)
}

// Scheduler owns the daemon loop: it runs the pipeline, waits for the
// interval, and repeats until cancelled.
type Scheduler struct {
	runner   Runner
	keywords []string
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs the pipeline at the given interval.
func NewScheduler(runner Runner, keywords []string, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		keywords: keywords,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate cycle, then waits for the
// configured interval between cycles. It returns nil when ctx is cancelled
// (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"keywords", len(s.keywords),
	)

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	added, err := s.runner.Run(ctx, s.keywords)
	if err != nil {
		s.logger.Error("run failed", "error", err)
		return
	}
	s.logger.Info("next run scheduled", "new", added, "at", time.Now().Add(s.interval).Format(time.DateTime))
}
