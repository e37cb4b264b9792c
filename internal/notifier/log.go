package notifier

import (
	"log/slog"

	"github.com/amishk599/jobscout/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes high-scoring listings to the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each listing via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each listing with its score and recommendation.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(listings []model.Listing) error {
	for _, l := range listings {
		args := []any{
			"score", l.RelevanceScore,
			"company", l.Company,
			"title", l.Title,
			"location", l.Location,
			"source", l.Source,
			"url", l.ApplyURL(),
		}
		if a := l.Analysis; a != nil && !a.Failed() {
			args = append(args,
				"recommendation", a.OverallRecommendation,
				"summary", a.SummaryForCandidate,
				"strengths", a.KeyStrengths,
				"gaps", a.PotentialGaps,
				"strategy", a.ApplicationStrategy,
			)
		}
		n.logger.Info("strong match", args...)
	}
	return nil
}
