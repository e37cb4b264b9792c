package filter

import (
	"slices"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

// DefaultReportMinScore is the score a new listing needs to appear in a report.
const DefaultReportMinScore = 70

// Reportable returns the listings worth putting in front of the candidate:
// everything applied to or reviewed, plus new listings scoring at least
// minScore.
func Reportable(listings []model.Listing, minScore int) []model.Listing {
	var out []model.Listing
	for _, l := range listings {
		switch l.Status {
		case model.StatusApplied, model.StatusReviewed:
			out = append(out, l)
		case model.StatusNew:
			if l.RelevanceScore >= minScore {
				out = append(out, l)
			}
		}
	}
	return out
}

// SortForReport orders listings by score, highest first, then by discovery
// time, newest first. The slice is sorted in place.
func SortForReport(listings []model.Listing) {
	slices.SortStableFunc(listings, func(a, b model.Listing) int {
		if a.RelevanceScore != b.RelevanceScore {
			return b.RelevanceScore - a.RelevanceScore
		}
		return b.DiscoveredAt.Compare(a.DiscoveredAt)
	})
}

// AppliedOn counts listings whose application was recorded on the same
// calendar day as day, in day's location.
func AppliedOn(listings []model.Listing, day time.Time) int {
	y, m, d := day.Date()
	n := 0
	for _, l := range listings {
		if l.AppliedAt == nil {
			continue
		}
		ly, lm, ld := l.AppliedAt.In(day.Location()).Date()
		if ly == y && lm == m && ld == d {
			n++
		}
	}
	return n
}
