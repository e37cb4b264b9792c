package filter

import (
	"strings"

	"github.com/amishk599/jobscout/internal/model"
)

var _ model.ListingFilter = (*TitleAndLocationFilter)(nil)

// TitleAndLocationFilter matches listings whose title contains any of the title
// keywords and whose location contains any of the location keywords.
// Matching is case-insensitive. Empty keyword lists are treated as "match all".
type TitleAndLocationFilter struct {
	titleKeywords []string
	locations     []string
}

// NewTitleAndLocationFilter returns a filter that requires both a title keyword
// match and a location keyword match (case-insensitive substring).
func NewTitleAndLocationFilter(titleKeywords []string, locations []string) *TitleAndLocationFilter {
	return &TitleAndLocationFilter{
		titleKeywords: titleKeywords,
		locations:     locations,
	}
}

// Match returns true if the listing's title contains any title keyword and its
// location contains any location keyword. Empty keyword lists pass all.
func (f *TitleAndLocationFilter) Match(l model.Listing) bool {
	return containsAny(l.Title, f.titleKeywords) && containsAny(l.Location, f.locations)
}

// Apply returns the listings that pass Match, preserving order.
func (f *TitleAndLocationFilter) Apply(listings []model.Listing) []model.Listing {
	if len(f.titleKeywords) == 0 && len(f.locations) == 0 {
		return listings
	}
	kept := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Match(l) {
			kept = append(kept, l)
		}
	}
	return kept
}

func containsAny(s string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
