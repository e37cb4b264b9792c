package ai

import (
	"context"

	"github.com/amishk599/jobscout/internal/model"
)

// NopScorer is used when ai.enabled is false. Listings pass through with a
// zero score and no analysis.
type NopScorer struct{}

// NewNopScorer returns a NopScorer.
func NewNopScorer() *NopScorer {
	return &NopScorer{}
}

// Score returns the listing with its relevance score reset.
func (n *NopScorer) Score(_ context.Context, l model.Listing) model.Listing {
	l.RelevanceScore = 0
	l.Analysis = nil
	return l
}
