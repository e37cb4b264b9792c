package filter

import (
	"testing"

	"github.com/amishk599/jobscout/internal/model"
)

func listing(title, location string) model.Listing {
	return model.Listing{Title: title, Location: location}
}

func TestTitleAndLocationFilter_Match(t *testing.T) {
	tests := []struct {
		name          string
		titleKeywords []string
		locations     []string
		listing       model.Listing
		wantMatch     bool
	}{
		{
			name:          "matches both title and location",
			titleKeywords: []string{"research intern", "machine learning"},
			locations:     []string{"India", "Remote"},
			listing:       listing("AI Research Intern", "Remote - Worldwide"),
			wantMatch:     true,
		},
		{
			name:          "title match but location miss",
			titleKeywords: []string{"research intern"},
			locations:     []string{"India", "Remote"},
			listing:       listing("Research Intern", "London, UK"),
			wantMatch:     false,
		},
		{
			name:          "case insensitive matching",
			titleKeywords: []string{"NLP"},
			locations:     []string{"bangalore"},
			listing:       listing("nlp engineer", "Bangalore, Karnataka"),
			wantMatch:     true,
		},
		{
			name:          "no keywords match",
			titleKeywords: []string{"phd", "postdoc"},
			locations:     []string{"Remote"},
			listing:       listing("Frontend Engineer", "New York, NY"),
			wantMatch:     false,
		},
		{
			name:          "empty keyword lists pass all",
			titleKeywords: []string{},
			locations:     []string{},
			listing:       listing("Any Role", "Anywhere"),
			wantMatch:     true,
		},
		{
			name:          "only title keywords set",
			titleKeywords: []string{"intern"},
			listing:       listing("Summer Intern", "N/A"),
			wantMatch:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTitleAndLocationFilter(tt.titleKeywords, tt.locations)
			got := f.Match(tt.listing)
			if got != tt.wantMatch {
				t.Errorf("Match() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestTitleAndLocationFilter_Apply(t *testing.T) {
	in := []model.Listing{
		listing("ML Intern", "Remote"),
		listing("Sales Lead", "Remote"),
		listing("ML Engineer", "Remote"),
	}

	got := NewTitleAndLocationFilter([]string{"ml"}, nil).Apply(in)
	if len(got) != 2 || got[0].Title != "ML Intern" || got[1].Title != "ML Engineer" {
		t.Errorf("Apply = %+v", got)
	}

	if got := NewTitleAndLocationFilter(nil, nil).Apply(in); len(got) != 3 {
		t.Errorf("empty filter dropped listings: %d", len(got))
	}
}
