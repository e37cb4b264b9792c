package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/amishk599/jobscout/internal/model"
)

const (
	googleCareersSearchURL = "https://careers.google.com/api/v3/search/"
	googleCareersJobURL    = "https://careers.google.com/jobs/results/"
)

// googleCareersResponse is the subset of the v3 search response we read.
type googleCareersResponse struct {
	Jobs []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Location string `json:"location"`
	} `json:"jobs"`
}

// GoogleCareersAdapter queries the Google Careers search API.
type GoogleCareersAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewGoogleCareersAdapter creates an adapter for Google Careers.
func NewGoogleCareersAdapter(client *http.Client, logger *slog.Logger) *GoogleCareersAdapter {
	return &GoogleCareersAdapter{client: client, logger: logger}
}

func (a *GoogleCareersAdapter) Name() string { return BoardGoogleCareers }

func (a *GoogleCareersAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := googleCareersSearchURL + "?q=" + url.QueryEscape(keyword)

	var resp googleCareersResponse
	if err := fetchJSON(ctx, a.client, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("google careers search for %q: %w", keyword, err)
	}

	listings := make([]model.Listing, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		if j.Title == "" || j.ID == "" {
			a.logger.Debug("skipping job without title or id", "keyword", keyword)
			continue
		}
		listings = append(listings, newListing("Google Careers", j.Title, "Google", j.Location, googleCareersJobURL+j.ID))
	}
	return listings, nil
}
