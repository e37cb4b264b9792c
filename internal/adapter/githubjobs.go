package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/amishk599/jobscout/internal/model"
)

const gitHubJobsURL = "https://jobs.github.com/positions.json"

// gitHubJob is one entry of the positions.json response.
type gitHubJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Type     string `json:"type"`
	URL      string `json:"url"`
}

// GitHubJobsAdapter queries the GitHub Jobs JSON API.
type GitHubJobsAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewGitHubJobsAdapter creates an adapter for GitHub Jobs.
func NewGitHubJobsAdapter(client *http.Client, logger *slog.Logger) *GitHubJobsAdapter {
	return &GitHubJobsAdapter{client: client, logger: logger}
}

func (a *GitHubJobsAdapter) Name() string { return BoardGitHub }

func (a *GitHubJobsAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := gitHubJobsURL + "?description=" + url.QueryEscape(keyword)

	var jobs []gitHubJob
	if err := fetchJSON(ctx, a.client, u, nil, &jobs); err != nil {
		return nil, fmt.Errorf("github jobs search for %q: %w", keyword, err)
	}

	listings := make([]model.Listing, 0, len(jobs))
	for _, j := range jobs {
		if j.Title == "" || j.URL == "" {
			a.logger.Debug("skipping job without title or url", "keyword", keyword)
			continue
		}
		l := newListing("GitHub Jobs", j.Title, orNA(j.Company), j.Location, j.URL)
		l.JobType = ClassifyJobType(j.Location + " " + j.Type)
		listings = append(listings, l)
	}
	return listings, nil
}
