package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscout/internal/model"
)

const (
	indeedBaseURL   = "https://www.indeed.com"
	indeedSearchURL = indeedBaseURL + "/jobs"
)

// IndeedAdapter scrapes Indeed's date-sorted search results.
type IndeedAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewIndeedAdapter creates an adapter for Indeed.
func NewIndeedAdapter(client *http.Client, logger *slog.Logger) *IndeedAdapter {
	return &IndeedAdapter{client: client, logger: logger}
}

func (a *IndeedAdapter) Name() string { return BoardIndeed }

// Search returns the listings on the first result page for keyword, newest first.
func (a *IndeedAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := indeedSearchURL + "?q=" + url.QueryEscape(keyword) + "&sort=date"

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("indeed search for %q: %w", keyword, err)
	}

	var listings []model.Listing
	doc.Find("div.job_seen_beacon").Each(func(_ int, card *goquery.Selection) {
		title := text(card.Find("h2.jobTitle"))
		href, _ := card.Find("a").First().Attr("href")
		if title == "" || href == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}
		location := text(card.Find("div.companyLocation"))
		snippet := text(card.Find("div.job-snippet"))

		l := newListing("Indeed", title, orNA(text(card.Find("span.companyName"))), location, absURL(indeedBaseURL, href))
		l.Description = snippet
		// Indeed puts "Part-time" and similar labels in the snippet.
		l.JobType = ClassifyJobType(location + " " + snippet)
		listings = append(listings, l)
	})
	return listings, nil
}
