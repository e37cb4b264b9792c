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

const linkedInSearchURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"

// LinkedInAdapter scrapes the guest job search fragment LinkedIn serves without login.
type LinkedInAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewLinkedInAdapter creates an adapter for LinkedIn.
func NewLinkedInAdapter(client *http.Client, logger *slog.Logger) *LinkedInAdapter {
	return &LinkedInAdapter{client: client, logger: logger}
}

func (a *LinkedInAdapter) Name() string { return BoardLinkedIn }

// Search returns the listings on the first result page for keyword.
func (a *LinkedInAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := linkedInSearchURL + "?keywords=" + url.QueryEscape(keyword)

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin search for %q: %w", keyword, err)
	}

	var listings []model.Listing
	doc.Find("div.job-search-card").Each(func(_ int, card *goquery.Selection) {
		title := text(card.Find("h3.base-search-card__title"))
		link, _ := card.Find("a.base-card__full-link").First().Attr("href")
		if title == "" || link == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}
		listings = append(listings, newListing(
			"LinkedIn",
			title,
			orNA(text(card.Find("h4.base-search-card__subtitle"))),
			text(card.Find("span.job-search-card__location")),
			link,
		))
	})
	return listings, nil
}
