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

const researchGateBaseURL = "https://www.researchgate.net"

// ResearchGateAdapter scrapes ResearchGate job search results.
type ResearchGateAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewResearchGateAdapter creates an adapter for ResearchGate.
func NewResearchGateAdapter(client *http.Client, logger *slog.Logger) *ResearchGateAdapter {
	return &ResearchGateAdapter{client: client, logger: logger}
}

func (a *ResearchGateAdapter) Name() string { return BoardResearchGate }

func (a *ResearchGateAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := researchGateBaseURL + "/jobs/search?q=" + url.QueryEscape(keyword)

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("researchgate search for %q: %w", keyword, err)
	}

	var listings []model.Listing
	doc.Find("div.job-listing-item").Each(func(_ int, card *goquery.Selection) {
		title := text(card.Find("h3"))
		href, _ := card.Find("a").First().Attr("href")
		if title == "" || href == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}
		listings = append(listings, newListing(
			"ResearchGate",
			title,
			orNA(text(card.Find("div.institution"))),
			text(card.Find("div.location")),
			absURL(researchGateBaseURL, href),
		))
	})
	return listings, nil
}
