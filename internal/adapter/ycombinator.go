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

const yCombinatorBaseURL = "https://www.ycombinator.com"

// YCombinatorAdapter scrapes Work at a Startup search results.
type YCombinatorAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewYCombinatorAdapter creates an adapter for Y Combinator jobs.
func NewYCombinatorAdapter(client *http.Client, logger *slog.Logger) *YCombinatorAdapter {
	return &YCombinatorAdapter{client: client, logger: logger}
}

func (a *YCombinatorAdapter) Name() string { return BoardYCombinator }

func (a *YCombinatorAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := yCombinatorBaseURL + "/jobs/search?q=" + url.QueryEscape(keyword)

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("ycombinator search for %q: %w", keyword, err)
	}

	table := doc.Find("div.jobs-table").First()
	if table.Length() == 0 {
		return a.parseYCListingLinks(doc, keyword), nil
	}

	var listings []model.Listing
	table.Find("tr.job").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td.job-title a").First()
		company := row.Find("td.job-company").First()
		location := row.Find("td.job-location").First()
		href, ok := link.Attr("href")
		if !ok || link.Length() == 0 || company.Length() == 0 || location.Length() == 0 {
			a.logger.Debug("skipping incomplete job row", "keyword", keyword)
			return
		}
		title := text(link)
		if title == "" {
			a.logger.Debug("skipping job row without title", "keyword", keyword)
			return
		}
		listings = append(listings, newListing("Y Combinator", title, text(company), text(location), absURL(yCombinatorBaseURL, href)))
	})
	return listings, nil
}

// parseYCListingLinks handles the card layout where each job is an a.job-listing.
func (a *YCombinatorAdapter) parseYCListingLinks(doc *goquery.Document, keyword string) []model.Listing {
	var listings []model.Listing
	doc.Find("a.job-listing").Each(func(_ int, card *goquery.Selection) {
		title := text(firstMatch(card,
			"h2[class*='title'], h3[class*='title'], div[class*='title']",
			".job-title",
		))
		href, _ := card.Attr("href")
		if title == "" || href == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}
		company := text(firstMatch(card, "span[class*='company'], div[class*='company']", ".company-name"))
		location := text(card.Find("span[class*='location'], div[class*='location']"))
		listings = append(listings, newListing("Y Combinator", title, orNA(company), orNA(location), absURL(yCombinatorBaseURL, href)))
	})
	return listings
}
