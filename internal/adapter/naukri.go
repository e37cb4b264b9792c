package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscout/internal/model"
)

const (
	naukriBaseURL = "https://www.naukri.com"

	// DefaultNaukriLocation is used when no candidate location is configured.
	DefaultNaukriLocation = "india"
)

// NaukriAdapter scrapes Naukri.com, which encodes keyword and location in the path.
type NaukriAdapter struct {
	location string
	client   *http.Client
	logger   *slog.Logger
}

// NewNaukriAdapter creates an adapter for Naukri scoped to location.
func NewNaukriAdapter(location string, client *http.Client, logger *slog.Logger) *NaukriAdapter {
	return &NaukriAdapter{location: location, client: client, logger: logger}
}

func (a *NaukriAdapter) Name() string { return BoardNaukri }

// searchURL builds e.g. https://www.naukri.com/nlp-intern-jobs-in-india.
func (a *NaukriAdapter) searchURL(keyword string) string {
	if a.location == "" {
		return fmt.Sprintf("%s/%s-jobs", naukriBaseURL, slugify(keyword))
	}
	return fmt.Sprintf("%s/%s-jobs-in-%s", naukriBaseURL, slugify(keyword), slugify(a.location))
}

// Search returns the job tuples on the first result page for keyword.
func (a *NaukriAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := a.searchURL(keyword)
	header := http.Header{}
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")

	doc, err := fetchDocument(ctx, a.client, u, header)
	if err != nil {
		return nil, fmt.Errorf("naukri search for %q: %w", keyword, err)
	}

	cards := doc.Find("article[class*='jobTuple']")
	if cards.Length() == 0 {
		cards = doc.Find("div.jobTuple")
	}

	var listings []model.Listing
	cards.Each(func(_ int, card *goquery.Selection) {
		titleTag := card.Find("a.title").First()
		title := text(titleTag)
		link, _ := titleTag.Attr("href")
		if title == "" || link == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}
		location := text(firstMatch(card,
			"span.ellipsis.fleft.locWdth",
			"li.location span.ellipsis.fleft",
		))
		listings = append(listings, newListing(
			"Naukri.com",
			title,
			orNA(text(card.Find("a.subTitle.ellipsis.fleft"))),
			orNA(location),
			absURL(naukriBaseURL, link),
		))
	})
	return listings, nil
}
