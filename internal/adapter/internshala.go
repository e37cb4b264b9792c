package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscout/internal/model"
)

const internshalaBaseURL = "https://internshala.com"

// InternshalaAdapter scrapes Internshala internship search results.
type InternshalaAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewInternshalaAdapter creates an adapter for Internshala.
func NewInternshalaAdapter(client *http.Client, logger *slog.Logger) *InternshalaAdapter {
	return &InternshalaAdapter{client: client, logger: logger}
}

func (a *InternshalaAdapter) Name() string { return BoardInternshala }

// Search returns the internships listed for keyword.
func (a *InternshalaAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := internshalaBaseURL + "/internships/keywords-" + url.QueryEscape(keyword)

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("internshala search for %q: %w", keyword, err)
	}

	var listings []model.Listing
	doc.Find("div.individual_internship").Each(func(_ int, card *goquery.Selection) {
		title := text(card.Find("h3.heading_4_5"))
		href, _ := card.Find("a.view_detail_button").First().Attr("href")
		if title == "" || href == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}
		location := text(card.Find("a.location_link"))
		details := text(card.Find("div.other_detail_item_row"))

		l := newListing("Internshala", title, orNA(text(card.Find("h4.heading_6"))), location, absURL(internshalaBaseURL, href))
		l.JobType = ClassifyJobType(strings.ReplaceAll(location+" "+details, "Work from home", "Remote"))
		listings = append(listings, l)
	})
	return listings, nil
}
