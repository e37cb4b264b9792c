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

const huggingFaceBaseURL = "https://huggingface.co"

// HuggingFaceAdapter scrapes the Hugging Face jobs page. The markup is not
// documented, so every field is matched by class-name fragments.
type HuggingFaceAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewHuggingFaceAdapter creates an adapter for Hugging Face jobs.
func NewHuggingFaceAdapter(client *http.Client, logger *slog.Logger) *HuggingFaceAdapter {
	return &HuggingFaceAdapter{client: client, logger: logger}
}

func (a *HuggingFaceAdapter) Name() string { return BoardHuggingFace }

func (a *HuggingFaceAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := huggingFaceBaseURL + "/jobs?q=" + url.QueryEscape(keyword)

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("huggingface search for %q: %w", keyword, err)
	}

	var listings []model.Listing
	doc.Find("div[class*='job-item']").Each(func(_ int, card *goquery.Selection) {
		title := text(firstMatch(card,
			"h2[class*='title'], h3[class*='title'], a[class*='title']",
			"h2[class*='job-name'], h3[class*='job-name'], a[class*='job-name']",
		))
		href, _ := card.Find("a[href]").First().Attr("href")
		if title == "" || href == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}
		company := text(firstMatch(card,
			"span[class*='company'], a[class*='company'], div[class*='company']",
			"span[class*='org'], a[class*='org'], div[class*='org']",
			"span[class*='employer'], a[class*='employer'], div[class*='employer']",
		))
		location := text(card.Find("span[class*='location'], div[class*='location']"))

		listings = append(listings, newListing("Hugging Face Jobs", title, orNA(company), location, absURL(huggingFaceBaseURL, href)))
	})
	return listings, nil
}
