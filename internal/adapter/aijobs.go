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

const aiJobsBaseURL = "https://ai-jobs.net"

// AIJobsAdapter scrapes ai-jobs.net search results.
type AIJobsAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewAIJobsAdapter creates an adapter for ai-jobs.net.
func NewAIJobsAdapter(client *http.Client, logger *slog.Logger) *AIJobsAdapter {
	return &AIJobsAdapter{client: client, logger: logger}
}

func (a *AIJobsAdapter) Name() string { return BoardAIJobs }

// Search returns the listings for keyword, including tags and the posted date.
func (a *AIJobsAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := aiJobsBaseURL + "/search/?q=" + url.QueryEscape(keyword)

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("ai-jobs.net search for %q: %w", keyword, err)
	}

	var listings []model.Listing
	doc.Find("li.list-group-item").Each(func(_ int, card *goquery.Selection) {
		titleTag := card.Find("h2.h5 a").First()
		title := text(titleTag)
		href, _ := titleTag.Attr("href")
		if title == "" || href == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}

		location := text(card.Find("span[title='Location']"))
		var tags []string
		card.Find("span.badge").Each(func(_ int, s *goquery.Selection) {
			if t := cleanText(s.Text()); t != "" {
				tags = append(tags, t)
			}
		})

		l := newListing("AI-Jobs.net", title, aiJobsCompany(card), location, absURL(aiJobsBaseURL, href))
		l.Tags = tags
		l.DatePosted = orNA(text(card.Find("small.text-muted")))
		l.JobType = ClassifyJobType(location + " " + strings.Join(tags, " "))
		listings = append(listings, l)
	})
	return listings, nil
}

// aiJobsCompany reads the company from a link inside the muted byline, or
// from the text after "at" when the byline is plain text.
func aiJobsCompany(card *goquery.Selection) string {
	byline := card.Find("span.text-muted").First()
	if byline.Length() == 0 {
		return notAvailable
	}
	if c := text(byline.Find("a")); c != "" {
		return c
	}
	t := cleanText(byline.Text())
	if i := strings.LastIndex(t, " at "); i >= 0 {
		return orNA(strings.TrimSpace(t[i+len(" at "):]))
	}
	if c, ok := strings.CutPrefix(t, "at "); ok {
		return orNA(strings.TrimSpace(c))
	}
	return notAvailable
}
