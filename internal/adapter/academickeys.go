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

const academicKeysBaseURL = "https://www.academickeys.com"

// AcademicKeysAdapter scrapes AcademicKeys job search. Results come either as
// table rows or, on some layouts, as job-listing divs.
type AcademicKeysAdapter struct {
	client *http.Client
	logger *slog.Logger
}

// NewAcademicKeysAdapter creates an adapter for AcademicKeys.
func NewAcademicKeysAdapter(client *http.Client, logger *slog.Logger) *AcademicKeysAdapter {
	return &AcademicKeysAdapter{client: client, logger: logger}
}

func (a *AcademicKeysAdapter) Name() string { return BoardAcademicKeys }

func (a *AcademicKeysAdapter) Search(ctx context.Context, keyword string) ([]model.Listing, error) {
	u := academicKeysBaseURL + "/search_jobs.php?action=search_jobs&query=" + url.QueryEscape(keyword) +
		"&job_type=&country=&state=&category=&discipline=&institution_name="

	doc, err := fetchDocument(ctx, a.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("academickeys search for %q: %w", keyword, err)
	}

	cards := doc.Find("table tr[id^='job_ad_']")
	if cards.Length() == 0 {
		cards = doc.Find("div.job-listing")
	}

	var listings []model.Listing
	cards.Each(func(_ int, card *goquery.Selection) {
		titleTag := firstMatch(card, "a.job_title", "td:nth-of-type(1) a")
		title := text(titleTag)
		href, _ := titleTag.Attr("href")
		if title == "" || href == "" {
			a.logger.Debug("skipping card without title or link", "keyword", keyword)
			return
		}

		cells := card.Find("td")
		company := text(card.Find("span.job_institution"))
		if company == "" && cells.Length() > 1 {
			company = text(cells.Eq(1))
		}
		location := text(card.Find("span.job_location"))
		if location == "" && cells.Length() > 2 {
			location = text(cells.Eq(2))
		}

		link := href
		if !strings.HasPrefix(link, "http") {
			link = academicKeysBaseURL + "/" + strings.TrimLeft(strings.TrimLeft(link, "."), "/")
		}
		listings = append(listings, newListing("AcademicKeys.com", title, orNA(company), location, link))
	})
	return listings, nil
}
