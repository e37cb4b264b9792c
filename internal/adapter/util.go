package adapter

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/amishk599/jobscout/internal/model"
)

// notAvailable stands in for an optional field a board did not expose.
const notAvailable = "N/A"

// cleanText collapses whitespace (including non-breaking spaces) to single spaces.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// text returns the cleaned text of the first node in s.
func text(s *goquery.Selection) string {
	return cleanText(s.First().Text())
}

// firstMatch returns the first non-empty result of the selectors, tried in order.
func firstMatch(s *goquery.Selection, selectors ...string) *goquery.Selection {
	var m *goquery.Selection
	for _, sel := range selectors {
		m = s.Find(sel).First()
		if m.Length() > 0 {
			return m
		}
	}
	return m
}

// orNA substitutes notAvailable for an empty value.
func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// absURL resolves href against base. Absolute hrefs are returned unchanged.
func absURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return base + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return base + href
	}
	return b.ResolveReference(ref).String()
}

// slugify lowercases s, folds accents, joins words with dashes and escapes the
// result for use as a path segment.
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return url.QueryEscape(strings.ReplaceAll(folded, " ", "-"))
}

// newListing builds a listing with a stable identifier and a job type
// classified from the location text.
func newListing(source, title, company, location, link string) model.Listing {
	return model.Listing{
		ID:       model.NewListingID(source, link),
		Title:    title,
		Company:  company,
		Location: location,
		Link:     link,
		Source:   source,
		JobType:  ClassifyJobType(location),
	}
}
