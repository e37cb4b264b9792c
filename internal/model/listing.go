package model

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a stored listing.
type Status string

const (
	StatusNew      Status = "new"
	StatusReviewed Status = "reviewed - decided"
	StatusApplied  Status = "applied"
)

// JobType is the coarse work arrangement derived from free text.
type JobType string

const (
	JobTypeRemote       JobType = "Remote"
	JobTypeHybrid       JobType = "Hybrid"
	JobTypePartTime     JobType = "Part-time"
	JobTypeOnSite       JobType = "On-site"
	JobTypeNotSpecified JobType = "Not Specified"
)

// Listing is one discovered job or internship posting, normalized across boards.
type Listing struct {
	ID              string // dedup key, assigned at discovery
	Title           string // posting title
	Company         string // company or institution
	Location        string // free text
	Description     string // rarely available from result pages
	Requirements    string
	SalaryRange     string
	ApplicationLink string    // defaults to Link when stored
	Link            string    // posting URL
	Source          string    // board display name, e.g. "LinkedIn"
	DiscoveredAt    time.Time // set by the pipeline when first stored
	Status          Status
	RelevanceScore  int        // 0-100, zero until scored
	Analysis        *Analysis  // nil until scored
	AppliedAt       *time.Time // set only on transition to applied
	Response        string     // free text, filled in by hand
	Tags            []string
	DatePosted      string // raw board text, e.g. "3 days ago"
	JobType         JobType
}

// ApplyURL returns the best link to apply through.
func (l Listing) ApplyURL() string {
	if l.ApplicationLink != "" {
		return l.ApplicationLink
	}
	return l.Link
}

// listingNamespace scopes name-based listing IDs.
var listingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/amishk599/jobscout/listing"))

// NewListingID derives a stable identifier from the board and the posting link,
// so the same posting found again on a later run maps to the same row.
// Without a link it falls back to a random identifier.
func NewListingID(source, link string) string {
	if strings.TrimSpace(link) == "" {
		return uuid.NewString()
	}
	name := strings.ToLower(strings.TrimSpace(source)) + "|" + canonicalLink(link)
	return uuid.NewSHA1(listingNamespace, []byte(name)).String()
}

// canonicalLink drops the query string tracking noise boards append to result links.
func canonicalLink(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(raw)
	}
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "refid" || lk == "trackingid" || lk == "position" || lk == "pagenum" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return strings.TrimSuffix(u.String(), "/")
}

// Board searches one job board for a keyword.
type Board interface {
	Name() string
	Search(ctx context.Context, keyword string) ([]Listing, error)
}

// ListingStore is the repository the pipeline and CLI work against.
type ListingStore interface {
	IsDuplicate(l Listing) (bool, error)
	Upsert(l Listing) error
	MarkApplied(id string) (bool, error)
	MarkReviewed(id string) (bool, error)
	Get(id string) (Listing, bool, error)
	All() ([]Listing, error)
}

// Scorer rates a listing against the candidate profile. It never fails;
// problems are recorded on the returned listing's Analysis.
type Scorer interface {
	Score(ctx context.Context, l Listing) Listing
}

// Notifier sends notifications for high-potential listings.
type Notifier interface {
	Notify(listings []Listing) error
}

// ListingFilter narrows crawled listings to the ones worth scoring,
// preserving order.
type ListingFilter interface {
	Apply(listings []Listing) []Listing
}
