package adapter

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

const linkedInPage = `
<li>
  <div class="base-card job-search-card">
    <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/111?refId=a"></a>
    <h3 class="base-search-card__title"> AI Research Intern </h3>
    <h4 class="base-search-card__subtitle"> Acme </h4>
    <span class="job-search-card__location">Remote</span>
  </div>
</li>
<li>
  <div class="base-card job-search-card">
    <h3 class="base-search-card__title">No Link Intern</h3>
  </div>
</li>
<li>
  <div class="base-card job-search-card">
    <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/222"></a>
    <h3 class="base-search-card__title">NLP Intern</h3>
    <span class="job-search-card__location">Bengaluru, Karnataka, India</span>
  </div>
</li>`

func TestLinkedInSearch(t *testing.T) {
	srv := serveBody(t, "text/html", linkedInPage)
	var gotURL string
	a := NewLinkedInAdapter(newTestClient(srv, &gotURL), discardLogger())

	listings, err := a.Search(context.Background(), "research intern AI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search?keywords=research+intern+AI"; gotURL != want {
		t.Errorf("url = %q, want %q", gotURL, want)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings (card without link skipped), got %d", len(listings))
	}

	first := listings[0]
	if first.Title != "AI Research Intern" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Company != "Acme" {
		t.Errorf("Company = %q", first.Company)
	}
	if first.Source != "LinkedIn" {
		t.Errorf("Source = %q", first.Source)
	}
	if first.JobType != model.JobTypeRemote {
		t.Errorf("JobType = %q, want Remote", first.JobType)
	}
	if first.ID == "" || first.ID != model.NewListingID("LinkedIn", first.Link) {
		t.Errorf("ID = %q, want stable id derived from link", first.ID)
	}
	if listings[1].Company != notAvailable {
		t.Errorf("missing company = %q, want %q", listings[1].Company, notAvailable)
	}
	if listings[1].JobType != model.JobTypeNotSpecified {
		t.Errorf("JobType = %q, want Not Specified", listings[1].JobType)
	}
}

func TestLinkedInSearch_HTTPError(t *testing.T) {
	srv := serveStatus(t, http.StatusTooManyRequests)
	a := NewLinkedInAdapter(newTestClient(srv, nil), discardLogger())

	_, err := a.Search(context.Background(), "nlp")
	if err == nil {
		t.Fatal("expected error for HTTP 429, got nil")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError in chain, got %T", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", httpErr.RetryAfter)
	}
}
