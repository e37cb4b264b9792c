package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewListingID_StableForSamePosting(t *testing.T) {
	a := NewListingID("LinkedIn", "https://www.linkedin.com/jobs/view/123?refId=abc&trackingId=xyz")
	b := NewListingID("linkedin", "https://WWW.linkedin.com/jobs/view/123?refId=def")
	if a != b {
		t.Errorf("ids differ for the same posting: %q vs %q", a, b)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("id %q is not a uuid: %v", a, err)
	}
}

func TestNewListingID_DiffersAcrossBoards(t *testing.T) {
	a := NewListingID("Indeed", "https://x/1")
	b := NewListingID("LinkedIn", "https://x/1")
	if a == b {
		t.Error("expected different ids for different boards")
	}
}

func TestNewListingID_NoLinkIsRandom(t *testing.T) {
	a := NewListingID("Indeed", "")
	b := NewListingID("Indeed", "")
	if a == "" || a == b {
		t.Errorf("expected two distinct random ids, got %q and %q", a, b)
	}
}

func TestApplyURL(t *testing.T) {
	l := Listing{Link: "https://x/1"}
	if got := l.ApplyURL(); got != "https://x/1" {
		t.Errorf("ApplyURL() = %q, want link", got)
	}
	l.ApplicationLink = "https://x/apply"
	if got := l.ApplyURL(); got != "https://x/apply" {
		t.Errorf("ApplyURL() = %q, want application link", got)
	}
}
