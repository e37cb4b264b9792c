package adapter

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NLP intern", "nlp-intern"},
		{"Thiruvananthapuram, Kerala", "thiruvananthapuram%2C-kerala"},
		{"  São Paulo ", "sao-paulo"},
		{"C++ developer", "c%2B%2B-developer"},
	}
	for _, tc := range tests {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAbsURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://www.indeed.com", "/rc/clk?jk=1", "https://www.indeed.com/rc/clk?jk=1"},
		{"https://ai-jobs.net", "https://other.example/job/2", "https://other.example/job/2"},
		{"https://www.researchgate.net", "job/3", "https://www.researchgate.net/job/3"},
		{"https://x", "", ""},
	}
	for _, tc := range tests {
		if got := absURL(tc.base, tc.href); got != tc.want {
			t.Errorf("absURL(%q, %q) = %q, want %q", tc.base, tc.href, got, tc.want)
		}
	}
}

func TestFirstMatch_FallsBackInOrder(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div id="card"><li class="location"><span class="ellipsis fleft">Pune</span></li></div>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	card := doc.Find("#card")

	got := text(firstMatch(card, "span.locWdth", "li.location span.ellipsis"))
	if got != "Pune" {
		t.Errorf("firstMatch fallback = %q, want Pune", got)
	}
	if n := firstMatch(card, "span.missing", "div.missing").Length(); n != 0 {
		t.Errorf("expected empty selection, got %d nodes", n)
	}
}

func TestCleanText(t *testing.T) {
	if got := cleanText("  Acme Labs \n\t Inc "); got != "Acme Labs Inc" {
		t.Errorf("cleanText = %q", got)
	}
}
